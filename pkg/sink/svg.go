package sink

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/filmina/pkg/fonts"
	"github.com/matzehuels/filmina/pkg/segrender"
)

// Anchor is the horizontal anchor of an SVG text run.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Text is a single line of text with its baseline at Y.
type Text struct {
	X, Y   float64
	Text   string
	Size   float64
	Bold   bool
	Color  string
	Anchor Anchor
}

// Line is a straight stroke; Dash > 0 makes it dashed.
type Line struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Dash           float64
	Color          string
}

// Drawing is a vector description of a chart: labeled regions painted by a
// segment renderer plus free text and lines.
type Drawing struct {
	Width, Height int
	Regions       []segrender.Region
	Texts         []Text
	Lines         []Line
}

// SVG writes d as an SVG document. Regions are labeled with the same plan
// r uses for rasters, so both outputs place text identically.
func SVG(w io.Writer, d Drawing, r *segrender.Renderer) {
	canvas := svg.New(w)
	canvas.Start(d.Width, d.Height)

	for _, reg := range d.Regions {
		writeRegion(canvas, reg, r)
	}
	for _, l := range d.Lines {
		style := fmt.Sprintf("stroke:%s;stroke-width:%g", colorOr(l.Color, "#000"), l.Width)
		if l.Dash > 0 {
			style += fmt.Sprintf(";stroke-dasharray:%g,%g", l.Dash, l.Dash)
		}
		canvas.Line(px(l.X1), px(l.Y1), px(l.X2), px(l.Y2), style)
	}
	for _, t := range d.Texts {
		canvas.Text(px(t.X), px(t.Y), t.Text, textStyle(t.Size, t.Bold, colorOr(t.Color, "#000"), t.Anchor, false))
	}

	canvas.End()
}

func writeRegion(canvas *svg.SVG, reg segrender.Region, r *segrender.Renderer) {
	x, y, w, h := reg.Rect.X, reg.Rect.Y, reg.Rect.W, reg.Rect.H
	if w <= 0 || h <= 0 {
		return
	}
	radius := px(min(r.Profile.CornerRadius, w/2, h/2))
	fill := segrender.Fill(reg.Color)
	canvas.Roundrect(px(x), px(y), px(w), px(h), radius, radius,
		fmt.Sprintf("fill:#%02x%02x%02x;stroke:#fff;stroke-width:%g", fill.R, fill.G, fill.B, r.Profile.StrokeWidth))

	plan, ok := r.Label(reg)
	if !ok {
		return
	}
	for i, line := range plan.Lines {
		canvas.Text(px(plan.CX), px(plan.LineY(i)), line, textStyle(plan.NameSize, true, "#fff", AnchorMiddle, true))
	}
	canvas.Text(px(plan.CX), px(plan.QtyY), reg.Quantity, textStyle(plan.QtySize, true, "#fff", AnchorMiddle, true))
}

func textStyle(size float64, bold bool, color string, anchor Anchor, central bool) string {
	if anchor == "" {
		anchor = AnchorStart
	}
	weight := fonts.Regular
	if bold {
		weight = fonts.Bold
	}
	s := fmt.Sprintf("font-family:%s;font-size:%gpx;font-weight:%s;fill:%s;text-anchor:%s",
		fonts.FontFamily, size, weight, color, anchor)
	if central {
		s += ";dominant-baseline:central"
	}
	return s
}

func colorOr(c, fallback string) string {
	if c == "" {
		return fallback
	}
	return c
}

func px(v float64) int { return int(math.Round(v)) }
