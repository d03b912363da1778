package segrender

import (
	"image/color"

	"github.com/fogleman/gg"

	"github.com/matzehuels/filmina/pkg/fonts"
	"github.com/matzehuels/filmina/pkg/partition"
	"github.com/matzehuels/filmina/pkg/textlayout"
)

// Region is one segment ready to paint, in the target surface's coordinates.
type Region struct {
	Rect     partition.Rect `json:"rect"`
	Label    string         `json:"label"`
	Quantity string         `json:"quantity"`
	Color    string         `json:"color"`
}

// LabelPlan is the computed text layout of one region. Y values are the
// vertical centers of the corresponding lines.
type LabelPlan struct {
	NameSize   float64
	QtySize    float64
	Lines      []string
	LineHeight float64
	FirstY     float64
	QtyY       float64
	CX         float64
}

// LineY returns the vertical center of name line i.
func (p LabelPlan) LineY(i int) float64 {
	return p.FirstY + float64(i)*p.LineHeight
}

// Renderer paints regions with one profile.
type Renderer struct {
	Fonts   fonts.Source
	Profile Profile
}

// New returns a renderer; a nil source means the embedded fonts.
func New(src fonts.Source, p Profile) *Renderer {
	if src == nil {
		src = fonts.Embedded{}
	}
	return &Renderer{Fonts: src, Profile: p}
}

// Label computes the label of reg, or false when the region is too small.
func (r *Renderer) Label(reg Region) (LabelPlan, bool) {
	p := r.Profile
	x, y, w, h := reg.Rect.X, reg.Rect.Y, reg.Rect.W, reg.Rect.H
	if p.Suppressed(w, h) {
		return LabelPlan{}, false
	}

	nameSize := p.NameSize(w, h)
	qtySize := p.QuantitySize(w, h)
	face := r.Fonts.Face(fonts.Bold, nameSize)
	measure := textlayout.MeasureFunc(func(s string) float64 { return fonts.Width(face, s) })
	lines := textlayout.Wrap(measure, reg.Label, w-p.TextPadding)

	lh := nameSize * p.LineSpacing
	n := float64(len(lines))
	total := n*lh + qtySize + p.QtyGap
	first := y + h/2 - total/2 + lh/2

	return LabelPlan{
		NameSize:   nameSize,
		QtySize:    qtySize,
		Lines:      lines,
		LineHeight: lh,
		FirstY:     first,
		QtyY:       first + n*lh + p.QtyGap,
		CX:         x + w/2,
	}, true
}

// Draw paints every region in order: fill, stroke, then label.
func (r *Renderer) Draw(dc *gg.Context, regions []Region) {
	for _, reg := range regions {
		r.DrawRegion(dc, reg)
	}
}

// DrawRegion paints a single region.
func (r *Renderer) DrawRegion(dc *gg.Context, reg Region) {
	x, y, w, h := reg.Rect.X, reg.Rect.Y, reg.Rect.W, reg.Rect.H
	if w <= 0 || h <= 0 {
		return
	}
	radius := min(r.Profile.CornerRadius, w/2, h/2)

	dc.DrawRoundedRectangle(x, y, w, h, radius)
	dc.SetColor(Fill(reg.Color))
	dc.FillPreserve()
	dc.SetColor(color.White)
	dc.SetLineWidth(r.Profile.StrokeWidth)
	dc.Stroke()

	plan, ok := r.Label(reg)
	if !ok {
		return
	}
	dc.SetColor(color.White)
	dc.SetFontFace(r.Fonts.Face(fonts.Bold, plan.NameSize))
	textlayout.DrawCentered(dc, plan.Lines, plan.CX, plan.FirstY, plan.LineHeight)
	dc.SetFontFace(r.Fonts.Face(fonts.Bold, plan.QtySize))
	dc.DrawStringAnchored(reg.Quantity, plan.CX, plan.QtyY, 0.5, 0.5)
}
