package chart

import (
	"encoding/json"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/matzehuels/filmina/pkg/board"
	"github.com/matzehuels/filmina/pkg/fonts"
	"github.com/matzehuels/filmina/pkg/partition"
	"github.com/matzehuels/filmina/pkg/segrender"
	"github.com/matzehuels/filmina/pkg/sink"
	"github.com/matzehuels/filmina/pkg/surface"
)

// UngroupedTitle heads the population side of the board.
const UngroupedTitle = "Sin opinión"

// Share of the segment area given to the grouped columns.
const groupedShare = 0.55

// Microsegmentation is the hardness board chart.
type Microsegmentation struct {
	Board *board.Board

	// Template places ungrouped segments; nil means the default template.
	Template *partition.Template

	Fonts fonts.Source
}

var _ Chart = (*Microsegmentation)(nil)

// NewMicrosegmentation returns a board chart over b.
func NewMicrosegmentation(b *board.Board) *Microsegmentation {
	return &Microsegmentation{Board: b}
}

// Kind implements Chart.
func (m *Microsegmentation) Kind() Kind { return KindMicrosegmentation }

// Header is one column title with its formatted total.
type Header struct {
	Title string  `json:"title"`
	Total string  `json:"total"`
	CX    float64 `json:"cx"`
}

// Layout is the computed geometry of the board at one resolution.
type Layout struct {
	Width   int                `json:"width"`
	Height  int                `json:"height"`
	Regions []segrender.Region `json:"regions"`
	Headers []Header           `json:"headers,omitempty"`

	DividerX      float64 `json:"dividerX"`
	DividerTop    float64 `json:"dividerTop"`
	DividerBottom float64 `json:"dividerBottom"`
}

func (m *Microsegmentation) template() *partition.Template {
	if m.Template != nil {
		return m.Template
	}
	return partition.DefaultTemplate()
}

func (m *Microsegmentation) fonts() fonts.Source {
	if m.Fonts != nil {
		return m.Fonts
	}
	return fonts.Embedded{}
}

// Layout runs both partition strategies inside res's segment area.
func (m *Microsegmentation) Layout(res Resolution) Layout {
	b := m.Board
	header := 0.0
	if b.ShowHeaders {
		header = res.Header
	}
	x := res.InsetX
	y := res.InsetTop + header
	w := float64(res.Width) - 2*res.InsetX
	h := float64(res.Height) - res.InsetTop - res.InsetBottom - header
	leftW := w * groupedShare
	rightW := w - leftW

	left := partition.Box{X: x, Y: y, W: leftW, H: h}
	right := partition.Box{X: x + leftW, Y: y, W: rightW, H: h}

	out := Layout{
		Width:         res.Width,
		Height:        res.Height,
		DividerX:      x + leftW,
		DividerTop:    y,
		DividerBottom: y + h,
	}

	grouped := b.Segments(board.Grouped)
	items := b.Items(board.Grouped)
	for _, r := range partition.Grouped(items, b.Groups(), left) {
		out.Regions = append(out.Regions, region(r, grouped[r.Index]))
	}
	ungrouped := b.Segments(board.Ungrouped)
	for _, r := range m.template().Layout(b.Items(board.Ungrouped), right) {
		out.Regions = append(out.Regions, region(r, ungrouped[r.Index]))
	}

	if b.ShowHeaders {
		for _, col := range partition.Columns(items, b.Groups(), left) {
			out.Headers = append(out.Headers, Header{
				Title: col.Group,
				Total: partition.FormatTotal(b.GroupTotal(col.Group)),
				CX:    col.CenterX(),
			})
		}
		out.Headers = append(out.Headers, Header{
			Title: UngroupedTitle,
			Total: partition.FormatTotal(b.UngroupedTotal()),
			CX:    right.X + right.W/2,
		})
	}
	return out
}

func region(r partition.Rect, s board.Segment) segrender.Region {
	return segrender.Region{Rect: r, Label: s.Label(), Quantity: s.Quantity, Color: s.Color}
}

// Unplaced returns the ungrouped segments the template has no slot for.
func (m *Microsegmentation) Unplaced() []board.Segment {
	placed := map[int]bool{}
	for _, r := range m.template().Layout(m.Board.Items(board.Ungrouped), partition.Box{W: 1, H: 1}) {
		placed[r.Index] = true
	}
	var out []board.Segment
	for i, s := range m.Board.Segments(board.Ungrouped) {
		if !placed[i] {
			out = append(out, s)
		}
	}
	return out
}

// Draw implements Chart.
func (m *Microsegmentation) Draw(dc *gg.Context, res Resolution) {
	l := m.Layout(res)
	src := m.fonts()

	segrender.New(src, res.Profile).Draw(dc, l.Regions)

	dc.SetColor(color.Black)
	totalWeight := fonts.Regular
	if res.TotalBold {
		totalWeight = fonts.Bold
	}
	for _, hd := range l.Headers {
		dc.SetFontFace(src.Face(fonts.Bold, res.TitleSize))
		dc.DrawStringAnchored(hd.Title, hd.CX, res.TitleY, 0.5, 0)
		dc.SetFontFace(src.Face(totalWeight, res.TotalSize))
		dc.DrawStringAnchored(hd.Total, hd.CX, res.TotalY, 0.5, 0)
	}

	dc.SetLineWidth(res.DividerWidth)
	dc.SetDash(res.DividerDash, res.DividerDash)
	dc.DrawLine(l.DividerX, l.DividerTop, l.DividerX, l.DividerBottom)
	dc.Stroke()
	dc.SetDash()
}

// Drawing describes the board at res as vector primitives.
func (m *Microsegmentation) Drawing(res Resolution) sink.Drawing {
	l := m.Layout(res)
	d := sink.Drawing{Width: l.Width, Height: l.Height, Regions: l.Regions}
	for _, hd := range l.Headers {
		d.Texts = append(d.Texts,
			sink.Text{X: hd.CX, Y: res.TitleY, Text: hd.Title, Size: res.TitleSize, Bold: true, Anchor: sink.AnchorMiddle},
			sink.Text{X: hd.CX, Y: res.TotalY, Text: hd.Total, Size: res.TotalSize, Bold: res.TotalBold, Anchor: sink.AnchorMiddle},
		)
	}
	d.Lines = append(d.Lines, sink.Line{
		X1: l.DividerX, Y1: l.DividerTop, X2: l.DividerX, Y2: l.DividerBottom,
		Width: res.DividerWidth, Dash: res.DividerDash,
	})
	return d
}

// Payload implements Chart; it is the board's JSON document, plus a
// "template" member when a custom template is set.
func (m *Microsegmentation) Payload() ([]byte, error) {
	doc, err := json.Marshal(m.Board)
	if err != nil || m.Template == nil {
		return doc, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, err
	}
	if fields["template"], err = json.Marshal(m.Template); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

func microsegmentationFromPayload(data []byte) (*Microsegmentation, error) {
	b := board.New()
	if err := json.Unmarshal(data, b); err != nil {
		return nil, err
	}
	var extra struct {
		Template *partition.Template `json:"template"`
	}
	if err := json.Unmarshal(data, &extra); err != nil {
		return nil, err
	}
	m := NewMicrosegmentation(b)
	if extra.Template != nil {
		if err := extra.Template.Validate(); err != nil {
			return nil, err
		}
		m.Template = extra.Template
	}
	return m, nil
}

// Placement implements Chart: scaled to fit with a 20px side margin and a
// 40px vertical one, centered, and pushed 20px down.
func (m *Microsegmentation) Placement(canvasW, canvasH float64) surface.Placement {
	gw, gh := KindMicrosegmentation.ExportSize()
	scale := min((canvasW-40)/float64(gw), (canvasH-80)/float64(gh))
	sw, sh := float64(gw)*scale, float64(gh)*scale
	return surface.Placement{
		Left:   (canvasW - sw) / 2,
		Top:    (canvasH-sh)/2 + 20,
		ScaleX: scale,
		ScaleY: scale,
	}
}
