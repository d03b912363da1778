package slides

import (
	"image/color"

	"github.com/fogleman/gg"

	"github.com/matzehuels/filmina/pkg/fonts"
	"github.com/matzehuels/filmina/pkg/segrender"
)

// Slide canvas size in pixels.
const (
	Width  = 1280
	Height = 720
)

// Brand is printed in every footer.
const Brand = "Rizoma"

var (
	black  = hex("#000000")
	white  = hex("#ffffff")
	purple = hex("#6b21a8")
	gray   = hex("#6b7280")
	muted  = hex("#999999")
)

func hex(s string) color.Color { return segrender.Fill(s) }

// newCanvas returns a white slide.
func newCanvas() *gg.Context {
	dc := gg.NewContext(Width, Height)
	dc.SetColor(white)
	dc.Clear()
	return dc
}

// style is a font and ink selection.
type style struct {
	size   float64
	weight fonts.Weight
	color  color.Color
}

func (s style) apply(dc *gg.Context) {
	dc.SetFontFace(fonts.Face(s.weight, s.size))
	dc.SetColor(s.color)
}

// text draws s with its top-left corner at (x, top).
func text(dc *gg.Context, s string, x, top float64, st style) {
	st.apply(dc)
	dc.DrawStringAnchored(s, x, top, 0, 1)
}

// textRight draws s with its top-right corner at (right, top).
func textRight(dc *gg.Context, s string, right, top float64, st style) {
	st.apply(dc)
	dc.DrawStringAnchored(s, right, top, 1, 1)
}

// textCenter draws s centered on (cx, cy).
func textCenter(dc *gg.Context, s string, cx, cy float64, st style) {
	st.apply(dc)
	dc.DrawStringAnchored(s, cx, cy, 0.5, 0.5)
}

// box fills and optionally strokes a rounded rectangle.
func box(dc *gg.Context, x, y, w, h, r float64, fill, stroke color.Color, lw float64) {
	dc.DrawRoundedRectangle(x, y, w, h, r)
	if fill != nil {
		dc.SetColor(fill)
		dc.FillPreserve()
	}
	if stroke != nil && lw > 0 {
		dc.SetColor(stroke)
		dc.SetLineWidth(lw)
		dc.StrokePreserve()
	}
	dc.ClearPath()
}

// header is the title block shared by all slides.
type header struct {
	Title    string
	Subtitle string

	// Compact shrinks the title for long headings.
	Compact bool
	// Plain drops the badge and uses the larger data-slide heading.
	Plain bool
}

// drawHeader paints the title block, preceded by the black badge unless
// the header is plain.
func drawHeader(dc *gg.Context, h header) {
	if h.Plain {
		text(dc, h.Title, 110, 40, style{36, fonts.Bold, black})
		text(dc, h.Subtitle, 110, 85, style{24, fonts.Regular, hex("#666666")})
		return
	}
	box(dc, 10, 30, 120, 70, 0, black, nil, 0)
	drawBadge(dc, 10, 30, 120, 70)

	titleSize, subSize := 32.0, 18.0
	if h.Compact {
		titleSize, subSize = 26, 16
	}
	text(dc, h.Title, 145, 38, style{titleSize, fonts.Bold, black})
	text(dc, h.Subtitle, 145, 38+titleSize*1.25+4, style{subSize, fonts.Regular, black})
}

// drawBadge draws a small bar chart glyph inside the header badge.
func drawBadge(dc *gg.Context, x, y, w, h float64) {
	heights := []float64{0.35, 0.6, 0.45, 0.8}
	bw := 12.0
	gap := 8.0
	total := float64(len(heights))*bw + float64(len(heights)-1)*gap
	left := x + (w-total)/2
	base := y + h - 14
	dc.SetColor(white)
	for i, f := range heights {
		bh := f * (h - 28)
		dc.DrawRectangle(left+float64(i)*(bw+gap), base-bh, bw, bh)
	}
	dc.Fill()
}

// drawFooter paints the brand mark and the date line at the bottom right.
// Plain footers print the brand as a colored word only.
func drawFooter(dc *gg.Context, date string, plain bool) {
	if plain {
		text(dc, Brand, Width-150, Height-60, style{20, fonts.Bold, hex("#6B46C1")})
		text(dc, date, Width-300, Height-30, style{12, fonts.Regular, muted})
		return
	}
	const right = Width - 60
	cx, cy, r := float64(right-22), float64(Height-30-22), 22.0

	dc.DrawCircle(cx, cy, r)
	dc.SetColor(white)
	dc.FillPreserve()
	dc.SetColor(purple)
	dc.SetLineWidth(2)
	dc.Stroke()
	dc.DrawCircle(cx, cy, 8)
	dc.Fill()

	textRight(dc, Brand, cx-r-10, cy-10, style{16, fonts.Bold, black})
	textRight(dc, date, right, Height-10-12, style{10, fonts.Regular, gray})
}
