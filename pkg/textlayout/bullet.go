package textlayout

import (
	"image/color"

	"github.com/fogleman/gg"
)

// BulletStyle holds the geometry of a bullet item.
// The marker is centered at (x+MarkerOffsetX, y-MarkerOffsetY) where y is
// the baseline of the first text line.
type BulletStyle struct {
	MarkerColor   color.Color
	TextColor     color.Color
	MarkerRadius  float64
	MarkerOffsetX float64
	MarkerOffsetY float64
	TextIndent    float64
	LineHeight    float64
	Gap           float64
}

// DefaultBulletStyle is the bullet geometry of the profile chart.
func DefaultBulletStyle() BulletStyle {
	ink := color.RGBA{0x11, 0x18, 0x27, 0xff}
	return BulletStyle{
		MarkerColor:   ink,
		TextColor:     ink,
		MarkerRadius:  4,
		MarkerOffsetX: 6,
		MarkerOffsetY: 6,
		TextIndent:    18,
		LineHeight:    22,
		Gap:           28,
	}
}

// Advance returns the vertical space a bullet with n lines consumes.
func (s BulletStyle) Advance(n int) float64 {
	return float64(n)*s.LineHeight + s.Gap
}

// DrawBullet paints a filled marker and the left-aligned, wrapped body text
// using the context's current font face. It returns the vertical advance.
func DrawBullet(dc *gg.Context, text string, x, y, maxWidth float64, s BulletStyle) float64 {
	dc.SetColor(s.MarkerColor)
	dc.DrawCircle(x+s.MarkerOffsetX, y-s.MarkerOffsetY, s.MarkerRadius)
	dc.Fill()

	dc.SetColor(s.TextColor)
	lines := Wrap(dc, text, maxWidth-s.TextIndent)
	for i, line := range lines {
		dc.DrawString(line, x+s.TextIndent, y+float64(i)*s.LineHeight)
	}
	return s.Advance(len(lines))
}

// DrawBulletList draws items top to bottom starting at baseline y and
// returns the baseline following the last item.
func DrawBulletList(dc *gg.Context, items []string, x, y, maxWidth float64, s BulletStyle) float64 {
	for _, item := range items {
		y += DrawBullet(dc, item, x, y, maxWidth, s)
	}
	return y
}

// MeasureBulletList returns the total advance of items without drawing.
func MeasureBulletList(m Measurer, items []string, maxWidth float64, s BulletStyle) float64 {
	total := 0.0
	for _, item := range items {
		total += s.Advance(EstimateLineCount(m, item, maxWidth-s.TextIndent))
	}
	return total
}

// DrawCentered draws lines centered on cx; the first line's vertical center
// sits at firstY and each following line is lineHeight lower.
func DrawCentered(dc *gg.Context, lines []string, cx, firstY, lineHeight float64) {
	for i, line := range lines {
		dc.DrawStringAnchored(line, cx, firstY+float64(i)*lineHeight, 0.5, 0.5)
	}
}
