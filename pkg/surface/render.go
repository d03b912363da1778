package surface

import (
	"image"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/matzehuels/filmina/pkg/fonts"
	"github.com/matzehuels/filmina/pkg/segrender"
)

// TextLineHeight is the line height of text objects relative to font size.
const TextLineHeight = 1.16

// Render flattens the scene at its native size.
func (s *Surface) Render() image.Image {
	return s.RenderScaled(1)
}

// RenderScaled flattens the scene with every coordinate multiplied by m,
// so m=2 produces a double-resolution export.
func (s *Surface) RenderScaled(m float64) image.Image {
	if m <= 0 {
		m = 1
	}
	dc := gg.NewContext(int(float64(s.Width)*m), int(float64(s.Height)*m))
	if s.Background != nil {
		dc.SetColor(s.Background)
		dc.Clear()
	}
	dc.Scale(m, m)
	for _, o := range s.objects {
		switch o.Kind {
		case KindImage:
			drawImage(dc, o, m)
		case KindText:
			drawText(dc, o)
		}
	}
	return dc.Image()
}

// drawImage paints an image object. Downscaled images are resampled with
// Catmull-Rom and drawn at pixel-aligned positions.
func drawImage(dc *gg.Context, o *Object, m float64) {
	if o.Image == nil {
		return
	}
	if sx, sy := o.ScaleX*m, o.ScaleY*m; sx < 1 && sy < 1 {
		b := o.Image.Bounds()
		w := max(int(math.Round(float64(b.Dx())*sx)), 1)
		h := max(int(math.Round(float64(b.Dy())*sy)), 1)
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), o.Image, b, draw.Over, nil)

		dc.Push()
		dc.Identity()
		dc.DrawImage(dst, int(math.Round(o.Left*m)), int(math.Round(o.Top*m)))
		dc.Pop()
		return
	}
	dc.Push()
	dc.Translate(o.Left, o.Top)
	dc.Scale(o.ScaleX, o.ScaleY)
	dc.DrawImage(o.Image, 0, 0)
	dc.Pop()
}

func drawText(dc *gg.Context, o *Object) {
	if o.Text == "" || o.FontSize <= 0 {
		return
	}
	weight := fonts.Regular
	if o.Bold {
		weight = fonts.Bold
	}
	face := fonts.Face(weight, o.FontSize)
	lines := strings.Split(o.Text, "\n")

	widest := 0.0
	for _, l := range lines {
		widest = max(widest, fonts.Width(face, l))
	}

	dc.Push()
	dc.Translate(o.Left, o.Top)
	dc.Scale(o.ScaleX, o.ScaleY)
	dc.SetFontFace(face)
	dc.SetColor(segrender.Fill(o.Color))
	lh := o.FontSize * TextLineHeight
	for i, l := range lines {
		x := 0.0
		if o.Align == AlignCenter {
			x = (widest - fonts.Width(face, l)) / 2
		}
		dc.DrawString(l, x, float64(i)*lh+o.FontSize)
	}
	dc.Pop()
}
