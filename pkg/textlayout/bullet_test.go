package textlayout

import (
	"image/color"
	"testing"

	"github.com/fogleman/gg"

	"github.com/matzehuels/filmina/pkg/fonts"
)

func TestDrawBulletAdvance(t *testing.T) {
	dc := gg.NewContext(820, 600)
	dc.SetFontFace(fonts.Face(fonts.Regular, 14))
	style := DefaultBulletStyle()

	tests := []struct {
		name string
		text string
	}{
		{"short", "Eficaz"},
		{"long", "La población digital busca en su próximo candidato la figura arquetípica de un Impulsor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := EstimateLineCount(dc, tt.text, 340-style.TextIndent)
			want := float64(lines)*style.LineHeight + style.Gap
			if got := DrawBullet(dc, tt.text, 40, 144, 340, style); got != want {
				t.Errorf("DrawBullet() = %v, want %v", got, want)
			}
		})
	}
}

func TestDrawBulletMarker(t *testing.T) {
	dc := gg.NewContext(100, 100)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(fonts.Face(fonts.Regular, 14))

	DrawBullet(dc, "x", 10, 50, 80, DefaultBulletStyle())

	// marker center at (16, 44)
	r, g, b, _ := dc.Image().At(16, 44).RGBA()
	if r > 0x3000 || g > 0x3000 || b > 0x4000 {
		t.Errorf("marker pixel = (%x,%x,%x), want dark ink", r, g, b)
	}
}

func TestMeasureBulletList(t *testing.T) {
	style := DefaultBulletStyle()
	items := []string{"Eficaz", "Ordenado", "Responsable"}
	got := MeasureBulletList(monospace, items, 340, style)
	want := 3 * (style.LineHeight + style.Gap)
	if got != want {
		t.Errorf("MeasureBulletList() = %v, want %v", got, want)
	}
}

func TestDrawBulletListReturnsNextBaseline(t *testing.T) {
	dc := gg.NewContext(400, 400)
	dc.SetFontFace(fonts.Face(fonts.Regular, 14))
	style := DefaultBulletStyle()
	style.TextColor = color.Black

	items := []string{"Uno", "Dos"}
	got := DrawBulletList(dc, items, 0, 100, 340, style)
	want := 100 + MeasureBulletList(dc, items, 340, style)
	if got != want {
		t.Errorf("DrawBulletList() = %v, want %v", got, want)
	}
}
