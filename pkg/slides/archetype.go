package slides

import (
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"

	"github.com/matzehuels/filmina/pkg/fonts"
	"github.com/matzehuels/filmina/pkg/textlayout"
)

// Points per column on the archetype slide.
const maxPoints = 3

var wheelColors = []string{"#FF6B6B", "#FF8E53", "#FFC107", "#66BB6A", "#42A5F5", "#AB47BC"}

// ArchetypeProfile draws slide f: the archetype wheel on the left and the
// positive and negative points in two columns.
func ArchetypeProfile(dc *gg.Context, p Projection) {
	drawHeader(dc, header{Title: "f. Definición del perfil arquetípico", Subtitle: p.Place()})

	box(dc, 80, 180, 300, 350, 12, hex("#f3f4f6"), nil, 0)
	drawWheel(dc, 230, 270)

	body := style{14, fonts.Regular, hex("#4b5563")}
	body.apply(dc)
	sentence := "La población digital de " + p.Municipality + " busca en su próximo alcalde la figura arquetípica de un"
	lines := textlayout.Wrap(dc, sentence, 260)
	const lh = 22.75
	archetypeTop := 530.0 - 50 - 45
	top := archetypeTop - 8 - float64(len(lines))*lh
	for i, line := range lines {
		text(dc, line, 100, top+float64(i)*lh, body)
	}
	text(dc, p.Archetype, 100, archetypeTop, style{36, fonts.Bold, hex("#7e22ce")})

	drawPointColumn(dc, 450, "Positivo", hex("#2D5016"), true, p.Positive)
	drawPointColumn(dc, 820, "Negativo", hex("#4A1511"), false, p.Negative)

	drawFooter(dc, p.DateLine(), false)
}

// drawWheel paints six colored circles around a white hub with a hexagon.
func drawWheel(dc *gg.Context, cx, cy float64) {
	const orbit, r = 65.0, 15.0
	for i, c := range wheelColors {
		a := -math.Pi/2 + float64(i)*math.Pi/3
		dc.DrawCircle(cx+orbit*math.Cos(a), cy+orbit*math.Sin(a), r)
		dc.SetColor(hex(c))
		dc.Fill()
	}
	dc.DrawCircle(cx, cy, 40)
	dc.SetColor(white)
	dc.FillPreserve()
	dc.SetColor(hex("#d1d5db"))
	dc.SetLineWidth(2)
	dc.Stroke()

	dc.DrawRegularPolygon(6, cx, cy, 18, 0)
	dc.SetColor(hex("#facc15"))
	dc.SetLineWidth(3)
	dc.Stroke()
}

func pointStyle() textlayout.BulletStyle {
	s := textlayout.DefaultBulletStyle()
	s.MarkerColor, s.TextColor = black, black
	s.MarkerRadius = 3
	s.MarkerOffsetX, s.MarkerOffsetY = 4, 4
	s.TextIndent = 16
	s.LineHeight = 19.5
	s.Gap = 12
	return s
}

// drawPointColumn draws a colored heading bar with a check or cross and up
// to three bullet points below it.
func drawPointColumn(dc *gg.Context, x float64, title string, bar color.Color, positive bool, points []string) {
	const top, w = 170.0, 330.0
	box(dc, x, top, w, 50, 6, bar, nil, 0)
	drawMark(dc, x+28, top+25, positive)
	text(dc, title, x+52, top+10, style{24, fonts.Bold, white})

	if len(points) > maxPoints {
		points = points[:maxPoints]
	}
	dc.SetFontFace(fonts.Face(fonts.Regular, 12))
	textlayout.DrawBulletList(dc, points, x+4, top+50+30, w-8, pointStyle())
}

// drawMark strokes a white check mark or cross centered on (cx, cy).
func drawMark(dc *gg.Context, cx, cy float64, check bool) {
	dc.SetColor(white)
	dc.SetLineWidth(3)
	dc.SetLineCapRound()
	if check {
		dc.MoveTo(cx-9, cy)
		dc.LineTo(cx-3, cy+7)
		dc.LineTo(cx+9, cy-8)
	} else {
		dc.MoveTo(cx-8, cy-8)
		dc.LineTo(cx+8, cy+8)
		dc.MoveTo(cx+8, cy-8)
		dc.LineTo(cx-8, cy+8)
	}
	dc.Stroke()
}

// AdjectiveGrid draws slide g: the archetype with its adjective boxes and
// up to four candidate cards in two columns.
func AdjectiveGrid(dc *gg.Context, p Projection) {
	drawHeader(dc, header{
		Title:    "g. Adjetivación digital y concordancia arquetípica",
		Subtitle: p.Place(),
		Compact:  true,
	})

	text(dc, "Perfil:", 60, 150, style{22, fonts.Regular, hex("#4b5563")})
	text(dc, p.Archetype, 60, 186, style{34, fonts.Bold, black})

	const boxTop = 286.0
	drawAdjectiveBox(dc, 60, boxTop, []string{"Adjetivos"}, hex("#0066CC"), p.PositiveAdjectives)
	drawAdjectiveBox(dc, 242, boxTop, []string{"Contra", "Adjetivos"}, hex("#CC0000"), p.NegativeAdjectives)

	for i, c := range firstN(p.Candidates, 4) {
		x := 480 + float64(i%2)*(270+18)
		y := 150 + float64(i/2)*(220+18)
		drawAdjectiveCard(dc, x, y, c.Name, c.Party, c.Adjectives)
	}

	drawFooter(dc, p.DateLine(), false)
}

func firstN[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

var cardBorder = hex("#d1d5db")

func drawAdjectiveBox(dc *gg.Context, x, y float64, title []string, ink color.Color, adjectives []string) {
	box(dc, x, y, 170, 190, 8, white, cardBorder, 2)
	ty := y + 12
	for _, t := range title {
		text(dc, t, x+12, ty, style{16, fonts.Bold, black})
		ty += 20
	}
	ty += 12
	for _, adj := range firstN(adjectives, 4) {
		text(dc, "•", x+12, ty, style{13, fonts.Bold, ink})
		text(dc, adj, x+26, ty+1, style{12, fonts.Bold, ink})
		ty += 24
	}
}

// splitName breaks a name after its second word.
func splitName(name string) (string, string) {
	words := strings.Fields(name)
	if len(words) <= 2 {
		return strings.Join(words, " "), ""
	}
	return strings.Join(words[:2], " "), strings.Join(words[2:], " ")
}

func drawAdjectiveCard(dc *gg.Context, x, y float64, name, party string, adjectives []string) {
	box(dc, x, y, 270, 220, 8, white, cardBorder, 2)
	drawAvatar(dc, x+270-12-28, y+12+28, 28)

	nameStyle := style{15, fonts.Bold, black}
	first, rest := splitName(name)
	ty := y + 12
	text(dc, first, x+12, ty, nameStyle)
	if rest != "" {
		ty += 19
		text(dc, rest, x+12, ty, nameStyle)
	}
	ty += 19 + 10
	text(dc, party, x+12, ty, style{12, fonts.Bold, black})
	ty += 15 + 10

	item := style{11, fonts.Regular, black}
	for _, adj := range firstN(adjectives, 4) {
		text(dc, "•", x+12, ty, item)
		text(dc, adj, x+24, ty, item)
		ty += 18
	}
}

// drawAvatar paints the placeholder photo circle with a head and shoulders.
func drawAvatar(dc *gg.Context, cx, cy, r float64) {
	dc.DrawCircle(cx, cy, r)
	dc.SetColor(hex("#d1d5db"))
	dc.FillPreserve()
	dc.SetColor(hex("#9ca3af"))
	dc.SetLineWidth(2)
	dc.Stroke()

	dc.SetColor(hex("#6b7280"))
	dc.DrawCircle(cx, cy-5, r*0.28)
	dc.Fill()
	dc.DrawEllipticalArc(cx, cy+r*0.55, r*0.5, r*0.4, math.Pi, 2*math.Pi)
	dc.Fill()
}
