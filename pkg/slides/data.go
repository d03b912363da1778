package slides

import (
	"strconv"
	"strings"

	"github.com/fogleman/gg"

	"github.com/matzehuels/filmina/pkg/fonts"
	"github.com/matzehuels/filmina/pkg/textlayout"
)

// Truncation limits, in runes.
const (
	SignalLimit      = 80
	DescriptionLimit = 50
)

// Candidates draws the candidate cards slide: up to four cards in a 2×2
// grid with name, party, adjectives and a shortened digital signal.
func Candidates(dc *gg.Context, p Projection) {
	drawHeader(dc, header{Title: "g. Candidatos y Adjetivación Digital", Subtitle: p.Place(), Plain: true})

	const (
		left, top = 80.0, 180.0
		w, h      = 550.0, 220.0
		gap       = 40.0
	)
	for i, c := range firstN(p.Candidates, 4) {
		x := left + float64(i%2)*(w+gap)
		y := top + float64(i/2)*(h+gap)
		box(dc, x, y, w, h, 8, hex("#f8f9fa"), hex("#dee2e6"), 2)

		text(dc, c.Name, x+20, y+20, style{22, fonts.Bold, hex("#212529")})
		text(dc, c.Party, x+20, y+55, style{16, fonts.Regular, hex("#6c757d")})
		text(dc, strings.Join(c.Adjectives, " • "), x+20, y+90, style{14, fonts.Bold, hex("#0d6efd")})

		signal := style{12, fonts.Regular, hex("#495057")}
		signal.apply(dc)
		for j, line := range textlayout.Wrap(dc, textlayout.Truncate(c.DigitalSignal, SignalLimit), w-40) {
			text(dc, line, x+20, y+130+float64(j)*16, signal)
		}
	}

	drawFooter(dc, p.DateLine(), true)
}

// DigitalUniverse draws the digital universe figure inside a pale ellipse.
func DigitalUniverse(dc *gg.Context, p Projection) {
	drawHeader(dc, header{Title: "h. Universo Digital Electoral", Subtitle: p.Place(), Plain: true})

	cx, cy := float64(Width)/2, float64(Height)/2+20
	dc.DrawEllipse(cx, cy, 200, 150)
	dc.SetColor(hex("#e7f3ff"))
	dc.Fill()

	textCenter(dc, Thousands(p.DigitalUniverse), cx, cy-20, style{80, fonts.Bold, hex("#0d6efd")})
	textCenter(dc, "Usuarios digitales", cx, cy+56, style{28, fonts.Regular, hex("#495057")})
	textCenter(dc, "Población digital activa en el municipio", cx, cy+110, style{18, fonts.Regular, hex("#6c757d")})

	drawFooter(dc, p.DateLine(), true)
}

// BlockAColumns are the headings of the Block A table.
var BlockAColumns = []string{"Partido", "Duro", "Enojado", "Crítico", "Oportunista"}

// BlockATable draws Block A as a five-column table with one row per party.
func BlockATable(dc *gg.Context, p Projection) {
	drawHeader(dc, header{Title: "i. Bloque A - Partidos Políticos", Subtitle: p.Place(), Plain: true})

	const (
		left, top = 80.0, 180.0
		colW      = 220.0
		rowH      = 50.0

		// Rows past the bottom of the slide are dropped.
		maxRows = 8
	)
	for i, h := range BlockAColumns {
		x := left + float64(i)*colW
		box(dc, x, top, colW, rowH, 0, hex("#343a40"), white, 2)
		text(dc, h, x+20, top+15, style{18, fonts.Bold, white})
	}

	for r, row := range firstN(p.BlockA, maxRows) {
		y := top + float64(r+1)*rowH
		fill := hex("#ffffff")
		if r%2 == 0 {
			fill = hex("#f8f9fa")
		}
		cells := []string{row.Party, percent(row.Hard), percent(row.Angry), percent(row.Critical), percent(row.Opportunist)}
		for c, cell := range cells {
			x := left + float64(c)*colW
			box(dc, x, y, colW, rowH, 0, fill, hex("#dee2e6"), 1)
			st := style{16, fonts.Bold, hex("#0d6efd")}
			if c == 0 {
				st = style{16, fonts.Regular, hex("#212529")}
			}
			text(dc, cell, x+20, y+15, st)
		}
	}

	drawFooter(dc, p.DateLine(), true)
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

var segmentColors = []string{"#0d6efd", "#6610f2", "#6f42c1", "#d63384", "#dc3545"}

// BlockBSegments draws Block B as nested translucent circles next to a
// legend of segment name, size and shortened description.
func BlockBSegments(dc *gg.Context, p Projection) {
	drawHeader(dc, header{Title: "j. Bloque B - Segmentos de Población", Subtitle: p.Place(), Plain: true})

	// Circles shrink by 30px per segment; the eighth would vanish.
	rows := firstN(p.BlockB, 7)
	cx, cy := 300.0, 400.0
	for i := range rows {
		c := hex(segmentColors[i%len(segmentColors)])
		r, g, b, _ := c.RGBA()
		dc.SetRGBA(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff, 0.7)
		dc.DrawCircle(cx, cy, float64(240-i*30)/2)
		dc.Fill()
	}

	const step = 64.0
	top := 200.0
	if n := float64(len(rows)); n*step > Height-60-top {
		top = Height - 60 - n*step
	}
	for i, row := range rows {
		ink := hex(segmentColors[i%len(segmentColors)])
		y := top + float64(i)*step
		box(dc, 500, y+4, 30, 30, 4, ink, nil, 0)
		text(dc, row.Segment, 546, y, style{20, fonts.Bold, hex("#111827")})
		text(dc, percent(row.Size), 546, y+26, style{16, fonts.Bold, ink})
		text(dc, textlayout.Truncate(row.Description, DescriptionLimit), 546, y+46, style{12, fonts.Regular, hex("#4b5563")})
	}

	drawFooter(dc, p.DateLine(), false)
}
