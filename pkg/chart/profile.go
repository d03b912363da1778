package chart

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/fogleman/gg"

	"github.com/matzehuels/filmina/pkg/fonts"
	"github.com/matzehuels/filmina/pkg/study"
	"github.com/matzehuels/filmina/pkg/surface"
	"github.com/matzehuels/filmina/pkg/textlayout"
)

// ProfileTitle is recorded in the profile payload.
const ProfileTitle = "Estudio de Identificación y definición del Perfil"

// UnknownDate replaces the date in the footnote of an undated profile.
const UnknownDate = "xx-xx-xx"

var (
	positiveColor = color.RGBA{0x2a, 0x4e, 0x00, 0xff}
	negativeColor = color.RGBA{0x52, 0x0f, 0x00, 0xff}
	footnoteColor = color.RGBA{0x11, 0x18, 0x27, 0xff}
)

// Profile column geometry in export pixels.
const (
	profileColStart = 50.0
	profileBulletY  = profileColStart + 94
	profileColWidth = 340.0
	profileIconSize = 24.0
)

// Profile is the identification profile chart.
type Profile struct {
	Place     string
	Office    string
	Archetype string
	Positive  []string
	Negative  []string

	// Date is the day the profile was made; zero prints UnknownDate.
	Date time.Time

	Fonts fonts.Source
}

var (
	_ Chart     = (*Profile)(nil)
	_ Annotator = (*Profile)(nil)
)

// NewProfile returns a profile chart initialized from seed.
func NewProfile(seed study.ProfileSeed) *Profile {
	return &Profile{
		Place:     seed.Place,
		Office:    seed.Office,
		Archetype: seed.Archetype,
		Positive:  append([]string(nil), seed.Positive...),
		Negative:  append([]string(nil), seed.Negative...),
	}
}

// Kind implements Chart.
func (p *Profile) Kind() Kind { return KindProfile }

// Footnote is the dated line in the bottom right corner.
func (p *Profile) Footnote() string {
	d := UnknownDate
	if !p.Date.IsZero() {
		d = p.Date.Format("02-01-2006")
	}
	return "*Perfil realizado el " + d
}

func (p *Profile) fonts() fonts.Source {
	if p.Fonts != nil {
		return p.Fonts
	}
	return fonts.Embedded{}
}

// Draw implements Chart. The chart is drawn at its export size and scaled
// to fit res, centered.
func (p *Profile) Draw(dc *gg.Context, res Resolution) {
	gw, gh := KindProfile.ExportSize()
	scale := min(float64(res.Width)/float64(gw), float64(res.Height)/float64(gh))

	dc.Push()
	dc.Translate((float64(res.Width)-float64(gw)*scale)/2, (float64(res.Height)-float64(gh)*scale)/2)
	dc.Scale(scale, scale)
	p.draw(dc, float64(gw), float64(gh))
	dc.Pop()
}

func (p *Profile) draw(dc *gg.Context, w, h float64) {
	src := p.fonts()
	cols := []struct {
		x     float64
		title string
		ink   color.Color
		items []string
		icon  func(dc *gg.Context, x, y float64)
	}{
		{40, "Positivo", positiveColor, p.Positive, drawCheck},
		{460, "Negativo", negativeColor, p.Negative, drawCross},
	}

	for _, c := range cols {
		dc.SetColor(c.ink)
		dc.DrawRectangle(c.x-12, profileColStart-36, 360, 44)
		dc.Fill()

		iconY := profileColStart - 28
		dc.SetColor(color.White)
		dc.DrawRectangle(c.x, iconY, profileIconSize, profileIconSize)
		dc.Fill()
		dc.SetColor(c.ink)
		dc.SetLineWidth(1)
		dc.DrawRectangle(c.x, iconY, profileIconSize, profileIconSize)
		dc.Stroke()
		dc.SetLineWidth(2)
		c.icon(dc, c.x, iconY)

		dc.SetColor(color.White)
		dc.SetFontFace(src.Face(fonts.Bold, 24))
		dc.DrawString("|", c.x+profileIconSize+8, profileColStart-8)
		dc.DrawString(c.title, c.x+profileIconSize+25, profileColStart-8)

		dc.SetFontFace(src.Face(fonts.Regular, 14))
		textlayout.DrawBulletList(dc, nonBlank(c.items), c.x, profileBulletY, profileColWidth, textlayout.DefaultBulletStyle())
	}

	dc.SetColor(footnoteColor)
	dc.SetFontFace(src.Face(fonts.Regular, 12))
	dc.DrawStringAnchored(p.Footnote(), w-40, h-24, 1, 0)
}

func drawCheck(dc *gg.Context, x, y float64) {
	dc.MoveTo(x+6, y+12)
	dc.LineTo(x+10, y+17)
	dc.LineTo(x+18, y+8)
	dc.Stroke()
}

func drawCross(dc *gg.Context, x, y float64) {
	dc.DrawLine(x+6, y+6, x+18, y+18)
	dc.DrawLine(x+18, y+6, x+6, y+18)
	dc.Stroke()
}

func nonBlank(items []string) []string {
	var out []string
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			out = append(out, it)
		}
	}
	return out
}

// PlaceText is the text of the place/office annotation.
func (p *Profile) PlaceText() string {
	return fmt.Sprintf("La población digital de\n%s\nbusca en su próximo\n%s\nla figura arquetípica de un", p.Place, p.Office)
}

// Annotations implements Annotator: the place/office sentence and the
// archetype, left of the chart image.
func (p *Profile) Annotations() []*surface.Object {
	place := surface.NewText(PlaceTextName, p.PlaceText(), 30, 280, 13, "#6b7280")
	place.Align = surface.AlignCenter
	arch := surface.NewText(ArchetypeTextName, p.Archetype, 75, 380, 18, "#7c3aed")
	arch.Align = surface.AlignCenter
	return []*surface.Object{place, arch}
}

// profilePayload is the JSON document attached to an inserted profile.
type profilePayload struct {
	Positive     []string `json:"positive"`
	Negative     []string `json:"negative"`
	PositiveText string   `json:"positiveText"`
	NegativeText string   `json:"negativeText"`
	Footnote     string   `json:"footnote"`
	Title        string   `json:"title"`

	Place     string `json:"place,omitempty"`
	Office    string `json:"office,omitempty"`
	Archetype string `json:"archetype,omitempty"`
	Date      string `json:"date,omitempty"`
}

func dashList(items []string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "- " + it
	}
	return strings.Join(lines, "\n\n")
}

// Payload implements Chart.
func (p *Profile) Payload() ([]byte, error) {
	doc := profilePayload{
		Positive:     nonNil(p.Positive),
		Negative:     nonNil(p.Negative),
		PositiveText: dashList(p.Positive),
		NegativeText: dashList(p.Negative),
		Footnote:     p.Footnote(),
		Title:        ProfileTitle,
		Place:        p.Place,
		Office:       p.Office,
		Archetype:    p.Archetype,
	}
	if !p.Date.IsZero() {
		doc.Date = p.Date.Format(time.DateOnly)
	}
	return json.Marshal(doc)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func profileFromPayload(data []byte) (*Profile, error) {
	var doc profilePayload
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	p := &Profile{
		Place:     doc.Place,
		Office:    doc.Office,
		Archetype: doc.Archetype,
		Positive:  doc.Positive,
		Negative:  doc.Negative,
	}
	if doc.Date != "" {
		d, err := time.Parse(time.DateOnly, doc.Date)
		if err != nil {
			return nil, err
		}
		p.Date = d
	}
	return p, nil
}

// Placement implements Chart: about 70% of the canvas width, right-aligned
// with a 20px margin, vertically centered and pushed 10px down.
func (p *Profile) Placement(canvasW, canvasH float64) surface.Placement {
	gw, gh := KindProfile.ExportSize()
	scale := min(canvasW*0.70/float64(gw), (canvasH-60)/float64(gh))
	sw, sh := float64(gw)*scale, float64(gh)*scale
	return surface.Placement{
		Left:   canvasW - sw - 20,
		Top:    (canvasH-sh)/2 + 10,
		ScaleX: scale,
		ScaleY: scale,
	}
}
