package slides

import (
	"image"
	"image/color"
	"math"
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/filmina/pkg/errors"
	"github.com/matzehuels/filmina/pkg/study"
)

func sampleProjection() Projection {
	return ProjectionFromStudy(study.Sample(), time.Date(2026, time.February, 13, 0, 0, 0, 0, time.UTC))
}

func TestDateLine(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Time{}, DefaultDateLine},
		{time.Date(2026, time.February, 13, 9, 0, 0, 0, time.UTC), "Realizado el 13 de febrero de 2026"},
		{time.Date(2027, time.December, 1, 0, 0, 0, 0, time.UTC), "Realizado el 1 de diciembre de 2027"},
	}
	for _, tt := range tests {
		if got := (Projection{Date: tt.date}).DateLine(); got != tt.want {
			t.Errorf("DateLine(%v) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestThousands(t *testing.T) {
	got := Thousands(1180000)
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, got)
	if digits != "1180000" {
		t.Fatalf("Thousands() = %q, digits %q", got, digits)
	}
	if len([]rune(got)) != 9 {
		t.Errorf("Thousands() = %q, want two group separators", got)
	}
	if got := Thousands(950); got != "950" {
		t.Errorf("Thousands(950) = %q", got)
	}
}

func TestProjectionFromStudy(t *testing.T) {
	p := sampleProjection()
	if p.Place() != "Monterrey, Nuevo León" {
		t.Errorf("Place() = %q", p.Place())
	}
	if p.Archetype != "Impulsor" || len(p.Positive) != 3 || len(p.Candidates) != 4 {
		t.Errorf("projection = %+v", p)
	}
}

func TestProjectionFallbacks(t *testing.T) {
	p := ProjectionFromStudy(study.New("vacío"), time.Time{})
	sample := study.Sample()

	if p.Place() != "Municipio, Estado" {
		t.Errorf("Place() = %q", p.Place())
	}
	if p.Archetype != study.DefaultArchetype {
		t.Errorf("Archetype = %q", p.Archetype)
	}
	if diff := cmp.Diff(DefaultPositiveAdjectives, p.PositiveAdjectives); diff != "" {
		t.Errorf("PositiveAdjectives mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(sample.Candidates, p.Candidates); diff != "" {
		t.Errorf("Candidates mismatch (-want +got):\n%s", diff)
	}
	if p.DigitalUniverse != sample.DigitalUniverse || len(p.BlockA) != len(sample.BlockA) || len(p.BlockB) != len(sample.BlockB) {
		t.Errorf("numeric fallbacks not applied: %+v", p)
	}
	if p.DateLine() != DefaultDateLine {
		t.Errorf("DateLine() = %q", p.DateLine())
	}
}

func TestProjectionDoesNotAlias(t *testing.T) {
	s := study.Sample()
	p := ProjectionFromStudy(s, time.Time{})
	p.Candidates[0].Adjectives[0] = "changed"
	p.BlockA[0].Hard = -1
	if s.Candidates[0].Adjectives[0] == "changed" || s.BlockA[0].Hard == -1 {
		t.Error("projection shares storage with the study")
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name, first, rest string
	}{
		{"Ana Lucía Treviño", "Ana Lucía", "Treviño"},
		{"Jorge Garza Salinas Ruiz", "Jorge Garza", "Salinas Ruiz"},
		{"Mariana", "Mariana", ""},
		{"  Ricardo   Elizondo ", "Ricardo Elizondo", ""},
	}
	for _, tt := range tests {
		first, rest := splitName(tt.name)
		if first != tt.first || rest != tt.rest {
			t.Errorf("splitName(%q) = %q, %q; want %q, %q", tt.name, first, rest, tt.first, tt.rest)
		}
	}
}

func TestLayoutProfiling(t *testing.T) {
	l := LayoutProfiling(sampleProjection())

	var groups []string
	for _, c := range l.Columns {
		groups = append(groups, c.Group)
	}
	if diff := cmp.Diff([]string{"Morena", "PAN", "MC", "PRI"}, groups); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"270 K", "205 K", "265 K", "160 K"}, l.Totals); diff != "" {
		t.Errorf("totals mismatch (-want +got):\n%s", diff)
	}
	if len(l.Grouped) != 16 {
		t.Errorf("grouped regions = %d, want 16", len(l.Grouped))
	}
	if l.Undecided != "790 K" {
		t.Errorf("Undecided = %q, want 790 K", l.Undecided)
	}

	if len(l.Treemap) != 6 {
		t.Fatalf("treemap regions = %d, want 6", len(l.Treemap))
	}
	area := 0.0
	for _, r := range l.Treemap {
		rc := r.Rect
		if rc.X < l.Panel.X || rc.Y < l.Panel.Y || rc.X+rc.W > l.Panel.X+l.Panel.W+1e-6 || rc.Y+rc.H > l.Panel.Y+l.Panel.H+1e-6 {
			t.Errorf("%s = %+v outside panel %+v", rc.Key, rc, l.Panel)
		}
		area += rc.W * rc.H
	}
	want := (l.Panel.W - 10) * (l.Panel.H - 10)
	if math.Abs(area-want)/want > 1e-6 {
		t.Errorf("treemap area = %v, want %v", area, want)
	}
	for _, r := range l.Grouped {
		if r.Rect.X+r.Rect.W > l.Panel.X {
			t.Errorf("%s overlaps the panel", r.Rect.Key)
		}
	}
}

func TestLayoutProfilingSkipsEmptySegments(t *testing.T) {
	p := sampleProjection()
	p.BlockB = []study.BlockBRow{{Segment: "Religiosos", Size: 10}, {Segment: "Taxistas", Size: 0}}
	l := LayoutProfiling(p)
	if len(l.Treemap) != 1 || l.Treemap[0].Label != "Religiosos" {
		t.Errorf("Treemap = %+v, want Religiosos only", l.Treemap)
	}
}

func TestDeckDefault(t *testing.T) {
	pages, err := Deck(sampleProjection())
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != len(DefaultDeck) {
		t.Fatalf("len(pages) = %d, want %d", len(pages), len(DefaultDeck))
	}
	for i, pg := range pages {
		if pg.Bounds() != image.Rect(0, 0, Width, Height) {
			t.Errorf("page %d bounds = %v", i, pg.Bounds())
		}
	}
}

func TestDeckUnknownSlide(t *testing.T) {
	_, err := Deck(sampleProjection(), "archetype", "agenda")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("Deck() = %v, want INVALID_INPUT", err)
	}
	if !strings.Contains(err.Error(), "agenda") {
		t.Errorf("error %q does not name the slide", err)
	}
}

func rgb(c color.Color) [3]uint8 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return [3]uint8{n.R, n.G, n.B}
}

func TestEverySlideRenders(t *testing.T) {
	p := sampleProjection()
	badged := map[string]bool{"archetype": true, "adjectives": true, "profiling": true}

	for _, tpl := range Templates() {
		t.Run(tpl.Name, func(t *testing.T) {
			img := Render(tpl, p)
			if got := rgb(img.At(2, 2)); got != [3]uint8{0xff, 0xff, 0xff} {
				t.Errorf("corner = %v, want white", got)
			}
			badge := rgb(img.At(14, 34))
			if badged[tpl.Name] && badge != [3]uint8{0, 0, 0} {
				t.Errorf("badge pixel = %v, want black", badge)
			}
			if !badged[tpl.Name] && badge != [3]uint8{0xff, 0xff, 0xff} {
				t.Errorf("badge pixel = %v, want white", badge)
			}
		})
	}
}

func TestArchetypeColumns(t *testing.T) {
	img := Render(Template{Draw: ArchetypeProfile}, sampleProjection())
	if got := rgb(img.At(760, 175)); got != rgb(hex("#2D5016")) {
		t.Errorf("positive bar = %v", got)
	}
	if got := rgb(img.At(1130, 175)); got != rgb(hex("#4A1511")) {
		t.Errorf("negative bar = %v", got)
	}
}

func TestNames(t *testing.T) {
	want := []string{"archetype", "adjectives", "profiling", "candidates", "universe", "block-a", "block-b"}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	for _, n := range DefaultDeck {
		if _, ok := Lookup(n); !ok {
			t.Errorf("default slide %q not registered", n)
		}
	}
}
