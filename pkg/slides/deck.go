package slides

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/matzehuels/filmina/pkg/errors"
)

// DrawFunc paints one slide onto a Width×Height context.
type DrawFunc func(dc *gg.Context, p Projection)

// Template is a named slide.
type Template struct {
	Name  string
	Title string
	Draw  DrawFunc
}

var templates = []Template{
	{"archetype", "Perfil arquetípico", ArchetypeProfile},
	{"adjectives", "Adjetivación digital", AdjectiveGrid},
	{"profiling", "Perfilado digital electoral", DigitalProfiling},
	{"candidates", "Candidatos", Candidates},
	{"universe", "Universo digital", DigitalUniverse},
	{"block-a", "Bloque A", BlockATable},
	{"block-b", "Bloque B", BlockBSegments},
}

// DefaultDeck is the slide order used when no names are given.
var DefaultDeck = []string{"archetype", "adjectives", "profiling"}

// Templates returns every registered slide in deck order.
func Templates() []Template {
	return append([]Template(nil), templates...)
}

// Names returns the names of every registered slide in deck order.
func Names() []string {
	names := make([]string, len(templates))
	for i, t := range templates {
		names[i] = t.Name
	}
	return names
}

// Lookup finds a slide by name.
func Lookup(name string) (Template, bool) {
	for _, t := range templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// Render draws one slide on a fresh white canvas.
func Render(t Template, p Projection) image.Image {
	dc := newCanvas()
	t.Draw(dc, p)
	return dc.Image()
}

// Deck renders the named slides in order; no names means DefaultDeck.
// Unknown names fail before anything is drawn.
func Deck(p Projection, names ...string) ([]image.Image, error) {
	if len(names) == 0 {
		names = DefaultDeck
	}
	ts := make([]Template, len(names))
	for i, n := range names {
		t, ok := Lookup(n)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown slide %q (available: %v)", n, Names())
		}
		ts[i] = t
	}

	pages := make([]image.Image, len(ts))
	for i, t := range ts {
		pages[i] = Render(t, p)
	}
	return pages, nil
}
