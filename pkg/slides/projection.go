package slides

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/matzehuels/filmina/pkg/study"
)

// Placeholders used when a study leaves a field empty.
const (
	DefaultMunicipality = "Municipio"
	DefaultState        = "Estado"

	// DefaultDateLine is printed when the projection carries no date.
	DefaultDateLine = "Realizado el 3 de febrero, 2026"
)

// Adjective lists printed on the adjectives slide when none are given.
var (
	DefaultPositiveAdjectives = []string{"Eficaz", "Ordenado", "Responsable", "Accesible"}
	DefaultNegativeAdjectives = []string{"Discrecional", "Abusivo", "Improvisado", "Indolente"}
)

// Projection is the slice of a study the slides read.
type Projection struct {
	Municipality string
	State        string
	Archetype    string

	Positive []string
	Negative []string

	PositiveAdjectives []string
	NegativeAdjectives []string

	Candidates      []study.Candidate
	DigitalUniverse int
	BlockA          []study.BlockARow
	BlockB          []study.BlockBRow

	// Date is the as-of date of the deck; zero prints DefaultDateLine.
	Date time.Time
}

// ProjectionFromStudy projects s for the slides, dated date. Empty fields
// fall back to the sample study so that no slide renders blank.
func ProjectionFromStudy(s *study.Study, date time.Time) Projection {
	sample := study.Sample()
	seed := s.ProfileSeed()

	p := Projection{
		Municipality:       firstNonBlank(s.Municipality, DefaultMunicipality),
		State:              firstNonBlank(s.State, DefaultState),
		Archetype:          seed.Archetype,
		Positive:           seed.Positive,
		Negative:           seed.Negative,
		PositiveAdjectives: slices.Clone(DefaultPositiveAdjectives),
		NegativeAdjectives: slices.Clone(DefaultNegativeAdjectives),
		Candidates:         s.Clone().Candidates,
		DigitalUniverse:    s.DigitalUniverse,
		BlockA:             slices.Clone(s.BlockA),
		BlockB:             slices.Clone(s.BlockB),
		Date:               date,
	}
	if len(p.Candidates) == 0 {
		p.Candidates = sample.Candidates
	}
	if p.DigitalUniverse == 0 {
		p.DigitalUniverse = sample.DigitalUniverse
	}
	if len(p.BlockA) == 0 {
		p.BlockA = sample.BlockA
	}
	if len(p.BlockB) == 0 {
		p.BlockB = sample.BlockB
	}
	return p
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// Place returns "municipality, state".
func (p Projection) Place() string {
	return p.Municipality + ", " + p.State
}

var months = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// DateLine returns the footer date, as "Realizado el 13 de febrero de 2026".
func (p Projection) DateLine() string {
	if p.Date.IsZero() {
		return DefaultDateLine
	}
	d := p.Date
	return fmt.Sprintf("Realizado el %d de %s de %d", d.Day(), months[d.Month()-1], d.Year())
}

var mx = message.NewPrinter(language.MustParse("es-MX"))

// Thousands formats n with Mexican Spanish digit grouping.
func Thousands(n int) string {
	return mx.Sprintf("%d", n)
}
