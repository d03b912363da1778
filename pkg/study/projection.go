package study

import (
	"strconv"
	"strings"

	"github.com/matzehuels/filmina/pkg/board"
	"github.com/matzehuels/filmina/pkg/errors"
)

// Tier names of Block A weights, in stacking order: the most committed
// voters end up at the bottom of each column.
var hardnessTiers = []string{"Oportunista", "Enojado", "Crítico", "Duro"}

// tierPalettes holds one four-shade palette per party slot, light to dark.
var tierPalettes = [][4]string{
	{"#D1A8A6", "#B7746B", "#A0443C", "#8D241A"},
	{"#A8D5A8", "#98C598", "#88B588", "#689568"},
	{"#7BA3C9", "#6B93B9", "#5B83A9", "#1B4365"},
	{"#D5D5D5", "#C5C5C5", "#B5B5B5", "#959595"},
}

var segmentPalette = []string{"#88D588", "#78C578", "#68B568", "#A89FD5", "#988FD5", "#887FD5"}

// Quantity formats a weight in thousands, as "120 K".
func Quantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " K"
}

// MicrosegmentationSeed projects Block A and Block B onto a board. Each
// Block A row becomes a group with its four hardness tiers; each Block B
// row becomes an ungrouped segment. A pool whose block is empty is filled
// with the example board's content instead. Rows reported by
// [Study.SkippedBlockA] are left out.
func (s *Study) MicrosegmentationSeed() *board.Board {
	example := board.Example()
	b := board.New()

	// Appends below cannot fail: every group is declared first and
	// ungrouped segments never carry one.
	if len(s.BlockA) == 0 {
		for _, g := range example.Groups() {
			_ = b.DeclareGroup(g)
		}
		for _, seg := range example.Segments(board.Grouped) {
			_, _ = b.Append(board.Grouped, seg)
		}
	} else {
		rows, _ := s.partitionBlockA()
		for slot, row := range rows {
			party := strings.TrimSpace(row.Party)
			_ = b.DeclareGroup(party)
			shades := tierPalettes[slot%len(tierPalettes)]
			weights := []float64{row.Opportunist, row.Angry, row.Critical, row.Hard}
			for i, tier := range hardnessTiers {
				_, _ = b.Append(board.Grouped, board.Segment{
					Group:    party,
					Name:     party + " " + tier,
					Quantity: Quantity(weights[i]),
					Color:    shades[i],
				})
			}
		}
	}

	if len(s.BlockB) == 0 {
		for _, seg := range example.Segments(board.Ungrouped) {
			_, _ = b.Append(board.Ungrouped, seg)
		}
	} else {
		for i, row := range s.BlockB {
			_, _ = b.Append(board.Ungrouped, board.Segment{
				Name:     strings.TrimSpace(row.Segment),
				Quantity: Quantity(row.Size),
				Color:    segmentPalette[i%len(segmentPalette)],
			})
		}
	}
	return b
}

// Profile chart placeholders used when the study leaves a field empty.
const (
	DefaultPlace     = "Nuevo León"
	DefaultOffice    = "Gobernador"
	DefaultArchetype = "Impulsor"
)

// DefaultPositivePoints and DefaultNegativePoints are the placeholder
// bullets of the profile chart.
var (
	DefaultPositivePoints = []string{
		"La población digital busca en su próximo candidato la figura arquetípica de un Impulsor",
		"Quieren que posea un carácter fuerte para combatir inseguridad y criminalidad",
		"Buscan un enfoque renovado de la política que transforme la manera de abordar problemas",
	}
	DefaultNegativePoints = []string{
		"Les enfadaría que haga mega obras sin dar cuentas claras sobre el gasto público",
		"No desean a alguien que se limite a aparecer en redes sociales mientras permanece ausente",
		"Les enojaría que sus promesas de campaña no llegaran a realizarse o fueran ineficientes",
	}
)

// ProfileSeed is the initial state of the profile chart.
type ProfileSeed struct {
	Place     string
	Office    string
	Archetype string
	Positive  []string
	Negative  []string
}

// ProfileSeed projects the archetype and point lists of s. Blank entries
// are dropped; empty fields fall back to placeholders.
func (s *Study) ProfileSeed() ProfileSeed {
	seed := ProfileSeed{
		Place:     firstNonBlank(s.Municipality, s.State, DefaultPlace),
		Office:    DefaultOffice,
		Archetype: firstNonBlank(s.Archetype, DefaultArchetype),
		Positive:  nonBlank(s.PositivePoints),
		Negative:  nonBlank(s.NegativePoints),
	}
	if len(seed.Positive) == 0 {
		seed.Positive = append([]string(nil), DefaultPositivePoints...)
	}
	if len(seed.Negative) == 0 {
		seed.Negative = append([]string(nil), DefaultNegativePoints...)
	}
	return seed
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
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

// SkippedBlockA returns the Block A rows the board projection leaves out:
// rows whose party is not a usable group label (blank, too long, control
// characters) and rows repeating a party already seen.
func (s *Study) SkippedBlockA() []BlockARow {
	_, skipped := s.partitionBlockA()
	return skipped
}

func (s *Study) partitionBlockA() (kept, skipped []BlockARow) {
	seen := make(map[string]bool, len(s.BlockA))
	for _, row := range s.BlockA {
		party := strings.TrimSpace(row.Party)
		if errors.ValidateLabel(party) != nil || seen[party] {
			skipped = append(skipped, row)
			continue
		}
		seen[party] = true
		kept = append(kept, row)
	}
	return kept, skipped
}
