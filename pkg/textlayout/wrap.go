// Package textlayout provides greedy word wrapping, line-count estimation
// and bullet drawing on top of a text measurement function.
//
// Wrap and EstimateLineCount share one accumulation routine, so for the same
// measurer, text and width they always agree:
//
//	len(Wrap(m, text, w)) == EstimateLineCount(m, text, w)
//
// A *gg.Context satisfies Measurer using its current font face, which makes
// the measurement consistent with what is later drawn.
package textlayout

import "strings"

// Measurer measures the rendered extent of a string.
type Measurer interface {
	MeasureString(s string) (w, h float64)
}

// MeasureFunc adapts a width-only function to Measurer.
type MeasureFunc func(s string) float64

// MeasureString implements Measurer.
func (f MeasureFunc) MeasureString(s string) (float64, float64) { return f(s), 0 }

// CompoundSeparator splits compound labels such as "Deportistas / Fitness".
const CompoundSeparator = " / "

// Wrap breaks text into lines no wider than maxWidth.
//
// If text contains CompoundSeparator, splits into exactly two parts and both
// parts fit, the parts are returned verbatim. Otherwise words are accumulated
// greedily; a word that overflows an empty line stays on that line. Empty
// input yields a single line holding the input.
func Wrap(m Measurer, text string, maxWidth float64) []string {
	var lines []string
	accumulate(m, text, maxWidth, func(line string) { lines = append(lines, line) })
	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}

// EstimateLineCount returns len(Wrap(m, text, maxWidth)) without building lines.
func EstimateLineCount(m Measurer, text string, maxWidth float64) int {
	n := 0
	accumulate(m, text, maxWidth, func(string) { n++ })
	return max(n, 1)
}

func accumulate(m Measurer, text string, maxWidth float64, emit func(string)) {
	if parts, ok := compoundParts(m, text, maxWidth); ok {
		for _, p := range parts {
			emit(p)
		}
		return
	}

	current := ""
	for _, word := range strings.Split(text, " ") {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if width(m, candidate) > maxWidth && current != "" {
			emit(current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		emit(current)
	}
}

func compoundParts(m Measurer, text string, maxWidth float64) ([]string, bool) {
	if !strings.Contains(text, CompoundSeparator) {
		return nil, false
	}
	parts := strings.Split(text, CompoundSeparator)
	if len(parts) != 2 {
		return nil, false
	}
	if width(m, parts[0]) > maxWidth || width(m, parts[1]) > maxWidth {
		return nil, false
	}
	return parts, true
}

func width(m Measurer, s string) float64 {
	w, _ := m.MeasureString(s)
	return w
}

// Truncate shortens s to at most n runes, appending "..." when it cut anything.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
