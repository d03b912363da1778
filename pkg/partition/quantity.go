package partition

import (
	"math"
	"strconv"
	"strings"
)

// ParseQuantity derives a layout weight from a quantity string.
// Every rune other than a digit, '.', '-' or '+' is dropped before parsing,
// so unit suffixes and thousands separators disappear:
//
//	"50 K"   -> 50
//	"1,200K" -> 1200
//	"M12"    -> 12
//
// Input that still fails to parse weighs 0.
func ParseQuantity(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == '+':
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Weight clamps a parsed quantity to a usable non-negative layout weight.
func Weight(quantity string) float64 {
	return max(ParseQuantity(quantity), 0)
}

// FormatTotal renders a group total in thousands: "270 K" below one
// thousand, whole millions ("1 M") from there on.
func FormatTotal(sum float64) string {
	if sum >= 1000 {
		return strconv.FormatFloat(math.Round(sum/1000), 'f', 0, 64) + " M"
	}
	return strconv.FormatFloat(sum, 'f', -1, 64) + " K"
}

// Total sums the weights of items.
func Total(items []Item) float64 {
	sum := 0.0
	for _, it := range items {
		sum += max(it.Weight, 0)
	}
	return sum
}
