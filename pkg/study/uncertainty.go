package study

import (
	"strings"

	"github.com/matzehuels/filmina/pkg/errors"
)

// Uncertainty is the confidence tier attached to every qualitative section.
// The zero value is unset and fails validation.
type Uncertainty int

const (
	Low Uncertainty = iota + 1
	Medium
	High
)

// Uncertainties lists the valid tiers in ascending order.
var Uncertainties = []Uncertainty{Low, Medium, High}

// String returns "low", "medium", "high", or "unset".
func (u Uncertainty) String() string {
	switch u {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	}
	return "unset"
}

// Label returns the Spanish tier name shown on slides.
func (u Uncertainty) Label() string {
	switch u {
	case Low:
		return "Baja"
	case Medium:
		return "Media"
	case High:
		return "Alta"
	}
	return ""
}

// Valid reports whether u is one of the three tiers.
func (u Uncertainty) Valid() bool { return u >= Low && u <= High }

// ParseUncertainty accepts the English and Spanish tier names,
// case-insensitively.
func ParseUncertainty(s string) (Uncertainty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "baja":
		return Low, nil
	case "medium", "media":
		return Medium, nil
	case "high", "alta":
		return High, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidUncertainty, "unknown uncertainty tier %q (want low, medium or high)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (u Uncertainty) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidUncertainty, "uncertainty tier not set")
	}
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Uncertainty) UnmarshalText(b []byte) error {
	v, err := ParseUncertainty(string(b))
	if err != nil {
		return err
	}
	*u = v
	return nil
}
