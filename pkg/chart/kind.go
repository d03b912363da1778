package chart

import (
	"strings"

	"github.com/matzehuels/filmina/pkg/errors"
)

// Kind identifies a chart type. Its value is the stable name of the chart's
// object on a surface.
type Kind string

const (
	KindMicrosegmentation Kind = "tablero-microsegmentacion-chart"
	KindProfile           Kind = "perfil-identificacion-right"
)

// Kinds lists every chart kind.
var Kinds = []Kind{KindMicrosegmentation, KindProfile}

// Names of the profile chart's text annotations.
const (
	PlaceTextName     = "perfil-lugar-candidato-text"
	ArchetypeTextName = "perfil-arquetipo-text"
)

// ParseKind accepts a full kind name or its short alias.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "microsegmentation", "micro", "tablero", string(KindMicrosegmentation):
		return KindMicrosegmentation, nil
	case "profile", "perfil", string(KindProfile):
		return KindProfile, nil
	}
	return "", errors.New(errors.ErrCodeInvalidKind, "unknown chart kind %q (want microsegmentation or profile)", s)
}

// Short returns the alias used on the command line.
func (k Kind) Short() string {
	switch k {
	case KindMicrosegmentation:
		return "microsegmentation"
	case KindProfile:
		return "profile"
	}
	return string(k)
}

// ExportSize is the fixed pixel size of the kind's export raster.
func (k Kind) ExportSize() (w, h int) {
	switch k {
	case KindProfile:
		return 820, 600
	default:
		return 1600, 750
	}
}
