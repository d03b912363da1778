package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/filmina/pkg/chart"
	"github.com/matzehuels/filmina/pkg/errors"
)

// =============================================================================
// Layout Documents
// =============================================================================

// LayoutDoc is the serializable geometry of one chart at one resolution.
// It is what the json format renders.
type LayoutDoc struct {
	Kind       chart.Kind `json:"kind"`
	Resolution string     `json:"resolution"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`

	// Layout is the computed board geometry; nil for the profile chart,
	// whose geometry is fixed.
	Layout *chart.Layout `json:"layout,omitempty"`

	// Unplaced lists ungrouped segments the template had no slot for.
	Unplaced []string `json:"unplaced,omitempty"`

	// Payload is the chart payload as attached on insert.
	Payload json.RawMessage `json:"payload"`
}

// ComputeLayout lays ch out at res.
func ComputeLayout(ch chart.Chart, res chart.Resolution) (LayoutDoc, error) {
	payload, err := ch.Payload()
	if err != nil {
		return LayoutDoc{}, errors.Wrap(errors.ErrCodeInternal, err, "encode %s payload", ch.Kind().Short())
	}
	doc := LayoutDoc{
		Kind:       ch.Kind(),
		Resolution: res.Name,
		Width:      res.Width,
		Height:     res.Height,
		Payload:    payload,
	}
	if m, ok := ch.(*chart.Microsegmentation); ok {
		l := m.Layout(res)
		doc.Layout = &l
		doc.Unplaced = unplacedNames(m)
	}
	return doc, nil
}

func unplacedNames(m *chart.Microsegmentation) []string {
	var names []string
	for _, s := range m.Unplaced() {
		names = append(names, s.Name)
	}
	return names
}

// MarshalLayout encodes doc as indented JSON.
func MarshalLayout(doc LayoutDoc) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	return data, nil
}
