package cache

// Keyer derives cache keys for the artifacts the pipeline produces.
type Keyer interface {
	// ChartKey identifies one encoded chart artifact.
	ChartKey(payloadHash string, opts ChartKeyOpts) string
	// DeckKey identifies one rendered slide deck.
	DeckKey(projectionHash string, opts DeckKeyOpts) string
}

// ChartKeyOpts lists every option that changes a rendered chart.
type ChartKeyOpts struct {
	Kind    string `json:"kind"`
	Format  string `json:"format"`
	Preview bool   `json:"preview,omitempty"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Profile string `json:"profile,omitempty"`
}

// DeckKeyOpts lists every option that changes a rendered deck.
type DeckKeyOpts struct {
	Slides []string `json:"slides"`
	Format string   `json:"format"`
}

// DefaultKeyer hashes key options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ChartKey returns "chart:<hash>".
func (DefaultKeyer) ChartKey(payloadHash string, opts ChartKeyOpts) string {
	return hashKey("chart", payloadHash, opts)
}

// DeckKey returns "deck:<hash>".
func (DefaultKeyer) DeckKey(projectionHash string, opts DeckKeyOpts) string {
	return hashKey("deck", projectionHash, opts)
}

var _ Keyer = DefaultKeyer{}
