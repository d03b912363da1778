// Package pipeline turns studies into chart and deck artifacts.
//
// This package implements the project → layout → render pipeline used by
// the CLI. Centralizing it keeps every command on the same defaults,
// validation and caching.
//
// # Architecture
//
// A chart run has three stages:
//
//  1. Project: build a chart from a study (or an edited board override)
//  2. Layout: compute its geometry at the preview or export resolution
//  3. Render: encode PNG, SVG or a JSON layout document
//
// A deck run projects the study for the slides, rasterizes each named
// slide at 1280×720 and encodes a PDF and/or per-slide PNGs.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.RenderChart(ctx, s, pipeline.Options{
//	    Kind:    chart.KindMicrosegmentation,
//	    Formats: []string{"png", "json"},
//	})
//	if err != nil {
//	    return err
//	}
//	png := res.Artifacts["png"]
package pipeline

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/filmina/pkg/board"
	"github.com/matzehuels/filmina/pkg/cache"
	"github.com/matzehuels/filmina/pkg/chart"
	"github.com/matzehuels/filmina/pkg/errors"
	"github.com/matzehuels/filmina/pkg/partition"
	"github.com/matzehuels/filmina/pkg/segrender"
	"github.com/matzehuels/filmina/pkg/slides"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultKind is the chart rendered when no kind is given.
const DefaultKind = chart.KindMicrosegmentation

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPDF  = "pdf"
)

// ValidChartFormats is the set of formats a chart renders to.
var ValidChartFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatJSON: true,
}

// ValidDeckFormats is the set of formats a deck renders to.
var ValidDeckFormats = map[string]bool{
	FormatPDF: true,
	FormatPNG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a chart or deck run.
type Options struct {
	// Chart options
	Kind    chart.Kind `json:"kind,omitempty"`
	Preview bool       `json:"preview,omitempty"` // Render at the preview resolution

	// Deck options
	Slides []string  `json:"slides,omitempty"`
	All    bool      `json:"all,omitempty"` // Every registered slide, ignores Slides
	Date   time.Time `json:"date,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Refresh bool     `json:"refresh,omitempty"` // Skip cache reads

	// Runtime options (not serialized)
	Board    *board.Board        `json:"-"` // Replaces the study projection of the board chart
	Template *partition.Template `json:"-"` // Ungrouped layout; nil means the default
	Logger   *log.Logger         `json:"-"`

	// Segment renderer overrides for the board chart; nil keeps the
	// built-in profile of the resolution.
	PreviewProfile *segrender.Profile `json:"-"`
	ExportProfile  *segrender.Profile `json:"-"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateChartFormats checks that every format is a chart format.
func ValidateChartFormats(formats []string) error {
	for _, f := range formats {
		if !ValidChartFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid chart format: %q (must be one of: png, svg, json)", f)
		}
	}
	return nil
}

// ValidateDeckFormats checks that every format is a deck format.
func ValidateDeckFormats(formats []string) error {
	for _, f := range formats {
		if !ValidDeckFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid deck format: %q (must be one of: pdf, png)", f)
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetChartDefaults applies defaults for a chart run.
func (o *Options) SetChartDefaults() {
	if o.Kind == "" {
		o.Kind = DefaultKind
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
}

// ValidateForChart applies chart defaults and validates the options.
func (o *Options) ValidateForChart() error {
	o.SetChartDefaults()
	k, err := chart.ParseKind(string(o.Kind))
	if err != nil {
		return err
	}
	o.Kind = k
	if err := ValidateChartFormats(o.Formats); err != nil {
		return err
	}
	if o.Kind == chart.KindProfile && slices.Contains(o.Formats, FormatSVG) {
		return errors.New(errors.ErrCodeUnsupported, "svg output is only available for the %s chart", chart.KindMicrosegmentation.Short())
	}
	if o.Board != nil && o.Kind != chart.KindMicrosegmentation {
		return errors.New(errors.ErrCodeInvalidInput, "a board applies only to the %s chart", chart.KindMicrosegmentation.Short())
	}
	return nil
}

// SetDeckDefaults applies defaults for a deck run.
func (o *Options) SetDeckDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPDF}
	}
}

// ValidateForDeck applies deck defaults and validates the options.
func (o *Options) ValidateForDeck() error {
	o.SetDeckDefaults()
	if err := ValidateDeckFormats(o.Formats); err != nil {
		return err
	}
	for _, name := range o.SlideNames() {
		if _, ok := slides.Lookup(name); !ok {
			return errors.New(errors.ErrCodeInvalidInput, "unknown slide %q (available: %v)", name, slides.Names())
		}
	}
	return nil
}

// Resolution returns the chart resolution selected by Preview, with any
// profile override applied.
func (o *Options) Resolution() chart.Resolution {
	res, override := chart.ExportResolution(o.Kind), o.ExportProfile
	if o.Preview {
		res, override = chart.PreviewResolution(o.Kind), o.PreviewProfile
	}
	if override != nil && o.Kind == chart.KindMicrosegmentation {
		res.Profile = *override
	}
	return res
}

// profileKey names the segment profile in cache keys. Overrides are
// fingerprinted so an edited profile never hits a stale artifact.
func (o *Options) profileKey(res chart.Resolution) string {
	override := o.ExportProfile
	if o.Preview {
		override = o.PreviewProfile
	}
	if override == nil || o.Kind != chart.KindMicrosegmentation {
		return res.Profile.Name
	}
	data, _ := json.Marshal(override)
	return res.Profile.Name + "-" + cache.Hash(data)[:12]
}

// SlideNames returns the slides of the deck in order.
func (o *Options) SlideNames() []string {
	switch {
	case o.All:
		return slides.Names()
	case len(o.Slides) > 0:
		return o.Slides
	default:
		return slides.DefaultDeck
	}
}

// ChartKeyOpts returns cache key options for one chart artifact.
func (o *Options) ChartKeyOpts(format string) cache.ChartKeyOpts {
	res := o.Resolution()
	return cache.ChartKeyOpts{
		Kind:    string(o.Kind),
		Format:  format,
		Preview: o.Preview,
		Width:   res.Width,
		Height:  res.Height,
		Profile: o.profileKey(res),
	}
}

// DeckKeyOpts returns cache key options for one deck artifact.
func (o *Options) DeckKeyOpts(format string) cache.DeckKeyOpts {
	return cache.DeckKeyOpts{Slides: o.SlideNames(), Format: format}
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a chart run.
type Result struct {
	Kind chart.Kind

	// PayloadHash is the content hash of the chart payload.
	PayloadHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Unplaced names ungrouped segments the template had no slot for.
	Unplaced []string

	// Skipped names the Block A parties left out of a seeded board,
	// blank or repeated.
	Skipped []string

	Stats     Stats
	CacheInfo CacheInfo
}

// DeckResult contains the outputs of a deck run.
type DeckResult struct {
	Slides []string

	// PDF is the assembled deck, when requested.
	PDF []byte

	// Pages are the slides as PNG, in deck order, when requested.
	Pages [][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Segments   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

func (s Stats) String() string {
	return fmt.Sprintf("segments=%d layout=%s render=%s", s.Segments, s.LayoutTime, s.RenderTime)
}
