package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/filmina/pkg/board"
	"github.com/matzehuels/filmina/pkg/cache"
	"github.com/matzehuels/filmina/pkg/chart"
	"github.com/matzehuels/filmina/pkg/errors"
	"github.com/matzehuels/filmina/pkg/observability"
	"github.com/matzehuels/filmina/pkg/slides"
	"github.com/matzehuels/filmina/pkg/study"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// =============================================================================
// Charts
// =============================================================================

// RenderChart runs the project → layout → render pipeline for one chart of s.
func (r *Runner) RenderChart(ctx context.Context, s *study.Study, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForChart(); err != nil {
		return nil, err
	}

	// Stage 1: Project
	ch, err := BuildChart(s, opts)
	if err != nil {
		return nil, err
	}
	payloadHash, err := r.payloadHash(ch)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Kind:        ch.Kind(),
		PayloadHash: payloadHash,
		Artifacts:   make(map[string][]byte),
	}

	// Stage 2: Layout
	hooks := observability.Pipeline()
	kind := string(ch.Kind())
	layoutStart := time.Now()
	if m, ok := ch.(*chart.Microsegmentation); ok {
		result.Stats.Segments = m.Board.Len()
		hooks.OnLayoutStart(ctx, kind, result.Stats.Segments)
		r.checkBoard(opts.Logger, m.Board)
		if opts.Board == nil {
			for _, row := range s.SkippedBlockA() {
				result.Skipped = append(result.Skipped, row.Party)
				opts.Logger.Warn("block A row left out of the board", "id", row.ID, "party", row.Party)
			}
		}
		result.Unplaced = unplacedNames(m)
		for _, name := range result.Unplaced {
			opts.Logger.Debug("segment has no template slot", "segment", name)
		}
	} else {
		hooks.OnLayoutStart(ctx, kind, 0)
	}
	result.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, kind, result.Stats.LayoutTime, nil)

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, hit, err := r.renderChartCached(ctx, ch, payloadHash, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = hit

	opts.Logger.Info("rendered chart",
		"kind", ch.Kind().Short(),
		"resolution", opts.Resolution().Name,
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// payloadHash keys a chart by its payload. The board chart's payload
// carries any custom template.
func (r *Runner) payloadHash(ch chart.Chart) (string, error) {
	payload, err := ch.Payload()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode %s payload", ch.Kind().Short())
	}
	return cache.Hash(payload), nil
}

// checkBoard logs segments that will render poorly. They are still drawn.
func (r *Runner) checkBoard(logger *log.Logger, b *board.Board) {
	if err := b.Validate(); err != nil {
		logger.Warn("board has invalid segments", "error", err)
	}
	for _, pool := range []board.Pool{board.Grouped, board.Ungrouped} {
		for _, s := range b.Segments(pool) {
			if s.Weight() <= 0 {
				logger.Debug("segment has zero weight", "segment", s.Name, "quantity", s.Quantity)
			}
		}
	}
}

func (r *Runner) renderChartCached(ctx context.Context, ch chart.Chart, payloadHash string, opts Options) (map[string][]byte, bool, error) {
	keyOf := func(format string) string {
		return r.Keyer.ChartKey(payloadHash, opts.ChartKeyOpts(format))
	}

	if !opts.Refresh {
		if artifacts, ok := r.lookupAll(ctx, "chart", opts.Formats, keyOf); ok {
			return artifacts, true, nil
		}
	}

	rendered, err := RenderChart(ch, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		r.store(ctx, "chart", keyOf(format), data)
	}
	return rendered, false, nil
}

// =============================================================================
// Decks
// =============================================================================

// RenderDeck projects s onto the slides named by opts and encodes the deck.
func (r *Runner) RenderDeck(ctx context.Context, s *study.Study, opts Options) (*DeckResult, error) {
	r.applyLogger(&opts)
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil study")
	}
	if err := opts.ValidateForDeck(); err != nil {
		return nil, err
	}

	date := opts.Date
	if date.IsZero() {
		// Only the day is printed.
		y, m, d := time.Now().Date()
		date = time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	}
	p := slides.ProjectionFromStudy(s, date)
	data, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode projection")
	}
	projectionHash := cache.Hash(data)
	names := opts.SlideNames()
	result := &DeckResult{Slides: names}

	hooks := observability.Pipeline()
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	hit, err := r.renderDeckCached(ctx, p, projectionHash, opts, result)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.CacheInfo.RenderHit = hit

	opts.Logger.Info("rendered deck",
		"slides", len(names),
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) renderDeckCached(ctx context.Context, p slides.Projection, projectionHash string, opts Options, result *DeckResult) (bool, error) {
	keyOf := func(format string) string {
		return r.Keyer.DeckKey(projectionHash, opts.DeckKeyOpts(format))
	}

	if !opts.Refresh {
		if artifacts, ok := r.lookupAll(ctx, "deck", opts.Formats, keyOf); ok {
			if err := fillDeck(result, artifacts); err == nil {
				return true, nil
			}
			opts.Logger.Debug("discarding unreadable cached deck")
		}
	}

	pdf, pages, err := RenderDeck(p, opts)
	if err != nil {
		return false, err
	}
	result.PDF, result.Pages = pdf, pages
	if pdf != nil {
		r.store(ctx, "deck", keyOf(FormatPDF), pdf)
	}
	if pages != nil {
		if data, err := json.Marshal(pages); err == nil {
			r.store(ctx, "deck", keyOf(FormatPNG), data)
		}
	}
	return false, nil
}

// fillDeck restores a deck result from cached artifacts. PNG pages are
// cached together as a JSON array.
func fillDeck(result *DeckResult, artifacts map[string][]byte) error {
	result.PDF = artifacts[FormatPDF]
	if data, ok := artifacts[FormatPNG]; ok {
		var pages [][]byte
		if err := json.Unmarshal(data, &pages); err != nil {
			return err
		}
		result.Pages = pages
	}
	return nil
}

// =============================================================================
// Cache Helpers
// =============================================================================

// lookupAll returns every format from cache, or false if any is missing.
func (r *Runner) lookupAll(ctx context.Context, keyType string, formats []string, keyOf func(string) string) (map[string][]byte, bool) {
	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, hit, err := r.Cache.Get(ctx, keyOf(format))
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, keyType)
			return nil, false
		}
		hooks.OnCacheHit(ctx, keyType)
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		r.Logger.Debug("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
