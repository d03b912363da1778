package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/filmina/pkg/buildinfo"
	"github.com/matzehuels/filmina/pkg/cache"
	"github.com/matzehuels/filmina/pkg/config"
	"github.com/matzehuels/filmina/pkg/errors"
	"github.com/matzehuels/filmina/pkg/pipeline"
	"github.com/matzehuels/filmina/pkg/segrender"
	"github.com/matzehuels/filmina/pkg/study"
	"github.com/matzehuels/filmina/pkg/studystore"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "filmina"

	// dateLayout is the accepted form of --date.
	dateLayout = time.DateOnly
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	configPath string
	backend    string
	storePath  string

	// pick chooses among stored studies when none is named; nil asks on a
	// terminal and falls back to the oldest study otherwise.
	pick func([]*study.Study) (*study.Study, error)
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "filmina composes political intelligence charts and decks",
		Long: `filmina turns political intelligence studies into charts and slide decks.

Studies live in a local store (a JSON file or a SQLite database). Each study
projects into two insertable charts, the microsegmentation board and the
identification profile, and into a 1280×720 slide deck exported as PDF.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/filmina/config.toml)")
	root.PersistentFlags().StringVar(&c.backend, "store", "", "study store backend: file, sqlite")
	root.PersistentFlags().StringVar(&c.storePath, "store-path", "", "study store location")

	// Register all subcommands
	root.AddCommand(c.chartCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.composeCommand())
	root.AddCommand(c.deckCommand())
	root.AddCommand(c.studyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if cfg.Path() != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path())
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Keys are scoped to the
// build version so artifacts drawn by another release are never reused.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(noCache || c.Config.Cache.Disabled)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, buildinfo.Version+":")
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/filmina/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Studies
// =============================================================================

// openStore opens the study store selected by flags, then config.
func (c *CLI) openStore() (studystore.Store, error) {
	backend := studystore.Backend(c.backend)
	if backend == "" {
		backend = c.Config.Store.Backend
	}
	path := c.storePath
	if path == "" {
		path = c.Config.Store.Path
	}
	return studystore.Open(backend, path, studystore.Options{})
}

// resolveStudy loads a study from a file path or a store id. With no
// reference the stored study comes from pickStudy.
func (c *CLI) resolveStudy(ctx context.Context, ref string) (*study.Study, error) {
	if ref != "" && isFile(ref) {
		return study.LoadFile(ref)
	}

	store, err := c.openStore()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if ref != "" {
		return store.Get(ctx, ref)
	}
	list, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, errors.New(errors.ErrCodeStudyNotFound, "the study store is empty; create one with 'filmina study create'")
	}
	return c.pickStudy(list)
}

func (c *CLI) pickStudy(list []*study.Study) (*study.Study, error) {
	switch {
	case c.pick != nil:
		return c.pick(list)
	case len(list) > 1 && interactive():
		return runStudyPicker(list)
	}
	if len(list) > 1 {
		c.Logger.Info("no study given, using the oldest", "title", list[0].Title, "id", list[0].ID)
	}
	return list[0], nil
}

// applyPlace fills blank places of s from the config.
func (c *CLI) applyPlace(s *study.Study) *study.Study {
	s = s.Clone()
	c.Config.ApplyPlace(&s.Municipality, &s.State)
	return s
}

// =============================================================================
// Options Helpers
// =============================================================================

// chartOptions applies config-driven settings to opts.
func (c *CLI) chartOptions(opts *pipeline.Options, boardPath, templatePath string) error {
	opts.Logger = c.Logger
	if p := c.Config.Profiles.Preview; p != segrender.PreviewProfile() {
		opts.PreviewProfile = &p
	}
	if p := c.Config.Profiles.Export; p != segrender.ExportProfile() {
		opts.ExportProfile = &p
	}

	if templatePath == "" {
		templatePath = c.Config.TemplatePath()
	}
	if templatePath != "" {
		t, err := pipeline.LoadTemplateFile(templatePath)
		if err != nil {
			return err
		}
		opts.Template = t
	}
	if boardPath != "" {
		b, err := pipeline.LoadBoardFile(boardPath)
		if err != nil {
			return err
		}
		opts.Board = b
	}
	return nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s, fallback string) []string {
	if s == "" {
		return []string{fallback}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// parseDate parses --date; empty means today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid --date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// basePath derives the output path without extension. An empty output
// uses fallback; a known format extension is stripped.
func basePath(output, fallback string) string {
	if output == "" {
		return fallback
	}
	ext := filepath.Ext(output)
	switch strings.TrimPrefix(ext, ".") {
	case pipeline.FormatPNG, pipeline.FormatSVG, pipeline.FormatJSON, pipeline.FormatPDF:
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// slug turns a study title into an ASCII file name stem.
func slug(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "study"
	}
	return out
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
