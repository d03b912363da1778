// Package config loads the optional filmina configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/filmina/config.toml
// (~/.config/filmina/config.toml when XDG_CONFIG_HOME is unset). Every key
// is optional; missing keys keep the built-in defaults:
//
//	[store]
//	backend = "sqlite"          # file or sqlite
//	path    = "/data/studies.db"
//
//	[cache]
//	dir      = "/tmp/filmina"
//	disabled = false
//
//	[chart]
//	template = "ungrouped.yaml" # Strategy B layout for the board chart
//
//	[deck]
//	slides       = ["archetype", "adjectives", "profiling", "universe"]
//	municipality = "Monterrey"
//	state        = "Nuevo León"
//
//	[profiles.export]
//	corner_radius = 4
//	name_cap      = 20
//
// Profile tables override single fields of the built-in preview and export
// segment profiles.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/filmina/pkg/errors"
	"github.com/matzehuels/filmina/pkg/segrender"
	"github.com/matzehuels/filmina/pkg/slides"
	"github.com/matzehuels/filmina/pkg/studystore"
)

// FileName is the name of the configuration file.
const FileName = "config.toml"

// Config is the decoded configuration.
type Config struct {
	Store    Store    `toml:"store"`
	Cache    Cache    `toml:"cache"`
	Chart    Chart    `toml:"chart"`
	Deck     Deck     `toml:"deck"`
	Profiles Profiles `toml:"profiles"`

	// path is where the config was read from; empty for defaults.
	path string
}

// Store selects the study store.
type Store struct {
	Backend studystore.Backend `toml:"backend"`
	Path    string             `toml:"path"`
}

// Cache configures the artifact cache.
type Cache struct {
	Dir      string `toml:"dir"`
	Disabled bool   `toml:"disabled"`
}

// Chart configures chart rendering.
type Chart struct {
	// Template is a YAML template file for the ungrouped pool. Relative
	// paths resolve against the config file's directory.
	Template string `toml:"template"`
}

// Deck configures deck rendering.
type Deck struct {
	Slides []string `toml:"slides"`

	// Municipality and State fill studies that leave them blank.
	Municipality string `toml:"municipality"`
	State        string `toml:"state"`
}

// Profiles holds the segment renderer parameter sets.
type Profiles struct {
	Preview segrender.Profile `toml:"preview"`
	Export  segrender.Profile `toml:"export"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Store: Store{Backend: studystore.BackendFile},
		Profiles: Profiles{
			Preview: segrender.PreviewProfile(),
			Export:  segrender.ExportProfile(),
		},
	}
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "filmina"), nil
	}
	return studystore.DefaultDir()
}

// DefaultPath returns the location of the configuration file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the configuration at path. An empty path reads DefaultPath
// and treats a missing file as the defaults; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	switch {
	case os.IsNotExist(err) && !explicit:
		return Default(), nil
	case os.IsNotExist(err):
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	case err != nil:
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	cfg.path = path
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	return cfg, nil
}

// Path returns the file the configuration was read from, or "" for the
// defaults.
func (c *Config) Path() string { return c.path }

// Validate checks backend names, slide names and profile sizes.
func (c *Config) Validate() error {
	switch studystore.Backend(strings.ToLower(string(c.Store.Backend))) {
	case "", studystore.BackendFile, studystore.BackendSQLite:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q (want file or sqlite)", c.Store.Backend)
	}
	names := slides.Names()
	for _, s := range c.Deck.Slides {
		if !slices.Contains(names, s) {
			return errors.New(errors.ErrCodeInvalidInput, "unknown slide %q (available: %v)", s, names)
		}
	}
	for _, p := range []segrender.Profile{c.Profiles.Preview, c.Profiles.Export} {
		if err := validateProfile(p); err != nil {
			return err
		}
	}
	return nil
}

func validateProfile(p segrender.Profile) error {
	divisors := map[string]float64{
		"name_div_w": p.NameDivW, "name_div_h": p.NameDivH,
		"qty_div_w": p.QtyDivW, "qty_div_h": p.QtyDivH,
		"line_spacing": p.LineSpacing,
	}
	for key, v := range divisors {
		if v <= 0 {
			return errors.New(errors.ErrCodeInvalidInput, "profile %s: %s must be positive", p.Name, key)
		}
	}
	if p.CornerRadius < 0 || p.StrokeWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "profile %s: negative corner_radius or stroke_width", p.Name)
	}
	return nil
}

// TemplatePath resolves Chart.Template against the config directory.
func (c *Config) TemplatePath() string {
	t := c.Chart.Template
	if t == "" || filepath.IsAbs(t) || c.path == "" {
		return t
	}
	return filepath.Join(filepath.Dir(c.path), t)
}

// ApplyPlace fills a blank municipality or state with the configured ones.
func (c *Config) ApplyPlace(municipality, state *string) {
	if strings.TrimSpace(*municipality) == "" {
		*municipality = c.Deck.Municipality
	}
	if strings.TrimSpace(*state) == "" {
		*state = c.Deck.State
	}
}
