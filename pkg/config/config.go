// Package config loads the optional TOML file that tunes rendering:
// layout spacing, node geometry, axis placement, palette overrides and
// label dictionary extensions.
package config

import (
	"context"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lbrandt/suitree/pkg/edgegraph"
	"github.com/lbrandt/suitree/pkg/errors"
	"github.com/lbrandt/suitree/pkg/layout"
	"github.com/lbrandt/suitree/pkg/observability"
	"github.com/lbrandt/suitree/pkg/semantics"
)

// DefaultPath is the file probed in the working directory when no explicit
// config path is given.
const DefaultPath = "suitree.toml"

// Config mirrors the TOML file. Every section is optional; zero values
// keep the built-in behavior.
type Config struct {
	Layout   layout.Params      `toml:"layout"`
	Geometry edgegraph.Params   `toml:"geometry"`
	Palettes map[string]Palette `toml:"palette"`
	Labels   Labels             `toml:"labels"`
}

// Palette restyles one stat or band token.
type Palette struct {
	Stops []string `toml:"stops"`
	Min   float64  `toml:"min"`
	Max   float64  `toml:"max"`
}

// Labels extends the display dictionaries.
type Labels struct {
	Stats map[string]string `toml:"stats"`
	Bands map[string]string `toml:"bands"`
}

// Load reads and validates a TOML config file. Keys the build does not
// understand are reported through the diagnostics hooks, not treated as
// errors, so configs stay forward compatible.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeIO, err, "failed to read config: %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to parse config: %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		diag("UNDECODED_KEYS", "config has keys this build does not understand",
			"path", path, "keys", strings.Join(keys, ", "))
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDefault loads DefaultPath when it exists. A missing file is not an
// error and yields the zero config.
func LoadDefault() (Config, error) {
	cfg, err := Load(DefaultPath)
	if err != nil && errors.Is(err, errors.ErrCodeFileNotFound) {
		return Config{}, nil
	}
	return cfg, err
}

func (c Config) validate() error {
	for token, p := range c.Palettes {
		if len(p.Stops) < 2 {
			return errors.New(errors.ErrCodeInvalidConfig, "palette %q needs at least two stops", token)
		}
		if p.Min >= p.Max {
			return errors.New(errors.ErrCodeInvalidConfig, "palette %q has an empty value range", token)
		}
	}
	return nil
}

// Apply installs the label and palette registrations and returns the layout
// and geometry parameters. Call it once during startup, before rendering.
func (c Config) Apply() (layout.Params, edgegraph.Params) {
	for code, label := range c.Labels.Stats {
		semantics.RegisterStatLabel(code, label)
	}
	for code, label := range c.Labels.Bands {
		semantics.RegisterBandLabel(code, label)
	}
	for token, p := range c.Palettes {
		semantics.RegisterMeta(token, semantics.Meta{Palette: p.Stops, Min: p.Min, Max: p.Max})
	}
	return c.Layout, c.Geometry
}

func diag(code, msg string, kv ...any) {
	observability.Diagnostics().OnDiagnostic(context.Background(), "config", code, msg, kv...)
}
