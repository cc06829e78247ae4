// Package config loads ratingfit settings from TOML, YAML or JSON files.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hoopsim/ratingfit/core/matrix"
	"github.com/hoopsim/ratingfit/pkg/errors"
	"github.com/hoopsim/ratingfit/pkg/log"
	"github.com/hoopsim/ratingfit/pkg/report"
	"github.com/hoopsim/ratingfit/ratings"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for ratingfit.
type Config struct {
	// Sample selection and regression settings
	Fit FitConfig `koanf:"fit"`

	// Report settings
	Output OutputConfig `koanf:"output"`

	// Logger settings
	Log LogConfig `koanf:"log"`
}

// FitConfig mirrors ratings.Options.
type FitConfig struct {
	Ratings         []string `koanf:"ratings"`
	Response        string   `koanf:"response"`
	MinMinutes      float64  `koanf:"min_minutes"`
	IncludePlayoffs bool     `koanf:"include_playoffs"`
	Intercept       bool     `koanf:"intercept"`
	Standardize     bool     `koanf:"standardize"`
	Tolerance       float64  `koanf:"tolerance"`
	Scale           float64  `koanf:"scale"`
}

// OutputConfig controls where and how results are written.
type OutputConfig struct {
	Format  string `koanf:"format"`  // text, markdown, json, yaml
	Color   bool   `koanf:"color"`
	File    string `koanf:"file"`    // empty means stdout
	Plot    string `koanf:"plot"`    // observed-vs-fitted image, empty to skip
	Weights string `koanf:"weights"` // exported model weights, empty to skip
}

// LogConfig configures the global logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json or console
}

// DefaultConfig returns the settings of the classic PER regression.
func DefaultConfig() *Config {
	return &Config{
		Fit: FitConfig{
			Ratings:    append([]string(nil), ratings.DefaultRatingKeys...),
			Response:   ratings.DefaultResponse,
			MinMinutes: ratings.DefaultMinMinutes,
			Tolerance:  matrix.DefaultTolerance,
			Scale:      ratings.DefaultScale,
		},
		Output: OutputConfig{
			Format: string(report.FormatText),
			Color:  true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a file over the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, errors.NewValidationError("config", "unsupported config extension "+ext, path)
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrapf(err, "decode config %s", path)
	}
	// decoding merges into the default slice element by element
	if k.Exists("fit.ratings") {
		cfg.Fit.Ratings = k.Strings("fit.ratings")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// configNames are searched in order by Find.
var configNames = []string{
	"ratingfit.toml",
	"ratingfit.yaml",
	"ratingfit.yml",
	"ratingfit.json",
	".ratingfit.toml",
	".ratingfit.yaml",
	".ratingfit.yml",
	".ratingfit.json",
}

// Find returns the first standard config file in dir, or "" if there is none.
func Find(dir string) string {
	for _, name := range configNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadOrDefault loads the standard config file in the current directory, or
// returns the defaults when there is none. A config file that exists but does
// not load is an error.
func LoadOrDefault() (*Config, error) {
	path := Find(".")
	if path == "" {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.RatingsOptions(nil).Validate(); err != nil {
		return errors.Wrap(err, "fit")
	}
	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		return errors.Wrap(err, "output")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return errors.NewValidationError("log.format", "must be json or console", c.Log.Format)
	}
	return nil
}

// RatingsOptions converts the fit section.
func (c *Config) RatingsOptions(logger log.Logger) ratings.Options {
	return ratings.Options{
		Keys:            append([]string(nil), c.Fit.Ratings...),
		Response:        c.Fit.Response,
		MinMinutes:      c.Fit.MinMinutes,
		IncludePlayoffs: c.Fit.IncludePlayoffs,
		Intercept:       c.Fit.Intercept,
		Standardize:     c.Fit.Standardize,
		Tolerance:       c.Fit.Tolerance,
		Scale:           c.Fit.Scale,
		Logger:          logger,
	}
}
