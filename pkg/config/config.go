// Package config loads exprflow settings from TOML.
//
// A config file overrides any subset of the built-in defaults:
//
//	[layout]
//	row_height = 60
//	curvature = 8
//
//	[style]
//	final_fill = "#ffd700"
//
//	[render]
//	formats = ["svg", "json"]
//	detailed = true
//
// Keys that are not set keep their defaults. Unknown keys are an error so
// typos do not go unnoticed. Command-line flags take precedence over the
// file; see [Config.Apply].
package config

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	apperrors "github.com/matzehuels/exprflow/pkg/errors"
	"github.com/matzehuels/exprflow/pkg/layout"
	"github.com/matzehuels/exprflow/pkg/pipeline"
	"github.com/matzehuels/exprflow/pkg/render/diagram"
)

// DefaultFilename is the config file picked up from the working directory
// when no path is given.
const DefaultFilename = "exprflow.toml"

// Config holds every configurable setting.
type Config struct {
	Layout layout.Options `toml:"layout"`
	Style  diagram.Style  `toml:"style"`
	Render Render         `toml:"render"`
}

// Render holds pipeline defaults.
type Render struct {
	Language string   `toml:"language"`
	Formats  []string `toml:"formats"`
	Detailed bool     `toml:"detailed"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: layout.DefaultOptions(),
		Style:  diagram.DefaultStyle(),
	}
}

// Decode reads a TOML config on top of [Default] and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the config file at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "open config %s", path)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, apperrors.Wrap(apperrors.GetCode(err), err, "%s", path)
	}
	return cfg, nil
}

// LoadOrDefault loads path when it is set. Otherwise it loads
// [DefaultFilename] from the working directory if present, and falls back
// to [Default].
func LoadOrDefault(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFilename); err == nil {
		return Load(DefaultFilename)
	}
	return Default(), nil
}

// Validate checks geometry, colors, formats and language.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if err := c.Style.Validate(); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return err
	}
	if c.Render.Language != "" {
		return pipeline.ValidateLanguage(c.Render.Language)
	}
	return nil
}

// Apply fills the settings opts leaves unset. Language and Formats are only
// taken from the config when empty; Detailed is switched on when either
// side enables it.
func (c Config) Apply(opts *pipeline.Options) {
	if opts.Layout == (layout.Options{}) {
		opts.Layout = c.Layout
	}
	if opts.Style == (diagram.Style{}) {
		opts.Style = c.Style
	}
	if opts.Language == "" {
		opts.Language = c.Render.Language
	}
	if len(opts.Formats) == 0 && len(c.Render.Formats) > 0 {
		opts.Formats = append([]string(nil), c.Render.Formats...)
	}
	opts.Detailed = opts.Detailed || c.Render.Detailed
}
