// Package config loads the tool configuration: paths, output settings and
// named effect presets. Fields not set in the file keep their zero values;
// Resolve fills those in and lets CLI flags take priority.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"filmfx/internal/effect"
)

// Config holds configurable paths, output settings and effect presets.
type Config struct {
	// Paths
	TextureDir string `json:"texture_dir"`
	OutputDir  string `json:"output_dir"`

	// Output settings
	Format  string `json:"format"`
	Quality int    `json:"quality"`
	Workers int    `json:"workers"`

	// Named effects selectable with --preset.
	Presets map[string]effect.Overrides `json:"presets"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	TextureDir string
	OutputDir  string
	Format     string
	Quality    int
	Workers    int
}

// Load reads a JSON config file and returns Config.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in empty fields with defaults. CLI flags take priority when
// non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Quality > 0 {
		c.Quality = flags.Quality
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.TextureDir == "" {
		c.TextureDir = "textures"
	}
	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.Quality <= 0 {
		c.Quality = 100
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Presets == nil {
		c.Presets = map[string]effect.Overrides{}
	}
}

// Preset returns the named effect overrides. An empty name resolves to the
// all-defaults effect.
func (c *Config) Preset(name string) (effect.Overrides, error) {
	if name == "" {
		return effect.Overrides{}, nil
	}
	o, ok := c.Presets[name]
	if !ok {
		return effect.Overrides{}, fmt.Errorf("config: unknown preset %q", name)
	}
	return o, nil
}
