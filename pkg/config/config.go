// Package config loads glasspiral configuration from a TOML file.
//
// Configuration is entirely optional: every field has a working default,
// and a missing config file is not an error. Precedence is
// flags > config file > defaults, with the flag layer applied by the CLI.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/glasspiral/glasspiral/pkg/scene"
	"github.com/glasspiral/glasspiral/pkg/spiral"
	"github.com/glasspiral/glasspiral/pkg/trace"
)

// appName is the directory name under the XDG config root.
const appName = "glasspiral"

// Config is the on-disk configuration shape.
type Config struct {
	Spiral  SpiralConfig  `toml:"spiral"`
	Render  RenderConfig  `toml:"render"`
	Serve   ServeConfig   `toml:"serve"`
	Cache   CacheConfig   `toml:"cache"`
	Gallery GalleryConfig `toml:"gallery"`
}

// SpiralConfig overrides the placement parameters and sampling seed.
type SpiralConfig struct {
	TurnRate      float64 `toml:"turn_rate"`
	BaseRadius    float64 `toml:"base_radius"`
	RadiusGrowth  float64 `toml:"radius_growth"`
	HeightPerStep float64 `toml:"height_per_step"`
	Seed          uint64  `toml:"seed"`
}

// RenderConfig sets artifact defaults.
type RenderConfig struct {
	Formats []string          `toml:"formats"`
	Title   string            `toml:"title"`
	Colors  map[string]string `toml:"colors"` // step type -> hex color override
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// GalleryConfig configures the scene gallery store.
type GalleryConfig struct {
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Default returns the built-in configuration.
func Default() Config {
	p := spiral.DefaultParams
	return Config{
		Spiral: SpiralConfig{
			TurnRate:      p.TurnRate,
			BaseRadius:    p.BaseRadius,
			RadiusGrowth:  p.RadiusGrowth,
			HeightPerStep: p.HeightPerStep,
			Seed:          42,
		},
		Render: RenderConfig{
			Formats: []string{"html"},
		},
		Serve: ServeConfig{
			Addr: ":8080",
		},
		Gallery: GalleryConfig{
			MongoDatabase: appName,
		},
	}
}

// Path returns the config file location using the XDG standard
// (~/.config/glasspiral/config.toml).
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at the default location. A missing file
// yields the defaults without error.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a specific config file, layering it over the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// SpiralParams converts the spiral section into placement parameters.
func (c Config) SpiralParams() spiral.Params {
	return spiral.Params{
		TurnRate:      c.Spiral.TurnRate,
		BaseRadius:    c.Spiral.BaseRadius,
		RadiusGrowth:  c.Spiral.RadiusGrowth,
		HeightPerStep: c.Spiral.HeightPerStep,
	}
}

// ProfileTable layers the configured color overrides onto the default
// profile table. Keys are step types ("CALL", "LOOP", ...); the key
// "default" recolors the fallback profile for unknown types.
func (c Config) ProfileTable() scene.ProfileTable {
	table := scene.DefaultProfiles()
	for key, color := range c.Render.Colors {
		if key == "default" {
			table.Default.Color = color
			continue
		}
		p := table.Lookup(trace.Type(key))
		p.Color = color
		table.Profiles[trace.Type(key)] = p
	}
	return table
}
