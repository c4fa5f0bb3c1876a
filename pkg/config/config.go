// Package config loads wikigraph settings from a TOML file.
//
// Every field has a default, so a missing file or an empty file yields a
// usable [Config]. Command-line flags are applied on top by the CLI.
//
//	[chart]
//	font_family = "Droid Sans"
//	font_size = 14
//	bins = 100
//
//	[path]
//	default_from = "Python"
//	default_to = "Боль"
//
//	[cache]
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// appName names the configuration and cache directories.
const appName = "wikigraph"

// Config is the full configuration.
type Config struct {
	Chart  Chart  `toml:"chart"`
	Path   Path   `toml:"path"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Chart holds presentation settings for histogram rendering. Nothing
// outside the chart sink reads them.
type Chart struct {
	FontFamily  string  `toml:"font_family"`
	FontSize    float64 `toml:"font_size"`
	FontWeight  string  `toml:"font_weight"`
	Bins        int     `toml:"bins"`
	FaceColor   string  `toml:"face_color"`
	Alpha       float64 `toml:"alpha"`
	Transparent bool    `toml:"transparent"`
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
}

// Path holds default endpoints for path searches.
type Path struct {
	DefaultFrom string `toml:"default_from"`
	DefaultTo   string `toml:"default_to"`

	// SmallGraphTo replaces DefaultTo for graph files named SmallGraphFile.
	SmallGraphFile string `toml:"small_graph_file"`
	SmallGraphTo   string `toml:"small_graph_to"`
}

// Cache selects where statistics reports are cached.
type Cache struct {
	Dir       string   `toml:"dir"`        // file cache directory; empty means XDG default
	RedisAddr string   `toml:"redis_addr"` // when set, Redis is used instead of files
	RedisDB   int      `toml:"redis_db"`
	TTL       Duration `toml:"ttl"`
}

// Server configures the HTTP service.
type Server struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration that decodes from strings like "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Chart: Chart{
			FontFamily:  "Droid Sans",
			FontSize:    14,
			FontWeight:  "normal",
			Bins:        100,
			FaceColor:   "green",
			Alpha:       0.5,
			Transparent: true,
			Width:       800,
			Height:      600,
		},
		Path: Path{
			DefaultFrom:    "Python",
			DefaultTo:      "Боль",
			SmallGraphFile: "wiki_small.txt",
			SmallGraphTo:   "Список_файловых_систем",
		},
		Cache: Cache{
			TTL: Duration{24 * time.Hour},
		},
		Server: Server{
			Addr: ":8080",
		},
	}
}

// Load reads the TOML file at path over the defaults. A missing file is
// not an error. Unknown keys are rejected so typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("decode %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Chart.Bins < 1 {
		return fmt.Errorf("chart.bins must be positive, got %d", c.Chart.Bins)
	}
	if c.Chart.Alpha < 0 || c.Chart.Alpha > 1 {
		return fmt.Errorf("chart.alpha must be within [0,1], got %v", c.Chart.Alpha)
	}
	if c.Chart.FontSize <= 0 {
		return fmt.Errorf("chart.font_size must be positive, got %v", c.Chart.FontSize)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %vx%v", c.Chart.Width, c.Chart.Height)
	}
	if c.Cache.TTL.Duration < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL)
	}
	return nil
}

// Target returns the default search target for the given graph file.
func (p Path) Target(graphFile string) string {
	if p.SmallGraphFile != "" && filepath.Base(graphFile) == p.SmallGraphFile {
		return p.SmallGraphTo
	}
	return p.DefaultTo
}

// DefaultPath returns the configuration file location using the XDG
// standard (~/.config/wikigraph/config.toml).
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the cache directory: c.Dir when set, otherwise the XDG
// cache location (~/.cache/wikigraph/).
func (c Cache) CacheDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
