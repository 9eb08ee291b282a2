// Package config loads lime.toml, the per-project settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the settings file looked up from the analysed path upwards.
const FileName = "lime.toml"

// ErrNotFound is returned by Find when no lime.toml exists above the start.
var ErrNotFound = errors.New("no " + FileName + " found")

type Config struct {
	Analysis Analysis `toml:"analysis"`
	Output   Output   `toml:"output"`
	Cache    Cache    `toml:"cache"`

	// Path of the file the values came from; empty for defaults.
	Path string `toml:"-"`
}

type Analysis struct {
	Charset        string `toml:"charset"`
	Debug          bool   `toml:"debug"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Jobs           int    `toml:"jobs"`
}

type Output struct {
	Format string `toml:"format"` // pretty|short|json
	Color  string `toml:"color"`  // auto|on|off
}

type Cache struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Default returns the settings used when no lime.toml is found.
func Default() Config {
	return Config{
		Analysis: Analysis{
			Charset:        "utf-8",
			MaxDiagnostics: 100,
		},
		Output: Output{
			Format: "pretty",
			Color:  "auto",
		},
	}
}

// Find walks from start (a file or directory) up to the filesystem root and
// returns the first lime.toml.
func Find(start string) (string, error) {
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Discover finds and loads the lime.toml governing start. A missing file
// yields Default with no error.
func Discover(start string) (Config, error) {
	path, err := Find(start)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return Load(path)
}

// Load decodes path over the defaults. Unknown keys and invalid values are
// errors.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Output.Format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("[output].format must be pretty, short or json, got %q", c.Output.Format)
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color must be auto, on or off, got %q", c.Output.Color)
	}
	if c.Analysis.MaxDiagnostics < 0 {
		return fmt.Errorf("[analysis].max_diagnostics must not be negative")
	}
	if c.Analysis.Jobs < 0 {
		return fmt.Errorf("[analysis].jobs must not be negative")
	}
	return nil
}

// Jobs returns the worker count, GOMAXPROCS when unset.
func (c Config) Jobs() int {
	if c.Analysis.Jobs > 0 {
		return c.Analysis.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// CacheDir returns the diagnostics cache directory: [cache].dir when set,
// otherwise lime under the user cache directory.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		if !filepath.IsAbs(c.Cache.Dir) && c.Path != "" {
			return filepath.Join(filepath.Dir(c.Path), c.Cache.Dir), nil
		}
		return c.Cache.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("no cache directory: %w", err)
	}
	return filepath.Join(base, "lime"), nil
}
