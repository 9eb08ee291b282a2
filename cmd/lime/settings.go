package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lime/internal/config"
	"lime/internal/diagfmt"
	"lime/internal/driver"
	"lime/internal/observ"
	"lime/internal/trace"
)

// loadSettings reads lime.toml for target (explicit --config, or the nearest
// one above target) and lays explicitly set flags over it.
func loadSettings(cmd *cobra.Command, target string) (config.Config, error) {
	root := cmd.Root().PersistentFlags()
	cfgPath, err := root.GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}

	var cfg config.Config
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, err = config.Discover(searchStart(target))
	}
	if err != nil {
		return config.Config{}, err
	}

	if root.Changed("color") {
		if cfg.Output.Color, err = root.GetString("color"); err != nil {
			return config.Config{}, err
		}
	}
	if root.Changed("max-diagnostics") {
		if cfg.Analysis.MaxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
			return config.Config{}, err
		}
	}

	local := cmd.Flags()
	// parse и tokenize используют --format для своего вывода
	formatFlag := "format"
	if local.Lookup("diag-format") != nil {
		formatFlag = "diag-format"
	}
	if f := local.Lookup(formatFlag); f != nil && f.Changed {
		cfg.Output.Format = f.Value.String()
	}
	if f := local.Lookup("jobs"); f != nil && f.Changed {
		if cfg.Analysis.Jobs, err = local.GetInt("jobs"); err != nil {
			return config.Config{}, err
		}
	}
	if f := local.Lookup("charset"); f != nil && f.Changed {
		cfg.Analysis.Charset = f.Value.String()
	}
	if f := local.Lookup("debug"); f != nil && f.Changed {
		if cfg.Analysis.Debug, err = local.GetBool("debug"); err != nil {
			return config.Config{}, err
		}
	}
	if f := local.Lookup("cache"); f != nil && f.Changed {
		if cfg.Cache.Enabled, err = local.GetBool("cache"); err != nil {
			return config.Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("%s: %w", settingsSource(cfg), err)
	}
	return cfg, nil
}

func searchStart(target string) string {
	if target == "" {
		return "."
	}
	if st, err := os.Stat(target); err == nil && st.IsDir() {
		return target
	}
	return filepath.Dir(target)
}

func settingsSource(cfg config.Config) string {
	if cfg.Path == "" {
		return "flags"
	}
	return cfg.Path
}

// useColor resolves auto|on|off against the stream being written.
func useColor(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

func prettyOpts(cfg config.Config, fullPath bool) diagfmt.PrettyOpts {
	mode, base := pathMode(fullPath)
	return diagfmt.PrettyOpts{
		Color:    useColor(cfg.Output.Color, os.Stderr),
		Context:  2,
		PathMode: mode,
		BaseDir:  base,
	}
}

func pathMode(fullPath bool) (diagfmt.PathMode, string) {
	if fullPath {
		return diagfmt.PathModeAbsolute, ""
	}
	wd, err := os.Getwd()
	if err != nil {
		return diagfmt.PathModeAuto, ""
	}
	return diagfmt.PathModeRelative, wd
}

// driverOptions maps the merged settings onto driver options, opening the
// disk cache when it is enabled.
func driverOptions(cfg config.Config, maxErrors uint, tracer trace.Tracer, timer *observ.Timer) (driver.Options, error) {
	opts := driver.Options{
		Charset:        cfg.Analysis.Charset,
		Debug:          cfg.Analysis.Debug,
		MaxErrors:      maxErrors,
		MaxDiagnostics: cfg.Analysis.MaxDiagnostics,
		Jobs:           cfg.Jobs(),
		Timer:          timer,
		Tracer:         tracer,
	}
	if !cfg.Cache.Enabled {
		return opts, nil
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		return opts, fmt.Errorf("cache directory: %w", err)
	}
	cache, err := driver.OpenDiskCache(dir)
	if err != nil {
		return opts, fmt.Errorf("open cache: %w", err)
	}
	opts.Cache = cache
	return opts, nil
}
