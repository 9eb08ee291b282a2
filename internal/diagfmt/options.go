package diagfmt

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PathMode specifies how buffer ids that are file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto prints the id as stored.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	// PathModeRelative is relative to the BaseDir of the options.
	PathModeRelative
	PathModeBasename
)

// Format selects the diagnostics renderer.
type Format uint8

const (
	FormatPretty Format = iota
	FormatShort
	FormatJSON
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pretty":
		return FormatPretty, nil
	case "short":
		return FormatShort, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatPretty, fmt.Errorf("unknown diagnostics format %q (pretty|short|json)", s)
}

func (f Format) String() string {
	switch f {
	case FormatShort:
		return "short"
	case FormatJSON:
		return "json"
	}
	return "pretty"
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	// Context is the number of source lines shown around the primary range.
	Context  int
	PathMode PathMode
	BaseDir  string
	// HideHints drops the "Previously declared here" style secondary notes.
	HideHints bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode     PathMode
	BaseDir      string
	Max          int // обрезка вывода, не Bag
	IncludeHints bool
}

func displayPath(id string, mode PathMode, base string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(id); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if base != "" {
			if rel, err := filepath.Rel(base, id); err == nil && !strings.HasPrefix(rel, "..") {
				return filepath.ToSlash(rel)
			}
		}
	case PathModeBasename:
		if !strings.HasPrefix(id, "<") {
			return filepath.Base(id)
		}
	}
	return id
}
