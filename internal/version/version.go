package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Version information for the lime CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI, without colour.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Banner is the coloured "lime X.Y.Z" line printed by `lime version`.
// Colours follow color.NoColor, so it is plain text off a terminal.
func Banner() string {
	v := strings.TrimSpace(Version)
	if v == "" {
		v = "dev"
	}
	core, suffix, _ := strings.Cut(v, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return "lime " + v
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return "lime " + out
}

// Details lists the optional build metadata, "unknown" for unset fields.
func Details() string {
	return fmt.Sprintf("commit: %s\nbuilt:  %s", orUnknown(GitCommit), orUnknown(BuildDate))
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
