package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestBannerPlain(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	origVersion := Version
	defer func() { Version = origVersion }()

	cases := map[string]string{
		"0.1.0-dev":  "lime 0.1.0-dev",
		"1.2.3":      "lime 1.2.3",
		"1.0.0-rc.1": "lime 1.0.0-rc.1",
		"nightly":    "lime nightly",
		"   ":        "lime dev",
	}
	for in, want := range cases {
		Version = in
		if got := Banner(); got != want {
			t.Errorf("Banner() with %q = %q, want %q", in, got, want)
		}
	}
}

func TestDetailsUnknown(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit, BuildDate = "", ""
	if got := Details(); got != "commit: unknown\nbuilt:  unknown" {
		t.Errorf("Details() = %q", got)
	}
	GitCommit = "abc123"
	if got := Details(); got != "commit: abc123\nbuilt:  unknown" {
		t.Errorf("Details() = %q", got)
	}
}
