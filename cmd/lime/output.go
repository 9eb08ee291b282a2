package main

import (
	"fmt"
	"os"

	"lime/internal/config"
	"lime/internal/diag"
	"lime/internal/diagfmt"
)

// printDiagnostics writes bag to stderr in the configured format.
func printDiagnostics(cfg config.Config, bag *diag.Bag, fullPath bool) error {
	format, err := diagfmt.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	switch format {
	case diagfmt.FormatShort:
		mode, base := pathMode(fullPath)
		return diagfmt.Short(os.Stderr, bag, mode, base)
	case diagfmt.FormatJSON:
		mode, base := pathMode(fullPath)
		return diagfmt.JSON(os.Stderr, bag, diagfmt.JSONOpts{
			PathMode:     mode,
			BaseDir:      base,
			IncludeHints: true,
		})
	default:
		return diagfmt.Pretty(os.Stderr, bag, prettyOpts(cfg, fullPath))
	}
}

func summaryLine(files, errs, warnings int) string {
	noun := "files"
	if files == 1 {
		noun = "file"
	}
	return fmt.Sprintf("%d %s checked: %d errors, %d warnings", files, noun, errs, warnings)
}
