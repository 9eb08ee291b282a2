package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lime/internal/diag"
	"lime/internal/diagfmt"
	"lime/internal/driver"
	"lime/internal/observ"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.lime|directory>",
	Short: "Report diagnostics for a lime source file or directory",
	Long: `Diag parses and resolves a lime source file, or every *.lime file within
a directory, and reports syntax and scope diagnostics`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagCmd.Flags().String("charset", "", "source charset (default utf-8)")
	diagCmd.Flags().Bool("debug", false, "include stack traces in internal failures")
	diagCmd.Flags().Uint("max-errors", 0, "stop parsing a file after this many syntax errors (0 = no limit)")
	diagCmd.Flags().Bool("cache", false, "reuse diagnostics of unchanged files from the disk cache")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	diagCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
}

// runDiagnose analyses the target, prints every file's diagnostics and fails
// when any of them is an error.
func runDiagnose(cmd *cobra.Command, args []string) error {
	target := args[0]

	maxErrors, err := cmd.Flags().GetUint("max-errors")
	if err != nil {
		return fmt.Errorf("failed to get max-errors flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	useTUI, err := wantTUI(uiValue, os.Stdout)
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	cfg, err := loadSettings(cmd, target)
	if err != nil {
		return err
	}
	format, err := diagfmt.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	tracer, cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}
	opts, err := driverOptions(cfg, maxErrors, tracer, timer)
	if err != nil {
		return err
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var results []driver.FileResult
	if st.IsDir() && format != diagfmt.FormatJSON && useTUI {
		files, err := driver.ListFiles(target)
		if err != nil {
			return fmt.Errorf("failed to list files: %w", err)
		}
		results, err = runDiagnoseWithUI(cmd.Context(), "lime diag "+target, files, opts, target)
		if err != nil {
			return fmt.Errorf("diagnostics failed: %w", err)
		}
	} else {
		results, err = driver.New(opts).Diagnose(cmd.Context(), target)
		if err != nil {
			return fmt.Errorf("diagnostics failed: %w", err)
		}
	}

	all := diag.NewBag(0)
	errs, warnings := 0, 0
	for _, r := range results {
		all.Merge(r.Bag)
		for _, d := range r.Bag.Items() {
			switch {
			case d.Severity >= diag.SevError:
				errs++
			case d.Severity == diag.SevWarning:
				warnings++
			}
		}
	}

	if format == diagfmt.FormatJSON {
		pmode, base := pathMode(fullPath)
		if err := diagfmt.JSON(os.Stdout, all, diagfmt.JSONOpts{
			PathMode:     pmode,
			BaseDir:      base,
			IncludeHints: true,
		}); err != nil {
			return err
		}
	} else if all.Len() > 0 {
		if err := printDiagnostics(cfg, all, fullPath); err != nil {
			return err
		}
	}
	if st.IsDir() && format == diagfmt.FormatPretty {
		fmt.Fprintln(cmd.ErrOrStderr(), summaryLine(len(results), errs, warnings))
	}
	if timer != nil {
		printTimings(cmd.ErrOrStderr(), timer)
	}
	if errs > 0 {
		return errHasErrors
	}
	return nil
}
