package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lime/internal/analysis"
	"lime/internal/diag"
	"lime/internal/diagfmt"
	"lime/internal/driver"
	"lime/internal/observ"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.lime",
	Short: "Parse a lime source file and print its syntax tree",
	Long: `Parse analyses a lime source file, prints its diagnostics to stderr and
the syntax tree to stdout`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "tree output format (tree|json|yaml)")
	parseCmd.Flags().String("diag-format", "pretty", "diagnostics format (pretty|short|json)")
	parseCmd.Flags().String("charset", "", "source charset (default utf-8)")
	parseCmd.Flags().Bool("debug", false, "include stack traces in internal failures")
	parseCmd.Flags().Uint("max-errors", 0, "stop parsing after this many syntax errors (0 = no limit)")
	parseCmd.Flags().Bool("fullpath", false, "emit absolute file paths in diagnostics")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := diagfmt.ParseASTFormat(formatStr)
	if err != nil {
		return err
	}
	maxErrors, err := cmd.Flags().GetUint("max-errors")
	if err != nil {
		return fmt.Errorf("failed to get max-errors flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	cfg, err := loadSettings(cmd, filePath)
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
	// дерево нужно всегда, кэш диагностик здесь бесполезен
	opts.Cache = nil

	d := driver.New(opts)
	var u *analysis.Unit
	timer.Track("analyse", func() {
		u, err = d.AnalyseFile(filePath)
	})
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	bag := diag.NewBag(0)
	for _, item := range u.Diagnostics() {
		bag.Add(item)
	}
	if bag.Len() > 0 {
		if err := printDiagnostics(cfg, bag, fullPath); err != nil {
			return err
		}
	}

	if u.Root() != nil {
		if err := diagfmt.FormatAST(os.Stdout, u.Root(), format); err != nil {
			return err
		}
	}
	if timer != nil {
		printTimings(cmd.ErrOrStderr(), timer)
	}
	if u.HasErrors() {
		return errHasErrors
	}
	return nil
}
