package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lime/internal/diagfmt"
	"lime/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.lime",
	Short: "Tokenize a lime source file",
	Long:  `Tokenize breaks a lime source file into tokens and prints them`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "token output format (pretty|json)")
	tokenizeCmd.Flags().String("diag-format", "pretty", "diagnostics format (pretty|short|json)")
	tokenizeCmd.Flags().String("charset", "", "source charset (default utf-8)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	cfg, err := loadSettings(cmd, filePath)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(filePath, cfg.Analysis.Charset, cfg.Analysis.MaxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.Len() > 0 {
		if err := printDiagnostics(cfg, result.Bag, false); err != nil {
			return err
		}
	}

	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.Buffer)
	case "json":
		err = diagfmt.FormatTokensJSON(os.Stdout, result.Tokens, result.Buffer)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errHasErrors
	}
	return nil
}
