package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lime/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [dir]",
	Short: "Remove cached diagnostics",
	Long:  `Clean deletes the on-disk diagnostics cache configured for dir (default: the current directory)`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	cfg, err := loadSettings(cmd, target)
	if err != nil {
		return err
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		return err
	}
	cache, err := driver.OpenDiskCache(dir)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("clean cache: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed cached diagnostics in %s\n", cache.Dir())
	return nil
}
