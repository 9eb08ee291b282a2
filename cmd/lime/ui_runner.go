package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"lime/internal/driver"
	"lime/internal/ui"
)

// wantTUI decodes --ui: "on" and "off" force the progress view, "auto" (or
// empty) enables it only when stdout is a terminal.
func wantTUI(value string, stdout *os.File) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return isTerminal(stdout), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

type diagnoseOutcome struct {
	results []driver.FileResult
	err     error
}

// runDiagnoseWithUI analyses dir while a progress view consumes the driver
// events. The view exits when the event channel is closed.
func runDiagnoseWithUI(ctx context.Context, title string, files []string, opts driver.Options, dir string) ([]driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan diagnoseOutcome, 1)

	opts.Events = events
	d := driver.New(opts)
	go func() {
		results, err := d.DiagnoseDir(ctx, dir)
		outcomeCh <- diagnoseOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// вид мог выйти раньше времени, драйвер не должен блокироваться
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
