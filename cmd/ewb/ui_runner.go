package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"ewb/internal/driver"
	"ewb/internal/source"
	"ewb/internal/ui"
)

type parseDirOutcome struct {
	fileSet *source.FileSet
	results []driver.ParseDirResult
	err     error
}

func runParseDirWithUI(ctx context.Context, title, dir string, opts driver.ParseDirOptions) parseDirOutcome {
	events := make(chan driver.DocEvent, 256)
	outcomeCh := make(chan parseDirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Observer = func(ev driver.DocEvent) { events <- ev }
		fs, results, err := driver.ParseDir(ctx, dir, optsCopy)
		outcomeCh <- parseDirOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		// модель больше не читает канал
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		outcome.err = uiErr
	}
	return outcome
}
