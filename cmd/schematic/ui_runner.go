package main

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"schematic/internal/driver"
	"schematic/internal/source"
	"schematic/internal/ui"
)

type scanOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

var errAborted = errors.New("scan aborted")

func runScanDirWithUI(ctx context.Context, title string, files []string, dir string, cfg driver.Config, jobs int) (*source.FileSet, []driver.FileResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan scanOutcome, 1)

	go func() {
		fs, results, err := driver.ScanDir(ctx, dir, cfg, jobs, driver.ChannelSink{Ch: events})
		outcomeCh <- scanOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	final, uiErr := program.Run()
	if uiErr != nil || ui.Aborted(final) {
		cancel()
		// сливаем оставшиеся события, чтобы ScanDir не застрял на канале
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	if ui.Aborted(final) {
		return outcome.fileSet, outcome.results, errAborted
	}
	return outcome.fileSet, outcome.results, outcome.err
}
