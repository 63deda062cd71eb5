package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"talfront/internal/driver"
	"talfront/internal/pipeline"
	"talfront/internal/ui"
)

type batchOutcome struct {
	results []*driver.FileResult
	err     error
}

// runBatchWithUI parses files while a Bubble Tea view follows the events.
func runBatchWithUI(ctx context.Context, title string, files []string, opts driver.Options) ([]*driver.FileResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = pipeline.ChannelSink{Ch: events}
		res, err := driver.ParseFiles(ctx, files, optsCopy)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// окно могли закрыть раньше: дочитываем события, чтобы воркеры не встали
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
