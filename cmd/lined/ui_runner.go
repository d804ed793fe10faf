package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"lined/internal/batch"
	"lined/internal/ui"
)

type batchOutcome struct {
	results []batch.Result
	err     error
}

// runBatchWithUI runs req while a Bubble Tea program renders its progress.
func runBatchWithUI(ctx context.Context, title string, out io.Writer, req batch.Request) ([]batch.Result, error) {
	events := make(chan batch.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		reqCopy := req
		reqCopy.Progress = batch.ChannelSink{Ch: events}
		res, err := batch.Run(ctx, reqCopy)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, req.Files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep draining so the batch never blocks on a full channel
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
