package progrock

import (
	"context"
	"errors"

	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports"
	"go.trai.ch/modsync/internal/tui"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer feeds the event stream through a Tape into the terminal UI.
type Renderer struct {
	ui func(ctx context.Context, tape tui.TapeSource) error
}

// NewRenderer creates a Renderer drawing with the interactive terminal UI.
func NewRenderer() *Renderer {
	return &Renderer{ui: tui.Run}
}

// Render consumes events until the channel is closed.
func (r *Renderer) Render(ctx context.Context, events <-chan domain.Event) error {
	tape := NewTape()
	rec := NewRecorder(tape)

	uiErr := make(chan error, 1)
	go func() {
		uiErr <- r.ui(ctx, tape)
		// The UI may stop early; keep the tape moving so the recorder never blocks.
		for {
			if _, err := tape.Read(); err != nil {
				return
			}
		}
	}()

	for e := range events {
		rec.Record(e)
	}
	closeErr := rec.Close()
	return errors.Join(closeErr, <-uiErr)
}
