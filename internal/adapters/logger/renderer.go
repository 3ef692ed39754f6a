package logger

import (
	"context"
	"fmt"

	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer writes the event stream as log lines, for non-interactive output.
type Renderer struct {
	log ports.Logger
}

// NewRenderer creates a Renderer logging through log.
func NewRenderer(log ports.Logger) *Renderer {
	return &Renderer{log: log}
}

// Render consumes events until the channel is closed. Byte progress is not logged.
func (r *Renderer) Render(_ context.Context, events <-chan domain.Event) error {
	for event := range events {
		switch e := event.(type) {
		case domain.StatusEvent:
			r.log.Info(e.Message)
		case domain.DownloadStartEvent:
			r.log.Info("downloading " + e.Title)
		case domain.DownloadFailEvent:
			r.log.Error(zerr.With(zerr.Wrap(e.Err, "download failed"), "file", e.ID))
		case domain.InstalledEvent:
			if e.IsNew {
				r.log.Info(fmt.Sprintf("installed %s %s", e.Kind, e.File))
			}
		case domain.DeletedEvent:
			r.log.Info("deleted " + e.File.String())
		case domain.ErrorEvent:
			r.log.Error(e.Err)
		}
	}
	return nil
}
