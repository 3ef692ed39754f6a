package ports

import (
	"context"

	"go.trai.ch/modsync/internal/core/domain"
)

// EventSink receives engine events. Emit must never block the producer.
//
//go:generate go run go.uber.org/mock/mockgen -source=events.go -destination=mocks/mock_events.go -package=mocks
type EventSink interface {
	Emit(event domain.Event)
}

// Renderer presents an event stream to the user until the stream is closed.
type Renderer interface {
	Render(ctx context.Context, events <-chan domain.Event) error
}
