package modpack

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modsync/internal/core/ports"
)

const NodeID graft.ID = "adapter.modpack_opener"

func init() {
	graft.Register(graft.Node[ports.PackOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PackOpener, error) {
			return NewOpener(), nil
		},
	})
}
