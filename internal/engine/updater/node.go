package updater

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modsync/internal/adapters/provider" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/modsync/internal/core/ports"
)

// NodeID is the unique identifier for the updater Graft node.
const NodeID graft.ID = "engine.updater"

func init() {
	graft.Register(graft.Node[*Updater]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{provider.NodeID},
		Run: func(ctx context.Context) (*Updater, error) {
			client, err := graft.Dep[ports.ProviderClient](ctx)
			if err != nil {
				return nil, err
			}
			return New(client), nil
		},
	})
}
