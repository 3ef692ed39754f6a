package installer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modsync/internal/adapters/fetch"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/modsync/internal/adapters/fs"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/modsync/internal/adapters/modpack"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/modsync/internal/adapters/provider" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/modsync/internal/adapters/store"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/modsync/internal/core/ports"
	"go.trai.ch/modsync/internal/engine/resolver"
)

// NodeID is the unique identifier for the installer Graft node.
const NodeID graft.ID = "engine.installer"

func init() {
	graft.Register(graft.Node[*Installer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			provider.NodeID,
			fetch.NodeID,
			fs.HasherNodeID,
			modpack.NodeID,
			store.NodeID,
			resolver.NodeID,
		},
		Run: func(ctx context.Context) (*Installer, error) {
			client, err := graft.Dep[ports.ProviderClient](ctx)
			if err != nil {
				return nil, err
			}

			fetcher, err := graft.Dep[ports.Fetcher](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			opener, err := graft.Dep[ports.PackOpener](ctx)
			if err != nil {
				return nil, err
			}

			profiles, err := graft.Dep[ports.ProfileStore](ctx)
			if err != nil {
				return nil, err
			}

			res, err := graft.Dep[*resolver.Resolver](ctx)
			if err != nil {
				return nil, err
			}

			return New(client, fetcher, hasher, opener, profiles, res), nil
		},
	})
}
