package provider

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modsync/internal/adapters/config"
	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports"
)

const NodeID graft.ID = "adapter.provider"

func init() {
	graft.Register(graft.Node[ports.ProviderClient]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ValueNodeID},
		Run: func(ctx context.Context) (ports.ProviderClient, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return FromConfig(cfg), nil
		},
	})
}

// FromConfig builds the multi-provider client in Modrinth, CurseForge, GitHub order.
func FromConfig(cfg *domain.Config) *Multi {
	return NewMulti(
		NewModrinth(WithBaseURL(cfg.ModrinthBaseURL)),
		NewCurseForge(WithBaseURL(cfg.CurseForgeBaseURL), WithToken(cfg.CurseForgeAPIKey)),
		NewGitHub(WithBaseURL(cfg.GitHubBaseURL), WithToken(cfg.GitHubToken)),
	)
}
