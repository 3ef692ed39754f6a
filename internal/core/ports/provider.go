// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/modsync/internal/core/domain"
)

// ProviderClient is the normalised contract every catalog back end implements.
//
//go:generate go run go.uber.org/mock/mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks
type ProviderClient interface {
	// GetMod fetches a project and fails with ErrWrongType when it is a modpack.
	GetMod(ctx context.Context, id domain.ProjectID) (domain.Project, error)

	// GetModpack fetches a project and fails with ErrWrongType unless it is a modpack.
	GetModpack(ctx context.Context, id domain.ProjectID) (domain.Project, error)

	// GetMods fetches several projects. Identifiers of other services are skipped.
	GetMods(ctx context.Context, ids []domain.ProjectID) ([]domain.Project, error)

	// GetProjectVersions lists versions of a project, newest first, filtered when
	// gameVersion or loader are set.
	GetProjectVersions(ctx context.Context, id domain.ProjectID, gameVersion string, loader domain.Loader) ([]domain.Version, error)

	// GetVersions fetches exact versions. References of other services are skipped.
	GetVersions(ctx context.Context, refs []domain.VersionRef) ([]domain.Version, error)

	// GetLatest returns the newest version compatible with gameVersion and loader.
	GetLatest(ctx context.Context, id domain.ProjectID, gameVersion string, loader domain.Loader) (domain.Version, error)

	// GetUpdates returns, for each locked entry with a newer compatible version,
	// that newer version.
	GetUpdates(ctx context.Context, gameVersion string, loader domain.Loader, locked []domain.LockedMod) ([]domain.Version, error)

	// GetGameVersions lists known game versions, newest first.
	GetGameVersions(ctx context.Context) ([]string, error)

	// Lookup identifies local files by content and returns the matched version per path.
	Lookup(ctx context.Context, paths []string) (map[string]domain.Version, error)

	// LookupHashes identifies files by SHA-1 and returns the matched version per hash.
	LookupHashes(ctx context.Context, sha1s []string) (map[string]domain.Version, error)
}
