package provider

import (
	"context"
	"errors"

	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// lookupLimit bounds concurrent per-project lookups against one back end.
const lookupLimit = 8

func wrongType(p domain.Project, want string) error {
	err := zerr.With(domain.Wrap(domain.ErrWrongType, nil), "project", p.ID.String())
	err = zerr.With(err, "expected", want)
	return zerr.With(err, "actual", string(p.Type))
}

// loaderFilter lists the loader names whose artifacts run on loader.
func loaderFilter(loader domain.Loader) []string {
	switch loader {
	case domain.LoaderUnknown:
		return nil
	case domain.LoaderQuilt:
		return []string{domain.LoaderQuilt.String(), domain.LoaderFabric.String()}
	default:
		return []string{loader.String()}
	}
}

func parseLoaders(names []string) []domain.Loader {
	var loaders []domain.Loader
	for _, n := range names {
		if l := domain.ParseLoader(n); l != domain.LoaderUnknown {
			loaders = append(loaders, l)
		}
	}
	return loaders
}

// latestCompatible picks the first compatible entry of versions, which must be
// ordered newest first. The result is keyed to the requested project id.
func latestCompatible(id domain.ProjectID, versions []domain.Version, gameVersion string, loader domain.Loader) (domain.Version, error) {
	for _, v := range versions {
		if v.Supports(gameVersion, loader) {
			v.Project = id
			return v, nil
		}
	}
	err := zerr.With(domain.Wrap(domain.ErrMissingVersion, nil), "project", id.String())
	err = zerr.With(err, "game_version", gameVersion)
	return domain.Version{}, zerr.With(err, "loader", loader.String())
}

// latestPerLocked resolves the newest version of each locked mod concurrently and
// keeps the ones that moved. A project with no compatible version is skipped.
func latestPerLocked(ctx context.Context, locked []domain.LockedMod, latest func(context.Context, domain.ProjectID) (domain.Version, error)) ([]domain.Version, error) {
	results := make([]*domain.Version, len(locked))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupLimit)
	for i, l := range locked {
		g.Go(func() error {
			v, err := latest(gctx, l.Project)
			if err != nil {
				if errors.Is(err, domain.ErrMissingVersion) {
					return nil
				}
				return err
			}
			if v.ID != l.Version {
				results[i] = &v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var updates []domain.Version
	for _, v := range results {
		if v != nil {
			updates = append(updates, *v)
		}
	}
	return updates, nil
}
