package provider

import (
	"context"
	"errors"

	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports"
)

var _ ports.ProviderClient = (*Multi)(nil)

// Multi fans a request out over several back ends in registration order.
// Single-result calls return the first success; list calls aggregate every
// successful answer. When every back end fails, the first meaningful error is
// returned: WrongService answers only surface if nothing else went wrong.
// This is not always the very first error: an Unsupported or WrongService
// answer from an earlier back end is skipped in favour of a later real failure.
type Multi struct {
	clients []ports.ProviderClient
}

// NewMulti creates a Multi over clients.
func NewMulti(clients ...ports.ProviderClient) *Multi {
	return &Multi{clients: clients}
}

// firstSuccess runs call against each client until one succeeds.
func firstSuccess[T any](clients []ports.ProviderClient, call func(ports.ProviderClient) (T, error)) (T, error) {
	var errs firstError
	for _, c := range clients {
		v, err := call(c)
		if err == nil {
			return v, nil
		}
		errs.add(err)
	}
	var zero T
	return zero, errs.get()
}

// aggregate runs call against every client and concatenates the successes.
func aggregate[T any](clients []ports.ProviderClient, call func(ports.ProviderClient) ([]T, error)) ([]T, error) {
	var (
		out  []T
		errs firstError
		ok   bool
	)
	for _, c := range clients {
		v, err := call(c)
		if err != nil {
			errs.add(err)
			continue
		}
		ok = true
		out = append(out, v...)
	}
	if !ok && len(clients) > 0 {
		return nil, errs.get()
	}
	return out, nil
}

// merge runs call against every client and unions the maps; the first client
// to answer for a key wins.
func merge(clients []ports.ProviderClient, call func(ports.ProviderClient) (map[string]domain.Version, error)) (map[string]domain.Version, error) {
	out := make(map[string]domain.Version)
	var (
		errs firstError
		ok   bool
	)
	for _, c := range clients {
		found, err := call(c)
		if err != nil {
			errs.add(err)
			continue
		}
		ok = true
		for k, v := range found {
			if _, seen := out[k]; !seen {
				out[k] = v
			}
		}
	}
	if !ok && len(clients) > 0 {
		return nil, errs.get()
	}
	return out, nil
}

type firstError struct {
	first, firstRelevant error
}

func (f *firstError) add(err error) {
	if f.first == nil {
		f.first = err
	}
	if f.firstRelevant == nil && !errors.Is(err, domain.ErrWrongService) && !errors.Is(err, domain.ErrUnsupported) {
		f.firstRelevant = err
	}
}

func (f *firstError) get() error {
	if f.firstRelevant != nil {
		return f.firstRelevant
	}
	if f.first != nil {
		return f.first
	}
	return domain.Wrap(domain.ErrUnsupported, nil)
}

// GetMod implements ports.ProviderClient.
func (m *Multi) GetMod(ctx context.Context, id domain.ProjectID) (domain.Project, error) {
	return firstSuccess(m.clients, func(c ports.ProviderClient) (domain.Project, error) {
		return c.GetMod(ctx, id)
	})
}

// GetModpack implements ports.ProviderClient.
func (m *Multi) GetModpack(ctx context.Context, id domain.ProjectID) (domain.Project, error) {
	return firstSuccess(m.clients, func(c ports.ProviderClient) (domain.Project, error) {
		return c.GetModpack(ctx, id)
	})
}

// GetMods implements ports.ProviderClient.
func (m *Multi) GetMods(ctx context.Context, ids []domain.ProjectID) ([]domain.Project, error) {
	return aggregate(m.clients, func(c ports.ProviderClient) ([]domain.Project, error) {
		return c.GetMods(ctx, ids)
	})
}

// GetProjectVersions implements ports.ProviderClient.
func (m *Multi) GetProjectVersions(ctx context.Context, id domain.ProjectID, gameVersion string, loader domain.Loader) ([]domain.Version, error) {
	return firstSuccess(m.clients, func(c ports.ProviderClient) ([]domain.Version, error) {
		return c.GetProjectVersions(ctx, id, gameVersion, loader)
	})
}

// GetVersions implements ports.ProviderClient.
func (m *Multi) GetVersions(ctx context.Context, refs []domain.VersionRef) ([]domain.Version, error) {
	return aggregate(m.clients, func(c ports.ProviderClient) ([]domain.Version, error) {
		return c.GetVersions(ctx, refs)
	})
}

// GetLatest implements ports.ProviderClient.
func (m *Multi) GetLatest(ctx context.Context, id domain.ProjectID, gameVersion string, loader domain.Loader) (domain.Version, error) {
	return firstSuccess(m.clients, func(c ports.ProviderClient) (domain.Version, error) {
		return c.GetLatest(ctx, id, gameVersion, loader)
	})
}

// GetUpdates implements ports.ProviderClient.
func (m *Multi) GetUpdates(ctx context.Context, gameVersion string, loader domain.Loader, locked []domain.LockedMod) ([]domain.Version, error) {
	return aggregate(m.clients, func(c ports.ProviderClient) ([]domain.Version, error) {
		return c.GetUpdates(ctx, gameVersion, loader, locked)
	})
}

// GetGameVersions implements ports.ProviderClient.
func (m *Multi) GetGameVersions(ctx context.Context) ([]string, error) {
	return firstSuccess(m.clients, func(c ports.ProviderClient) ([]string, error) {
		return c.GetGameVersions(ctx)
	})
}

// Lookup implements ports.ProviderClient.
func (m *Multi) Lookup(ctx context.Context, paths []string) (map[string]domain.Version, error) {
	return merge(m.clients, func(c ports.ProviderClient) (map[string]domain.Version, error) {
		return c.Lookup(ctx, paths)
	})
}

// LookupHashes implements ports.ProviderClient.
func (m *Multi) LookupHashes(ctx context.Context, sha1s []string) (map[string]domain.Version, error) {
	return merge(m.clients, func(c ports.ProviderClient) (map[string]domain.Version, error) {
		return c.LookupHashes(ctx, sha1s)
	})
}
