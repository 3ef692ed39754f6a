// Package updater stages provider updates in the lockfile and reverts them.
package updater

import (
	"context"

	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// Change describes one entry moved between the active slots and outdated.
type Change struct {
	Project domain.ProjectID
	From    domain.VersionID
	To      domain.VersionID
	File    domain.ScopedPath
}

// Updater stages updates for unpinned lockfile entries.
type Updater struct {
	client ports.ProviderClient
}

// New creates an Updater backed by client.
func New(client ports.ProviderClient) *Updater {
	return &Updater{client: client}
}

// Update asks the provider for newer versions of every installed, unpinned
// entry. Matches replace the active entry; the replaced entry is kept in
// lock.Outdated until the next apply. Nothing is downloaded.
func (u *Updater) Update(ctx context.Context, profile *domain.ProfileData, lock *domain.LockFile) ([]Change, error) {
	candidates := updatable(profile, lock)
	if len(candidates) == 0 {
		return nil, nil
	}

	versions, err := u.client.GetUpdates(ctx, lock.GameVersion, lock.Loader, candidates)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to check for updates")
	}

	changes := make([]Change, 0, len(versions))
	for _, v := range versions {
		slot := lock.Slot(v.Project)
		var active *domain.LockedMod
		switch {
		case slot == domain.PackSlot:
			active = &lock.Pack.LockedMod
		case slot < len(lock.Mods):
			active = &lock.Mods[slot]
		default:
			continue
		}
		if active.Version == v.ID {
			continue
		}

		staged, err := stagedEntry(*active, v)
		if err != nil {
			return nil, err
		}
		if !lock.IsStaged(active.Project) {
			lock.Outdated = append(lock.Outdated, *active)
		}
		changes = append(changes, Change{Project: active.Project, From: active.Version, To: v.ID, File: staged.File})
		*active = staged
	}
	return changes, nil
}

// Revert moves every outdated entry back into the slot it was staged from and
// clears the outdated list. An empty list is a no-op.
func Revert(lock *domain.LockFile) []Change {
	if len(lock.Outdated) == 0 {
		return nil
	}

	changes := make([]Change, 0, len(lock.Outdated))
	for _, prev := range lock.Outdated {
		slot := lock.Slot(prev.Project)
		switch {
		case slot == domain.PackSlot:
			changes = append(changes, Change{Project: prev.Project, From: lock.Pack.Version, To: prev.Version, File: prev.File})
			lock.Pack.LockedMod = prev
		case slot < len(lock.Mods):
			changes = append(changes, Change{Project: prev.Project, From: lock.Mods[slot].Version, To: prev.Version, File: prev.File})
			lock.Mods[slot] = prev
		default:
			changes = append(changes, Change{Project: prev.Project, To: prev.Version, File: prev.File})
			lock.Mods = append(lock.Mods, prev)
		}
	}
	lock.Outdated = []domain.LockedMod{}
	return changes
}

// updatable returns the locked entries the profile leaves unpinned.
func updatable(profile *domain.ProfileData, lock *domain.LockFile) []domain.LockedMod {
	unpinned := make(map[domain.ProjectID]struct{}, len(profile.Mods))
	for _, m := range profile.Mods {
		if !m.Pinned() && !m.Exclude {
			unpinned[m.Project] = struct{}{}
		}
	}

	var out []domain.LockedMod
	if lock.Pack != nil && profile.Modpack != nil && !profile.Modpack.Pinned() &&
		profile.Modpack.Project == lock.Pack.Project {
		out = append(out, lock.Pack.LockedMod)
	}
	for _, l := range lock.Mods {
		if _, ok := unpinned[l.Project]; ok {
			out = append(out, l)
		}
	}
	return out
}

// stagedEntry builds the replacement for active at version v, in the same directory.
func stagedEntry(active domain.LockedMod, v domain.Version) (domain.LockedMod, error) {
	name := v.Filename.Base()
	if v.Filename.IsZero() {
		name = active.File.Base()
	}
	file, err := active.File.WithBase(name)
	if err != nil {
		return domain.LockedMod{}, zerr.With(err, "project", active.Project.String())
	}
	return domain.LockedMod{
		Project: active.Project,
		Version: v.ID,
		File:    file,
		SHA1:    v.SHA1,
	}, nil
}
