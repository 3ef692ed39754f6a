// Package resolver merges the profile, the modpack and the lockfile into an
// installation plan.
package resolver

import (
	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports"
)

// Input is everything a merge looks at.
type Input struct {
	Profile *domain.ProfileData
	Lock    *domain.LockFile
	// Pack holds the modpack's resolved mods. Entries must be Declared.
	Pack []domain.PackEntry
	// Reset discards the lockfile as a cache, e.g. after a game version change.
	Reset bool
	// Root is the profile directory lockfile paths are relative to.
	Root string
}

// Target is a project that must end up installed.
type Target struct {
	Project domain.ProjectID
	// Version is nil when the newest compatible version should be looked up.
	Version domain.VersionID
	Type    domain.ProjectType
	// Path is the install path declared by a modpack index, if any.
	Path domain.ScopedPath
	// SHA1 is the hash declared by a modpack index, if any.
	SHA1     string
	FromPack bool
}

// Plan is the outcome of a merge. The four sets are disjoint by project.
type Plan struct {
	Versioned   []Target
	Unversioned []Target
	Installed   []domain.LockedMod
	ToDelete    []domain.ScopedPath
}

// Resolver computes plans.
type Resolver struct {
	hasher ports.Hasher
}

// New creates a Resolver that verifies locked files with hasher.
func New(hasher ports.Hasher) *Resolver {
	return &Resolver{hasher: hasher}
}

// Merge applies the precedence exclude > profile pin > modpack > lockfile.
func (r *Resolver) Merge(in Input) *Plan {
	pending := newTargets()
	versioned := newTargets()
	unversioned := newTargets()

	for _, e := range in.Pack {
		pending.put(Target{
			Project:  e.Project,
			Version:  e.Version,
			Type:     domain.ProjectTypeMod,
			Path:     e.Path,
			SHA1:     e.SHA1,
			FromPack: true,
		})
	}

	if in.Profile != nil {
		declared := make(map[domain.ProjectID]struct{}, len(in.Profile.Mods))
		for _, m := range in.Profile.Mods {
			// The first entry for a project wins.
			if _, dup := declared[m.Project]; dup {
				continue
			}
			declared[m.Project] = struct{}{}
			if m.Exclude {
				pending.remove(m.Project)
				continue
			}
			if packed, ok := pending.get(m.Project); ok {
				if m.Pinned() && m.Version != packed.Version {
					pending.remove(m.Project)
					versioned.put(Target{Project: m.Project, Version: m.Version, Type: m.ProjectType})
				}
				continue
			}
			t := Target{Project: m.Project, Version: m.Version, Type: m.ProjectType}
			if m.Pinned() {
				versioned.put(t)
			} else {
				unversioned.put(t)
			}
		}
	}

	for _, t := range pending.list() {
		versioned.put(t)
	}

	plan := &Plan{}
	deletes := newPathSet()
	kept := newPathSet()

	if in.Lock != nil {
		for _, l := range in.Lock.Mods {
			if in.Reset {
				deletes.add(l.File)
				continue
			}

			t, wantVersioned := versioned.get(l.Project)
			if !wantVersioned {
				var ok bool
				if t, ok = unversioned.get(l.Project); !ok {
					deletes.add(l.File)
					continue
				}
			}

			if t.Version != nil && t.Version != l.Version {
				deletes.add(l.File)
				continue
			}

			if r.verify(in.Root, l) {
				plan.Installed = append(plan.Installed, l)
				kept.add(l.File)
				versioned.remove(l.Project)
				unversioned.remove(l.Project)
				continue
			}

			// Missing or modified: refetch. The stale file goes unless the refetch
			// lands on the same path.
			deletes.add(l.File)
			if t.Version == nil && in.Lock.IsStaged(l.Project) {
				unversioned.remove(l.Project)
				t.Version = l.Version
				versioned.put(t)
			}
		}

		for _, o := range in.Lock.Outdated {
			if in.Lock.Slot(o.Project) == domain.PackSlot {
				continue
			}
			deletes.add(o.File)
		}
	}

	plan.Versioned = versioned.list()
	plan.Unversioned = unversioned.list()
	plan.ToDelete = deletes.without(kept)
	return plan
}

func (r *Resolver) verify(root string, l domain.LockedMod) bool {
	if l.File.IsZero() || l.SHA1 == "" {
		return false
	}
	ok, err := r.hasher.Verify(l.File.Join(root), l.SHA1)
	return err == nil && ok
}

// targets is an insertion-ordered set of targets keyed by project.
type targets struct {
	order []domain.ProjectID
	items map[domain.ProjectID]Target
}

func newTargets() *targets {
	return &targets{items: make(map[domain.ProjectID]Target)}
}

func (s *targets) put(t Target) {
	if _, ok := s.items[t.Project]; !ok {
		s.order = append(s.order, t.Project)
	}
	s.items[t.Project] = t
}

func (s *targets) get(id domain.ProjectID) (Target, bool) {
	t, ok := s.items[id]
	return t, ok
}

func (s *targets) remove(id domain.ProjectID) {
	delete(s.items, id)
}

func (s *targets) list() []Target {
	out := make([]Target, 0, len(s.items))
	for _, id := range s.order {
		if t, ok := s.items[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

type pathSet struct {
	order []domain.ScopedPath
	seen  map[domain.ScopedPath]struct{}
}

func newPathSet() *pathSet {
	return &pathSet{seen: make(map[domain.ScopedPath]struct{})}
}

func (s *pathSet) add(p domain.ScopedPath) {
	if p.IsZero() {
		return
	}
	if _, ok := s.seen[p]; ok {
		return
	}
	s.seen[p] = struct{}{}
	s.order = append(s.order, p)
}

func (s *pathSet) has(p domain.ScopedPath) bool {
	_, ok := s.seen[p]
	return ok
}

func (s *pathSet) without(other *pathSet) []domain.ScopedPath {
	out := make([]domain.ScopedPath, 0, len(s.order))
	for _, p := range s.order {
		if !other.has(p) {
			out = append(out, p)
		}
	}
	return out
}
