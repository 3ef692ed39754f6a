// Package installer applies a profile to its directory: it resolves the plan,
// downloads and verifies artifacts, extracts modpack overrides, rewrites the
// lockfile and removes stale files.
package installer

import (
	"context"
	"path/filepath"

	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports"
	"go.trai.ch/modsync/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DownloadPermits is the number of artifact downloads allowed in flight at once,
// shared by every phase of every run of one Installer.
const DownloadPermits = 10

// Options tunes a single Apply.
type Options struct {
	// CacheDir is the shared artifact cache. Ignored in NoCache mode.
	CacheDir string
	// NoCache downloads mods straight into the profile.
	NoCache bool
	// Parallelism bounds concurrent metadata requests.
	Parallelism int
	// Force skips the verified-in-place fast path.
	Force bool
}

// Request is the input of Apply.
type Request struct {
	Dir     string
	Profile *domain.ProfileData
	// Lock is the current lockfile, nil when the profile was never installed.
	Lock *domain.LockFile
	Options
}

// Result summarises an Apply.
type Result struct {
	Lock       *domain.LockFile
	Downloaded int
	Deleted    int
	Failed     int
}

// Installer owns the process-wide download permit pool.
type Installer struct {
	client   ports.ProviderClient
	fetcher  ports.Fetcher
	hasher   ports.Hasher
	opener   ports.PackOpener
	store    ports.ProfileStore
	resolver *resolver.Resolver
	permits  *semaphore.Weighted
}

// New creates an Installer.
func New(
	client ports.ProviderClient,
	fetcher ports.Fetcher,
	hasher ports.Hasher,
	opener ports.PackOpener,
	store ports.ProfileStore,
	res *resolver.Resolver,
) *Installer {
	return &Installer{
		client:   client,
		fetcher:  fetcher,
		hasher:   hasher,
		opener:   opener,
		store:    store,
		resolver: res,
		permits:  semaphore.NewWeighted(DownloadPermits),
	}
}

// Apply brings req.Dir in line with req.Profile and persists the new lockfile.
// Per-item failures are reported through sink and leave the item out of the
// lockfile; only failures that affect the whole run are returned.
func (in *Installer) Apply(ctx context.Context, req Request, sink ports.EventSink) (*Result, error) {
	run := newRun(in, req, sink)

	old := req.Lock
	if old == nil {
		old = domain.NewLockFile(req.Profile.GameVersion, req.Profile.Loader)
	}
	reset := old.NeedsReset(req.Profile)
	if reset {
		sink.Emit(domain.StatusEvent{Message: "game version or loader changed, reinstalling everything"})
	}

	next := domain.NewLockFile(req.Profile.GameVersion, req.Profile.Loader)

	var pack *openedPack
	if req.Profile.Modpack != nil {
		sink.Emit(domain.StatusEvent{Message: "resolving modpack " + req.Profile.Modpack.DisplayName()})
		var err error
		pack, err = run.preparePack(ctx, old, reset)
		if err != nil {
			return nil, err
		}
		defer pack.close()
		next.Pack = &domain.LockedPack{LockedMod: pack.locked, Overrides: map[domain.ScopedPath]string{}}
	}

	plan := in.resolver.Merge(resolver.Input{
		Profile: req.Profile,
		Lock:    old,
		Pack:    pack.declaredEntries(),
		Reset:   reset,
		Root:    req.Dir,
	})
	next.Mods = append(next.Mods, plan.Installed...)

	sink.Emit(domain.StatusEvent{Message: "fetching version metadata"})
	jobs := run.fetchVersions(ctx, plan)
	jobs = append(jobs, run.otherJobs(pack)...)

	sink.Emit(domain.StatusEvent{Message: "installing files"})
	taken := make(map[domain.ScopedPath]struct{}, len(plan.Installed))
	locked := make(map[domain.ProjectID]struct{}, len(plan.Installed))
	for _, l := range plan.Installed {
		taken[l.File] = struct{}{}
		locked[l.Project] = struct{}{}
	}
	outcomes := run.install(ctx, jobs, taken)

	failed := make(map[domain.ProjectID]struct{})
	for _, o := range outcomes {
		if o.err != nil {
			if o.job.project != nil {
				failed[o.job.project] = struct{}{}
			}
			continue
		}
		switch o.job.kind {
		case domain.InstallKindOther:
			next.Other[o.job.file] = o.sha1
		default:
			if _, dup := locked[o.job.project]; dup {
				run.fail(zerr.With(domain.Wrap(domain.ErrDuplicateLockedMod, nil), "project", o.job.project.String()))
				continue
			}
			locked[o.job.project] = struct{}{}
			next.Mods = append(next.Mods, domain.LockedMod{
				Project: o.job.project,
				Version: o.job.version,
				File:    o.job.file,
				SHA1:    o.sha1,
			})
		}
	}

	deletes := append([]domain.ScopedPath(nil), plan.ToDelete...)
	deletes = append(deletes, run.removedFiles(old.Other, next.Other)...)

	var previousOverrides map[domain.ScopedPath]string
	if old.Pack != nil {
		previousOverrides = old.Pack.Overrides
	}
	switch {
	case pack != nil && req.Profile.Modpack.InstallOverrides:
		sink.Emit(domain.StatusEvent{Message: "extracting overrides"})
		next.Pack.Overrides = run.extractOverrides(pack.pack, previousOverrides)
		deletes = append(deletes, run.removedFiles(previousOverrides, next.Pack.Overrides)...)
	case pack != nil:
		for p, h := range previousOverrides {
			next.Pack.Overrides[p] = h
		}
	default:
		deletes = append(deletes, run.removedFiles(previousOverrides, nil)...)
	}

	// Staged entries whose replacement failed stay revertible and keep their file.
	keep := installedPaths(next)
	for _, o := range old.Outdated {
		if _, ok := failed[o.Project]; ok && !reset {
			next.Outdated = append(next.Outdated, o)
			keep[o.File] = struct{}{}
		}
	}

	result := &Result{Lock: next, Downloaded: run.downloaded(), Failed: len(failed)}

	var g errgroup.Group
	g.Go(func() error {
		result.Deleted = run.cleanup(ctx, deletes, keep)
		return nil
	})
	g.Go(func() error {
		return in.store.SaveLockFile(req.Dir, next)
	})
	if err := g.Wait(); err != nil {
		return nil, zerr.Wrap(err, "failed to write lockfile")
	}

	return result, nil
}

// installedPaths is every path the new lockfile owns.
func installedPaths(lock *domain.LockFile) map[domain.ScopedPath]struct{} {
	paths := make(map[domain.ScopedPath]struct{}, len(lock.Mods)+len(lock.Other))
	for _, m := range lock.Mods {
		paths[m.File] = struct{}{}
	}
	for p := range lock.Other {
		paths[p] = struct{}{}
	}
	if lock.Pack != nil {
		for p := range lock.Pack.Overrides {
			paths[p] = struct{}{}
		}
	}
	return paths
}

// cacheRoot is where artifacts that are not installed in place are kept.
func (r *run) cacheRoot() string {
	if r.req.NoCache || r.req.CacheDir == "" {
		return filepath.Join(r.req.Dir, domain.ProfileCacheDir)
	}
	return r.req.CacheDir
}
