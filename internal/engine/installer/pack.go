package installer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.trai.ch/modsync/internal/adapters/fs" //nolint:depguard // Cache keys are shared with the cache layout
	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports"
	"go.trai.ch/zerr"
)

const game = "minecraft"

// openedPack is the modpack of the current run.
type openedPack struct {
	pack     ports.Pack
	locked   domain.LockedMod
	manifest domain.PackManifest
	// declared entries have a project and version and become plan targets.
	declared []domain.PackEntry
	// others are installed verbatim and tracked by hash only.
	others []domain.PackEntry
}

func (p *openedPack) declaredEntries() []domain.PackEntry {
	if p == nil {
		return nil
	}
	return p.declared
}

func (p *openedPack) close() {
	if p != nil && p.pack != nil {
		_ = p.pack.Close()
	}
}

// preparePack resolves, downloads and opens the profile's modpack. The locked
// version is reused while the profile leaves the pack unpinned. Any failure
// here aborts the run, since the pack decides what else gets installed.
func (r *run) preparePack(ctx context.Context, old *domain.LockFile, reset bool) (*openedPack, error) {
	mp := r.req.Profile.Modpack
	version := mp.Version
	fromLock := false
	if version == nil && old.Pack != nil && old.Pack.Project == mp.Project && !reset {
		version = old.Pack.Version
		fromLock = true
	}

	if fromLock && !old.Pack.File.IsZero() && !r.req.Force {
		archive := r.packPath(mp.Project, version, old.Pack.File.Base())
		if ok, _ := r.hasher.Verify(archive, old.Pack.SHA1); ok {
			return r.openPack(ctx, old.Pack.LockedMod, archive)
		}
	}

	v, err := r.packVersion(ctx, mp.Project, version)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve modpack"), "project", mp.Project.String())
	}

	filename := "modpack.zip"
	if !v.Filename.IsZero() {
		filename = v.Filename.Base()
	}
	file := domain.MustScopedPath(filename)

	var urls []string
	if v.URL != "" {
		urls = []string{v.URL}
	}
	archive := r.packPath(mp.Project, v.ID, filename)
	got, err := r.download(ctx, job{
		kind:    domain.InstallKindMod,
		project: mp.Project,
		version: v.ID,
		title:   mp.DisplayName(),
		urls:    urls,
		sha1:    v.SHA1,
		length:  v.Length,
		file:    file,
	}, archive)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to download modpack"), "project", mp.Project.String())
	}

	return r.openPack(ctx, domain.LockedMod{Project: mp.Project, Version: v.ID, File: file, SHA1: got}, archive)
}

func (r *run) packVersion(ctx context.Context, project domain.ProjectID, version domain.VersionID) (domain.Version, error) {
	if version == nil {
		return r.client.GetLatest(ctx, project, r.req.Profile.GameVersion, r.req.Profile.Loader)
	}
	vs, err := r.client.GetVersions(ctx, []domain.VersionRef{{Project: project, Version: version}})
	if err != nil {
		return domain.Version{}, err
	}
	for _, v := range vs {
		if v.ID == version {
			return v, nil
		}
	}
	return domain.Version{}, zerr.With(domain.Wrap(domain.ErrMissingVersion, nil), "version", version.String())
}

func (r *run) packPath(project domain.ProjectID, version domain.VersionID, filename string) string {
	key := fs.CacheKey(project.Service().String(), project.String(), version.String())
	return filepath.Join(r.cacheRoot(), domain.ModpacksCacheDir, key, filename)
}

func (r *run) openPack(ctx context.Context, locked domain.LockedMod, archive string) (*openedPack, error) {
	p, err := r.opener.Open(archive)
	if err != nil {
		return nil, err
	}

	m := p.Manifest()
	if m.Game != "" && m.Game != game {
		_ = p.Close()
		return nil, zerr.With(domain.Wrap(domain.ErrIncompatible, nil), "game", m.Game)
	}

	profile := r.req.Profile
	if m.Loader != domain.LoaderUnknown && profile.Loader != domain.LoaderUnknown && m.Loader != profile.Loader {
		r.sink.Emit(domain.StatusEvent{Message: fmt.Sprintf(
			"modpack targets %s but the profile uses %s", m.Loader, profile.Loader)})
	}
	if m.GameVersion != "" && profile.GameVersion != "" && m.GameVersion != profile.GameVersion {
		r.sink.Emit(domain.StatusEvent{Message: fmt.Sprintf(
			"modpack targets game version %s but the profile uses %s", m.GameVersion, profile.GameVersion)})
	}

	declared, others := r.resolveEntries(ctx, m.Entries)
	return &openedPack{pack: p, locked: locked, manifest: m, declared: declared, others: others}, nil
}

// resolveEntries matches pack entries to projects: by the ids the manifest
// declares, then by content hash. Whatever is left stays an opaque file.
func (r *run) resolveEntries(ctx context.Context, entries []domain.PackEntry) (declared, others []domain.PackEntry) {
	var unresolved []domain.PackEntry
	for _, e := range entries {
		switch {
		case e.Declared():
			declared = append(declared, e)
		case e.SHA1 != "":
			unresolved = append(unresolved, e)
		default:
			others = append(others, e)
		}
	}
	if len(unresolved) == 0 {
		return declared, others
	}

	hashes := make([]string, 0, len(unresolved))
	for _, e := range unresolved {
		hashes = append(hashes, e.SHA1)
	}
	found, err := r.client.LookupHashes(ctx, hashes)
	if err != nil && !errors.Is(err, domain.ErrUnsupported) {
		r.fail(zerr.Wrap(err, "failed to identify modpack files"))
	}

	for _, e := range unresolved {
		if v, ok := found[e.SHA1]; ok && v.Project != nil && v.ID != nil {
			e.Project = v.Project
			e.Version = v.ID
			declared = append(declared, e)
			continue
		}
		others = append(others, e)
	}
	return declared, others
}

// otherJobs installs the pack files no provider knows about.
func (r *run) otherJobs(p *openedPack) []job {
	if p == nil {
		return nil
	}
	jobs := make([]job, 0, len(p.others))
	for _, e := range p.others {
		if e.Path.IsZero() {
			continue
		}
		j := job{
			kind:   domain.InstallKindOther,
			title:  e.Path.Base(),
			urls:   e.URLs,
			sha1:   e.SHA1,
			length: e.Size,
			file:   e.Path,
		}
		if !r.req.NoCache && e.SHA1 != "" {
			j.cacheKey = fs.CacheKey("other", e.SHA1)
		}
		jobs = append(jobs, j)
	}
	return jobs
}
