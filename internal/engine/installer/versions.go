package installer

import (
	"context"
	"errors"

	"go.trai.ch/modsync/internal/adapters/fs" //nolint:depguard // Cache keys are shared with the cache layout
	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// fetchVersions resolves every plan target to version metadata. Latest-version
// lookups run one per project; pinned versions are fetched in one batch.
// Unresolved projects are reported as MissingVersion and skipped.
func (r *run) fetchVersions(ctx context.Context, plan *resolver.Plan) []job {
	latest := make([]*domain.Version, len(plan.Unversioned))
	var pinned []domain.Version

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.req.Parallelism)

	for i, t := range plan.Unversioned {
		g.Go(func() error {
			v, err := r.client.GetLatest(gctx, t.Project, r.req.Profile.GameVersion, r.req.Profile.Loader)
			if err != nil {
				if !errors.Is(err, domain.ErrMissingVersion) {
					err = domain.Wrap(domain.ErrMissingVersion, err)
				}
				r.fail(zerr.With(err, "project", t.Project.String()))
				return nil
			}
			latest[i] = &v
			return nil
		})
	}

	if len(plan.Versioned) > 0 {
		refs := make([]domain.VersionRef, 0, len(plan.Versioned))
		for _, t := range plan.Versioned {
			refs = append(refs, domain.VersionRef{Project: t.Project, Version: t.Version})
		}
		g.Go(func() error {
			vs, err := r.client.GetVersions(gctx, refs)
			if err != nil {
				r.fail(zerr.Wrap(err, "failed to fetch pinned versions"))
				return nil
			}
			pinned = vs
			return nil
		})
	}

	_ = g.Wait()

	jobs := make([]job, 0, len(plan.Unversioned)+len(plan.Versioned))
	for i, t := range plan.Unversioned {
		if latest[i] == nil {
			continue
		}
		if j, ok := r.modJob(t, *latest[i]); ok {
			jobs = append(jobs, j)
		}
	}

	byVersion := make(map[domain.VersionID]domain.Version, len(pinned))
	for _, v := range pinned {
		byVersion[v.ID] = v
	}
	for _, t := range plan.Versioned {
		v, ok := byVersion[t.Version]
		if !ok {
			r.fail(zerr.With(zerr.With(domain.Wrap(domain.ErrMissingVersion, nil),
				"project", t.Project.String()), "version", t.Version.String()))
			continue
		}
		if j, ok := r.modJob(t, v); ok {
			jobs = append(jobs, j)
		}
	}
	return jobs
}

// modJob places v for target t. Versions are keyed by the requested project,
// since providers may answer a slug with the canonical id.
func (r *run) modJob(t resolver.Target, v domain.Version) (job, bool) {
	file := t.Path
	if file.IsZero() {
		if v.Filename.IsZero() {
			r.fail(zerr.With(domain.Wrap(domain.ErrDownloadFailed, nil), "project", t.Project.String()))
			return job{}, false
		}
		var err error
		file, err = domain.MustScopedPath(t.Type.InstallDir()).Child(v.Filename.Base())
		if err != nil {
			r.fail(zerr.With(err, "project", t.Project.String()))
			return job{}, false
		}
	}

	sha1 := v.SHA1
	if sha1 == "" {
		sha1 = t.SHA1
	}

	var urls []string
	if v.URL != "" {
		urls = []string{v.URL}
	}

	title := v.Title
	if title == "" {
		title = file.Base()
	}

	j := job{
		kind:    domain.InstallKindMod,
		project: t.Project,
		version: v.ID,
		title:   title,
		urls:    urls,
		sha1:    sha1,
		length:  v.Length,
		file:    file,
	}
	if !r.req.NoCache {
		j.cacheKey = fs.CacheKey(t.Project.Service().String(), t.Project.String(), v.ID.String())
	}
	return j, true
}
