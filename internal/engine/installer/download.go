package installer

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/modsync/internal/adapters/fs" //nolint:depguard // Atomic copy shared with the stores
	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// install places every job and reports per-job outcomes in input order. A job
// whose file is in taken or belongs to an earlier job fails without touching
// the disk.
func (r *run) install(ctx context.Context, jobs []job, taken map[domain.ScopedPath]struct{}) []outcome {
	outcomes := make([]outcome, len(jobs))
	claimed := make(map[domain.ScopedPath]struct{}, len(taken)+len(jobs))
	for p := range taken {
		claimed[p] = struct{}{}
	}

	var g errgroup.Group
	for i, j := range jobs {
		if _, dup := claimed[j.file]; dup {
			err := domain.Wrap(domain.ErrPathConflict, nil)
			if j.project != nil {
				err = zerr.With(err, "project", j.project.String())
			}
			err = zerr.With(err, "file", j.file.String())
			r.fail(err)
			outcomes[i] = outcome{job: j, err: err}
			continue
		}
		claimed[j.file] = struct{}{}

		g.Go(func() error {
			got, err := r.place(ctx, j)
			if err != nil {
				if j.project != nil {
					err = zerr.With(err, "project", j.project.String())
				}
				r.fail(zerr.With(err, "file", j.file.String()))
			}
			outcomes[i] = outcome{job: j, sha1: got, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

// place makes j.file hold the artifact and returns its hash.
func (r *run) place(ctx context.Context, j job) (string, error) {
	dest := j.file.Join(r.req.Dir)

	if !r.req.Force && j.sha1 != "" {
		if ok, _ := r.hasher.Verify(dest, j.sha1); ok {
			return strings.ToLower(j.sha1), nil
		}
	}
	existed := exists(dest)

	var got string
	if j.cacheKey == "" {
		var err error
		if got, err = r.download(ctx, j, dest); err != nil {
			return "", err
		}
	} else {
		cached := filepath.Join(r.cacheRoot(), bucket(j.kind), j.cacheKey, j.file.Base())
		var err error
		if got, err = r.download(ctx, j, cached); err != nil {
			return "", err
		}
		if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
			return "", domain.Wrap(domain.ErrDownloadFailed, err)
		}
		if err := fs.AtomicCopyFile(cached, dest, domain.FilePerm); err != nil {
			return "", domain.Wrap(domain.ErrDownloadFailed, err)
		}
	}

	r.sink.Emit(domain.InstalledEvent{File: j.file, IsNew: !existed, Kind: j.kind})
	return got, nil
}

// download fetches j into dest through a .part sibling, verifying its hash
// before the rename. A dest that already verifies is left alone.
func (r *run) download(ctx context.Context, j job, dest string) (string, error) {
	if !r.req.Force && j.sha1 != "" {
		if ok, _ := r.hasher.Verify(dest, j.sha1); ok {
			return strings.ToLower(j.sha1), nil
		}
	}

	id := j.file.String()
	if len(j.urls) == 0 {
		err := zerr.With(domain.Wrap(domain.ErrDistributionDenied, nil), "file", id)
		r.sink.Emit(domain.DownloadFailEvent{ID: id, Err: err})
		return "", err
	}

	if err := r.permits.Acquire(ctx, 1); err != nil {
		return "", domain.Wrap(domain.ErrDownloadFailed, err)
	}
	defer r.permits.Release(1)

	got, err := r.fetchFirst(ctx, j, id, dest)
	if err != nil {
		r.sink.Emit(domain.DownloadFailEvent{ID: id, Err: err})
		return "", err
	}

	r.count.Add(1)
	r.sink.Emit(domain.DownloadSuccessEvent{ID: id})
	return got, nil
}

// fetchFirst tries each mirror in order until one delivers the expected bytes.
func (r *run) fetchFirst(ctx context.Context, j job, id, dest string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return "", domain.Wrap(domain.ErrDownloadFailed, err)
	}
	part := dest + domain.PartSuffix

	started := false
	var lastErr error
	for _, url := range j.urls {
		body, length, err := r.fetcher.Fetch(ctx, url)
		if err != nil {
			lastErr = err
			continue
		}
		if !started {
			if j.length > 0 {
				length = j.length
			}
			r.sink.Emit(domain.DownloadStartEvent{ID: id, Title: j.title, Length: length})
			started = true
		}

		got, err := writeHashed(part, body, &progressWriter{id: id, emit: r.sink.Emit})
		_ = body.Close()
		if err != nil {
			_ = os.Remove(part)
			lastErr = err
			continue
		}

		if j.sha1 != "" && !strings.EqualFold(got, j.sha1) {
			_ = os.Remove(part)
			lastErr = zerr.With(zerr.With(domain.Wrap(domain.ErrHashMismatch, nil),
				"expected", j.sha1), "actual", got)
			continue
		}

		if err := os.Rename(part, dest); err != nil {
			_ = os.Remove(part)
			return "", domain.Wrap(domain.ErrDownloadFailed, err)
		}
		return got, nil
	}

	if errors.Is(lastErr, domain.ErrHashMismatch) {
		return "", domain.Wrap(domain.ErrDownloadFailed, lastErr)
	}
	if !errors.Is(lastErr, domain.ErrDownloadFailed) {
		lastErr = domain.Wrap(domain.ErrDownloadFailed, lastErr)
	}
	return "", lastErr
}

type progressWriter struct {
	id   string
	emit func(domain.Event)
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.emit(domain.DownloadProgressEvent{ID: p.id, Bytes: int64(len(b))})
	return len(b), nil
}

func bucket(kind domain.InstallKind) string {
	if kind == domain.InstallKindOther {
		return filepath.Join(domain.ModsCacheDir, "other")
	}
	return domain.ModsCacheDir
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, iofs.ErrNotExist)
}
