package installer

import (
	"crypto/sha1" //nolint:gosec // SHA-1 is the providers' content identity
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// extractOverrides writes the pack's override files into the profile and
// returns their hashes. A file the user changed since the last extraction is
// renamed to a free .bak sibling before it is replaced.
func (r *run) extractOverrides(p ports.Pack, previous map[domain.ScopedPath]string) map[domain.ScopedPath]string {
	written := make(map[domain.ScopedPath]string)

	err := p.VisitOverrides(func(path domain.ScopedPath, src io.Reader) error {
		got, existed, err := r.writeOverride(path, src, previous, written)
		if err != nil {
			r.fail(zerr.With(err, "file", path.String()))
			return nil
		}
		written[path] = got
		r.sink.Emit(domain.InstalledEvent{File: path, IsNew: !existed, Kind: domain.InstallKindOverride})
		return nil
	})
	if err != nil {
		r.fail(zerr.Wrap(err, "failed to extract overrides"))
	}
	return written
}

func (r *run) writeOverride(
	path domain.ScopedPath,
	src io.Reader,
	previous, written map[domain.ScopedPath]string,
) (sha string, existed bool, err error) {
	dest := path.Join(r.req.Dir)
	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return "", false, zerr.Wrap(err, "failed to create override directory")
	}

	part := dest + domain.PartSuffix
	sha, err = writeHashed(part, src)
	if err != nil {
		_ = os.Remove(part)
		return "", false, err
	}

	existed = exists(dest)
	if _, again := written[path]; existed && !again {
		if err := r.backupIfModified(path, dest, sha, previous); err != nil {
			_ = os.Remove(part)
			return "", false, err
		}
	}

	if err := os.Rename(part, dest); err != nil {
		_ = os.Remove(part)
		return "", false, zerr.Wrap(err, "failed to move override into place")
	}
	return sha, existed, nil
}

// backupIfModified keeps the user's copy of dest when it differs from what was
// last extracted there, or, for files never extracted before, from the new content.
func (r *run) backupIfModified(path domain.ScopedPath, dest, incoming string, previous map[domain.ScopedPath]string) error {
	current, err := r.hasher.HashFile(dest)
	if err != nil {
		return err
	}

	expected, tracked := previous[path]
	if !tracked {
		expected = incoming
	}
	if strings.EqualFold(current, expected) {
		return nil
	}

	suffix := freeBackupSuffix(dest)
	if err := os.Rename(dest, dest+suffix); err != nil {
		return zerr.Wrap(err, "failed to back up modified override")
	}
	r.sink.Emit(domain.StatusEvent{Message: fmt.Sprintf(
		"%s was modified locally, saved as %s%s", path, path, suffix)})
	return nil
}

// freeBackupSuffix returns the first of .bak, .bak.1, .bak.2, ... that does
// not exist next to dest, so earlier backups are never replaced.
func freeBackupSuffix(dest string) string {
	suffix := domain.BackupSuffix
	for n := 1; exists(dest + suffix); n++ {
		suffix = domain.BackupSuffix + "." + strconv.Itoa(n)
	}
	return suffix
}

// removedFiles returns the previously tracked files missing from current that
// still hold the content that was installed. Modified files are left in place.
func (r *run) removedFiles(previous, current map[domain.ScopedPath]string) []domain.ScopedPath {
	var out []domain.ScopedPath
	for path, want := range previous {
		if _, ok := current[path]; ok {
			continue
		}
		dest := path.Join(r.req.Dir)
		if ok, _ := r.hasher.Verify(dest, want); ok {
			out = append(out, path)
			continue
		}
		if exists(dest) {
			r.sink.Emit(domain.StatusEvent{Message: fmt.Sprintf("%s was modified locally, keeping it", path)})
		}
	}
	return out
}

// writeHashed copies src into path, also feeding extra, and returns the SHA-1.
func writeHashed(path string, src io.Reader, extra ...io.Writer) (string, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.FilePerm) //nolint:gosec // Path is scoped
	if err != nil {
		return "", zerr.Wrap(err, "failed to create file")
	}
	digest := sha1.New() //nolint:gosec // see import
	if _, err := io.Copy(io.MultiWriter(append([]io.Writer{f, digest}, extra...)...), src); err != nil {
		_ = f.Close()
		return "", zerr.Wrap(err, "failed to write file")
	}
	if err := f.Close(); err != nil {
		return "", zerr.Wrap(err, "failed to close file")
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}
