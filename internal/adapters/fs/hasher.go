// Package fs provides file system adapters for walking and hashing installed files.
package fs

import (
	"crypto/sha1" //nolint:gosec // SHA-1 is the providers' content identity, not a security boundary
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	iofs "io/fs"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/modsync/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes SHA-1 digests of installed files.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// NewSHA1 returns the digest used for lockfile hashes, for callers that hash while streaming.
func NewSHA1() hash.Hash {
	return sha1.New() //nolint:gosec // see import
}

// HashFile computes the hex SHA-1 of a file's content.
func (h *Hasher) HashFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest := NewSHA1()
	if _, err := io.Copy(digest, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}

// Verify reports whether the file at path exists and matches sha1.
// An empty expected hash never verifies.
func (h *Hasher) Verify(path, sha1 string) (bool, error) {
	if sha1 == "" {
		return false, nil
	}
	got, err := h.HashFile(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return strings.EqualFold(got, sha1), nil
}

// CacheKey derives a stable directory name from the given parts.
func CacheKey(parts ...string) string {
	digest := xxhash.New()
	for _, part := range parts {
		_, _ = digest.WriteString(part)
		_, _ = digest.Write([]byte{0}) // Separator
	}
	return fmt.Sprintf("%016x", digest.Sum64())
}
