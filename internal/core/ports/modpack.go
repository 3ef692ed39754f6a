package ports

import (
	"io"

	"go.trai.ch/modsync/internal/core/domain"
)

// PackOpener opens modpack archives.
//
//go:generate go run go.uber.org/mock/mockgen -source=modpack.go -destination=mocks/mock_modpack.go -package=mocks
type PackOpener interface {
	// Open reads the archive at path and dispatches on its manifest file.
	Open(path string) (Pack, error)
}

// Pack is an opened modpack archive.
type Pack interface {
	// Manifest returns the parsed index.
	Manifest() domain.PackManifest

	// VisitOverrides calls visit for every file under the overrides prefix,
	// with the prefix stripped.
	VisitOverrides(visit func(path domain.ScopedPath, r io.Reader) error) error

	// Close releases the archive.
	Close() error
}
