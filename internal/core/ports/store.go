package ports

import "go.trai.ch/modsync/internal/core/domain"

// ProfileStore persists the declarative profile and the observed lockfile of a profile directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ProfileStore interface {
	// LoadProfile reads the profile data in dir.
	LoadProfile(dir string) (*domain.ProfileData, error)

	// SaveProfile writes the profile data in dir.
	SaveProfile(dir string, profile *domain.ProfileData) error

	// LoadLockFile reads the lockfile in dir.
	// Returns nil, nil if no lockfile exists; a lockfile that fails to parse is an error.
	LoadLockFile(dir string) (*domain.LockFile, error)

	// SaveLockFile atomically replaces the lockfile in dir.
	SaveLockFile(dir string, lock *domain.LockFile) error

	// Lock takes the exclusive install lock of dir. The returned function releases it.
	Lock(dir string) (release func() error, err error)
}
