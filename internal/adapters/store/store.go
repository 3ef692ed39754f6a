// Package store persists profile data and lockfiles as JSON documents inside a profile directory.
package store

import (
	"encoding/json"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/modsync/internal/adapters/fs"
	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ProfileStore = (*Store)(nil)

// Store implements ports.ProfileStore using flat JSON files.
type Store struct {
	mu sync.RWMutex
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// LoadProfile reads profile.json from dir.
func (s *Store) LoadProfile(dir string) (*domain.ProfileData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := filepath.Join(dir, domain.ProfileFileName)

	//nolint:gosec // Path is built from the configured profile directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(domain.Wrap(domain.ErrProfileReadFailed, err), "path", path)
	}

	var profile domain.ProfileData
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, zerr.With(domain.Wrap(domain.ErrProfileReadFailed, err), "path", path)
	}
	if profile.Mods == nil {
		profile.Mods = []domain.Mod{}
	}
	return &profile, nil
}

// SaveProfile writes profile.json into dir.
func (s *Store) SaveProfile(dir string, profile *domain.ProfileData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(dir, domain.ProfileFileName)
	if err := s.write(path, profile); err != nil {
		return zerr.With(domain.Wrap(domain.ErrProfileWriteFailed, err), "path", path)
	}
	return nil
}

// LoadLockFile reads the lockfile from dir. A missing lockfile yields nil
// without error; a malformed one is fatal.
func (s *Store) LoadLockFile(dir string) (*domain.LockFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := filepath.Join(dir, domain.LockFileName)

	//nolint:gosec // Path is built from the configured profile directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(domain.Wrap(domain.ErrProfileReadFailed, err), "path", path)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var lock domain.LockFile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, zerr.With(domain.Wrap(domain.ErrLockfileParse, err), "path", path)
	}
	return &lock, nil
}

// SaveLockFile writes the lockfile into dir.
func (s *Store) SaveLockFile(dir string, lock *domain.LockFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(dir, domain.LockFileName)
	if err := s.write(path, lock); err != nil {
		return zerr.With(domain.Wrap(domain.ErrProfileWriteFailed, err), "path", path)
	}
	return nil
}

// Lock takes the profile's exclusive install lock without blocking.
func (s *Store) Lock(dir string) (func() error, error) {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, "failed to create profile directory")
	}

	path := filepath.Join(dir, domain.InstallLockName)

	//nolint:gosec // Path is built from the configured profile directory
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, domain.PrivateFilePerm)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open install lock"), "path", path)
	}

	if err := lockFile(f); err != nil {
		_ = f.Close()
		if errors.Is(err, errAlreadyLocked) {
			return nil, zerr.With(domain.Wrap(domain.ErrProfileLocked, nil), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to acquire install lock"), "path", path)
	}

	released := false
	return func() error {
		if released {
			return nil
		}
		released = true
		unlockErr := unlockFile(f)
		closeErr := f.Close()
		if unlockErr != nil {
			return zerr.Wrap(unlockErr, "failed to release install lock")
		}
		return closeErr
	}, nil
}

func (s *Store) write(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal document")
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create directory")
	}
	return fs.AtomicWriteFile(path, data, domain.FilePerm)
}
