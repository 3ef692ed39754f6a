package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modsync/internal/adapters/store"
	"go.trai.ch/modsync/internal/core/domain"
)

func TestStore_ProfileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := store.NewStore()

	profile := &domain.ProfileData{
		GameVersion: "1.20.1",
		Loader:      domain.LoaderFabric,
		Mods: []domain.Mod{
			{Project: domain.ModrinthProject("abc"), Name: "ABC", ProjectType: domain.ProjectTypeMod},
		},
	}
	require.NoError(t, s.SaveProfile(dir, profile))

	got, err := s.LoadProfile(dir)
	require.NoError(t, err)
	assert.Equal(t, profile, got)
}

func TestStore_LoadProfileMissing(t *testing.T) {
	_, err := store.NewStore().LoadProfile(t.TempDir())
	require.ErrorIs(t, err, domain.ErrProfileReadFailed)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestStore_LoadProfileDuplicateProject(t *testing.T) {
	dir := t.TempDir()
	data := `{"game_version":"1.20.1","mods":[{"modrinth":"abc"},{"modrinth":"abc","version":"v2"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ProfileFileName), []byte(data), 0o644))

	_, err := store.NewStore().LoadProfile(dir)
	require.ErrorIs(t, err, domain.ErrProfileReadFailed)
	require.ErrorIs(t, err, domain.ErrDuplicateMod)
}

func TestStore_LockFileMissingIsNil(t *testing.T) {
	lock, err := store.NewStore().LoadLockFile(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, lock)
}

func TestStore_LockFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := store.NewStore()

	lock := domain.NewLockFile("1.20.1", domain.LoaderFabric)
	lock.Mods = append(lock.Mods, domain.LockedMod{
		Project: domain.ModrinthProject("abc"),
		Version: domain.ModrinthVersion("v1"),
		File:    domain.MustScopedPath("mods/abc.jar"),
		SHA1:    "00",
	})
	require.NoError(t, s.SaveLockFile(dir, lock))

	got, err := s.LoadLockFile(dir)
	require.NoError(t, err)
	assert.Equal(t, lock, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStore_LockFileDuplicateIsFatal(t *testing.T) {
	dir := t.TempDir()
	raw := `{"game_version":"1.20.1","mods":[
		{"modrinth":"abc","version":"v1","file":"mods/a.jar","sha1":"00"},
		{"modrinth":"abc","version":"v2","file":"mods/b.jar","sha1":"11"}
	]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.LockFileName), []byte(raw), 0o600))

	_, err := store.NewStore().LoadLockFile(dir)
	require.ErrorIs(t, err, domain.ErrLockfileParse)
	require.ErrorIs(t, err, domain.ErrDuplicateLockedMod)
}

func TestStore_Lock(t *testing.T) {
	dir := t.TempDir()
	s := store.NewStore()

	release, err := s.Lock(dir)
	require.NoError(t, err)

	_, err = s.Lock(dir)
	require.ErrorIs(t, err, domain.ErrProfileLocked)

	require.NoError(t, release())
	require.NoError(t, release())

	release, err = s.Lock(dir)
	require.NoError(t, err)
	require.NoError(t, release())
}
