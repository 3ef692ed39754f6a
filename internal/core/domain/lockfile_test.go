package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modsync/internal/core/domain"
)

func sampleLockFile() *domain.LockFile {
	lock := domain.NewLockFile("1.20.1", domain.LoaderFabric)
	lock.Pack = &domain.LockedPack{
		LockedMod: domain.LockedMod{
			Project: domain.ModrinthProject("pack"),
			Version: domain.ModrinthVersion("p1"),
			File:    domain.MustScopedPath("pack.mrpack"),
			SHA1:    "aa",
		},
		Overrides: map[domain.ScopedPath]string{
			domain.MustScopedPath("config/a.toml"): "bb",
		},
	}
	lock.Mods = []domain.LockedMod{
		{Project: domain.ModrinthProject("abc"), Version: domain.ModrinthVersion("v1"), File: domain.MustScopedPath("mods/abc.jar"), SHA1: "cc"},
		{Project: domain.CurseForgeProject(7), Version: domain.CurseForgeFile(70), File: domain.MustScopedPath("mods/cf.jar"), SHA1: "dd"},
		{Project: domain.GitHubProject{Owner: "o", Repo: "r"}, Version: domain.GitHubAsset(99), File: domain.MustScopedPath("mods/gh.jar"), SHA1: "ee"},
	}
	lock.Other[domain.MustScopedPath("mods/unknown.jar")] = "ff"
	lock.Outdated = []domain.LockedMod{
		{Project: domain.ModrinthProject("abc"), Version: domain.ModrinthVersion("v0"), File: domain.MustScopedPath("mods/abc-old.jar"), SHA1: "00"},
	}
	return lock
}

func TestLockFile_RoundTrip(t *testing.T) {
	lock := sampleLockFile()

	data, err := json.MarshalIndent(lock, "", "  ")
	require.NoError(t, err)

	var decoded domain.LockFile
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *lock, decoded)
}

func TestLockFile_RejectsDuplicateProjects(t *testing.T) {
	raw := `{
		"game_version": "1.20.1",
		"loader": "fabric",
		"mods": [
			{"modrinth": "abc", "version": "v1", "file": "mods/a.jar", "sha1": "00"},
			{"modrinth": "abc", "version": "v2", "file": "mods/b.jar", "sha1": "11"}
		],
		"other": {},
		"outdated": []
	}`

	var lock domain.LockFile
	err := json.Unmarshal([]byte(raw), &lock)
	require.ErrorIs(t, err, domain.ErrDuplicateLockedMod)
}

func TestLockFile_MissingCollectionsDefaultEmpty(t *testing.T) {
	var lock domain.LockFile
	require.NoError(t, json.Unmarshal([]byte(`{"game_version":"1.20.1"}`), &lock))

	assert.Equal(t, domain.LoaderUnknown, lock.Loader)
	assert.NotNil(t, lock.Mods)
	assert.NotNil(t, lock.Other)
	assert.NotNil(t, lock.Outdated)
	assert.True(t, lock.IsEmpty())
}

func TestLockFile_Slot(t *testing.T) {
	lock := sampleLockFile()

	assert.Equal(t, domain.PackSlot, lock.Slot(domain.ModrinthProject("pack")))
	assert.Equal(t, 1, lock.Slot(domain.CurseForgeProject(7)))
	assert.Equal(t, len(lock.Mods), lock.Slot(domain.ModrinthProject("missing")))
	assert.True(t, lock.IsStaged(domain.ModrinthProject("abc")))
	assert.False(t, lock.IsStaged(domain.CurseForgeProject(7)))
}

func TestLockFile_NeedsReset(t *testing.T) {
	lock := sampleLockFile()

	assert.False(t, lock.NeedsReset(&domain.ProfileData{GameVersion: "1.20.1", Loader: domain.LoaderFabric}))
	assert.True(t, lock.NeedsReset(&domain.ProfileData{GameVersion: "1.20.4", Loader: domain.LoaderFabric}))
	assert.True(t, lock.NeedsReset(&domain.ProfileData{GameVersion: "1.20.1", Loader: domain.LoaderForge}))

	empty := domain.NewLockFile("", domain.LoaderUnknown)
	assert.False(t, empty.NeedsReset(&domain.ProfileData{GameVersion: "1.21", Loader: domain.LoaderQuilt}))
}
