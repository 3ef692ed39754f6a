package resolver_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modsync/internal/adapters/fs"
	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports/mocks"
	"go.trai.ch/modsync/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

// SHA-1 of "hello world".
const helloSHA1 = "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func projects(targets []resolver.Target) []domain.ProjectID {
	out := make([]domain.ProjectID, 0, len(targets))
	for _, t := range targets {
		out = append(out, t.Project)
	}
	return out
}

func TestMerge_ExcludeBeatsPack(t *testing.T) {
	r := resolver.New(fs.NewHasher())
	profile := &domain.ProfileData{GameVersion: "1.20.1", Mods: []domain.Mod{
		{Project: domain.ModrinthProject("sodium"), Exclude: true},
	}}

	plan := r.Merge(resolver.Input{
		Profile: profile,
		Pack: []domain.PackEntry{
			{Project: domain.ModrinthProject("sodium"), Version: domain.ModrinthVersion("s1")},
			{Project: domain.ModrinthProject("lithium"), Version: domain.ModrinthVersion("l1")},
		},
		Root: t.TempDir(),
	})

	assert.Equal(t, []domain.ProjectID{domain.ModrinthProject("lithium")}, projects(plan.Versioned))
	assert.Empty(t, plan.Unversioned)
}

func TestMerge_ProfilePinOverridesPack(t *testing.T) {
	r := resolver.New(fs.NewHasher())
	profile := &domain.ProfileData{Mods: []domain.Mod{
		{Project: domain.ModrinthProject("sodium"), Version: domain.ModrinthVersion("s2"), ProjectType: domain.ProjectTypeMod},
		{Project: domain.ModrinthProject("lithium")},
	}}

	plan := r.Merge(resolver.Input{
		Profile: profile,
		Pack: []domain.PackEntry{
			{Project: domain.ModrinthProject("sodium"), Version: domain.ModrinthVersion("s1")},
			{Project: domain.ModrinthProject("lithium"), Version: domain.ModrinthVersion("l1"), Path: domain.MustScopedPath("mods/lithium.jar")},
		},
		Root: t.TempDir(),
	})

	require.Len(t, plan.Versioned, 2)
	byProject := map[domain.ProjectID]resolver.Target{}
	for _, target := range plan.Versioned {
		byProject[target.Project] = target
	}
	assert.Equal(t, domain.ModrinthVersion("s2"), byProject[domain.ModrinthProject("sodium")].Version)
	assert.False(t, byProject[domain.ModrinthProject("sodium")].FromPack)

	lithium := byProject[domain.ModrinthProject("lithium")]
	assert.Equal(t, domain.ModrinthVersion("l1"), lithium.Version)
	assert.True(t, lithium.FromPack)
	assert.Equal(t, "mods/lithium.jar", lithium.Path.String())
	assert.Empty(t, plan.Unversioned)
}

func TestMerge_LockfileActsAsCache(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "mods/abc.jar", "hello world")

	lock := domain.NewLockFile("1.20.1", domain.LoaderFabric)
	lock.Mods = []domain.LockedMod{
		{Project: domain.ModrinthProject("abc"), Version: domain.ModrinthVersion("v1"), File: domain.MustScopedPath("mods/abc.jar"), SHA1: helloSHA1},
		{Project: domain.ModrinthProject("gone"), Version: domain.ModrinthVersion("g1"), File: domain.MustScopedPath("mods/gone.jar"), SHA1: helloSHA1},
	}
	profile := &domain.ProfileData{Mods: []domain.Mod{{Project: domain.ModrinthProject("abc")}}}

	plan := resolver.New(fs.NewHasher()).Merge(resolver.Input{Profile: profile, Lock: lock, Root: root})

	assert.Empty(t, plan.Unversioned)
	assert.Empty(t, plan.Versioned)
	require.Len(t, plan.Installed, 1)
	assert.Equal(t, domain.ModrinthProject("abc"), plan.Installed[0].Project)
	assert.Equal(t, []domain.ScopedPath{domain.MustScopedPath("mods/gone.jar")}, plan.ToDelete)
}

func TestMerge_PinChangeReplacesLockedVersion(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "mods/abc-1.jar", "hello world")

	lock := domain.NewLockFile("1.20.1", domain.LoaderFabric)
	lock.Mods = []domain.LockedMod{
		{Project: domain.ModrinthProject("abc"), Version: domain.ModrinthVersion("v1"), File: domain.MustScopedPath("mods/abc-1.jar"), SHA1: helloSHA1},
	}
	profile := &domain.ProfileData{Mods: []domain.Mod{
		{Project: domain.ModrinthProject("abc"), Version: domain.ModrinthVersion("v2")},
	}}

	plan := resolver.New(fs.NewHasher()).Merge(resolver.Input{Profile: profile, Lock: lock, Root: root})

	require.Len(t, plan.Versioned, 1)
	assert.Equal(t, domain.ModrinthVersion("v2"), plan.Versioned[0].Version)
	assert.Empty(t, plan.Installed)
	assert.Equal(t, []domain.ScopedPath{domain.MustScopedPath("mods/abc-1.jar")}, plan.ToDelete)
}

func TestMerge_ResetForcesRefetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	hasher := mocks.NewMockHasher(ctrl)
	// A reset never consults the files on disk.
	hasher.EXPECT().Verify(gomock.Any(), gomock.Any()).Times(0)

	lock := domain.NewLockFile("1.19.2", domain.LoaderFabric)
	lock.Mods = []domain.LockedMod{
		{Project: domain.ModrinthProject("abc"), Version: domain.ModrinthVersion("v1"), File: domain.MustScopedPath("mods/abc.jar"), SHA1: helloSHA1},
	}
	profile := &domain.ProfileData{GameVersion: "1.20.1", Mods: []domain.Mod{{Project: domain.ModrinthProject("abc")}}}

	plan := resolver.New(hasher).Merge(resolver.Input{Profile: profile, Lock: lock, Reset: true, Root: t.TempDir()})

	assert.Empty(t, plan.Installed)
	assert.Equal(t, []domain.ProjectID{domain.ModrinthProject("abc")}, projects(plan.Unversioned))
	assert.Equal(t, []domain.ScopedPath{domain.MustScopedPath("mods/abc.jar")}, plan.ToDelete)
}

func TestMerge_StagedUpdateIsInstalled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "mods/abc-1.jar", "hello world")

	lock := domain.NewLockFile("1.20.1", domain.LoaderFabric)
	lock.Mods = []domain.LockedMod{
		{Project: domain.ModrinthProject("abc"), Version: domain.ModrinthVersion("v2"), File: domain.MustScopedPath("mods/abc-2.jar"), SHA1: "ff"},
	}
	lock.Outdated = []domain.LockedMod{
		{Project: domain.ModrinthProject("abc"), Version: domain.ModrinthVersion("v1"), File: domain.MustScopedPath("mods/abc-1.jar"), SHA1: helloSHA1},
	}
	profile := &domain.ProfileData{Mods: []domain.Mod{{Project: domain.ModrinthProject("abc")}}}

	plan := resolver.New(fs.NewHasher()).Merge(resolver.Input{Profile: profile, Lock: lock, Root: root})

	assert.Empty(t, plan.Unversioned)
	require.Len(t, plan.Versioned, 1)
	assert.Equal(t, domain.ModrinthVersion("v2"), plan.Versioned[0].Version)
	assert.ElementsMatch(t, []domain.ScopedPath{
		domain.MustScopedPath("mods/abc-2.jar"),
		domain.MustScopedPath("mods/abc-1.jar"),
	}, plan.ToDelete)
}

func TestMerge_KeptFilesAreNeverDeleted(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "mods/shared.jar", "hello world")

	lock := domain.NewLockFile("1.20.1", domain.LoaderFabric)
	lock.Mods = []domain.LockedMod{
		{Project: domain.ModrinthProject("abc"), Version: domain.ModrinthVersion("v1"), File: domain.MustScopedPath("mods/shared.jar"), SHA1: helloSHA1},
	}
	lock.Outdated = []domain.LockedMod{
		{Project: domain.ModrinthProject("xyz"), Version: domain.ModrinthVersion("x0"), File: domain.MustScopedPath("mods/shared.jar"), SHA1: "00"},
	}
	profile := &domain.ProfileData{Mods: []domain.Mod{{Project: domain.ModrinthProject("abc")}}}

	plan := resolver.New(fs.NewHasher()).Merge(resolver.Input{Profile: profile, Lock: lock, Root: root})

	require.Len(t, plan.Installed, 1)
	assert.Empty(t, plan.ToDelete)
}

func TestMerge_DuplicateProfileEntriesStayDisjoint(t *testing.T) {
	r := resolver.New(fs.NewHasher())
	profile := &domain.ProfileData{Mods: []domain.Mod{
		{Project: domain.ModrinthProject("abc")},
		{Project: domain.ModrinthProject("abc"), Version: domain.ModrinthVersion("v2")},
	}}

	plan := r.Merge(resolver.Input{Profile: profile, Root: t.TempDir()})

	assert.Equal(t, []domain.ProjectID{domain.ModrinthProject("abc")}, projects(plan.Unversioned))
	assert.Empty(t, plan.Versioned)
}
