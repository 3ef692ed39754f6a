package app_test

import (
	"context"
	"crypto/sha1" //nolint:gosec // test fixture hashes
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modsync/internal/adapters/fs"
	"go.trai.ch/modsync/internal/adapters/logger"
	"go.trai.ch/modsync/internal/adapters/store"
	"go.trai.ch/modsync/internal/app"
	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports/mocks"
	"go.trai.ch/modsync/internal/engine/installer"
	"go.trai.ch/modsync/internal/engine/resolver"
	"go.trai.ch/modsync/internal/engine/updater"
	"go.uber.org/mock/gomock"
)

type harness struct {
	cfg     *domain.Config
	loader  *mocks.MockConfigLoader
	client  *mocks.MockProviderClient
	fetcher *mocks.MockFetcher
	log     *mocks.MockLogger
	store   *store.Store
	app     *app.App
	dir     string
}

func newHarness(t *testing.T, withProfile bool) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		cfg:     &domain.Config{CacheDir: t.TempDir(), Parallelism: 4},
		loader:  mocks.NewMockConfigLoader(ctrl),
		client:  mocks.NewMockProviderClient(ctrl),
		fetcher: mocks.NewMockFetcher(ctrl),
		log:     mocks.NewMockLogger(ctrl),
		store:   store.NewStore(),
		dir:     t.TempDir(),
	}
	h.log.EXPECT().Info(gomock.Any()).AnyTimes()

	if withProfile {
		require.NoError(t, h.cfg.AddProfile(domain.ProfileRef{Name: "main", Path: h.dir}))
		require.NoError(t, h.store.SaveProfile(h.dir, &domain.ProfileData{
			GameVersion: "1.20.1",
			Loader:      domain.LoaderFabric,
			Mods:        []domain.Mod{},
		}))
	}

	hasher := fs.NewHasher()
	inst := installer.New(h.client, h.fetcher, hasher, mocks.NewMockPackOpener(ctrl), h.store, resolver.New(hasher))
	h.app = app.New(h.cfg, h.loader, h.store, h.client, inst, updater.New(h.client), fs.NewWalker(), h.log,
		logger.NewRenderer(h.log))
	return h
}

func (h *harness) profile(t *testing.T) *domain.ProfileData {
	t.Helper()
	p, err := h.store.LoadProfile(h.dir)
	require.NoError(t, err)
	return p
}

func sum(content string) string {
	s := sha1.Sum([]byte(content)) //nolint:gosec // test fixture
	return hex.EncodeToString(s[:])
}

func TestApp_ApplyInstallsProfile(t *testing.T) {
	h := newHarness(t, true)

	h.client.EXPECT().GetMod(gomock.Any(), domain.ModrinthProject("abc")).
		Return(domain.Project{ID: domain.ModrinthProject("abc"), Name: "ABC", Type: domain.ProjectTypeMod}, nil)
	_, err := h.app.Add(context.Background(), "abc", "")
	require.NoError(t, err)

	h.client.EXPECT().GetLatest(gomock.Any(), domain.ModrinthProject("abc"), "1.20.1", domain.LoaderFabric).
		Return(domain.Version{
			ID:       domain.ModrinthVersion("v1"),
			Project:  domain.ModrinthProject("abc"),
			URL:      "https://cdn.example/abc.jar",
			Filename: domain.MustScopedPath("abc.jar"),
			SHA1:     sum("jar"),
			Length:   3,
		}, nil)
	h.fetcher.EXPECT().Fetch(gomock.Any(), "https://cdn.example/abc.jar").
		Return(io.NopCloser(strings.NewReader("jar")), int64(3), nil)

	res, err := h.app.Apply(context.Background(), app.ApplyOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Downloaded)

	lock, err := h.store.LoadLockFile(h.dir)
	require.NoError(t, err)
	require.Len(t, lock.Mods, 1)
	assert.Equal(t, "mods/abc.jar", lock.Mods[0].File.String())
	assert.FileExists(t, filepath.Join(h.dir, "mods", "abc.jar"))
}

func TestApp_NoProfiles(t *testing.T) {
	h := newHarness(t, false)

	_, err := h.app.Apply(context.Background(), app.ApplyOptions{})
	require.ErrorIs(t, err, domain.ErrNoProfiles)

	_, err = h.app.Update(context.Background())
	require.ErrorIs(t, err, domain.ErrNoProfiles)

	require.ErrorIs(t, h.app.Exclude("abc", true), domain.ErrNoProfiles)
}

func TestApp_AddRejectsModpack(t *testing.T) {
	h := newHarness(t, true)

	h.client.EXPECT().GetMod(gomock.Any(), domain.CurseForgeProject(42)).
		Return(domain.Project{}, domain.Wrap(domain.ErrWrongType, nil))

	_, err := h.app.Add(context.Background(), "42", "")
	require.ErrorIs(t, err, domain.ErrWrongType)
	assert.Empty(t, h.profile(t).Mods)
}

func TestApp_EditProfile(t *testing.T) {
	h := newHarness(t, true)

	h.client.EXPECT().GetMod(gomock.Any(), domain.GitHubProject{Owner: "o", Repo: "r"}).
		Return(domain.Project{ID: domain.GitHubProject{Owner: "o", Repo: "r"}, Type: domain.ProjectTypeMod}, nil)

	mod, err := h.app.Add(context.Background(), "o/r", "99")
	require.NoError(t, err)
	assert.Equal(t, domain.GitHubAsset(99), mod.Version)

	require.NoError(t, h.app.Pin("o/r", ""))
	assert.False(t, h.profile(t).Mods[0].Pinned())

	require.ErrorIs(t, h.app.Pin("o/r", "not-a-number"), domain.ErrInvalidIdentifier)

	require.NoError(t, h.app.Exclude("sodium", true))
	p := h.profile(t)
	require.Len(t, p.Mods, 2)
	assert.True(t, p.Mods[1].Exclude)

	_, err = h.app.Remove("o/r")
	require.NoError(t, err)
	_, err = h.app.Remove("o/r")
	require.ErrorIs(t, err, domain.ErrModNotFound)
}

func TestApp_SetModpack(t *testing.T) {
	h := newHarness(t, true)

	h.client.EXPECT().GetModpack(gomock.Any(), domain.ModrinthProject("fo")).
		Return(domain.Project{ID: domain.ModrinthProject("fo"), Name: "Fabulously Optimized", Type: domain.ProjectTypeModpack}, nil)

	pack, err := h.app.SetModpack(context.Background(), "fo", true)
	require.NoError(t, err)
	assert.True(t, pack.InstallOverrides)
	assert.Equal(t, "Fabulously Optimized", h.profile(t).Modpack.Name)

	_, err = h.app.SetModpack(context.Background(), "", false)
	require.NoError(t, err)
	assert.Nil(t, h.profile(t).Modpack)
}

func TestApp_UpdateThenRevert(t *testing.T) {
	h := newHarness(t, true)

	p := h.profile(t)
	p.Mods = []domain.Mod{{Project: domain.ModrinthProject("abc"), ProjectType: domain.ProjectTypeMod}}
	require.NoError(t, h.store.SaveProfile(h.dir, p))

	installed := domain.LockedMod{
		Project: domain.ModrinthProject("abc"),
		Version: domain.ModrinthVersion("v1"),
		File:    domain.MustScopedPath("mods/abc-1.jar"),
		SHA1:    "11",
	}
	lock := domain.NewLockFile("1.20.1", domain.LoaderFabric)
	lock.Mods = []domain.LockedMod{installed}
	require.NoError(t, h.store.SaveLockFile(h.dir, lock))

	h.client.EXPECT().GetUpdates(gomock.Any(), "1.20.1", domain.LoaderFabric, []domain.LockedMod{installed}).
		Return([]domain.Version{{
			ID:       domain.ModrinthVersion("v2"),
			Project:  domain.ModrinthProject("abc"),
			Filename: domain.MustScopedPath("abc-2.jar"),
			SHA1:     "22",
		}}, nil)

	changes, err := h.app.Update(context.Background())
	require.NoError(t, err)
	require.Len(t, changes, 1)

	staged, err := h.store.LoadLockFile(h.dir)
	require.NoError(t, err)
	assert.Equal(t, []domain.LockedMod{installed}, staged.Outdated)
	assert.Equal(t, "mods/abc-2.jar", staged.Mods[0].File.String())

	changes, err = h.app.Revert()
	require.NoError(t, err)
	require.Len(t, changes, 1)

	reverted, err := h.store.LoadLockFile(h.dir)
	require.NoError(t, err)
	assert.Equal(t, []domain.LockedMod{installed}, reverted.Mods)
	assert.Empty(t, reverted.Outdated)

	changes, err = h.app.Revert()
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestApp_UpdateBeforeApplyIsNoop(t *testing.T) {
	h := newHarness(t, true)
	h.log.EXPECT().Warn(gomock.Any())

	changes, err := h.app.Update(context.Background())
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestApp_Scan(t *testing.T) {
	h := newHarness(t, true)

	mods := filepath.Join(h.dir, "mods")
	require.NoError(t, os.MkdirAll(mods, 0o750))
	known := filepath.Join(mods, "known.jar")
	unknown := filepath.Join(mods, "unknown.jar")
	require.NoError(t, os.WriteFile(known, []byte("k"), 0o600))
	require.NoError(t, os.WriteFile(unknown, []byte("u"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(mods, "notes.txt"), []byte("n"), 0o600))

	h.client.EXPECT().Lookup(gomock.Any(), gomock.InAnyOrder([]string{known, unknown})).
		Return(map[string]domain.Version{
			known: {ID: domain.CurseForgeFile(10), Project: domain.CurseForgeProject(1)},
		}, nil)
	h.client.EXPECT().GetMods(gomock.Any(), []domain.ProjectID{domain.CurseForgeProject(1)}).
		Return([]domain.Project{{ID: domain.CurseForgeProject(1), Name: "Known", Slug: "known"}}, nil)
	h.log.EXPECT().Warn("unrecognised file " + unknown)

	added, err := h.app.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, "Known", added[0].Name)

	p := h.profile(t)
	require.Len(t, p.Mods, 1)
	assert.Equal(t, domain.CurseForgeProject(1), p.Mods[0].Project)
}

func TestApp_CreateAndSwitchProfile(t *testing.T) {
	h := newHarness(t, false)
	dir := filepath.Join(t.TempDir(), "instance")

	h.client.EXPECT().GetGameVersions(gomock.Any()).Return([]string{"1.21", "1.20.1"}, nil)
	h.loader.EXPECT().Save(h.cfg).Return(nil).Times(3)

	ref, err := h.app.CreateProfile(context.Background(), app.CreateProfileOptions{Name: "new", Path: dir, Loader: domain.LoaderQuilt})
	require.NoError(t, err)
	assert.Equal(t, "new", ref.Name)

	created, err := h.store.LoadProfile(dir)
	require.NoError(t, err)
	assert.Equal(t, "1.21", created.GameVersion)
	assert.Equal(t, domain.LoaderQuilt, created.Loader)

	_, err = h.app.CreateProfile(context.Background(), app.CreateProfileOptions{Name: "other", Path: h.dir, GameVersion: "1.20.1"})
	require.NoError(t, err)

	_, err = h.app.CreateProfile(context.Background(), app.CreateProfileOptions{Name: "new", Path: dir, GameVersion: "1.20.1"})
	require.ErrorIs(t, err, domain.ErrProfileExists)

	require.NoError(t, h.app.SwitchProfile("new"))
	profiles, active := h.app.Profiles()
	require.Len(t, profiles, 2)
	assert.Equal(t, 0, active)

	require.ErrorIs(t, h.app.SwitchProfile("missing"), domain.ErrUnknownProfile)
}

func TestApp_RendererFailureIsNotFatal(t *testing.T) {
	h := newHarness(t, true)
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	h.app.WithRenderer(renderer)

	renderer.EXPECT().Render(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, events <-chan domain.Event) error {
			for range events {
			}
			return errors.New("terminal went away")
		})
	h.log.EXPECT().Warn(gomock.Any())

	_, err := h.app.Apply(context.Background(), app.ApplyOptions{})
	require.NoError(t, err)
}

func TestApp_ProfileLocked(t *testing.T) {
	h := newHarness(t, true)

	release, err := h.store.Lock(h.dir)
	require.NoError(t, err)
	defer func() { _ = release() }()

	_, err = h.app.Revert()
	require.ErrorIs(t, err, domain.ErrProfileLocked)
}
