package provider_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modsync/internal/adapters/provider"
	"go.trai.ch/modsync/internal/core/domain"
)

const mrVersionsJSON = `[
	{
		"id": "old", "project_id": "AABB", "name": "Old", "date_published": "2023-01-01T00:00:00Z",
		"game_versions": ["1.20.1"], "loaders": ["fabric"],
		"files": [{"hashes": {"sha1": "111"}, "url": "https://cdn.example/old.jar", "filename": "abc-old.jar", "primary": true, "size": 3}]
	},
	{
		"id": "new", "project_id": "AABB", "name": "New", "date_published": "2023-06-01T00:00:00Z",
		"game_versions": ["1.20.1"], "loaders": ["fabric", "quilt"],
		"files": [
			{"hashes": {"sha1": "999"}, "url": "https://cdn.example/sources.jar", "filename": "abc-sources.jar", "primary": false, "size": 1},
			{"hashes": {"sha1": "222"}, "url": "https://cdn.example/new.jar", "filename": "abc-new.jar", "primary": true, "size": 4}
		],
		"dependencies": [{"project_id": "fabric-api", "dependency_type": "required"}]
	},
	{
		"id": "forge", "project_id": "AABB", "name": "Forge", "date_published": "2023-07-01T00:00:00Z",
		"game_versions": ["1.20.1"], "loaders": ["forge"],
		"files": [{"hashes": {"sha1": "333"}, "url": "https://cdn.example/forge.jar", "filename": "abc-forge.jar", "primary": true, "size": 5}]
	}
]`

func newModrinthServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /project/abc", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"id":"AABB","slug":"abc","title":"ABC","project_type":"mod","downloads":10,"license":{"id":"MIT"}}`)
	})
	mux.HandleFunc("GET /project/pack", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"id":"PACK","slug":"pack","title":"Pack","project_type":"modpack"}`)
	})
	mux.HandleFunc("GET /project/abc/version", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, mrVersionsJSON)
	})
	mux.HandleFunc("GET /projects", func(w http.ResponseWriter, r *http.Request) {
		var ids []string
		require.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("ids")), &ids))
		assert.Equal(t, []string{"abc"}, ids)
		_, _ = io.WriteString(w, `[{"id":"AABB","slug":"abc","title":"ABC","project_type":"mod"}]`)
	})
	mux.HandleFunc("POST /version_files", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Hashes    []string `json:"hashes"`
			Algorithm string   `json:"algorithm"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "sha1", body.Algorithm)
		_, _ = io.WriteString(w, `{"2aae6c35c94fcfb415dbe95f408b9ce91ee846ed": {
			"id": "hv", "project_id": "HASHED", "name": "Hashed", "date_published": "2023-01-01T00:00:00Z",
			"files": [{"hashes": {"sha1": "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"}, "url": "https://cdn.example/h.jar", "filename": "h.jar", "primary": true, "size": 11}]
		}}`)
	})
	mux.HandleFunc("POST /version_files/update", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{
			"111": {"id": "new", "project_id": "AABB", "date_published": "2023-06-01T00:00:00Z",
				"files": [{"hashes": {"sha1": "222"}, "url": "https://cdn.example/new.jar", "filename": "abc-new.jar", "primary": true}]},
			"444": {"id": "same", "project_id": "CCDD", "date_published": "2023-06-01T00:00:00Z",
				"files": [{"hashes": {"sha1": "444"}, "url": "https://cdn.example/same.jar", "filename": "same.jar", "primary": true}]}
		}`)
	})
	mux.HandleFunc("GET /tag/game_version", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"version":"1.20.2","version_type":"release"},{"version":"23w40a","version_type":"snapshot"},{"version":"1.20.1","version_type":"release"}]`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newModrinth(t *testing.T) *provider.Modrinth {
	t.Helper()
	srv := newModrinthServer(t)
	return provider.NewModrinth(provider.WithBaseURL(srv.URL), provider.WithHTTPClient(srv.Client()))
}

func TestModrinth_GetModAndModpack(t *testing.T) {
	m := newModrinth(t)
	ctx := context.Background()

	p, err := m.GetMod(ctx, domain.ModrinthProject("abc"))
	require.NoError(t, err)
	assert.Equal(t, domain.ModrinthProject("AABB"), p.ID)
	assert.Equal(t, "ABC", p.Name)
	assert.Equal(t, "MIT", p.License)

	_, err = m.GetMod(ctx, domain.ModrinthProject("pack"))
	require.ErrorIs(t, err, domain.ErrWrongType)

	_, err = m.GetModpack(ctx, domain.ModrinthProject("abc"))
	require.ErrorIs(t, err, domain.ErrWrongType)

	_, err = m.GetMod(ctx, domain.ModrinthProject("missing"))
	require.ErrorIs(t, err, domain.ErrDoesNotExist)

	_, err = m.GetMod(ctx, domain.CurseForgeProject(1))
	require.ErrorIs(t, err, domain.ErrWrongService)
}

func TestModrinth_GetModsSkipsForeignIDs(t *testing.T) {
	m := newModrinth(t)

	projects, err := m.GetMods(context.Background(), []domain.ProjectID{
		domain.ModrinthProject("abc"),
		domain.CurseForgeProject(5),
	})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "abc", projects[0].Slug)
}

func TestModrinth_GetLatest(t *testing.T) {
	m := newModrinth(t)
	ctx := context.Background()

	v, err := m.GetLatest(ctx, domain.ModrinthProject("abc"), "1.20.1", domain.LoaderFabric)
	require.NoError(t, err)
	assert.Equal(t, domain.ModrinthVersion("new"), v.ID)
	assert.Equal(t, domain.ModrinthProject("abc"), v.Project, "result is keyed to the requested id")
	assert.Equal(t, "abc-new.jar", v.Filename.String())
	assert.Equal(t, "222", v.SHA1)
	require.Len(t, v.Dependencies, 1)
	assert.Equal(t, domain.DependencyRequired, v.Dependencies[0].Kind)

	v, err = m.GetLatest(ctx, domain.ModrinthProject("abc"), "1.20.1", domain.LoaderForge)
	require.NoError(t, err)
	assert.Equal(t, domain.ModrinthVersion("forge"), v.ID)

	_, err = m.GetLatest(ctx, domain.ModrinthProject("abc"), "1.19.2", domain.LoaderFabric)
	require.ErrorIs(t, err, domain.ErrMissingVersion)
}

func TestModrinth_GetUpdates(t *testing.T) {
	m := newModrinth(t)

	updates, err := m.GetUpdates(context.Background(), "1.20.1", domain.LoaderFabric, []domain.LockedMod{
		{Project: domain.ModrinthProject("abc"), Version: domain.ModrinthVersion("old"), SHA1: "111"},
		{Project: domain.ModrinthProject("CCDD"), Version: domain.ModrinthVersion("same"), SHA1: "444"},
		{Project: domain.CurseForgeProject(3), Version: domain.CurseForgeFile(4), SHA1: "555"},
	})
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, domain.ModrinthVersion("new"), updates[0].ID)
	assert.Equal(t, domain.ModrinthProject("abc"), updates[0].Project)
}

func TestModrinth_Lookup(t *testing.T) {
	m := newModrinth(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "mystery.jar")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o600))

	found, err := m.Lookup(context.Background(), []string{path})
	require.NoError(t, err)
	require.Contains(t, found, path)
	assert.Equal(t, domain.ModrinthVersion("hv"), found[path].ID)
}

func TestModrinth_GetGameVersions(t *testing.T) {
	versions, err := newModrinth(t).GetGameVersions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1.20.2", "1.20.1"}, versions)
}
