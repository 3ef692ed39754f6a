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

const cfFilesJSON = `{"data": [
	{"id": 10, "modId": 7, "displayName": "v1", "fileName": "cf-1.jar", "fileDate": "2023-01-01T00:00:00Z",
	 "fileLength": 3, "downloadUrl": "https://edge.example/cf-1.jar", "gameVersions": ["1.20.1", "Fabric", "Client"],
	 "hashes": [{"value": "ABCDEF", "algo": 1}, {"value": "md5", "algo": 2}]},
	{"id": 11, "modId": 7, "displayName": "v2", "fileName": "cf-2.jar", "fileDate": "2023-05-01T00:00:00Z",
	 "fileLength": 4, "downloadUrl": null, "gameVersions": ["1.20.1", "Fabric"],
	 "dependencies": [{"modId": 306612, "relationType": 3}]}
]}`

func newCurseForge(t *testing.T) *provider.CurseForge {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/mods/7", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"data": {"id": 7, "name": "CF Mod", "slug": "cf-mod", "classId": 6,
			"authors": [{"name": "alice"}], "links": {"websiteUrl": "https://cf.example/cf-mod"}, "downloadCount": 1234.0}}`)
	})
	mux.HandleFunc("GET /v1/mods/8", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"data": {"id": 8, "name": "CF Pack", "slug": "cf-pack", "classId": 4471}}`)
	})
	mux.HandleFunc("GET /v1/mods/7/files", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "4", r.URL.Query().Get("modLoaderType"))
		_, _ = io.WriteString(w, cfFilesJSON)
	})
	mux.HandleFunc("POST /v1/fingerprints/432", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Fingerprints []uint32 `json:"fingerprints"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []uint32{2824650221}, body.Fingerprints)
		_, _ = io.WriteString(w, `{"data": {"exactMatches": [{"id": 7, "file":
			{"id": 10, "modId": 7, "fileName": "cf-1.jar", "fileFingerprint": 2824650221}}]}}`)
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "secret" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	return provider.NewCurseForge(
		provider.WithBaseURL(srv.URL),
		provider.WithHTTPClient(srv.Client()),
		provider.WithToken("secret"),
	)
}

func TestCurseForge_GetMod(t *testing.T) {
	c := newCurseForge(t)
	ctx := context.Background()

	p, err := c.GetMod(ctx, domain.CurseForgeProject(7))
	require.NoError(t, err)
	assert.Equal(t, "CF Mod", p.Name)
	assert.Equal(t, []string{"alice"}, p.Authors)
	assert.Equal(t, int64(1234), p.Downloads)

	_, err = c.GetMod(ctx, domain.CurseForgeProject(8))
	require.ErrorIs(t, err, domain.ErrWrongType)

	pack, err := c.GetModpack(ctx, domain.CurseForgeProject(8))
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectTypeModpack, pack.Type)

	_, err = c.GetMod(ctx, domain.ModrinthProject("abc"))
	require.ErrorIs(t, err, domain.ErrWrongService)
}

func TestCurseForge_GetLatestWithoutDistribution(t *testing.T) {
	c := newCurseForge(t)

	v, err := c.GetLatest(context.Background(), domain.CurseForgeProject(7), "1.20.1", domain.LoaderFabric)
	require.NoError(t, err)
	assert.Equal(t, domain.CurseForgeFile(11), v.ID)
	assert.Empty(t, v.URL, "null download URL means distribution is denied")
	assert.Equal(t, []domain.Loader{domain.LoaderFabric}, v.Loaders)
	assert.Equal(t, []string{"1.20.1"}, v.GameVersions)

	versions, err := c.GetProjectVersions(context.Background(), domain.CurseForgeProject(7), "1.20.1", domain.LoaderFabric)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, "abcdef", versions[1].SHA1)
}

func TestCurseForge_LookupByFingerprint(t *testing.T) {
	c := newCurseForge(t)
	path := filepath.Join(t.TempDir(), "cf.jar")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o600))

	found, err := c.Lookup(context.Background(), []string{path})
	require.NoError(t, err)
	require.Contains(t, found, path)
	assert.Equal(t, domain.CurseForgeFile(10), found[path].ID)

	_, err = c.LookupHashes(context.Background(), []string{"00"})
	require.ErrorIs(t, err, domain.ErrUnsupported)
}

func TestCurseForge_MissingKeyIsRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := provider.NewCurseForge(provider.WithBaseURL(srv.URL), provider.WithHTTPClient(srv.Client()))
	_, err := c.GetMod(context.Background(), domain.CurseForgeProject(7))
	require.ErrorIs(t, err, domain.ErrProviderRequest)
}
