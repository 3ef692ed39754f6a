package fetch_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modsync/internal/adapters/fetch"
	"go.trai.ch/modsync/internal/core/domain"
)

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.jar":
			w.Header().Set("Content-Length", "7")
			_, _ = io.WriteString(w, "payload")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := fetch.NewWithHTTPClient(srv.Client())

	body, length, err := f.Fetch(context.Background(), srv.URL+"/ok.jar")
	require.NoError(t, err)
	defer body.Close() //nolint:errcheck // test cleanup

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	assert.Equal(t, int64(7), length)
}

func TestFetcher_FetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, _, err := fetch.NewWithHTTPClient(srv.Client()).Fetch(context.Background(), srv.URL+"/missing.jar")
	require.ErrorIs(t, err, domain.ErrDownloadFailed)
}
