// Package fetch streams artifact downloads over HTTP.
package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	userAgent    = domain.AppName + "/1 (+https://go.trai.ch/modsync)"
	retryCount   = 2
	retryWait    = 500 * time.Millisecond
	retryMaxWait = 3 * time.Second
)

var _ ports.Fetcher = (*Fetcher)(nil)

// Fetcher implements ports.Fetcher with a shared resty client.
type Fetcher struct {
	client *resty.Client
}

// New creates a Fetcher using the default HTTP transport.
func New() *Fetcher {
	return newFetcherWithClient(resty.New())
}

// NewWithHTTPClient creates a Fetcher on top of hc.
func NewWithHTTPClient(hc *http.Client) *Fetcher {
	return newFetcherWithClient(resty.NewWithClient(hc))
}

func newFetcherWithClient(c *resty.Client) *Fetcher {
	c.SetHeader("User-Agent", userAgent).
		SetRetryCount(retryCount).
		SetRetryWaitTime(retryWait).
		SetRetryMaxWaitTime(retryMaxWait)
	return &Fetcher{client: c}
}

// Fetch opens a streaming download of url. The caller closes the body.
// The returned length is -1 when the server does not announce it.
func (f *Fetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return nil, 0, zerr.With(domain.Wrap(domain.ErrDownloadFailed, err), "url", url)
	}

	body := resp.RawBody()
	if resp.StatusCode() != http.StatusOK {
		if body != nil {
			_ = body.Close()
		}
		return nil, 0, zerr.With(zerr.With(domain.Wrap(domain.ErrDownloadFailed, nil), "url", url), "status_code", resp.StatusCode())
	}

	return body, resp.RawResponse.ContentLength, nil
}
