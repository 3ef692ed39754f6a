package ports

import (
	"context"
	"io"
)

// Fetcher streams artifact bytes from a download URL.
//
//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch opens url and returns its body and the advertised length (-1 when unknown).
	// The caller closes the body.
	Fetch(ctx context.Context, url string) (io.ReadCloser, int64, error)
}
