// Package provider implements the Modrinth, CurseForge and GitHub catalog
// clients and the multi-provider client that fronts them.
package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	userAgent     = domain.AppName + "/1 (+https://go.trai.ch/modsync)"
	requestTimeout = 30 * time.Second
	retryCount    = 2
)

// Option configures a provider client during construction.
type Option func(*options)

type options struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// WithHTTPClient sets a custom HTTP client, useful for tests or proxy configurations.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithBaseURL overrides the API base URL, primarily for test servers.
func WithBaseURL(base string) Option {
	return func(o *options) {
		if base != "" {
			o.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithToken sets the credential sent with every request.
func WithToken(token string) Option {
	return func(o *options) {
		o.token = token
	}
}

func buildOptions(defaultBase string, opts []Option) options {
	o := options{baseURL: defaultBase}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// rest wraps a resty client with the error mapping shared by every back end.
type rest struct {
	client  *resty.Client
	service domain.Service
}

func newRest(service domain.Service, o options) *rest {
	var c *resty.Client
	if o.httpClient != nil {
		c = resty.NewWithClient(o.httpClient)
	} else {
		c = resty.New().SetTimeout(requestTimeout)
	}
	c.SetBaseURL(o.baseURL).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetRetryCount(retryCount)
	return &rest{client: c, service: service}
}

func (r *rest) request(ctx context.Context) *resty.Request {
	return r.client.R().SetContext(ctx)
}

func (r *rest) get(ctx context.Context, path string, query map[string]string, out any) error {
	resp, err := r.request(ctx).SetQueryParams(query).Get(path)
	return r.decode(path, resp, err, out)
}

func (r *rest) post(ctx context.Context, path string, body, out any) error {
	resp, err := r.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(path)
	return r.decode(path, resp, err, out)
}

func (r *rest) decode(path string, resp *resty.Response, err error, out any) error {
	if err != nil {
		return r.annotate(domain.Wrap(domain.ErrProviderRequest, err), path)
	}
	if err := r.checkStatus(path, resp); err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return r.annotate(domain.Wrap(domain.ErrProviderParse, err), path)
	}
	return nil
}

func (r *rest) checkStatus(path string, resp *resty.Response) error {
	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return r.annotate(domain.Wrap(domain.ErrDoesNotExist, nil), path)
	case isRateLimited(resp):
		err := zerr.With(domain.Wrap(domain.ErrProviderRequest, nil), "rate_limited", true)
		if reset, perr := strconv.ParseInt(resp.Header().Get("X-RateLimit-Reset"), 10, 64); perr == nil {
			err = zerr.With(err, "reset_at", time.Unix(reset, 0).UTC().Format(time.RFC3339))
		}
		return r.annotate(err, path)
	case resp.IsError():
		err := zerr.With(domain.Wrap(domain.ErrProviderRequest, nil), "status_code", resp.StatusCode())
		return r.annotate(err, path)
	}
	return nil
}

func (r *rest) annotate(err error, path string) error {
	return zerr.With(zerr.With(err, "service", r.service.String()), "path", path)
}

func isRateLimited(resp *resty.Response) bool {
	if resp.StatusCode() == http.StatusTooManyRequests {
		return true
	}
	remaining := resp.Header().Get("X-RateLimit-Remaining")
	return resp.StatusCode() == http.StatusForbidden && remaining == "0"
}

// jsonList renders ids as the JSON array some query parameters expect.
func jsonList(ids []string) string {
	data, _ := json.Marshal(ids) //nolint:errcheck // marshalling strings cannot fail
	return string(data)
}
