// Package http provides HTTP implementations of the askdocs fetching
// and serving surfaces: the page fetcher, sitemap discovery, and the
// chat server.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/askdocs"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements askdocs.Fetcher at compile time.
var _ askdocs.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves content from URLs using plain HTTP requests.
// It does not execute JavaScript; crawl and enrichment policy decide
// what to do with the returned status and content type.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the content at the given URL. Non-2xx responses are
// not errors; the status code is reported in the result for the caller
// to act on.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*askdocs.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &askdocs.FetchResult{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(body),
	}, nil
}
