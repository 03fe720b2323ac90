// Package mock provides function-field mock implementations of the
// askdocs service interfaces for use in tests.
package mock

import (
	"context"

	"github.com/fwojciec/askdocs"
)

var _ askdocs.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of askdocs.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*askdocs.FetchResult, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*askdocs.FetchResult, error) {
	return f.FetchFn(ctx, url)
}
