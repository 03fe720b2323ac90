package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/askdocs/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter_FirstRequestImmediate(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(1)

	start := time.Now()
	err := limiter.Wait(context.Background(), "example.com")
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestDomainLimiter_EnforcesRate(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(10) // 100ms between requests

	ctx := context.Background()
	require.NoError(t, limiter.Wait(ctx, "example.com"))

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx, "example.com"))

	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestDomainLimiter_DomainsAreIndependent(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(1)

	ctx := context.Background()
	require.NoError(t, limiter.Wait(ctx, "a.example.com"))

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx, "b.example.com"))

	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestDomainLimiter_ContextCancellation(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(0.1) // 10s between requests

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, limiter.Wait(context.Background(), "example.com"))

	err := limiter.Wait(ctx, "example.com")
	assert.Error(t, err)
}

func TestNewDomainLimiter_DefaultsRate(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(0)

	// Default politeness still allows an immediate first request.
	err := limiter.Wait(context.Background(), "example.com")
	assert.NoError(t, err)
}
