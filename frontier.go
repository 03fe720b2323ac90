package askdocs

import "context"

// URLFrontier manages a breadth-first crawl queue with deduplication.
// URLs are normalized (fragment stripped) before dedup, so a URL is
// queued at most once for the lifetime of the frontier.
type URLFrontier interface {
	// Push adds a URL to the back of the queue.
	// Returns false if the URL has already been seen.
	Push(url string) bool

	// Pop returns the oldest queued URL.
	// Returns false if the frontier is empty.
	Pop() (string, bool)

	// Len returns the number of URLs waiting in the queue.
	Len() int

	// Seen returns true if the URL has been queued or processed.
	Seen(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
