package crawl

import (
	"strings"
	"sync"

	"github.com/fwojciec/askdocs"
	"github.com/fwojciec/askdocs/bloom"
)

// Compile-time interface verification.
var _ askdocs.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO URL frontier with Bloom filter
// deduplication, giving breadth-first crawl order.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.VisitedSet
	queue []string
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		seen: bloom.NewVisitedSet(n, fpRate),
	}
}

// Push adds a URL to the back of the queue.
// Returns false if the URL has already been seen.
// URL fragments are stripped before deduplication - URLs differing only
// by fragment are considered duplicates.
func (f *Frontier) Push(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(rawURL)
	if f.seen.Seen(url) {
		return false
	}
	f.seen.Mark(url)
	f.queue = append(f.queue, url)
	return true
}

// Pop returns the oldest queued URL.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been processed or queued.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Seen(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
