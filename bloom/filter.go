// Package bloom provides a probabilistic visited-URL set for crawling.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// VisitedSet tracks URLs a crawl has already seen. It is backed by a
// Bloom filter: Seen may report a false positive (causing a URL to be
// skipped) but never a false negative, so a URL is fetched at most once.
type VisitedSet struct {
	f *bloom.BloomFilter
}

// NewVisitedSet creates a set sized for n expected URLs with the given
// false positive rate.
func NewVisitedSet(n uint, fpRate float64) *VisitedSet {
	return &VisitedSet{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Mark records a URL as seen.
func (s *VisitedSet) Mark(url string) {
	s.f.AddString(url)
}

// Seen returns true if the URL might have been marked.
// False positives are possible; false negatives are not.
func (s *VisitedSet) Seen(url string) bool {
	return s.f.TestString(url)
}

// EstimatedCount returns the approximate number of URLs marked.
func (s *VisitedSet) EstimatedCount() uint {
	return uint(s.f.ApproximatedSize())
}
