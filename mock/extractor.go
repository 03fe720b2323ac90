package mock

import "github.com/fwojciec/askdocs"

var _ askdocs.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of askdocs.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*askdocs.Extraction, error)
}

func (e *Extractor) Extract(html, pageURL string) (*askdocs.Extraction, error) {
	return e.ExtractFn(html, pageURL)
}
