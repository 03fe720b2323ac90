package mock

import "github.com/fwojciec/askdocs"

var _ askdocs.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of askdocs.Summarizer.
type Summarizer struct {
	SummarizeFn func(url, html string) *askdocs.ScrapedSummary
}

func (s *Summarizer) Summarize(url, html string) *askdocs.ScrapedSummary {
	return s.SummarizeFn(url, html)
}
