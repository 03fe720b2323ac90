// Package chat implements the retrieval-augmented query pipeline: embed
// the question, retrieve the closest indexed chunks, enrich them with a
// live scrape of their source pages, compose the generation prompt, and
// finalize the model's reply.
package chat

import (
	"context"

	"github.com/fwojciec/askdocs"
	"golang.org/x/sync/errgroup"
)

// Compile-time interface verification.
var _ askdocs.ChatService = (*Service)(nil)

// Service answers documentation questions.
type Service struct {
	Embedder   askdocs.Embedder
	Chunks     askdocs.ChunkService
	Fetcher    askdocs.Fetcher
	Summarizer askdocs.Summarizer
	Generator  askdocs.Generator
	K          int // retrieved chunks per query; defaults to askdocs.DefaultTopK
}

// Chat runs the full query pipeline. Enrichment failures are recorded
// inline in the prompt context and never fail the request; embedding,
// retrieval and generation failures do.
func (s *Service) Chat(ctx context.Context, req *askdocs.ChatRequest) (*askdocs.ChatResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	embedding, err := s.Embedder.Embed(ctx, req.Query)
	if err != nil {
		return nil, err
	}

	k := s.K
	if k <= 0 {
		k = askdocs.DefaultTopK
	}
	chunks, err := s.Chunks.SearchChunks(ctx, embedding, k)
	if err != nil {
		return nil, err
	}

	// Chunks without a source URL cannot be enriched or cited.
	urls := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if c.SourceURL != "" {
			urls = append(urls, c.SourceURL)
		}
	}

	summaries := s.enrichAll(ctx, urls)

	prompt := askdocs.BuildPrompt(req.Query, summaries)
	reply, err := s.Generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	scraped := urls
	if askdocs.IsCasual(reply) {
		scraped = []string{}
	}

	return &askdocs.ChatResult{
		Response:    askdocs.StripSentinels(reply),
		ScrapedURLs: scraped,
	}, nil
}

// enrichAll scrapes every source URL concurrently. Results land in
// pre-sized slots so summaries keep retrieval order regardless of
// completion order.
func (s *Service) enrichAll(ctx context.Context, urls []string) []*askdocs.ScrapedSummary {
	summaries := make([]*askdocs.ScrapedSummary, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	for i, url := range urls {
		g.Go(func() error {
			summaries[i] = s.enrich(gctx, url)
			return nil
		})
	}
	_ = g.Wait()

	return summaries
}

// enrich scrapes a single page. Every failure mode produces a summary
// with the Err marker set; the URL stays cited either way.
func (s *Service) enrich(ctx context.Context, url string) *askdocs.ScrapedSummary {
	res, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return &askdocs.ScrapedSummary{URL: url, Err: err.Error()}
	}
	if !res.OK() {
		return &askdocs.ScrapedSummary{URL: url, Err: "Failed to retrieve page"}
	}
	return s.Summarizer.Summarize(url, res.Body)
}
