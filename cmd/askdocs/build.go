package main

import (
	"fmt"

	"github.com/fwojciec/askdocs"
	"github.com/fwojciec/askdocs/crawl"
	"github.com/fwojciec/askdocs/index"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	// Apply user-specified concurrency
	if c.Concurrency > 0 {
		deps.Crawler.Concurrency = c.Concurrency
	}

	fmt.Fprintf(deps.Stdout, "Crawling %s\n", c.URL)

	crawlProgress := func(p askdocs.CrawlProgress) {
		if p.Skip != "" {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", crawl.TruncateURL(p.URL, 60), p.Skip)
			return
		}
		fmt.Fprintf(deps.Stdout, "\r  [%d] %s (queued %d)   ", p.Fetched, crawl.TruncateURL(p.URL, 60), p.Queued)
	}

	report, err := deps.Crawler.Crawl(deps.Ctx, c.URL, c.MaxPages, crawlProgress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %s\n", askdocs.ErrorMessage(err))
		return err
	}

	pages := report.Pages()
	fmt.Fprintf(deps.Stdout, "\nCrawled %d pages (%d skipped)\n", len(pages), len(report.Skipped()))

	if len(pages) == 0 {
		return askdocs.Errorf(askdocs.ENOTFOUND, "no pages found at %q", c.URL)
	}

	// Replaces any previous index for these pages.
	for _, page := range pages {
		if err := deps.Chunks.DeleteChunksBySource(deps.Ctx, page.URL); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", askdocs.ErrorMessage(err))
			return err
		}
	}

	buildProgress := func(event index.ProgressEvent) {
		switch event.Type {
		case index.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Indexing %d pages\n", event.Total)
		case index.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "\r  [%d/%d] %s   ", event.Completed, event.Total, crawl.TruncateURL(event.URL, 60))
		case index.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", crawl.TruncateURL(event.URL, 60), event.Error)
		case index.ProgressFinished:
			fmt.Fprintln(deps.Stdout)
		}
	}

	result, err := deps.Builder.Build(deps.Ctx, pages, buildProgress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error indexing: %s\n", askdocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d chunks from %d pages (%s, %s)\n",
		result.Chunks, result.Pages, crawl.FormatBytes(result.Bytes), crawl.FormatTokens(result.Tokens))
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "  %d pages failed to index\n", result.Failed)
	}

	return nil
}
