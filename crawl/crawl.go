// Package crawl provides breadth-first crawling of documentation sites.
// It coordinates frontier management, per-domain rate limiting, fetching
// and link discovery, producing the pages a corpus build chunks and
// indexes.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/fwojciec/askdocs"
	"golang.org/x/net/publicsuffix"
)

// Frontier configuration.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// DefaultMaxPages limits the number of pages fetched per crawl to
	// prevent runaway crawls.
	DefaultMaxPages = 1000
)

// Crawler performs breadth-first crawls of a documentation domain.
// Fetch failures never abort a crawl; every frontier URL yields a
// PageResult in the report.
type Crawler struct {
	Fetcher     askdocs.Fetcher
	Extractor   askdocs.Extractor
	Sitemaps    askdocs.SitemapService // optional; pre-seeds the frontier
	RateLimiter askdocs.DomainLimiter
	Concurrency int
}

// crawlResult is a worker's outcome for a single frontier URL.
type crawlResult struct {
	res   askdocs.PageResult
	links []string
}

// Crawl performs a breadth-first crawl starting from seedURL, visiting
// only URLs within the seed's registrable domain. At most maxPages URLs
// are fetched; each URL is fetched at most once. The progress callback,
// if provided, receives an event per processed URL.
func (c *Crawler) Crawl(ctx context.Context, seedURL string, maxPages int, progress askdocs.CrawlProgressFunc) (*askdocs.CrawlReport, error) {
	seed, err := url.Parse(seedURL)
	if err != nil {
		return nil, askdocs.Errorf(askdocs.EINVALID, "invalid seed URL %q", seedURL)
	}
	if seed.Scheme != "http" && seed.Scheme != "https" {
		return nil, askdocs.Errorf(askdocs.EINVALID, "seed URL must be http or https, got %q", seedURL)
	}
	domain := registrableDomain(seed.Hostname())

	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(seedURL)
	c.seedFromSitemap(ctx, seedURL, domain, frontier)

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	workCh := make(chan string, concurrency)
	resultCh := make(chan crawlResult)

	var wg sync.WaitGroup
	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range workCh {
				result := c.processURL(ctx, u)
				select {
				case resultCh <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	report := &askdocs.CrawlReport{}
	fetched := 0 // URLs dispatched to workers
	pending := 0 // URLs currently being processed
	var next string
	haveNext := false

	handleResult := func(r crawlResult) {
		report.Results = append(report.Results, r.res)
		queued := 0
		for _, link := range r.links {
			if !sameDomain(link, domain) {
				continue
			}
			if frontier.Push(link) {
				queued++
			}
		}
		if progress != nil {
			progress(askdocs.CrawlProgress{
				URL:     r.res.URL,
				Fetched: len(report.Results),
				Queued:  frontier.Len(),
				Skip:    r.res.Skip,
			})
		}
	}

	if u, ok := frontier.Pop(); ok {
		next, haveNext = u, true
	}

coordinatorLoop:
	for {
		if !haveNext && pending == 0 {
			break coordinatorLoop
		}
		if ctx.Err() != nil {
			break coordinatorLoop
		}

		if haveNext && fetched < maxPages {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case workCh <- next:
				fetched++
				pending++
				haveNext = false
			case r := <-resultCh:
				pending--
				handleResult(r)
			}
		} else {
			if pending == 0 {
				// Page cap reached with no work in flight.
				break coordinatorLoop
			}
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case r, ok := <-resultCh:
				if !ok {
					break coordinatorLoop
				}
				pending--
				handleResult(r)
			}
		}

		if !haveNext && fetched < maxPages {
			if u, ok := frontier.Pop(); ok {
				next, haveNext = u, true
			}
		}
	}

	close(workCh)

	// Drain results from workers that were mid-flight at cancellation.
	for r := range resultCh {
		handleResult(r)
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// seedFromSitemap pushes sitemap-advertised URLs within the crawl domain
// onto the frontier. Sitemap failures are ignored; the breadth-first
// crawl from the seed still discovers pages through links.
func (c *Crawler) seedFromSitemap(ctx context.Context, seedURL, domain string, frontier *Frontier) {
	if c.Sitemaps == nil {
		return
	}
	urls, err := c.Sitemaps.DiscoverURLs(ctx, seedURL)
	if err != nil {
		return
	}
	for _, u := range urls {
		if sameDomain(u, domain) {
			frontier.Push(u)
		}
	}
}

// processURL fetches a single URL and classifies the outcome.
func (c *Crawler) processURL(ctx context.Context, rawURL string) crawlResult {
	result := crawlResult{res: askdocs.PageResult{URL: rawURL}}

	u, err := url.Parse(rawURL)
	if err != nil {
		result.res.Skip = askdocs.SkipInvalidURL
		result.res.Detail = err.Error()
		return result
	}

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			result.res.Skip = askdocs.SkipFetchError
			result.res.Detail = err.Error()
			return result
		}
	}

	res, err := c.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		result.res.Skip = askdocs.SkipFetchError
		result.res.Detail = err.Error()
		return result
	}
	if !res.OK() {
		result.res.Skip = askdocs.SkipBadStatus
		result.res.Detail = fmt.Sprintf("status %d", res.StatusCode)
		return result
	}
	if !res.IsHTML() {
		result.res.Skip = askdocs.SkipNotHTML
		result.res.Detail = res.ContentType
		return result
	}

	ex, err := c.Extractor.Extract(res.Body, rawURL)
	if err != nil {
		result.res.Skip = askdocs.SkipFetchError
		result.res.Detail = err.Error()
		return result
	}

	result.res.Page = &askdocs.Page{URL: rawURL, Text: ex.Text}
	result.links = ex.Links
	return result
}

// registrableDomain returns the eTLD+1 for a hostname, falling back to
// the hostname itself for hosts without one (IPs, localhost).
func registrableDomain(host string) string {
	d, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return d
}

// sameDomain reports whether a URL belongs to the crawl's registrable
// domain.
func sameDomain(rawURL, domain string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return registrableDomain(u.Hostname()) == domain
}
