package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/askdocs"
)

// Ensure SitemapService implements askdocs.SitemapService.
var _ askdocs.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from website sitemaps via HTTP. It reads
// Sitemap: directives from robots.txt, falls back to /sitemap.xml, and
// resolves <sitemapindex> documents recursively.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP
// client. If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs finds all URLs advertised by a site's sitemaps. A baseURL
// with a non-root path (e.g. https://example.com/docs) restricts results
// to URLs under that path. Returns an empty slice, not nil, when the
// site has no sitemap.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, askdocs.Errorf(askdocs.EINVALID, "invalid base URL %q", baseURL)
	}

	root := *base
	root.Path = ""

	sitemaps, err := s.locateSitemaps(ctx, &root)
	if err != nil {
		return nil, err
	}
	if len(sitemaps) == 0 {
		return []string{}, nil
	}

	visited := make(map[string]bool)
	seen := make(map[string]bool)
	urls := []string{}
	for _, sm := range sitemaps {
		found, err := s.walkSitemap(ctx, sm, visited)
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			if !seen[u] && underPath(u, base.Path) {
				seen[u] = true
				urls = append(urls, u)
			}
		}
	}
	return urls, nil
}

// locateSitemaps finds the site's sitemap URLs: robots.txt directives
// first, then /sitemap.xml if it responds to a HEAD probe.
func (s *SitemapService) locateSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"})
	if sitemaps, err := s.sitemapsFromRobots(ctx, robots.String()); err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, fallback, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		return []string{fallback}, nil
	}
	return nil, nil
}

// sitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (s *SitemapService) sitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			continue
		}
		if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
			sitemaps = append(sitemaps, u)
		}
	}
	return sitemaps, scanner.Err()
}

// walkSitemap fetches a sitemap and returns its page URLs, recursing
// into sitemap indexes. Each sitemap URL is visited at most once.
func (s *SitemapService) walkSitemap(ctx context.Context, sitemapURL string, visited map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if visited[sitemapURL] {
		return nil, nil
	}
	visited[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML at %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, child := range locValues(root, "sitemap") {
			found, err := s.walkSitemap(ctx, child, visited)
			if err != nil {
				return nil, err
			}
			urls = append(urls, found...)
		}
		return urls, nil
	}

	return locValues(root, "url"), nil
}

// locValues collects non-empty <loc> values from the named children of
// a sitemap element.
func locValues(root *etree.Element, tag string) []string {
	var values []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// underPath reports whether a URL's path falls under the prefix,
// respecting path boundaries: /docs matches /docs/intro but not
// /documentation. An empty or root prefix matches everything.
func underPath(rawURL, prefix string) bool {
	if prefix == "" || prefix == "/" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(u.Path, prefix)
}

// get issues a GET and returns the body for 200 responses.
func (s *SitemapService) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}
