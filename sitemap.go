package askdocs

import "context"

// SitemapService discovers URLs from website sitemaps.
type SitemapService interface {
	// DiscoverURLs finds all URLs advertised by a site's sitemap.
	// It first checks robots.txt for Sitemap directives, then falls back
	// to /sitemap.xml. Sitemap indexes are resolved recursively.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
