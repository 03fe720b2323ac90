// Package goquery provides HTML content extraction using CSS selectors.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/askdocs"
)

// Compile-time interface verification.
var _ askdocs.Extractor = (*Extractor)(nil)

// Extractor pulls visible text and anchor links out of HTML pages.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the HTML and returns its visible text together with the
// URLs of its anchors. Anchors are resolved against pageURL, fragments
// are stripped, and non-HTTP schemes (javascript:, mailto:, tel:, data:)
// are skipped. Links are deduplicated in document order.
func (e *Extractor) Extract(html, pageURL string) (*askdocs.Extraction, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, askdocs.Errorf(askdocs.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, askdocs.Errorf(askdocs.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		if seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})

	return &askdocs.Extraction{
		Text:  visibleText(doc.Selection),
		Links: links,
	}, nil
}

// visibleText returns the text content of a selection with tag structure
// removed. Script, style and other non-rendered elements are dropped;
// lines are trimmed and blank lines collapsed.
func visibleText(sel *goquery.Selection) string {
	sel.Find("script, style, noscript, template").Remove()

	var lines []string
	for _, line := range strings.Split(sel.Text(), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or if the resolved URL
// is self-referential (same as base URL after stripping fragment).
// Fragments are stripped from the resolved URL for deduplication purposes.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = "" // Strip fragment for deduplication

	// Filter self-referential links (e.g., anchor-only links pointing to same page)
	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
