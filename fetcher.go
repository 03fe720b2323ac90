package askdocs

import "context"

// FetchResult holds the raw outcome of an HTTP fetch. Crawl and
// enrichment policy depend on the status code and content type, so the
// fetcher reports them instead of collapsing non-2xx responses into
// errors.
type FetchResult struct {
	StatusCode  int
	ContentType string
	Body        string
}

// Fetcher retrieves raw content from URLs.
type Fetcher interface {
	// Fetch performs a GET request with a bounded timeout.
	// Transport failures return an error; HTTP-level failures return a
	// FetchResult carrying the non-2xx status code.
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// IsHTML reports whether the result's content type is an HTML document.
func (r *FetchResult) IsHTML() bool {
	return hasMediaType(r.ContentType, "text/html") ||
		hasMediaType(r.ContentType, "application/xhtml+xml")
}

// OK reports whether the response status is in the 2xx range.
func (r *FetchResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func hasMediaType(contentType, mediaType string) bool {
	if len(contentType) < len(mediaType) {
		return false
	}
	if contentType[:len(mediaType)] != mediaType {
		return false
	}
	rest := contentType[len(mediaType):]
	return rest == "" || rest[0] == ';' || rest[0] == ' '
}
