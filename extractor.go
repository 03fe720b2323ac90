package askdocs

// Extraction holds the content pulled from a fetched HTML page: the
// visible text (tag structure removed) and the absolute URLs of its
// anchors, resolved against the page URL with fragments stripped.
type Extraction struct {
	Text  string
	Links []string
}

// Extractor extracts visible text and links from HTML.
type Extractor interface {
	Extract(html, pageURL string) (*Extraction, error)
}
