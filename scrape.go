package askdocs

// Limits applied when summarizing a live page for prompt context.
const (
	MaxSummaryHeadings = 5
	MaxSummaryChars    = 1000
)

// ScrapedSummary is a compact snapshot of a live page used to enrich
// retrieved chunks. It is ephemeral and never persisted. Err carries an
// inline failure marker when the page could not be retrieved or parsed;
// in that case the other fields are empty.
type ScrapedSummary struct {
	URL      string   `json:"URL"`
	Title    string   `json:"Title,omitempty"`
	Headings []string `json:"Headings,omitempty"`
	Summary  string   `json:"Summary,omitempty"`
	Err      string   `json:"error,omitempty"`
}

// Summarizer produces a ScrapedSummary from a page's HTML: the document
// title, h1 then h2 headings capped at MaxSummaryHeadings, and the
// visible text of the first of main, article or body capped at
// MaxSummaryChars characters.
type Summarizer interface {
	Summarize(url, html string) *ScrapedSummary
}
