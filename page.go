package askdocs

// Page represents a crawled documentation page. Pages are an intermediate
// product of corpus builds; once split into chunks they are discarded.
type Page struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// SkipReason classifies why a crawled URL produced no page.
type SkipReason string

// Skip reasons recorded in a CrawlReport.
const (
	SkipFetchError SkipReason = "fetch_error"
	SkipBadStatus  SkipReason = "bad_status"
	SkipNotHTML    SkipReason = "not_html"
	SkipInvalidURL SkipReason = "invalid_url"
)

// PageResult is the outcome of processing a single frontier URL.
// A nil Page means the URL was skipped for the recorded reason;
// Detail carries the underlying error text or status line, if any.
type PageResult struct {
	URL    string     `json:"url"`
	Page   *Page      `json:"page,omitempty"`
	Skip   SkipReason `json:"skip,omitempty"`
	Detail string     `json:"detail,omitempty"`
}

// CrawlReport collects per-URL outcomes of a crawl run in fetch order.
// Individual fetch failures never abort a crawl; they are recorded here
// so callers can see what was skipped and why.
type CrawlReport struct {
	Results []PageResult `json:"results"`
}

// Pages returns the successfully fetched pages in fetch order.
func (r *CrawlReport) Pages() []*Page {
	var pages []*Page
	for _, res := range r.Results {
		if res.Page != nil {
			pages = append(pages, res.Page)
		}
	}
	return pages
}

// Skipped returns the results that produced no page.
func (r *CrawlReport) Skipped() []PageResult {
	var skipped []PageResult
	for _, res := range r.Results {
		if res.Page == nil {
			skipped = append(skipped, res)
		}
	}
	return skipped
}

// CrawlProgress reports progress during a crawl.
type CrawlProgress struct {
	URL     string
	Fetched int
	Queued  int
	Skip    SkipReason
	Err     error
}

// CrawlProgressFunc is called as frontier URLs are processed.
type CrawlProgressFunc func(CrawlProgress)
