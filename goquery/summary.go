package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/askdocs"
)

var _ askdocs.Summarizer = (*Summarizer)(nil)

// Summarizer produces compact page snapshots for prompt context.
type Summarizer struct{}

// NewSummarizer creates a new Summarizer.
func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

// Summarize extracts the essentials of a page: the document title, h1
// then h2 headings capped at askdocs.MaxSummaryHeadings, and the visible
// text of the first of main, article or body capped at
// askdocs.MaxSummaryChars characters. Parse failures are reported inline
// via the Err field, never as an error.
func (s *Summarizer) Summarize(url, html string) *askdocs.ScrapedSummary {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return &askdocs.ScrapedSummary{URL: url, Err: err.Error()}
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	var headings []string
	for _, tag := range []string{"h1", "h2"} {
		doc.Find(tag).Each(func(_ int, sel *goquery.Selection) {
			if text := strings.TrimSpace(sel.Text()); text != "" {
				headings = append(headings, text)
			}
		})
	}
	if len(headings) > askdocs.MaxSummaryHeadings {
		headings = headings[:askdocs.MaxSummaryHeadings]
	}

	var summary string
	for _, selector := range []string{"main", "article", "body"} {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		summary = visibleText(sel)
		break
	}
	summary = askdocs.Truncate(summary, askdocs.MaxSummaryChars)

	return &askdocs.ScrapedSummary{
		URL:      url,
		Title:    title,
		Headings: headings,
		Summary:  summary,
	}
}
