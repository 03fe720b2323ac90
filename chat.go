package askdocs

import "context"

// Default number of chunks retrieved per query.
const DefaultTopK = 3

// ChatRequest is a user question submitted to the chat endpoint.
type ChatRequest struct {
	Query string `json:"query"`
}

// Validate returns an error if the request is malformed.
func (r *ChatRequest) Validate() error {
	if r.Query == "" {
		return Errorf(EINVALID, "query required")
	}
	return nil
}

// ChatResult is the finalized answer to a chat request. ScrapedURLs
// lists the source URLs consulted during enrichment, in retrieval
// order; it is empty when the reply was casual conversation.
type ChatResult struct {
	Response    string   `json:"response"`
	ScrapedURLs []string `json:"scraped_urls"`
}

// ChatService answers documentation questions using retrieval-augmented
// generation.
type ChatService interface {
	Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error)
}
