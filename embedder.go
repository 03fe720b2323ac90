package askdocs

import "context"

// Embedder maps text into a fixed-dimension vector space. The same
// embedder must be used at build time and query time; Model and Dim
// identify the space so a store can reject mismatched indexes.
type Embedder interface {
	// Embed returns the embedding vector for the text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Model returns the identifier of the embedding model.
	Model() string

	// Dim returns the dimensionality of produced vectors.
	Dim() int
}
