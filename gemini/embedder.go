package gemini

import (
	"context"

	"github.com/fwojciec/askdocs"
	"google.golang.org/genai"
)

const (
	embeddingModel = "gemini-embedding-001"
	embeddingDim   = 768
)

// Ensure Embedder implements askdocs.Embedder at compile time.
var _ askdocs.Embedder = (*Embedder)(nil)

// Embedder produces text embeddings using Google Gemini.
// The output dimensionality is fixed so that build-time and query-time
// vectors live in the same space.
type Embedder struct {
	client *genai.Client
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *genai.Client) *Embedder {
	return &Embedder{client: client}
}

// Embed returns the embedding vector for the text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, askdocs.Errorf(askdocs.EINVALID, "text required")
	}

	dim := int32(embeddingDim)
	result, err := e.client.Models.EmbedContent(ctx, embeddingModel,
		[]*genai.Content{
			genai.NewContentFromText(text, genai.RoleUser),
		},
		&genai.EmbedContentConfig{
			OutputDimensionality: &dim,
		},
	)
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, askdocs.Errorf(askdocs.EINTERNAL, "gemini returned no embeddings")
	}

	values := result.Embeddings[0].Values
	if len(values) != embeddingDim {
		return nil, askdocs.Errorf(askdocs.EINTERNAL,
			"expected %d-dimensional embedding, got %d", embeddingDim, len(values))
	}
	return values, nil
}

// Model returns the identifier of the embedding model.
func (e *Embedder) Model() string {
	return embeddingModel
}

// Dim returns the dimensionality of produced vectors.
func (e *Embedder) Dim() int {
	return embeddingDim
}
