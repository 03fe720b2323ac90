package mock

import (
	"context"

	"github.com/fwojciec/askdocs"
)

var _ askdocs.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of askdocs.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, text string) ([]float32, error)
	ModelFn func() string
	DimFn   func() int
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}

func (e *Embedder) Model() string {
	return e.ModelFn()
}

func (e *Embedder) Dim() int {
	return e.DimFn()
}
