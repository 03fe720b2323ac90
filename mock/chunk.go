package mock

import (
	"context"

	"github.com/fwojciec/askdocs"
)

var _ askdocs.ChunkService = (*ChunkService)(nil)

// ChunkService is a mock implementation of askdocs.ChunkService.
type ChunkService struct {
	CreateChunksFn         func(ctx context.Context, chunks []*askdocs.Chunk) error
	FindChunkByIDFn        func(ctx context.Context, id string) (*askdocs.Chunk, error)
	FindChunksFn           func(ctx context.Context, filter askdocs.ChunkFilter) ([]*askdocs.Chunk, error)
	SearchChunksFn         func(ctx context.Context, embedding []float32, k int) ([]*askdocs.Chunk, error)
	DeleteChunksBySourceFn func(ctx context.Context, sourceURL string) error
	MetaFn                 func(ctx context.Context) (*askdocs.IndexMeta, error)
	WriteMetaFn            func(ctx context.Context, meta *askdocs.IndexMeta) error
}

func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*askdocs.Chunk) error {
	return s.CreateChunksFn(ctx, chunks)
}

func (s *ChunkService) FindChunkByID(ctx context.Context, id string) (*askdocs.Chunk, error) {
	return s.FindChunkByIDFn(ctx, id)
}

func (s *ChunkService) FindChunks(ctx context.Context, filter askdocs.ChunkFilter) ([]*askdocs.Chunk, error) {
	return s.FindChunksFn(ctx, filter)
}

func (s *ChunkService) SearchChunks(ctx context.Context, embedding []float32, k int) ([]*askdocs.Chunk, error) {
	return s.SearchChunksFn(ctx, embedding, k)
}

func (s *ChunkService) DeleteChunksBySource(ctx context.Context, sourceURL string) error {
	return s.DeleteChunksBySourceFn(ctx, sourceURL)
}

func (s *ChunkService) Meta(ctx context.Context) (*askdocs.IndexMeta, error) {
	return s.MetaFn(ctx)
}

func (s *ChunkService) WriteMeta(ctx context.Context, meta *askdocs.IndexMeta) error {
	return s.WriteMetaFn(ctx, meta)
}
