package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/askdocs"
)

// Ensure LoggingChunkService implements askdocs.ChunkService.
var _ askdocs.ChunkService = (*LoggingChunkService)(nil)

// LoggingChunkService wraps a ChunkService with logging on the write and
// search paths.
type LoggingChunkService struct {
	next   askdocs.ChunkService
	logger *slog.Logger
}

// NewLoggingChunkService creates a new LoggingChunkService.
func NewLoggingChunkService(next askdocs.ChunkService, logger *slog.Logger) *LoggingChunkService {
	return &LoggingChunkService{next: next, logger: logger}
}

// CreateChunks delegates to the wrapped service and logs the operation.
func (s *LoggingChunkService) CreateChunks(ctx context.Context, chunks []*askdocs.Chunk) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create chunks",
			"count", len(chunks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateChunks(ctx, chunks)
}

func (s *LoggingChunkService) FindChunkByID(ctx context.Context, id string) (*askdocs.Chunk, error) {
	return s.next.FindChunkByID(ctx, id)
}

func (s *LoggingChunkService) FindChunks(ctx context.Context, filter askdocs.ChunkFilter) ([]*askdocs.Chunk, error) {
	return s.next.FindChunks(ctx, filter)
}

// SearchChunks delegates to the wrapped service and logs the operation.
func (s *LoggingChunkService) SearchChunks(ctx context.Context, embedding []float32, k int) (chunks []*askdocs.Chunk, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("search chunks",
			"k", k,
			"found", len(chunks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchChunks(ctx, embedding, k)
}

func (s *LoggingChunkService) DeleteChunksBySource(ctx context.Context, sourceURL string) error {
	return s.next.DeleteChunksBySource(ctx, sourceURL)
}

func (s *LoggingChunkService) Meta(ctx context.Context) (*askdocs.IndexMeta, error) {
	return s.next.Meta(ctx)
}

func (s *LoggingChunkService) WriteMeta(ctx context.Context, meta *askdocs.IndexMeta) error {
	return s.next.WriteMeta(ctx, meta)
}
