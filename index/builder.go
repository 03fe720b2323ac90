// Package index builds the searchable chunk index from crawled pages.
// It splits page text into fixed-size overlapping chunks, embeds every
// chunk with the query-time embedder, and persists the result together
// with the embedding-space metadata.
package index

import (
	"context"

	"github.com/fwojciec/askdocs"
)

// Builder orchestrates a corpus build.
type Builder struct {
	Embedder     askdocs.Embedder
	Chunks       askdocs.ChunkService
	TokenCounter askdocs.TokenCounter // optional; adds token stats when set
	ChunkSize    int
	ChunkOverlap int
}

// Result holds the outcome of a build operation.
type Result struct {
	Pages  int
	Chunks int
	Failed int
	Bytes  int
	Tokens int
}

// ProgressEvent reports progress during a build operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting build progress.
type ProgressFunc func(event ProgressEvent)

// Build chunks, embeds and persists the given pages. Pages that fail to
// embed are counted and skipped; the build continues. Empty pages
// produce no chunks. The embedding-space metadata is recorded before
// any chunks so a partially built index is still self-describing.
func (b *Builder) Build(ctx context.Context, pages []*askdocs.Page, progress ProgressFunc) (*Result, error) {
	size := b.ChunkSize
	if size <= 0 {
		size = askdocs.ChunkSize
	}
	overlap := b.ChunkOverlap
	if overlap < 0 {
		overlap = askdocs.ChunkOverlap
	}

	if err := b.Chunks.WriteMeta(ctx, &askdocs.IndexMeta{
		SchemaVersion:  askdocs.IndexSchemaVersion,
		EmbeddingModel: b.Embedder.Model(),
		EmbeddingDim:   b.Embedder.Dim(),
	}); err != nil {
		return nil, err
	}

	total := len(pages)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	var result Result
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return &result, err
		}

		chunks := askdocs.SplitPage(page, size, overlap)
		if len(chunks) == 0 {
			// Empty page; nothing to index.
			if progress != nil {
				progress(ProgressEvent{Type: ProgressCompleted, Completed: i + 1, Total: total, URL: page.URL})
			}
			continue
		}

		if err := b.embedChunks(ctx, chunks); err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Completed: i + 1, Total: total, URL: page.URL, Error: err})
			}
			continue
		}

		if err := b.Chunks.CreateChunks(ctx, chunks); err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Completed: i + 1, Total: total, URL: page.URL, Error: err})
			}
			continue
		}

		result.Pages++
		result.Chunks += len(chunks)
		result.Bytes += len(page.Text)
		if b.TokenCounter != nil {
			if tokens, err := b.TokenCounter.CountTokens(ctx, page.Text); err == nil {
				result.Tokens += tokens
			}
		}

		if progress != nil {
			progress(ProgressEvent{Type: ProgressCompleted, Completed: i + 1, Total: total, URL: page.URL})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return &result, nil
}

func (b *Builder) embedChunks(ctx context.Context, chunks []*askdocs.Chunk) error {
	for _, c := range chunks {
		embedding, err := b.Embedder.Embed(ctx, c.Content)
		if err != nil {
			return err
		}
		c.Embedding = embedding
	}
	return nil
}
