package askdocs

import "context"

// Default chunking parameters for corpus builds.
const (
	ChunkSize    = 1000
	ChunkOverlap = 200
)

// Chunk represents a fixed-size window of page text optimized for
// embedding and retrieval.
type Chunk struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	Position    int       `json:"position"` // index within the source page
	Embedding   []float32 `json:"embedding,omitempty"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.SourceURL == "" {
		return Errorf(EINVALID, "chunk source URL required")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	if c.Position < 0 {
		return Errorf(EINVALID, "chunk position must be non-negative")
	}
	return nil
}

// IndexSchemaVersion is the current version of the persisted index
// layout. Stored in the index metadata and checked before payloads are
// trusted.
const IndexSchemaVersion = 1

// IndexMeta describes the embedding space an index was built in.
// Stored alongside the chunks and validated before serving queries so
// that query vectors and stored vectors are never compared across
// models or dimensions.
type IndexMeta struct {
	SchemaVersion  int    `json:"schemaVersion"`
	EmbeddingModel string `json:"embeddingModel"`
	EmbeddingDim   int    `json:"embeddingDim"`
}

// Validate checks the index metadata against the configured embedding
// space. Returns EINVALID if the schema version or embedding fingerprint
// does not match.
func (m *IndexMeta) Validate(model string, dim int) error {
	if m.SchemaVersion != IndexSchemaVersion {
		return Errorf(EINVALID, "unsupported index schema version %d (want %d)", m.SchemaVersion, IndexSchemaVersion)
	}
	if m.EmbeddingModel != model {
		return Errorf(EINVALID, "index was built with embedding model %q, configured model is %q", m.EmbeddingModel, model)
	}
	if m.EmbeddingDim != dim {
		return Errorf(EINVALID, "index embedding dimension %d does not match configured dimension %d", m.EmbeddingDim, dim)
	}
	return nil
}

// ChunkService represents a service for storing and searching chunks.
type ChunkService interface {
	// CreateChunks persists chunks in a batch.
	CreateChunks(ctx context.Context, chunks []*Chunk) error

	// FindChunkByID retrieves a chunk by ID.
	// Returns ENOTFOUND if the chunk does not exist.
	FindChunkByID(ctx context.Context, id string) (*Chunk, error)

	// FindChunks retrieves chunks matching the filter.
	FindChunks(ctx context.Context, filter ChunkFilter) ([]*Chunk, error)

	// SearchChunks returns the k stored chunks most similar to the
	// embedding, ordered by descending inner product with insertion
	// order breaking ties. Returns EUNAVAILABLE if no index has been
	// built.
	SearchChunks(ctx context.Context, embedding []float32, k int) ([]*Chunk, error)

	// DeleteChunksBySource removes all chunks for a source URL.
	DeleteChunksBySource(ctx context.Context, sourceURL string) error

	// Meta returns the index metadata recorded at build time.
	// Returns EUNAVAILABLE if no index has been built.
	Meta(ctx context.Context) (*IndexMeta, error)

	// WriteMeta records index metadata for a build.
	WriteMeta(ctx context.Context, meta *IndexMeta) error
}

// ChunkFilter represents a filter for FindChunks.
type ChunkFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SplitText splits text into fixed-size character windows with overlap.
// The final window may be shorter; empty text produces no windows.
// Concatenating the windows with the overlapping prefixes removed
// reproduces the input exactly.
func SplitText(text string, size, overlap int) []string {
	if text == "" || size <= 0 {
		return nil
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	step := size - overlap
	var out []string
	for start := 0; start < len(text); start += step {
		end := start + size
		if end > len(text) {
			end = len(text)
		}
		out = append(out, text[start:end])
		if end == len(text) {
			break
		}
	}
	return out
}

// SplitPage splits a page's text into chunks carrying the page URL as
// source metadata. An empty page produces no chunks.
func SplitPage(page *Page, size, overlap int) []*Chunk {
	windows := SplitText(page.Text, size, overlap)
	chunks := make([]*Chunk, 0, len(windows))
	for i, w := range windows {
		chunks = append(chunks, &Chunk{
			SourceURL: page.URL,
			Content:   w,
			Position:  i,
		})
	}
	return chunks
}
