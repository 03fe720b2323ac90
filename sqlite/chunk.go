package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/askdocs"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ askdocs.ChunkService = (*ChunkService)(nil)

// ChunkService implements askdocs.ChunkService using SQLite. Vector
// search is a brute-force inner-product scan over the stored
// embeddings; insertion order (rowid) breaks score ties so results are
// deterministic for a given index state.
type ChunkService struct {
	db *DB
}

// NewChunkService creates a new ChunkService.
func NewChunkService(db *DB) *ChunkService {
	return &ChunkService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, h)
	return hex.EncodeToString(b)
}

// encodeEmbedding serializes a vector as little-endian float32 bytes.
func encodeEmbedding(v []float32) []byte {
	b := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(f))
	}
	return b
}

// decodeEmbedding deserializes a vector stored by encodeEmbedding.
func decodeEmbedding(b []byte) []float32 {
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}

// CreateChunks persists chunks in a single transaction. IDs and content
// hashes are assigned here; a chunk without an embedding is rejected.
func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*askdocs.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	for _, c := range chunks {
		if err := c.Validate(); err != nil {
			return err
		}
		if len(c.Embedding) == 0 {
			return askdocs.Errorf(askdocs.EINVALID, "chunk embedding required")
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, c := range chunks {
		c.ID = uuid.New().String()
		c.ContentHash = hashContent(c.Content)

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO chunks (id, source_url, content, content_hash, position, embedding, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, c.ID, c.SourceURL, c.Content, c.ContentHash, c.Position, encodeEmbedding(c.Embedding), now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindChunkByID retrieves a chunk by ID.
func (s *ChunkService) FindChunkByID(ctx context.Context, id string) (*askdocs.Chunk, error) {
	var c askdocs.Chunk
	var embedding []byte

	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, content, content_hash, position, embedding
		FROM chunks
		WHERE id = ?
	`, id).Scan(&c.ID, &c.SourceURL, &c.Content, &c.ContentHash, &c.Position, &embedding)

	if err == sql.ErrNoRows {
		return nil, askdocs.Errorf(askdocs.ENOTFOUND, "chunk not found")
	}
	if err != nil {
		return nil, err
	}

	c.Embedding = decodeEmbedding(embedding)
	return &c, nil
}

// FindChunks retrieves chunks matching the filter in insertion order.
func (s *ChunkService) FindChunks(ctx context.Context, filter askdocs.ChunkFilter) ([]*askdocs.Chunk, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, content, content_hash, position, embedding FROM chunks WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY rowid ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []*askdocs.Chunk
	for rows.Next() {
		var c askdocs.Chunk
		var embedding []byte
		if err := rows.Scan(&c.ID, &c.SourceURL, &c.Content, &c.ContentHash, &c.Position, &embedding); err != nil {
			return nil, err
		}
		c.Embedding = decodeEmbedding(embedding)
		chunks = append(chunks, &c)
	}

	return chunks, rows.Err()
}

// SearchChunks returns the k stored chunks with the highest inner
// product against the query embedding. Ties are broken by rowid, i.e.
// insertion order, so identical index states produce identical results.
func (s *ChunkService) SearchChunks(ctx context.Context, embedding []float32, k int) ([]*askdocs.Chunk, error) {
	if len(embedding) == 0 {
		return nil, askdocs.Errorf(askdocs.EINVALID, "query embedding required")
	}
	if k <= 0 {
		return nil, askdocs.Errorf(askdocs.EINVALID, "k must be positive")
	}

	meta, err := s.Meta(ctx)
	if err != nil {
		return nil, err
	}
	if meta.EmbeddingDim != len(embedding) {
		return nil, askdocs.Errorf(askdocs.EINVALID,
			"query embedding dimension %d does not match index dimension %d", len(embedding), meta.EmbeddingDim)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_url, content, content_hash, position, embedding
		FROM chunks
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type scored struct {
		chunk *askdocs.Chunk
		score float32
	}
	var results []scored
	for rows.Next() {
		var c askdocs.Chunk
		var blob []byte
		if err := rows.Scan(&c.ID, &c.SourceURL, &c.Content, &c.ContentHash, &c.Position, &blob); err != nil {
			return nil, err
		}
		c.Embedding = decodeEmbedding(blob)
		results = append(results, scored{chunk: &c, score: dot(embedding, c.Embedding)})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if k > len(results) {
		k = len(results)
	}
	chunks := make([]*askdocs.Chunk, 0, k)
	for _, r := range results[:k] {
		chunks = append(chunks, r.chunk)
	}
	return chunks, nil
}

// DeleteChunksBySource removes all chunks for a source URL.
func (s *ChunkService) DeleteChunksBySource(ctx context.Context, sourceURL string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE source_url = ?", sourceURL)
	return err
}

// Meta returns the index metadata recorded at build time.
func (s *ChunkService) Meta(ctx context.Context) (*askdocs.IndexMeta, error) {
	var meta askdocs.IndexMeta

	err := s.db.QueryRowContext(ctx, `
		SELECT schema_version, embedding_model, embedding_dim
		FROM index_meta
		WHERE id = 1
	`).Scan(&meta.SchemaVersion, &meta.EmbeddingModel, &meta.EmbeddingDim)

	if err == sql.ErrNoRows {
		return nil, askdocs.Errorf(askdocs.EUNAVAILABLE, "no index has been built")
	}
	if err != nil {
		return nil, err
	}

	return &meta, nil
}

// WriteMeta records index metadata for a build, replacing any previous
// record.
func (s *ChunkService) WriteMeta(ctx context.Context, meta *askdocs.IndexMeta) error {
	if meta.EmbeddingModel == "" {
		return askdocs.Errorf(askdocs.EINVALID, "embedding model required")
	}
	if meta.EmbeddingDim <= 0 {
		return askdocs.Errorf(askdocs.EINVALID, "embedding dimension must be positive")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO index_meta (id, schema_version, embedding_model, embedding_dim, created_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			schema_version = excluded.schema_version,
			embedding_model = excluded.embedding_model,
			embedding_dim = excluded.embedding_dim,
			created_at = excluded.created_at
	`, meta.SchemaVersion, meta.EmbeddingModel, meta.EmbeddingDim, time.Now().UTC().Format(time.RFC3339))

	return err
}

// dot computes the inner product of two equal-length vectors.
func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
