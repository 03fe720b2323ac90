package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/askdocs"
	"github.com/fwojciec/askdocs/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testMeta() *askdocs.IndexMeta {
	return &askdocs.IndexMeta{
		SchemaVersion:  askdocs.IndexSchemaVersion,
		EmbeddingModel: "test-embedding",
		EmbeddingDim:   3,
	}
}

func testChunk(sourceURL, content string, position int, embedding []float32) *askdocs.Chunk {
	return &askdocs.Chunk{
		SourceURL: sourceURL,
		Content:   content,
		Position:  position,
		Embedding: embedding,
	}
}

func TestChunkService_CreateChunks(t *testing.T) {
	t.Parallel()

	t.Run("assigns IDs and content hashes", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewChunkService(openTestDB(t))
		ctx := context.Background()

		chunks := []*askdocs.Chunk{
			testChunk("https://docs.example.com/a", "first chunk", 0, []float32{1, 0, 0}),
			testChunk("https://docs.example.com/a", "second chunk", 1, []float32{0, 1, 0}),
		}

		require.NoError(t, s.CreateChunks(ctx, chunks))

		for _, c := range chunks {
			assert.NotEmpty(t, c.ID)
			assert.NotEmpty(t, c.ContentHash)
		}
		assert.NotEqual(t, chunks[0].ContentHash, chunks[1].ContentHash)
	})

	t.Run("round-trips embeddings", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewChunkService(openTestDB(t))
		ctx := context.Background()

		embedding := []float32{0.25, -1.5, 3.75}
		chunks := []*askdocs.Chunk{testChunk("https://docs.example.com/a", "content", 0, embedding)}
		require.NoError(t, s.CreateChunks(ctx, chunks))

		found, err := s.FindChunkByID(ctx, chunks[0].ID)
		require.NoError(t, err)
		assert.Equal(t, embedding, found.Embedding)
	})

	t.Run("rejects chunk without embedding", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewChunkService(openTestDB(t))

		err := s.CreateChunks(context.Background(), []*askdocs.Chunk{
			testChunk("https://docs.example.com/a", "content", 0, nil),
		})

		assert.Equal(t, askdocs.EINVALID, askdocs.ErrorCode(err))
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewChunkService(openTestDB(t))

		assert.NoError(t, s.CreateChunks(context.Background(), nil))
	})
}

func TestChunkService_FindChunkByID_NotFound(t *testing.T) {
	t.Parallel()

	s := sqlite.NewChunkService(openTestDB(t))

	_, err := s.FindChunkByID(context.Background(), "missing")

	assert.Equal(t, askdocs.ENOTFOUND, askdocs.ErrorCode(err))
}

func TestChunkService_FindChunks_BySource(t *testing.T) {
	t.Parallel()

	s := sqlite.NewChunkService(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.CreateChunks(ctx, []*askdocs.Chunk{
		testChunk("https://docs.example.com/a", "a0", 0, []float32{1, 0, 0}),
		testChunk("https://docs.example.com/b", "b0", 0, []float32{0, 1, 0}),
		testChunk("https://docs.example.com/a", "a1", 1, []float32{0, 0, 1}),
	}))

	source := "https://docs.example.com/a"
	chunks, err := s.FindChunks(ctx, askdocs.ChunkFilter{SourceURL: &source})
	require.NoError(t, err)

	require.Len(t, chunks, 2)
	assert.Equal(t, "a0", chunks[0].Content)
	assert.Equal(t, "a1", chunks[1].Content)
}

func TestChunkService_SearchChunks(t *testing.T) {
	t.Parallel()

	t.Run("returns top k by inner product", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewChunkService(openTestDB(t))
		ctx := context.Background()

		require.NoError(t, s.WriteMeta(ctx, testMeta()))
		require.NoError(t, s.CreateChunks(ctx, []*askdocs.Chunk{
			testChunk("https://docs.example.com/a", "far", 0, []float32{0, 0, 1}),
			testChunk("https://docs.example.com/b", "close", 0, []float32{1, 0, 0}),
			testChunk("https://docs.example.com/c", "closer", 0, []float32{2, 0, 0}),
		}))

		chunks, err := s.SearchChunks(ctx, []float32{1, 0, 0}, 2)
		require.NoError(t, err)

		require.Len(t, chunks, 2)
		assert.Equal(t, "closer", chunks[0].Content)
		assert.Equal(t, "close", chunks[1].Content)
	})

	t.Run("breaks score ties by insertion order", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewChunkService(openTestDB(t))
		ctx := context.Background()

		require.NoError(t, s.WriteMeta(ctx, testMeta()))
		require.NoError(t, s.CreateChunks(ctx, []*askdocs.Chunk{
			testChunk("https://docs.example.com/a", "first", 0, []float32{1, 0, 0}),
			testChunk("https://docs.example.com/b", "second", 0, []float32{1, 0, 0}),
		}))

		chunks, err := s.SearchChunks(ctx, []float32{1, 0, 0}, 2)
		require.NoError(t, err)

		require.Len(t, chunks, 2)
		assert.Equal(t, "first", chunks[0].Content)
		assert.Equal(t, "second", chunks[1].Content)
	})

	t.Run("search is deterministic", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewChunkService(openTestDB(t))
		ctx := context.Background()

		require.NoError(t, s.WriteMeta(ctx, testMeta()))
		require.NoError(t, s.CreateChunks(ctx, []*askdocs.Chunk{
			testChunk("https://docs.example.com/a", "a", 0, []float32{0.5, 0.5, 0}),
			testChunk("https://docs.example.com/b", "b", 0, []float32{0.3, 0.7, 0}),
			testChunk("https://docs.example.com/c", "c", 0, []float32{0.9, 0.1, 0}),
		}))

		first, err := s.SearchChunks(ctx, []float32{1, 1, 0}, 3)
		require.NoError(t, err)
		second, err := s.SearchChunks(ctx, []float32{1, 1, 0}, 3)
		require.NoError(t, err)

		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].ID, second[i].ID)
		}
	})

	t.Run("k larger than corpus returns all", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewChunkService(openTestDB(t))
		ctx := context.Background()

		require.NoError(t, s.WriteMeta(ctx, testMeta()))
		require.NoError(t, s.CreateChunks(ctx, []*askdocs.Chunk{
			testChunk("https://docs.example.com/a", "only", 0, []float32{1, 0, 0}),
		}))

		chunks, err := s.SearchChunks(ctx, []float32{1, 0, 0}, 3)
		require.NoError(t, err)

		assert.Len(t, chunks, 1)
	})

	t.Run("missing index returns EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewChunkService(openTestDB(t))

		_, err := s.SearchChunks(context.Background(), []float32{1, 0, 0}, 3)

		assert.Equal(t, askdocs.EUNAVAILABLE, askdocs.ErrorCode(err))
	})

	t.Run("dimension mismatch returns EINVALID", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewChunkService(openTestDB(t))
		ctx := context.Background()

		require.NoError(t, s.WriteMeta(ctx, testMeta()))

		_, err := s.SearchChunks(ctx, []float32{1, 0}, 3)

		assert.Equal(t, askdocs.EINVALID, askdocs.ErrorCode(err))
	})
}

func TestChunkService_DeleteChunksBySource(t *testing.T) {
	t.Parallel()

	s := sqlite.NewChunkService(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.CreateChunks(ctx, []*askdocs.Chunk{
		testChunk("https://docs.example.com/a", "a0", 0, []float32{1, 0, 0}),
		testChunk("https://docs.example.com/b", "b0", 0, []float32{0, 1, 0}),
	}))

	require.NoError(t, s.DeleteChunksBySource(ctx, "https://docs.example.com/a"))

	chunks, err := s.FindChunks(ctx, askdocs.ChunkFilter{})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "https://docs.example.com/b", chunks[0].SourceURL)
}

func TestChunkService_Meta(t *testing.T) {
	t.Parallel()

	t.Run("returns EUNAVAILABLE before any build", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewChunkService(openTestDB(t))

		_, err := s.Meta(context.Background())

		assert.Equal(t, askdocs.EUNAVAILABLE, askdocs.ErrorCode(err))
	})

	t.Run("round-trips metadata", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewChunkService(openTestDB(t))
		ctx := context.Background()

		require.NoError(t, s.WriteMeta(ctx, testMeta()))

		meta, err := s.Meta(ctx)
		require.NoError(t, err)
		assert.Equal(t, askdocs.IndexSchemaVersion, meta.SchemaVersion)
		assert.Equal(t, "test-embedding", meta.EmbeddingModel)
		assert.Equal(t, 3, meta.EmbeddingDim)
	})

	t.Run("rewrite replaces previous metadata", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewChunkService(openTestDB(t))
		ctx := context.Background()

		require.NoError(t, s.WriteMeta(ctx, testMeta()))

		updated := testMeta()
		updated.EmbeddingModel = "other-model"
		require.NoError(t, s.WriteMeta(ctx, updated))

		meta, err := s.Meta(ctx)
		require.NoError(t, err)
		assert.Equal(t, "other-model", meta.EmbeddingModel)
	})

	t.Run("rejects invalid metadata", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewChunkService(openTestDB(t))

		err := s.WriteMeta(context.Background(), &askdocs.IndexMeta{SchemaVersion: 1})

		assert.Equal(t, askdocs.EINVALID, askdocs.ErrorCode(err))
	})
}
