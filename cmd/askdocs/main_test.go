package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/askdocs"
	main "github.com/fwojciec/askdocs/cmd/askdocs"
	"github.com/fwojciec/askdocs/crawl"
	"github.com/fwojciec/askdocs/index"
	"github.com/fwojciec/askdocs/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testContext returns a background context for tests.
func testContext() context.Context {
	return context.Background()
}

func testDeps(stdout, stderr io.Writer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    testContext(),
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestCmdBuild(t *testing.T) {
	t.Parallel()

	t.Run("crawls and indexes pages", func(t *testing.T) {
		t.Parallel()

		var deleted []string
		var created []*askdocs.Chunk
		chunkSvc := &mock.ChunkService{
			DeleteChunksBySourceFn: func(_ context.Context, sourceURL string) error {
				deleted = append(deleted, sourceURL)
				return nil
			},
			CreateChunksFn: func(_ context.Context, chunks []*askdocs.Chunk) error {
				created = append(created, chunks...)
				return nil
			},
			WriteMetaFn: func(_ context.Context, _ *askdocs.IndexMeta) error {
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := testDeps(stdout, stderr)
		deps.Chunks = chunkSvc
		deps.Crawler = &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (*askdocs.FetchResult, error) {
					return &askdocs.FetchResult{
						StatusCode:  200,
						ContentType: "text/html",
						Body:        "<html><body><p>Documentation for " + url + "</p></body></html>",
					}, nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_, pageURL string) (*askdocs.Extraction, error) {
					return &askdocs.Extraction{Text: "Documentation for " + pageURL}, nil
				},
			},
			Concurrency: 1,
		}
		deps.Builder = &index.Builder{
			Embedder: &mock.Embedder{
				EmbedFn: func(_ context.Context, _ string) ([]float32, error) {
					return []float32{1, 0, 0}, nil
				},
				ModelFn: func() string { return "test-embedding" },
				DimFn:   func() int { return 3 },
			},
			Chunks: chunkSvc,
		}

		cmd := &main.BuildCmd{URL: "https://example.com/docs", MaxPages: 5}
		err := cmd.Run(deps)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "Crawled 1 pages")
		assert.Contains(t, stdout.String(), "Indexed 1 chunks")
		assert.Equal(t, []string{"https://example.com/docs"}, deleted)
		require.Len(t, created, 1)
		assert.Equal(t, "https://example.com/docs", created[0].SourceURL)
	})

	t.Run("returns error when no pages found", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := testDeps(stdout, stderr)
		deps.Crawler = &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (*askdocs.FetchResult, error) {
					return &askdocs.FetchResult{StatusCode: 404}, nil
				},
			},
			Extractor:   &mock.Extractor{},
			Concurrency: 1,
		}

		cmd := &main.BuildCmd{URL: "https://example.com/docs", MaxPages: 5}
		err := cmd.Run(deps)

		assert.Equal(t, askdocs.ENOTFOUND, askdocs.ErrorCode(err))
		assert.Contains(t, stderr.String(), "skip")
	})

	t.Run("rejects invalid seed URL", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := testDeps(stdout, stderr)
		deps.Crawler = &crawl.Crawler{
			Fetcher:   &mock.Fetcher{},
			Extractor: &mock.Extractor{},
		}

		cmd := &main.BuildCmd{URL: "ftp://example.com"}
		err := cmd.Run(deps)

		assert.Equal(t, askdocs.EINVALID, askdocs.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error crawling")
	})
}

func TestCmdAsk(t *testing.T) {
	t.Parallel()

	t.Run("prints answer with sources", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := testDeps(stdout, stderr)
		deps.Chat = &mock.ChatService{
			ChatFn: func(_ context.Context, req *askdocs.ChatRequest) (*askdocs.ChatResult, error) {
				assert.Equal(t, "How do I install?", req.Query)
				return &askdocs.ChatResult{
					Response:    "Run the installer.",
					ScrapedURLs: []string{"https://example.com/docs/install"},
				}, nil
			},
		}

		cmd := &main.AskCmd{Question: "How do I install?"}
		err := cmd.Run(deps)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "Run the installer.")
		assert.Contains(t, stdout.String(), "Sources:")
		assert.Contains(t, stdout.String(), "https://example.com/docs/install")
		assert.Empty(t, stderr.String())
	})

	t.Run("omits sources for casual replies", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := testDeps(stdout, stderr)
		deps.Chat = &mock.ChatService{
			ChatFn: func(_ context.Context, _ *askdocs.ChatRequest) (*askdocs.ChatResult, error) {
				return &askdocs.ChatResult{Response: "Hi there!", ScrapedURLs: []string{}}, nil
			},
		}

		cmd := &main.AskCmd{Question: "hello"}
		err := cmd.Run(deps)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "Hi there!")
		assert.NotContains(t, stdout.String(), "Sources:")
	})

	t.Run("suggests building when index is missing", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := testDeps(stdout, stderr)
		deps.Chat = &mock.ChatService{
			ChatFn: func(_ context.Context, _ *askdocs.ChatRequest) (*askdocs.ChatResult, error) {
				return nil, askdocs.Errorf(askdocs.EUNAVAILABLE, "no index has been built")
			},
		}

		cmd := &main.AskCmd{Question: "anything"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "askdocs build")
		assert.Empty(t, stdout.String())
	})
}

func TestCmdServe(t *testing.T) {
	t.Parallel()

	t.Run("returns error when index is missing", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := testDeps(stdout, stderr)
		deps.Chunks = &mock.ChunkService{
			MetaFn: func(_ context.Context) (*askdocs.IndexMeta, error) {
				return nil, askdocs.Errorf(askdocs.EUNAVAILABLE, "no index has been built")
			},
		}

		cmd := &main.ServeCmd{Addr: ":0"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "askdocs build")
		assert.Empty(t, stdout.String())
	})

	t.Run("returns error when index embedder does not match", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := testDeps(stdout, stderr)
		deps.Chunks = &mock.ChunkService{
			MetaFn: func(_ context.Context) (*askdocs.IndexMeta, error) {
				return &askdocs.IndexMeta{
					SchemaVersion:  askdocs.IndexSchemaVersion,
					EmbeddingModel: "old-model",
					EmbeddingDim:   3,
				}, nil
			},
		}
		deps.Embedder = &mock.Embedder{
			ModelFn: func() string { return "new-model" },
			DimFn:   func() int { return 3 },
		}

		cmd := &main.ServeCmd{Addr: ":0"}
		err := cmd.Run(deps)

		assert.Equal(t, askdocs.EINVALID, askdocs.ErrorCode(err))
		assert.Contains(t, stderr.String(), "rebuild")
	})
}

func TestRun_HelpFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"--help flag", []string{"--help"}},
		{"-h flag", []string{"-h"}},
		{"help command", []string{"help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := main.NewMain()
			m.DBPath = filepath.Join(t.TempDir(), "test.db")

			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			err := m.Run(testContext(), tt.args, stdout, stderr)

			require.NoError(t, err)
			assert.Contains(t, stdout.String(), "Usage: askdocs")
			assert.Contains(t, stdout.String(), "Commands:")
			assert.Empty(t, stderr.String())
		})
	}
}

func TestRun_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{}, stdout, stderr)

	// No args should show usage to stdout and return error
	require.Error(t, err)
	assert.Contains(t, stdout.String(), "Usage: askdocs")
}

func TestRun_HelpWithoutCreatingDB(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "should-not-exist.db")

	m := main.NewMain()
	m.DBPath = dbPath

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{"--help"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Usage: askdocs")
	assert.Empty(t, stderr.String())

	// Verify database file was NOT created
	_, statErr := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(statErr), "database file should not be created for --help")
}
