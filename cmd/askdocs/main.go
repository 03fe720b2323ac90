package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/askdocs"
	"github.com/fwojciec/askdocs/chat"
	"github.com/fwojciec/askdocs/crawl"
	"github.com/fwojciec/askdocs/gemini"
	"github.com/fwojciec/askdocs/goquery"
	askhttp "github.com/fwojciec/askdocs/http"
	"github.com/fwojciec/askdocs/index"
	askslog "github.com/fwojciec/askdocs/slog"
	"github.com/fwojciec/askdocs/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the chunk service.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ChunkService askdocs.ChunkService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("askdocs"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'askdocs --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ASKDOCS_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ChunkService = sqlite.NewChunkService(m.DB)
	deps.DB = m.DB
	deps.Chunks = askslog.NewLoggingChunkService(m.ChunkService, logger)

	// Every command talks to the Gemini API: build embeds chunks, serve
	// and ask embed queries and generate answers.
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	deps.Embedder = gemini.NewEmbedder(client)

	// Wire command-specific dependencies based on command
	if cmd == "build" {
		fetcher := askslog.NewLoggingFetcher(askhttp.NewFetcher(), logger)
		sitemaps := askslog.NewLoggingSitemapService(askhttp.NewSitemapService(nil), logger)

		tokenCounter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}

		deps.Crawler = &crawl.Crawler{
			Fetcher:     fetcher,
			Extractor:   goquery.NewExtractor(),
			Sitemaps:    sitemaps,
			RateLimiter: crawl.NewDomainLimiter(cli.Build.RPS),
			Concurrency: cli.Build.Concurrency,
		}
		deps.Builder = &index.Builder{
			Embedder:     deps.Embedder,
			Chunks:       deps.Chunks,
			TokenCounter: tokenCounter,
		}
	}

	if cmd == "serve" || cmd == "ask" {
		svc := &chat.Service{
			Embedder:   deps.Embedder,
			Chunks:     deps.Chunks,
			Fetcher:    askslog.NewLoggingFetcher(askhttp.NewFetcher(), logger),
			Summarizer: goquery.NewSummarizer(),
			Generator:  gemini.NewGenerator(client),
		}
		deps.Chat = askslog.NewLoggingChatService(svc, logger)
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for local token counting during builds.
const tokenizerModel = "gemini-2.5-flash"

func defaultDBPath() string {
	if path := os.Getenv("ASKDOCS_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "askdocs.db"
	}
	dir := filepath.Join(home, ".askdocs")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "askdocs.db")
}
