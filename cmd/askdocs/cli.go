package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/askdocs"
	"github.com/fwojciec/askdocs/crawl"
	"github.com/fwojciec/askdocs/index"
	"github.com/fwojciec/askdocs/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	DB       *sqlite.DB
	Chunks   askdocs.ChunkService
	Embedder askdocs.Embedder
	Crawler  *crawl.Crawler
	Builder  *index.Builder
	Chat     askdocs.ChatService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Build BuildCmd `cmd:"" help:"Crawl a documentation site and build the chunk index"`
	Serve ServeCmd `cmd:"" help:"Serve the chat API over HTTP"`
	Ask   AskCmd   `cmd:"" help:"Ask a one-off question against the index"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	URL         string  `arg:"" help:"Documentation base URL"`
	MaxPages    int     `default:"1000" help:"Maximum pages to crawl"`
	Concurrency int     `short:"c" default:"10" help:"Concurrent fetch limit"`
	RPS         float64 `default:"2" help:"Per-domain requests per second"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8000" help:"Listen address"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask about the indexed documentation"`
}
