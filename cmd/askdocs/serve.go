package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/askdocs"
	askhttp "github.com/fwojciec/askdocs/http"
)

// shutdownTimeout bounds graceful shutdown after an interrupt.
const shutdownTimeout = 5 * time.Second

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	meta, err := deps.Chunks.Meta(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\nHint: run 'askdocs build <url>' first\n", askdocs.ErrorMessage(err))
		return err
	}
	if err := meta.Validate(deps.Embedder.Model(), deps.Embedder.Dim()); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\nHint: rebuild the index with 'askdocs build <url>'\n", askdocs.ErrorMessage(err))
		return err
	}

	srv := askhttp.NewServer(deps.Chat, askhttp.WithLogger(deps.Logger))

	go func() {
		<-deps.Ctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Close(ctx)
	}()

	fmt.Fprintf(deps.Stdout, "Serving chat API on %s\n", c.Addr)
	return srv.Open(c.Addr)
}
