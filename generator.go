package askdocs

import "context"

// Generator produces a model reply for a fully composed prompt.
// Generation is a single blocking call; failures are returned to the
// caller without retry.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
