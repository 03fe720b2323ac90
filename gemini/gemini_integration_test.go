//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"

	"github.com/fwojciec/askdocs/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newClient(t *testing.T) *genai.Client {
	t.Helper()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)
	return client
}

func TestGenerator_Integration_Generate(t *testing.T) {
	t.Parallel()

	g := gemini.NewGenerator(newClient(t))

	reply, err := g.Generate(context.Background(), "Reply with the single word: pong")
	require.NoError(t, err)

	assert.NotEmpty(t, reply)
}

func TestEmbedder_Integration_Embed(t *testing.T) {
	t.Parallel()

	e := gemini.NewEmbedder(newClient(t))

	vec, err := e.Embed(context.Background(), "documentation chunk")
	require.NoError(t, err)

	assert.Len(t, vec, e.Dim())
}
