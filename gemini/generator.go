// Package gemini provides Google Gemini implementations of the askdocs
// language model interfaces: answer generation, text embedding, and
// token counting.
package gemini

import (
	"context"

	"github.com/fwojciec/askdocs"
	"google.golang.org/genai"
)

const generationModel = "gemini-2.5-flash"

// Ensure Generator implements askdocs.Generator at compile time.
var _ askdocs.Generator = (*Generator)(nil)

// Generator produces chat replies using Google Gemini.
type Generator struct {
	client *genai.Client
}

// NewGenerator creates a new Generator.
func NewGenerator(client *genai.Client) *Generator {
	return &Generator{client: client}
}

// Generate sends the prompt to Gemini and returns the reply text.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", askdocs.Errorf(askdocs.EINVALID, "prompt required")
	}

	result, err := g.client.Models.GenerateContent(ctx, generationModel,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", askdocs.Errorf(askdocs.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		Temperature: &temp,
	}
}
