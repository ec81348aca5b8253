package knowledge

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// EmbeddingDimensions is the vector size produced by the embedding model.
// The pgvector column is declared with the same size.
const EmbeddingDimensions = 768

// DefaultEmbeddingModel is the Gemini embedding model used for the corpus
const DefaultEmbeddingModel = "text-embedding-004"

// Embedder converts text into a fixed-size vector for similarity search
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// GeminiEmbedder implements Embedder using the Gemini embedding API
type GeminiEmbedder struct {
	client *genai.Client
	model  string
}

// NewGeminiEmbedder creates an embedder backed by the Gemini API.
func NewGeminiEmbedder(ctx context.Context, apiKey, model string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, &EmbeddingError{Message: "API key is required"}
	}
	if model == "" {
		model = DefaultEmbeddingModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &EmbeddingError{Message: "failed to create Gemini client", Cause: err}
	}

	return &GeminiEmbedder{client: client, model: model}, nil
}

// Embed generates the embedding vector for a piece of text.
func (g *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	em := g.client.EmbeddingModel(g.model)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, &EmbeddingError{Message: fmt.Sprintf("embed content with %s", g.model), Cause: err}
	}
	if res == nil || res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, &EmbeddingError{Message: "empty embedding response"}
	}
	return res.Embedding.Values, nil
}

// Close releases the underlying Gemini client.
func (g *GeminiEmbedder) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
