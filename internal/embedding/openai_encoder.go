package embedding

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIEncoder is the concrete TextEncoder backed by OpenAI's embeddings
// endpoint, mirroring the client-wrapping pattern of this codebase's other
// OpenAI integration (API key from config, thin method-per-operation
// wrapper).
type OpenAIEncoder struct {
	client openai.Client
	model  string
}

// NewOpenAIEncoder builds an encoder for the given model using apiKey. An
// empty model falls back to "text-embedding-3-small".
func NewOpenAIEncoder(apiKey, model string) (*OpenAIEncoder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("embedding: OPENAI_API_KEY not set")
	}
	if model == "" {
		model = "text-embedding-3-small"
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIEncoder{client: client, model: model}, nil
}

// ModelID implements TextEncoder.
func (e *OpenAIEncoder) ModelID() string { return e.model }

// Embed implements TextEncoder using the OpenAI embeddings endpoint.
func (e *OpenAIEncoder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
		Model:          openai.EmbeddingModel(e.model),
		EncodingFormat: openai.EmbeddingNewParamsEncodingFormatFloat,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding: OpenAI embeddings call failed: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding: expected %d vectors, got %d", len(texts), len(resp.Data))
	}

	out := make([][]float32, len(resp.Data))
	for _, d := range resp.Data {
		vec := make([]float32, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float32(v)
		}
		out[d.Index] = vec
	}
	return out, nil
}
