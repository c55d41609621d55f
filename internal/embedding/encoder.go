package embedding

import "context"

// TextEncoder is the abstract text-embedding capability the Embedding
// Index is built on. Per spec §9 ("treat the text encoder as an
// interface"), the design's correctness never depends on a specific model
// family — any implementation that returns semantically-reasonable,
// fixed-dimension vectors is sufficient.
type TextEncoder interface {
	// Embed returns one embedding vector per input text, in order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	// ModelID identifies the encoder for cache-key purposes (§6 persisted
	// state layout: `{entity}-{schema_hash}-{model_id}.bin`).
	ModelID() string
}
