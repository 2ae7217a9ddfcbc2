package embeddings

import (
	"context"
	"errors"
)

// ErrEmbeddingFailed is the single failure signal of the generator: model
// unavailable, empty input, malformed response and timeouts all collapse
// into it so callers have exactly one degraded path.
var ErrEmbeddingFailed = errors.New("embedding generation failed")

// Embedder produces a fixed-dimension vector for a text profile.
type Embedder interface {
	// Embed returns the embedding for text, or ErrEmbeddingFailed (possibly
	// wrapped) on any failure. Partial vectors are never returned.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions is the fixed output dimension of the backing model.
	Dimensions() int
}

// Config selects and parameterizes the embedding backend.
type Config struct {
	APIKey         string
	Model          string
	Dimensions     int
	TimeoutSeconds int
}
