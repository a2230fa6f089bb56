// Package embedding generates vector embeddings for Vigil seed data.
//
// A Generator is bound at construction either to one hosted provider API
// (Elastic, OpenAI, or Cohere) or to deterministic pseudo-vectors that need
// no network access. Provider calls are rate limited, retried on transient
// failures, and chunked to each provider's batch limit; output vectors always
// correspond 1:1, in order, with the input texts.
package embedding

import "context"

// DefaultDimensions is the vector dimensionality used across Vigil indices.
const DefaultDimensions = 384

// Adapter sends batches of texts to a single provider API.
type Adapter interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Name returns the provider name for reporting.
	Name() string
}
