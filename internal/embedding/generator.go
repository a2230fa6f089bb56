package embedding

import (
	"context"
	"fmt"
)

// Config holds the explicit settings for constructing a Generator. Resolving
// values from the environment is the caller's responsibility (see
// internal/config); leaving Provider empty selects pseudo mode.
type Config struct {
	Provider Provider

	// ElasticURL and ElasticAPIKey configure ProviderElastic.
	ElasticURL    string
	ElasticAPIKey string

	// OpenAIAPIKey configures ProviderOpenAI.
	OpenAIAPIKey string

	// CohereAPIKey configures ProviderCohere.
	CohereAPIKey string

	// Model overrides the bound provider's default model (or inference
	// endpoint ID for ProviderElastic).
	Model string

	// Dimensions sets the pseudo-vector dimensionality and the dimensions
	// requested from OpenAI. Zero selects DefaultDimensions.
	Dimensions int
}

// Generator produces embeddings, either deterministically or through the one
// provider bound at construction. It is immutable after NewGenerator and safe
// for use from multiple goroutines.
type Generator struct {
	adapter    Adapter // nil in pseudo mode
	retrier    *Retrier
	dimensions int
	batchLimit int
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithAdapter installs a custom adapter in place of the built-in providers.
// The generator then chunks batches at DefaultBatchLimit.
func WithAdapter(a Adapter) GeneratorOption {
	return func(g *Generator) {
		g.adapter = a
	}
}

// WithRetrier replaces the retry policy applied around provider calls.
func WithRetrier(r *Retrier) GeneratorOption {
	return func(g *Generator) {
		g.retrier = r
	}
}

// NewGenerator validates cfg and binds a Generator to cfg.Provider, or to
// pseudo mode when no provider is set. Unknown providers and missing
// credentials are rejected here so runs fail before any documents are
// touched.
func NewGenerator(cfg Config, opts ...GeneratorOption) (*Generator, error) {
	provider, err := ParseProvider(string(cfg.Provider))
	if err != nil {
		return nil, err
	}

	dims := cfg.Dimensions
	if dims <= 0 {
		dims = DefaultDimensions
	}

	g := &Generator{
		retrier:    NewRetrier(),
		dimensions: dims,
		batchLimit: provider.BatchLimit(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.adapter != nil {
		return g, nil
	}

	switch provider {
	case ProviderElastic:
		if cfg.ElasticURL == "" || cfg.ElasticAPIKey == "" {
			return nil, fmt.Errorf("%w: elastic provider requires ElasticURL and ElasticAPIKey", ErrMissingCredential)
		}
		g.adapter = NewElasticAdapter(cfg.ElasticURL, cfg.ElasticAPIKey, cfg.Model)
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%w: openai provider requires OpenAIAPIKey", ErrMissingCredential)
		}
		g.adapter = NewOpenAIAdapter(cfg.OpenAIAPIKey, cfg.Model, dims)
	case ProviderCohere:
		if cfg.CohereAPIKey == "" {
			return nil, fmt.Errorf("%w: cohere provider requires CohereAPIKey", ErrMissingCredential)
		}
		g.adapter = NewCohereAdapter(cfg.CohereAPIKey, cfg.Model)
	}

	return g, nil
}

// ProviderName reports which backend the generator is bound to, or "pseudo".
func (g *Generator) ProviderName() string {
	if g.adapter != nil {
		return g.adapter.Name()
	}
	return "pseudo"
}

// Dimensions returns the pseudo-vector dimensionality.
func (g *Generator) Dimensions() int {
	return g.dimensions
}

// Generate embeds a single text.
func (g *Generator) Generate(ctx context.Context, text string) ([]float32, error) {
	if g.adapter == nil {
		return PseudoVector(text, g.dimensions), nil
	}

	vectors, err := g.embedChunk(ctx, "embed", []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// GenerateBatch embeds texts in input order. Provider-bound generators send
// sequential chunks no larger than the provider's batch limit; a failing
// chunk aborts the whole batch. Empty input returns no vectors and makes no
// provider calls.
func (g *Generator) GenerateBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	if g.adapter == nil {
		vectors := make([][]float32, len(texts))
		for i, text := range texts {
			vectors[i] = PseudoVector(text, g.dimensions)
		}
		return vectors, nil
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += g.batchLimit {
		end := start + g.batchLimit
		if end > len(texts) {
			end = len(texts)
		}

		label := fmt.Sprintf("batch[%d..%d]", start, end)
		chunk, err := g.embedChunk(ctx, label, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", label, err)
		}
		vectors = append(vectors, chunk...)
	}
	return vectors, nil
}

// embedChunk runs one provider call through the retry policy and verifies the
// vector count so a misbehaving adapter cannot misalign text/vector pairing.
func (g *Generator) embedChunk(ctx context.Context, label string, texts []string) ([][]float32, error) {
	var vectors [][]float32
	err := g.retrier.Do(ctx, label, func() error {
		var callErr error
		vectors, callErr = g.adapter.Embed(ctx, texts)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", ErrMalformedResponse, len(vectors), len(texts))
	}
	return vectors, nil
}
