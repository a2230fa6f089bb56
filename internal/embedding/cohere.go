package embedding

import (
	"context"
	"fmt"
)

const (
	// DefaultCohereModel is the embedding model requested from Cohere.
	DefaultCohereModel = "embed-english-v3.0"

	// cohereInputType marks texts as documents to be stored, not queries.
	cohereInputType = "search_document"

	cohereEmbedURL = "https://api.cohere.ai/v2/embed"
)

// CohereAdapter calls the Cohere embed API.
type CohereAdapter struct {
	apiKey  string
	model   string
	baseURL string // overridable in tests; defaults to cohereEmbedURL
	client  *apiClient
}

// Compile-time interface check.
var _ Adapter = (*CohereAdapter)(nil)

// NewCohereAdapter creates a Cohere adapter. An empty model selects
// DefaultCohereModel.
func NewCohereAdapter(apiKey, model string) *CohereAdapter {
	if model == "" {
		model = DefaultCohereModel
	}
	return &CohereAdapter{
		apiKey:  apiKey,
		model:   model,
		baseURL: cohereEmbedURL,
		client:  newAPIClient(string(ProviderCohere)),
	}
}

// Name returns the provider name.
func (a *CohereAdapter) Name() string {
	return string(ProviderCohere)
}

// Embed generates one embedding per text via the embed API.
func (a *CohereAdapter) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	reqBody := cohereEmbedRequest{
		Texts:          texts,
		Model:          a.model,
		InputType:      cohereInputType,
		EmbeddingTypes: []string{"float"},
	}

	var result cohereEmbedResponse
	if err := a.client.postJSON(ctx, a.baseURL, "Bearer "+a.apiKey, reqBody, &result); err != nil {
		return nil, err
	}

	if len(result.Embeddings.Float) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", ErrMalformedResponse, len(result.Embeddings.Float), len(texts))
	}
	return result.Embeddings.Float, nil
}

// cohereEmbedRequest is the request body for the embed API.
type cohereEmbedRequest struct {
	Texts          []string `json:"texts"`
	Model          string   `json:"model"`
	InputType      string   `json:"input_type"`
	EmbeddingTypes []string `json:"embedding_types"`
}

// cohereEmbedResponse is the response from the embed API.
type cohereEmbedResponse struct {
	Embeddings struct {
		Float [][]float32 `json:"float"`
	} `json:"embeddings"`
}
