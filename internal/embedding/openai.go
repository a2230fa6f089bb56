package embedding

import (
	"context"
	"fmt"
)

const (
	// DefaultOpenAIModel is the embedding model requested from OpenAI.
	DefaultOpenAIModel = "text-embedding-3-large"

	openAIEmbedURL = "https://api.openai.com/v1/embeddings"
)

// OpenAIAdapter calls the OpenAI embeddings API.
type OpenAIAdapter struct {
	apiKey     string
	model      string
	dimensions int
	baseURL    string // overridable in tests; defaults to openAIEmbedURL
	client     *apiClient
}

// Compile-time interface check.
var _ Adapter = (*OpenAIAdapter)(nil)

// NewOpenAIAdapter creates an OpenAI adapter. An empty model selects
// DefaultOpenAIModel; dims <= 0 selects DefaultDimensions.
func NewOpenAIAdapter(apiKey, model string, dims int) *OpenAIAdapter {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &OpenAIAdapter{
		apiKey:     apiKey,
		model:      model,
		dimensions: dims,
		baseURL:    openAIEmbedURL,
		client:     newAPIClient(string(ProviderOpenAI)),
	}
}

// Name returns the provider name.
func (a *OpenAIAdapter) Name() string {
	return string(ProviderOpenAI)
}

// Embed generates one embedding per text via the embeddings API.
func (a *OpenAIAdapter) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	reqBody := openAIEmbedRequest{
		Input:      texts,
		Model:      a.model,
		Dimensions: a.dimensions,
	}

	var result openAIEmbedResponse
	if err := a.client.postJSON(ctx, a.baseURL, "Bearer "+a.apiKey, reqBody, &result); err != nil {
		return nil, err
	}

	if len(result.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", ErrMalformedResponse, len(result.Data), len(texts))
	}

	vectors := make([][]float32, len(result.Data))
	for i, item := range result.Data {
		if item.Embedding == nil {
			return nil, fmt.Errorf("%w: missing embedding at index %d", ErrMalformedResponse, i)
		}
		vectors[i] = item.Embedding
	}
	return vectors, nil
}

// openAIEmbedRequest is the request body for the embeddings API.
type openAIEmbedRequest struct {
	Input      []string `json:"input"`
	Model      string   `json:"model"`
	Dimensions int      `json:"dimensions"`
}

// openAIEmbedResponse is the response from the embeddings API.
type openAIEmbedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}
