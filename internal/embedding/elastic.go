package embedding

import (
	"context"
	"fmt"
	"strings"
)

// DefaultElasticModel is the inference endpoint ID provisioned for Vigil.
const DefaultElasticModel = "vigil-embedding-model"

// ElasticAdapter calls an Elasticsearch text_embedding inference endpoint.
type ElasticAdapter struct {
	baseURL string
	apiKey  string
	model   string
	client  *apiClient
}

// Compile-time interface check.
var _ Adapter = (*ElasticAdapter)(nil)

// NewElasticAdapter creates an Elastic adapter for the cluster at baseURL.
// An empty model selects DefaultElasticModel.
func NewElasticAdapter(baseURL, apiKey, model string) *ElasticAdapter {
	if model == "" {
		model = DefaultElasticModel
	}
	return &ElasticAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  newAPIClient(string(ProviderElastic)),
	}
}

// Name returns the provider name.
func (a *ElasticAdapter) Name() string {
	return string(ProviderElastic)
}

// Embed generates one embedding per text via the inference API.
func (a *ElasticAdapter) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	url := fmt.Sprintf("%s/_inference/text_embedding/%s", a.baseURL, a.model)

	var result elasticEmbedResponse
	err := a.client.postJSON(ctx, url, "ApiKey "+a.apiKey, elasticEmbedRequest{Input: texts}, &result)
	if err != nil {
		return nil, err
	}

	if len(result.TextEmbedding) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", ErrMalformedResponse, len(result.TextEmbedding), len(texts))
	}

	vectors := make([][]float32, len(result.TextEmbedding))
	for i, item := range result.TextEmbedding {
		if item.Embedding == nil {
			return nil, fmt.Errorf("%w: missing embedding at index %d", ErrMalformedResponse, i)
		}
		vectors[i] = item.Embedding
	}
	return vectors, nil
}

// elasticEmbedRequest is the request body for the inference API.
type elasticEmbedRequest struct {
	Input []string `json:"input"`
}

// elasticEmbedResponse is the response from the inference API.
type elasticEmbedResponse struct {
	TextEmbedding []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"text_embedding"`
}
