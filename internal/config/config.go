// Package config resolves Vigil settings from the environment.
//
// The embedding and seedstore packages only ever see explicit configuration
// values; every environment lookup lives here so library callers stay in
// control of where settings come from.
package config

import (
	"fmt"
	"os"

	"github.com/arome3/vigil/internal/embedding"
	"github.com/arome3/vigil/internal/seedstore"
)

// Environment variables consulted by the CLI.
const (
	EnvProvider       = "EMBEDDING_PROVIDER"
	EnvElasticURL     = "ELASTIC_URL"
	EnvElasticAPIKey  = "ELASTIC_API_KEY"
	EnvElasticCloudID = "ELASTIC_CLOUD_ID"
	EnvOpenAIAPIKey   = "OPENAI_API_KEY"
	EnvCohereAPIKey   = "COHERE_API_KEY"
)

// ResolveEmbedding builds an embedding config from the environment. A
// non-empty explicit provider wins over EMBEDDING_PROVIDER; when both are
// empty the config selects pseudo mode. Credentials are checked here so
// failures name the environment variables to set.
func ResolveEmbedding(explicit string) (embedding.Config, error) {
	name := explicit
	if name == "" {
		name = os.Getenv(EnvProvider)
	}

	provider, err := embedding.ParseProvider(name)
	if err != nil {
		return embedding.Config{}, err
	}

	cfg := embedding.Config{
		Provider:      provider,
		ElasticURL:    os.Getenv(EnvElasticURL),
		ElasticAPIKey: os.Getenv(EnvElasticAPIKey),
		OpenAIAPIKey:  os.Getenv(EnvOpenAIAPIKey),
		CohereAPIKey:  os.Getenv(EnvCohereAPIKey),
	}

	switch provider {
	case embedding.ProviderElastic:
		if cfg.ElasticURL == "" || cfg.ElasticAPIKey == "" {
			return embedding.Config{}, fmt.Errorf("%w: elastic provider requires %s and %s",
				embedding.ErrMissingCredential, EnvElasticURL, EnvElasticAPIKey)
		}
	case embedding.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return embedding.Config{}, fmt.Errorf("%w: openai provider requires %s",
				embedding.ErrMissingCredential, EnvOpenAIAPIKey)
		}
	case embedding.ProviderCohere:
		if cfg.CohereAPIKey == "" {
			return embedding.Config{}, fmt.Errorf("%w: cohere provider requires %s",
				embedding.ErrMissingCredential, EnvCohereAPIKey)
		}
	}

	return cfg, nil
}

// ResolveElastic builds the Elasticsearch store config from the environment.
// The API key is always required; the endpoint comes from ELASTIC_URL or,
// failing that, ELASTIC_CLOUD_ID.
func ResolveElastic() (seedstore.ElasticConfig, error) {
	cfg := seedstore.ElasticConfig{
		URL:     os.Getenv(EnvElasticURL),
		CloudID: os.Getenv(EnvElasticCloudID),
		APIKey:  os.Getenv(EnvElasticAPIKey),
	}

	if cfg.APIKey == "" {
		return seedstore.ElasticConfig{}, fmt.Errorf("%w: %s is required",
			seedstore.ErrInvalidConfig, EnvElasticAPIKey)
	}
	if cfg.URL == "" && cfg.CloudID == "" {
		return seedstore.ElasticConfig{}, fmt.Errorf("%w: %s or %s is required",
			seedstore.ErrInvalidConfig, EnvElasticURL, EnvElasticCloudID)
	}

	return cfg, nil
}
