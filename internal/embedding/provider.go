package embedding

import (
	"fmt"
	"strings"
)

// Provider identifies an embedding backend. The zero value selects
// deterministic pseudo-vectors instead of a hosted API.
type Provider string

const (
	// ProviderElastic uses an Elasticsearch inference endpoint.
	ProviderElastic Provider = "elastic"

	// ProviderOpenAI uses the OpenAI embeddings API.
	ProviderOpenAI Provider = "openai"

	// ProviderCohere uses the Cohere embed API.
	ProviderCohere Provider = "cohere"
)

// DefaultBatchLimit caps batch sizes for backends without a known limit.
const DefaultBatchLimit = 10

// batchLimits holds the per-request text caps imposed by each provider API.
var batchLimits = map[Provider]int{
	ProviderElastic: 10,
	ProviderOpenAI:  100,
	ProviderCohere:  96,
}

// Providers lists the recognized provider names.
func Providers() []Provider {
	return []Provider{ProviderElastic, ProviderOpenAI, ProviderCohere}
}

// ParseProvider normalizes and validates a provider name. An empty name is
// valid and selects pseudo mode. Unknown names are rejected with an error
// naming the recognized set.
func ParseProvider(name string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(name)))
	switch p {
	case "", ProviderElastic, ProviderOpenAI, ProviderCohere:
		return p, nil
	}

	known := Providers()
	names := make([]string, len(known))
	for i, kp := range known {
		names[i] = string(kp)
	}
	return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedProvider, string(p), strings.Join(names, ", "))
}

// BatchLimit returns the largest number of texts p accepts per request.
func (p Provider) BatchLimit() int {
	if limit, ok := batchLimits[p]; ok {
		return limit
	}
	return DefaultBatchLimit
}

func (p Provider) String() string {
	return string(p)
}
