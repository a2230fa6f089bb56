package seedstore

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// defaultTimeout is the timeout for store HTTP requests.
const defaultTimeout = 30 * time.Second

// ElasticConfig holds connection settings for the Elasticsearch backend.
// Exactly one of URL and CloudID is needed; URL wins when both are set.
type ElasticConfig struct {
	URL     string
	CloudID string
	APIKey  string
}

// ElasticStore indexes seed documents into an Elasticsearch cluster over its
// HTTP API.
type ElasticStore struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time interface check.
var _ Store = (*ElasticStore)(nil)

// NewElasticStore validates cfg and resolves the cluster endpoint, decoding
// cfg.CloudID when no direct URL is given.
func NewElasticStore(cfg ElasticConfig) (*ElasticStore, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: APIKey is required", ErrInvalidConfig)
	}

	baseURL := strings.TrimRight(cfg.URL, "/")
	if baseURL == "" {
		if cfg.CloudID == "" {
			return nil, fmt.Errorf("%w: URL or CloudID is required", ErrInvalidConfig)
		}
		decoded, err := decodeCloudID(cfg.CloudID)
		if err != nil {
			return nil, err
		}
		baseURL = decoded
	}

	return &ElasticStore{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// decodeCloudID resolves an Elastic Cloud deployment ID to its HTTPS
// endpoint. The ID has the form "name:base64(host$es-uuid$...)" and resolves
// to https://{es-uuid}.{host}.
func decodeCloudID(cloudID string) (string, error) {
	_, encoded, found := strings.Cut(cloudID, ":")
	if !found {
		return "", fmt.Errorf("%w: cloud ID missing name separator", ErrInvalidConfig)
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: decoding cloud ID: %v", ErrInvalidConfig, err)
	}

	parts := strings.Split(string(decoded), "$")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("%w: malformed cloud ID payload", ErrInvalidConfig)
	}
	return fmt.Sprintf("https://%s.%s", parts[1], parts[0]), nil
}

// BulkIndex writes docs through the _bulk API. Explicit document IDs make
// re-seeding overwrite instead of duplicate; item-level failures are
// collected in the result rather than aborting the call.
func (s *ElasticStore) BulkIndex(ctx context.Context, index string, docs []Document) (BulkResult, error) {
	if len(docs) == 0 {
		return BulkResult{}, nil
	}

	// json.Encoder terminates every value with \n, which is exactly the
	// NDJSON framing _bulk expects.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, doc := range docs {
		action := bulkAction{Index: bulkActionMeta{Index: index, ID: doc.ID}}
		if err := enc.Encode(action); err != nil {
			return BulkResult{}, fmt.Errorf("encoding bulk action: %w", err)
		}
		if err := enc.Encode(doc.Source); err != nil {
			return BulkResult{}, fmt.Errorf("encoding document %q: %w", doc.ID, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/_bulk", &buf)
	if err != nil {
		return BulkResult{}, fmt.Errorf("creating bulk request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-ndjson")
	req.Header.Set("Authorization", "ApiKey "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return BulkResult{}, fmt.Errorf("sending bulk request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return BulkResult{}, fmt.Errorf("bulk request failed: status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	var result bulkResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return BulkResult{}, fmt.Errorf("decoding bulk response: %w", err)
	}

	var out BulkResult
	for _, item := range result.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			out.Indexed++
			continue
		}
		out.Failed = append(out.Failed, ItemError{
			ID:     item.Index.ID,
			Status: item.Index.Status,
			Reason: item.Index.Error.Reason,
		})
	}
	return out, nil
}

// Count returns the document count of the named index.
func (s *ElasticStore) Count(ctx context.Context, index string) (int, error) {
	url := fmt.Sprintf("%s/%s/_count", s.baseURL, index)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating count request: %w", err)
	}
	req.Header.Set("Authorization", "ApiKey "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("sending count request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return 0, fmt.Errorf("count request failed: status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	var result struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decoding count response: %w", err)
	}
	return result.Count, nil
}

// Close implements Store; the HTTP client holds no resources to release.
func (s *ElasticStore) Close() error {
	return nil
}

// readErrorBody reads and formats a response body for error messages.
func readErrorBody(body io.Reader) string {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("(failed to read response body: %v)", err)
	}
	return strings.TrimSpace(string(data))
}

// bulkAction is the metadata line preceding each document in a _bulk body.
type bulkAction struct {
	Index bulkActionMeta `json:"index"`
}

type bulkActionMeta struct {
	Index string `json:"_index"`
	ID    string `json:"_id,omitempty"`
}

// bulkResponse is the subset of the _bulk response the store inspects.
type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []struct {
		Index struct {
			ID     string `json:"_id"`
			Status int    `json:"status"`
			Error  struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"index"`
	} `json:"items"`
}
