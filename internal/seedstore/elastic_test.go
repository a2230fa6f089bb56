package seedstore

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewElasticStore_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ElasticConfig
		wantErr string
	}{
		{
			name:    "missing api key",
			cfg:     ElasticConfig{URL: "https://localhost:9200"},
			wantErr: "APIKey",
		},
		{
			name:    "missing endpoint",
			cfg:     ElasticConfig{APIKey: "key"},
			wantErr: "URL or CloudID",
		},
		{
			name: "url provided",
			cfg:  ElasticConfig{URL: "https://localhost:9200", APIKey: "key"},
		},
		{
			name: "cloud id provided",
			cfg: ElasticConfig{
				CloudID: "dev:" + base64.StdEncoding.EncodeToString([]byte("host.example.com$abc123$kibana")),
				APIKey:  "key",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewElasticStore(tt.cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("NewElasticStore() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("NewElasticStore() = %v, want error", store)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("NewElasticStore() error = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("NewElasticStore() error = %q, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewElasticStore_TrimsTrailingSlash(t *testing.T) {
	store, err := NewElasticStore(ElasticConfig{URL: "https://localhost:9200/", APIKey: "key"})
	if err != nil {
		t.Fatalf("NewElasticStore() error = %v", err)
	}
	if store.baseURL != "https://localhost:9200" {
		t.Errorf("baseURL = %q, want %q", store.baseURL, "https://localhost:9200")
	}
}

func TestDecodeCloudID(t *testing.T) {
	tests := []struct {
		name    string
		cloudID string
		want    string
		wantErr bool
	}{
		{
			name:    "standard",
			cloudID: "my-deployment:" + base64.StdEncoding.EncodeToString([]byte("host.example.com$esuuid$kibanauuid")),
			want:    "https://esuuid.host.example.com",
		},
		{
			name:    "host with port",
			cloudID: "dev:" + base64.StdEncoding.EncodeToString([]byte("host.example.com:9243$esuuid$kibanauuid")),
			want:    "https://esuuid.host.example.com:9243",
		},
		{
			name:    "no kibana segment",
			cloudID: "dev:" + base64.StdEncoding.EncodeToString([]byte("host.example.com$esuuid")),
			want:    "https://esuuid.host.example.com",
		},
		{
			name:    "missing name separator",
			cloudID: base64.StdEncoding.EncodeToString([]byte("host$uuid")),
			wantErr: true,
		},
		{
			name:    "not base64",
			cloudID: "dev:not base64!!",
			wantErr: true,
		},
		{
			name:    "payload without uuid",
			cloudID: "dev:" + base64.StdEncoding.EncodeToString([]byte("host.example.com")),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeCloudID(tt.cloudID)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("decodeCloudID(%q) = %q, want error", tt.cloudID, got)
				}
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("decodeCloudID() error = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeCloudID(%q) error = %v", tt.cloudID, err)
			}
			if got != tt.want {
				t.Errorf("decodeCloudID(%q) = %q, want %q", tt.cloudID, got, tt.want)
			}
		})
	}
}

func TestElasticStore_BulkIndex(t *testing.T) {
	var gotPath, gotAuth, gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"errors": false,
			"items": [
				{"index": {"_id": "doc-1", "status": 201}},
				{"index": {"_id": "generated", "status": 201}}
			]
		}`))
	}))
	defer srv.Close()

	store, err := NewElasticStore(ElasticConfig{URL: srv.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewElasticStore() error = %v", err)
	}

	docs := []Document{
		{ID: "doc-1", Source: map[string]any{"title": "Disk pressure runbook"}},
		{Source: map[string]any{"title": "Anonymous"}},
	}
	result, err := store.BulkIndex(context.Background(), "vigil-runbooks", docs)
	if err != nil {
		t.Fatalf("BulkIndex() error = %v", err)
	}

	if gotPath != "/_bulk" {
		t.Errorf("path = %q, want %q", gotPath, "/_bulk")
	}
	if gotAuth != "ApiKey test-key" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "ApiKey test-key")
	}
	if gotContentType != "application/x-ndjson" {
		t.Errorf("Content-Type = %q, want %q", gotContentType, "application/x-ndjson")
	}

	if !strings.HasSuffix(gotBody, "\n") {
		t.Error("bulk body missing trailing newline")
	}
	lines := strings.Split(strings.TrimSuffix(gotBody, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("bulk body has %d lines, want 4:\n%s", len(lines), gotBody)
	}

	var action struct {
		Index struct {
			Index string `json:"_index"`
			ID    string `json:"_id"`
		} `json:"index"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &action); err != nil {
		t.Fatalf("parsing action line: %v", err)
	}
	if action.Index.Index != "vigil-runbooks" {
		t.Errorf("action _index = %q, want %q", action.Index.Index, "vigil-runbooks")
	}
	if action.Index.ID != "doc-1" {
		t.Errorf("action _id = %q, want %q", action.Index.ID, "doc-1")
	}

	// The second document has no ID, so its action line must omit _id and
	// let the cluster assign one.
	if strings.Contains(lines[2], "_id") {
		t.Errorf("action line for unidentified doc includes _id: %s", lines[2])
	}

	var source map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &source); err != nil {
		t.Fatalf("parsing source line: %v", err)
	}
	if source["title"] != "Disk pressure runbook" {
		t.Errorf("source title = %v, want %q", source["title"], "Disk pressure runbook")
	}

	if result.Indexed != 2 {
		t.Errorf("Indexed = %d, want 2", result.Indexed)
	}
	if len(result.Failed) != 0 {
		t.Errorf("Failed = %v, want none", result.Failed)
	}
}

func TestElasticStore_BulkIndex_CollectsItemErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"errors": true,
			"items": [
				{"index": {"_id": "ok-1", "status": 201}},
				{"index": {"_id": "bad-1", "status": 400, "error": {"type": "mapper_parsing_exception", "reason": "failed to parse field"}}},
				{"index": {"_id": "ok-2", "status": 200}}
			]
		}`))
	}))
	defer srv.Close()

	store, err := NewElasticStore(ElasticConfig{URL: srv.URL, APIKey: "key"})
	if err != nil {
		t.Fatalf("NewElasticStore() error = %v", err)
	}

	docs := []Document{
		{ID: "ok-1", Source: map[string]any{"n": 1}},
		{ID: "bad-1", Source: map[string]any{"n": 2}},
		{ID: "ok-2", Source: map[string]any{"n": 3}},
	}
	result, err := store.BulkIndex(context.Background(), "vigil-assets", docs)
	if err != nil {
		t.Fatalf("BulkIndex() error = %v", err)
	}

	if result.Indexed != 2 {
		t.Errorf("Indexed = %d, want 2", result.Indexed)
	}
	if len(result.Failed) != 1 {
		t.Fatalf("len(Failed) = %d, want 1", len(result.Failed))
	}
	failed := result.Failed[0]
	if failed.ID != "bad-1" {
		t.Errorf("Failed[0].ID = %q, want %q", failed.ID, "bad-1")
	}
	if failed.Status != 400 {
		t.Errorf("Failed[0].Status = %d, want 400", failed.Status)
	}
	if failed.Reason != "failed to parse field" {
		t.Errorf("Failed[0].Reason = %q, want %q", failed.Reason, "failed to parse field")
	}
}

func TestElasticStore_BulkIndex_EmptySkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	store, err := NewElasticStore(ElasticConfig{URL: srv.URL, APIKey: "key"})
	if err != nil {
		t.Fatalf("NewElasticStore() error = %v", err)
	}

	result, err := store.BulkIndex(context.Background(), "vigil-runbooks", nil)
	if err != nil {
		t.Fatalf("BulkIndex() error = %v", err)
	}
	if result.Indexed != 0 || len(result.Failed) != 0 {
		t.Errorf("BulkIndex() = %+v, want empty result", result)
	}
	if called {
		t.Error("BulkIndex() issued a request for zero documents")
	}
}

func TestElasticStore_BulkIndex_RequestFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "cluster unavailable"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	store, err := NewElasticStore(ElasticConfig{URL: srv.URL, APIKey: "key"})
	if err != nil {
		t.Fatalf("NewElasticStore() error = %v", err)
	}

	_, err = store.BulkIndex(context.Background(), "vigil-runbooks", []Document{
		{ID: "doc", Source: map[string]any{"a": 1}},
	})
	if err == nil {
		t.Fatal("BulkIndex() error = nil, want failure")
	}
	if !strings.Contains(err.Error(), "status 503") {
		t.Errorf("BulkIndex() error = %q, want mention of status 503", err)
	}
}

func TestElasticStore_Count(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count": 42, "_shards": {"total": 1}}`))
	}))
	defer srv.Close()

	store, err := NewElasticStore(ElasticConfig{URL: srv.URL, APIKey: "count-key"})
	if err != nil {
		t.Fatalf("NewElasticStore() error = %v", err)
	}

	count, err := store.Count(context.Background(), "vigil-threat-intel")
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 42 {
		t.Errorf("Count() = %d, want 42", count)
	}
	if gotPath != "/vigil-threat-intel/_count" {
		t.Errorf("path = %q, want %q", gotPath, "/vigil-threat-intel/_count")
	}
	if gotAuth != "ApiKey count-key" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "ApiKey count-key")
	}
}

func TestElasticStore_Count_MissingIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"type": "index_not_found_exception"}}`, http.StatusNotFound)
	}))
	defer srv.Close()

	store, err := NewElasticStore(ElasticConfig{URL: srv.URL, APIKey: "key"})
	if err != nil {
		t.Fatalf("NewElasticStore() error = %v", err)
	}

	_, err = store.Count(context.Background(), "vigil-missing")
	if err == nil {
		t.Fatal("Count() error = nil, want failure")
	}
	if !strings.Contains(err.Error(), "status 404") {
		t.Errorf("Count() error = %q, want mention of status 404", err)
	}
}
