package seeddata

import (
	"strings"
	"testing"
)

func TestDefaultDatasets(t *testing.T) {
	datasets := DefaultDatasets()
	if len(datasets) != 4 {
		t.Fatalf("len(DefaultDatasets()) = %d, want 4", len(datasets))
	}

	byName := make(map[string]Dataset, len(datasets))
	for _, ds := range datasets {
		byName[ds.Name] = ds
	}

	runbooks, ok := byName["runbooks"]
	if !ok {
		t.Fatal("missing runbooks dataset")
	}
	if runbooks.Index != "vigil-runbooks" {
		t.Errorf("runbooks.Index = %q, want %q", runbooks.Index, "vigil-runbooks")
	}
	if runbooks.IDField != "runbook_id" {
		t.Errorf("runbooks.IDField = %q, want %q", runbooks.IDField, "runbook_id")
	}
	if runbooks.TextField != "content" || runbooks.VectorField != "content_vector" {
		t.Errorf("runbooks embeds %q into %q, want content into content_vector",
			runbooks.TextField, runbooks.VectorField)
	}

	intel, ok := byName["threat-intel"]
	if !ok {
		t.Fatal("missing threat-intel dataset")
	}
	if intel.TextField != "description" || intel.VectorField != "description_vector" {
		t.Errorf("threat-intel embeds %q into %q, want description into description_vector",
			intel.TextField, intel.VectorField)
	}

	assets, ok := byName["assets"]
	if !ok {
		t.Fatal("missing assets dataset")
	}
	if assets.TextField != "" {
		t.Errorf("assets.TextField = %q, want none", assets.TextField)
	}

	baselines, ok := byName["baselines"]
	if !ok {
		t.Fatal("missing baselines dataset")
	}
	if baselines.Layout != LayoutArray {
		t.Errorf("baselines.Layout = %q, want %q", baselines.Layout, LayoutArray)
	}
	if baselines.IDField != "" {
		t.Errorf("baselines.IDField = %q, want composite key", baselines.IDField)
	}
}

func TestDataset_DocumentID(t *testing.T) {
	tests := []struct {
		name    string
		ds      Dataset
		doc     Document
		want    string
		wantErr string
	}{
		{
			name: "id field",
			ds:   Dataset{Name: "runbooks", IDField: "runbook_id"},
			doc:  Document{"runbook_id": "rb-disk-pressure"},
			want: "rb-disk-pressure",
		},
		{
			name: "numeric id field",
			ds:   Dataset{Name: "assets", IDField: "asset_id"},
			doc:  Document{"asset_id": 7},
			want: "7",
		},
		{
			name:    "missing id field",
			ds:      Dataset{Name: "runbooks", IDField: "runbook_id"},
			doc:     Document{"title": "no id here"},
			wantErr: "runbook_id",
		},
		{
			name:    "empty id field",
			ds:      Dataset{Name: "runbooks", IDField: "runbook_id"},
			doc:     Document{"runbook_id": ""},
			wantErr: "runbook_id",
		},
		{
			name: "composite baseline key",
			ds:   Dataset{Name: "baselines"},
			doc:  Document{"service_name": "api-gateway", "metric_name": "latency_p95"},
			want: "baseline-api-gateway-latency_p95",
		},
		{
			name:    "composite missing service",
			ds:      Dataset{Name: "baselines"},
			doc:     Document{"metric_name": "latency_p95"},
			wantErr: "service_name",
		},
		{
			name:    "composite missing metric",
			ds:      Dataset{Name: "baselines"},
			doc:     Document{"service_name": "api-gateway"},
			wantErr: "metric_name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.ds.DocumentID(tt.doc)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("DocumentID() = %q, want error", got)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("DocumentID() error = %q, want mention of %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DocumentID() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DocumentID() = %q, want %q", got, tt.want)
			}
		})
	}
}
