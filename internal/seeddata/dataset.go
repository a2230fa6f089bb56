// Package seeddata loads the platform's reference datasets from JSON files,
// attaches vector embeddings to the fields that carry searchable text, and
// prepares documents for indexing.
//
// Seed data lives in a directory tree with one subdirectory per dataset.
// Most datasets keep one document object per file; baselines keep arrays of
// documents. Each dataset declares which field identifies a document and,
// when it has embeddable text, which field holds it and where the vector
// goes.
package seeddata

import (
	"fmt"
)

// Layout describes how documents are arranged in a dataset's JSON files.
type Layout string

const (
	// LayoutSingle marks datasets where each JSON file holds one document object.
	LayoutSingle Layout = "single"
	// LayoutArray marks datasets where each JSON file holds an array of documents.
	LayoutArray Layout = "array"
)

// Document is one seed document as decoded from JSON.
type Document map[string]any

// Dataset describes one seed collection: where its files live, how they are
// shaped, which index they feed, and which fields matter.
type Dataset struct {
	Name        string `yaml:"name"`
	Dir         string `yaml:"dir"`
	Layout      Layout `yaml:"layout"`
	Index       string `yaml:"index"`
	IDField     string `yaml:"id_field"`
	TextField   string `yaml:"text_field"`
	VectorField string `yaml:"vector_field"`
}

// DefaultDatasets returns the built-in seed collections.
func DefaultDatasets() []Dataset {
	return []Dataset{
		{
			Name:        "runbooks",
			Dir:         "runbooks",
			Layout:      LayoutSingle,
			Index:       "vigil-runbooks",
			IDField:     "runbook_id",
			TextField:   "content",
			VectorField: "content_vector",
		},
		{
			Name:    "assets",
			Dir:     "assets",
			Layout:  LayoutSingle,
			Index:   "vigil-assets",
			IDField: "asset_id",
		},
		{
			Name:        "threat-intel",
			Dir:         "threat-intel",
			Layout:      LayoutSingle,
			Index:       "vigil-threat-intel",
			IDField:     "ioc_id",
			TextField:   "description",
			VectorField: "description_vector",
		},
		{
			Name:   "baselines",
			Dir:    "baselines",
			Layout: LayoutArray,
			Index:  "vigil-baselines",
		},
	}
}

// DocumentID derives the stable ID a document indexes under, so re-seeding
// overwrites instead of duplicating. Datasets with an IDField use that
// field's value; datasets without one build a composite key from the
// service and metric names, which is how baselines are identified.
func (ds Dataset) DocumentID(doc Document) (string, error) {
	if ds.IDField != "" {
		value, ok := doc[ds.IDField]
		if !ok {
			return "", fmt.Errorf("dataset %s: document missing %q field", ds.Name, ds.IDField)
		}
		id := fmt.Sprintf("%v", value)
		if id == "" {
			return "", fmt.Errorf("dataset %s: document has empty %q field", ds.Name, ds.IDField)
		}
		return id, nil
	}

	service, ok := doc["service_name"]
	if !ok {
		return "", fmt.Errorf("dataset %s: document missing %q field", ds.Name, "service_name")
	}
	metric, ok := doc["metric_name"]
	if !ok {
		return "", fmt.Errorf("dataset %s: document missing %q field", ds.Name, "metric_name")
	}
	return fmt.Sprintf("baseline-%v-%v", service, metric), nil
}
