package seeddata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arome3/vigil/internal/embedding"
)

// AttachVectors embeds the dataset's text field across docs in one batch and
// writes the vectors back in place. Documents without the field, or with an
// empty value, are left untouched. Returns how many documents got a vector.
func (ds Dataset) AttachVectors(ctx context.Context, gen *embedding.Generator, docs []Document) (int, error) {
	if ds.TextField == "" {
		return 0, nil
	}

	var texts []string
	var indices []int
	for i, doc := range docs {
		text, ok := doc[ds.TextField].(string)
		if !ok || text == "" {
			continue
		}
		texts = append(texts, text)
		indices = append(indices, i)
	}
	if len(texts) == 0 {
		return 0, nil
	}

	vectors, err := gen.GenerateBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding %s: %w", ds.Name, err)
	}
	for j, idx := range indices {
		docs[idx][ds.VectorField] = vectors[j]
	}
	return len(texts), nil
}

// EmbedFiles rewrites the dataset's JSON files with a fresh vector for the
// text field, one file at a time, so the vectors can be committed alongside
// the seed data. Only single-document datasets with a text field qualify.
// Returns the names of the files it updated, in sorted order.
func (ds Dataset) EmbedFiles(ctx context.Context, gen *embedding.Generator, root string) ([]string, error) {
	if ds.TextField == "" || ds.Layout != LayoutSingle {
		return nil, nil
	}

	paths, err := filepath.Glob(filepath.Join(root, ds.Dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("globbing %s files: %w", ds.Name, err)
	}

	var updated []string
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return updated, fmt.Errorf("reading %s: %w", path, err)
		}

		var raw any
		if err := json.Unmarshal(data, &raw); err != nil {
			return updated, fmt.Errorf("parsing %s: %w", path, err)
		}
		doc, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		text, ok := doc[ds.TextField].(string)
		if !ok || text == "" {
			continue
		}

		vector, err := gen.Generate(ctx, text)
		if err != nil {
			return updated, fmt.Errorf("embedding %s: %w", path, err)
		}
		doc[ds.VectorField] = vector

		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return updated, fmt.Errorf("encoding %s: %w", path, err)
		}
		out = append(out, '\n')
		if err := os.WriteFile(path, out, 0644); err != nil {
			return updated, fmt.Errorf("writing %s: %w", path, err)
		}
		updated = append(updated, filepath.Base(path))
	}
	return updated, nil
}
