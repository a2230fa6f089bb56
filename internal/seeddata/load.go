package seeddata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads the dataset's documents from the seed tree rooted at root.
// Files are read in sorted name order. Files whose top-level shape doesn't
// match the dataset layout are skipped, and a missing directory yields no
// documents; both are normal in a partially populated seed tree.
func (ds Dataset) Load(root string) ([]Document, error) {
	paths, err := filepath.Glob(filepath.Join(root, ds.Dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("globbing %s files: %w", ds.Name, err)
	}

	var docs []Document
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		var raw any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}

		switch ds.Layout {
		case LayoutArray:
			items, ok := raw.([]any)
			if !ok {
				continue
			}
			for _, item := range items {
				if doc, ok := item.(map[string]any); ok {
					docs = append(docs, Document(doc))
				}
			}
		default:
			doc, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			docs = append(docs, Document(doc))
		}
	}
	return docs, nil
}
