package seeddata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the YAML shape of a dataset manifest file. It replaces the
// built-in dataset table for deployments that seed custom collections.
type Manifest struct {
	Datasets []Dataset `yaml:"datasets"`
}

// LoadManifest reads and validates a dataset manifest from the given path.
func LoadManifest(path string) ([]Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if len(m.Datasets) == 0 {
		return nil, fmt.Errorf("manifest must define at least one dataset")
	}

	for i := range m.Datasets {
		ds := &m.Datasets[i]
		if ds.Name == "" {
			return nil, fmt.Errorf("dataset entry %d must have a name", i+1)
		}
		if ds.Index == "" {
			return nil, fmt.Errorf("dataset entry %d (%s) must have an index", i+1, ds.Name)
		}
		if ds.Dir == "" {
			ds.Dir = ds.Name
		}
		switch ds.Layout {
		case "":
			ds.Layout = LayoutSingle
		case LayoutSingle, LayoutArray:
		default:
			return nil, fmt.Errorf("dataset entry %d (%s): unknown layout %q (expected %q or %q)",
				i+1, ds.Name, ds.Layout, LayoutSingle, LayoutArray)
		}
		if (ds.TextField == "") != (ds.VectorField == "") {
			return nil, fmt.Errorf("dataset entry %d (%s): text_field and vector_field must be set together", i+1, ds.Name)
		}
	}

	return m.Datasets, nil
}
