package main

import (
	"os"

	"github.com/arome3/vigil/internal/embedding"
	"github.com/arome3/vigil/internal/seedstore"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	seedProviderFlag   string
	seedRootFlag       string
	seedManifestFlag   string
	seedDimsFlag       int
	seedStoreFlag      string
	seedSQLitePathFlag string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load seed data into the document store",
	Long: `Load the reference datasets from seed data files, attach vector
embeddings to the fields that carry text, and bulk-index everything
into the configured store. Documents index under stable IDs, so
re-running overwrites rather than duplicates.

After indexing, per-index document counts are verified against the
loaded data; any count below the expected number fails the run.`,
	RunE: runSeed,
}

func init() {
	// Load .env file if present (for store and provider credentials)
	_ = godotenv.Load()

	seedCmd.Flags().StringVar(&seedProviderFlag, "provider", "", "Embedding provider: elastic, openai, or cohere (default pseudo-vectors)")
	seedCmd.Flags().StringVar(&seedRootFlag, "seed-root", "seed-data", "Seed data directory")
	seedCmd.Flags().StringVar(&seedManifestFlag, "manifest", "", "Dataset manifest YAML (default built-in datasets)")
	seedCmd.Flags().IntVar(&seedDimsFlag, "dims", embedding.DefaultDimensions, "Vector dimensions")
	seedCmd.Flags().StringVar(&seedStoreFlag, "store", "elastic", "Document store: elastic or sqlite")
	seedCmd.Flags().StringVar(&seedSQLitePathFlag, "sqlite-path", "vigil-seed.db", "SQLite database path (with --store sqlite)")
	rootCmd.AddCommand(seedCmd)
}

// DatasetSeedResult reports the indexing outcome for one dataset.
type DatasetSeedResult struct {
	Dataset  string                `json:"dataset"`
	Index    string                `json:"index"`
	Loaded   int                   `json:"loaded"`
	Embedded int                   `json:"embedded"`
	Indexed  int                   `json:"indexed"`
	Failed   []seedstore.ItemError `json:"failed,omitempty"`
}

// SeedResponse is the JSON output of the seed command.
type SeedResponse struct {
	Provider     string               `json:"provider"`
	Datasets     []DatasetSeedResult  `json:"datasets"`
	Verification []VerificationResult `json:"verification"`
}

func runSeed(cmd *cobra.Command, args []string) error {
	gen := mustGenerator(seedProviderFlag, seedDimsFlag)
	datasets := mustDatasets(seedManifestFlag)
	store := mustOpenStore(seedStoreFlag, seedSQLitePathFlag)
	defer store.Close()
	ctx := cmd.Context()

	if humanOutput {
		outputHuman("Embedding provider: %s\n", gen.ProviderName())
	}

	resp := SeedResponse{Provider: gen.ProviderName()}
	for _, ds := range datasets {
		docs, err := ds.Load(seedRootFlag)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}

		embedded, err := ds.AttachVectors(ctx, gen, docs)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}

		batch := make([]seedstore.Document, 0, len(docs))
		for _, doc := range docs {
			id, err := ds.DocumentID(doc)
			if err != nil {
				exitWithError(ExitDataError, "%v", err)
			}
			batch = append(batch, seedstore.Document{ID: id, Source: doc})
		}

		result, err := store.BulkIndex(ctx, ds.Index, batch)
		if err != nil {
			exitWithError(ExitError, "indexing %s: %v", ds.Index, err)
		}

		if humanOutput {
			if len(result.Failed) > 0 {
				outputHuman("WARNING: %s - %d errors during indexing\n", ds.Index, len(result.Failed))
			}
			outputHuman("OK: %s - %d documents indexed\n", ds.Index, result.Indexed)
		}
		resp.Datasets = append(resp.Datasets, DatasetSeedResult{
			Dataset:  ds.Name,
			Index:    ds.Index,
			Loaded:   len(docs),
			Embedded: embedded,
			Indexed:  result.Indexed,
			Failed:   result.Failed,
		})
	}

	if humanOutput {
		outputHuman("\n--- Verification ---\n")
	}
	failed := false
	for i, ds := range datasets {
		count, err := store.Count(ctx, ds.Index)
		if err != nil {
			exitWithError(ExitError, "counting %s: %v", ds.Index, err)
		}
		v := VerificationResult{
			Index:    ds.Index,
			Count:    count,
			Expected: resp.Datasets[i].Loaded,
			Pass:     count >= resp.Datasets[i].Loaded,
		}
		if !v.Pass {
			failed = true
		}
		resp.Verification = append(resp.Verification, v)
		if humanOutput {
			printVerificationHuman(v)
		}
	}

	if !humanOutput {
		if err := outputJSON(resp); err != nil {
			exitWithError(ExitError, "encoding JSON: %v", err)
		}
	}
	if failed {
		os.Exit(ExitDataError)
	}
	return nil
}
