package main

import (
	"github.com/arome3/vigil/internal/embedding"
	"github.com/arome3/vigil/internal/seeddata"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	embedProviderFlag string
	embedSeedRootFlag string
	embedManifestFlag string
	embedDimsFlag     int
)

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Write vector embeddings into seed data files",
	Long: `Generate embeddings for the seed datasets that carry searchable text
and write the vectors back into the JSON files, so they can be
committed alongside the data.

Without --provider (or EMBEDDING_PROVIDER), deterministic
pseudo-vectors are used; they need no credentials and are stable
across runs.`,
	RunE: runEmbed,
}

func init() {
	// Load .env file if present (for provider credentials)
	_ = godotenv.Load()

	embedCmd.Flags().StringVar(&embedProviderFlag, "provider", "", "Embedding provider: elastic, openai, or cohere (default pseudo-vectors)")
	embedCmd.Flags().StringVar(&embedSeedRootFlag, "seed-root", "seed-data", "Seed data directory")
	embedCmd.Flags().StringVar(&embedManifestFlag, "manifest", "", "Dataset manifest YAML (default built-in datasets)")
	embedCmd.Flags().IntVar(&embedDimsFlag, "dims", embedding.DefaultDimensions, "Vector dimensions")
	rootCmd.AddCommand(embedCmd)
}

// DatasetEmbedResult lists the files updated for one dataset.
type DatasetEmbedResult struct {
	Dataset string   `json:"dataset"`
	Files   []string `json:"files"`
}

// EmbedResponse is the JSON output of the embed command.
type EmbedResponse struct {
	Provider   string               `json:"provider"`
	Datasets   []DatasetEmbedResult `json:"datasets"`
	TotalFiles int                  `json:"total_files"`
}

func runEmbed(cmd *cobra.Command, args []string) error {
	gen := mustGenerator(embedProviderFlag, embedDimsFlag)
	datasets := mustDatasets(embedManifestFlag)
	ctx := cmd.Context()

	resp := EmbedResponse{Provider: gen.ProviderName()}
	for _, ds := range datasets {
		if ds.TextField == "" || ds.Layout != seeddata.LayoutSingle {
			continue
		}
		files, err := ds.EmbedFiles(ctx, gen, embedSeedRootFlag)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		if files == nil {
			files = []string{}
		}
		resp.Datasets = append(resp.Datasets, DatasetEmbedResult{Dataset: ds.Name, Files: files})
		resp.TotalFiles += len(files)
	}

	if humanOutput {
		outputHuman("Embedding provider: %s\n\n", resp.Provider)
		for _, r := range resp.Datasets {
			outputHuman("%s: %d files processed\n", r.Dataset, len(r.Files))
			for _, f := range r.Files {
				outputHuman("  %s\n", f)
			}
		}
		outputHuman("\nDone. %d files updated with %s embeddings.\n", resp.TotalFiles, resp.Provider)
		return nil
	}
	return outputJSON(resp)
}
