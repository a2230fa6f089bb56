package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	checkSeedRootFlag   string
	checkManifestFlag   string
	checkStoreFlag      string
	checkSQLitePathFlag string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify store document counts against seed data",
	Long: `Compare per-index document counts in the store against the documents
present in the seed data files. Useful after seeding, or to confirm an
environment is fully provisioned.`,
	RunE: runCheck,
}

func init() {
	// Load .env file if present (for store credentials)
	_ = godotenv.Load()

	checkCmd.Flags().StringVar(&checkSeedRootFlag, "seed-root", "seed-data", "Seed data directory")
	checkCmd.Flags().StringVar(&checkManifestFlag, "manifest", "", "Dataset manifest YAML (default built-in datasets)")
	checkCmd.Flags().StringVar(&checkStoreFlag, "store", "elastic", "Document store: elastic or sqlite")
	checkCmd.Flags().StringVar(&checkSQLitePathFlag, "sqlite-path", "vigil-seed.db", "SQLite database path (with --store sqlite)")
	rootCmd.AddCommand(checkCmd)
}

// CheckResponse is the JSON output of the check command.
type CheckResponse struct {
	Results []VerificationResult `json:"results"`
	Pass    bool                 `json:"pass"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	datasets := mustDatasets(checkManifestFlag)
	store := mustOpenStore(checkStoreFlag, checkSQLitePathFlag)
	defer store.Close()
	ctx := cmd.Context()

	if humanOutput {
		outputHuman("--- Verification ---\n")
	}

	resp := CheckResponse{Pass: true}
	for _, ds := range datasets {
		docs, err := ds.Load(checkSeedRootFlag)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		count, err := store.Count(ctx, ds.Index)
		if err != nil {
			exitWithError(ExitError, "counting %s: %v", ds.Index, err)
		}

		v := VerificationResult{
			Index:    ds.Index,
			Count:    count,
			Expected: len(docs),
			Pass:     count >= len(docs),
		}
		if !v.Pass {
			resp.Pass = false
		}
		resp.Results = append(resp.Results, v)
		if humanOutput {
			printVerificationHuman(v)
		}
	}

	if !humanOutput {
		if err := outputJSON(resp); err != nil {
			exitWithError(ExitError, "encoding JSON: %v", err)
		}
	}
	if !resp.Pass {
		os.Exit(ExitDataError)
	}
	return nil
}
