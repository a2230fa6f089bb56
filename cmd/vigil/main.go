// Package main provides the vigil CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/arome3/vigil/internal/config"
	"github.com/arome3/vigil/internal/embedding"
	"github.com/arome3/vigil/internal/seeddata"
	"github.com/arome3/vigil/internal/seedstore"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vigil",
	Short: "Seed data tooling for the Vigil security platform",
	Long: `vigil prepares and loads the platform's reference data.

Core features:
  - Vector embeddings for seed documents (pseudo or provider-backed)
  - Bulk indexing into Elasticsearch or a local SQLite store
  - Document count verification after seeding

Without a provider, deterministic pseudo-vectors are generated; they
need no credentials and are stable across runs. Credentials come from
the environment, with .env honoured.
All commands output JSON by default for automation; pass --human for
readable text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// mustGenerator builds the embedding generator from the --provider flag and
// environment, exits on configuration errors.
func mustGenerator(provider string, dims int) *embedding.Generator {
	cfg, err := config.ResolveEmbedding(provider)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	cfg.Dimensions = dims

	gen, err := embedding.NewGenerator(cfg, embedding.WithRetrier(
		embedding.NewRetrier(embedding.WithNotify(retryWarning)),
	))
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return gen
}

// mustDatasets returns the dataset table, from the manifest when one is given.
func mustDatasets(manifestPath string) []seeddata.Dataset {
	if manifestPath == "" {
		return seeddata.DefaultDatasets()
	}
	datasets, err := seeddata.LoadManifest(manifestPath)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return datasets
}

// mustOpenStore opens the document store named by --store, exits on error.
// The caller is responsible for calling Close() on the returned store.
func mustOpenStore(kind, sqlitePath string) seedstore.Store {
	switch kind {
	case "elastic":
		cfg, err := config.ResolveElastic()
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		store, err := seedstore.NewElasticStore(cfg)
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		return store
	case "sqlite":
		store, err := seedstore.OpenSQLiteStore(sqlitePath)
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		return store
	default:
		exitWithError(ExitConfigError, "unknown store %q (supported: elastic, sqlite)", kind)
		return nil
	}
}

// retryWarning reports a failed provider call that is about to be retried.
func retryWarning(label string, attempt int, err error, delay time.Duration) {
	status := 0
	var apiErr *embedding.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
	}
	fmt.Fprintf(os.Stderr, "  WARN: %s attempt %d failed (%d), retrying in %.1fs\n",
		label, attempt+1, status, delay.Seconds())
}
