package main

import (
	"github.com/lthealth/taxonomy/internal/category"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the search catalog from taxonomy documents",
	Long: `Rebuild the SQLite search catalog from the JSON documents written by
'ltt build'.

The catalog lives in the cache directory and can be deleted at any time.
Run this after every build to keep 'ltt search' and 'ltt get' current.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

// IndexResponse is the response for the index command.
type IndexResponse struct {
	Status     string `json:"status"`
	Path       string `json:"path"`
	Categories int    `json:"categories"`
	Papers     int    `json:"papers"`
}

func runIndex(cmd *cobra.Command, args []string) error {
	root, cfg := mustLoadProject()
	db := mustOpenCatalog(root, cfg)
	defer db.Close()

	stats, err := db.RebuildFromTaxonomies(cfg.OutputPath(root), category.Default())
	if err != nil {
		exitWithError(ExitDataError, "rebuilding catalog: %v", err)
	}

	if humanOutput {
		outputHuman("Indexed %d papers from %d categories into %s\n", stats.Papers, stats.Categories, cfg.CatalogPath(root))
	} else {
		outputJSON(IndexResponse{
			Status:     "rebuilt",
			Path:       cfg.CatalogPath(root),
			Categories: stats.Categories,
			Papers:     stats.Papers,
		})
	}
	return nil
}
