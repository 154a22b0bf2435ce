package main

import (
	"github.com/lthealth/taxonomy/internal/category"
	"github.com/lthealth/taxonomy/internal/taxonomy"
	"github.com/spf13/cobra"
)

var buildStrict bool

func init() {
	buildCmd.Flags().BoolVar(&buildStrict, "strict", false, "Exit with a data error if any citation file could not be read")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Regenerate taxonomy JSON documents from citation folders",
	Long: `Regenerate one JSON document per category from the .bib files in its
citation folder.

Each recognized folder citations/<id>/ is written to taxonomies/<id>.json,
replacing any previous file. Papers are ordered by file name. Folders that
are not known categories are skipped.

Output document shape:
  {"category": ..., "description": ..., "papers": [
    {"id", "title", "authors", "year", "venue", "abstract", "bibtex"}, ...]}`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	root, cfg := mustLoadProject()

	b := taxonomy.NewBuilder(cfg.CitationsPath(root), cfg.OutputPath(root), category.Default(), logger)
	summary, err := b.Build()
	if err != nil {
		exitWithError(ExitError, "building taxonomies: %v", err)
	}

	if humanOutput {
		printBuildSummary(summary)
	} else {
		outputJSON(summary)
	}

	if buildStrict && len(summary.Failed) > 0 {
		exitWithError(ExitDataError, "%d citation file(s) could not be read", len(summary.Failed))
	}
	return nil
}

func printBuildSummary(s *taxonomy.Summary) {
	for _, c := range s.Categories {
		outputHuman("Processed %s (%d papers) -> %s\n", c.Name, c.Papers, c.Output)
	}

	outputHuman("\n%s\n", rule())
	outputHuman("BUILD SUMMARY\n")
	outputHuman("%s\n", rule())
	for _, c := range s.Categories {
		outputHuman("  %-*s %3d papers\n", NameColumnWidth, c.ID, c.Papers)
	}
	outputHuman("%s\n", rule())
	outputHuman("  %-*s %3d papers\n", NameColumnWidth, "TOTAL", s.Total)
	outputHuman("%s\n", rule())

	if len(s.Failed) > 0 {
		outputHuman("\nSkipped %d unreadable file(s):\n", len(s.Failed))
		for _, f := range s.Failed {
			outputHuman("  %s: %s\n", f.Path, f.Err)
		}
	}

	outputHuman("\nTaxonomy files saved to: %s/\n", s.OutputDir)
}
