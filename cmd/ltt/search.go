package main

import (
	"github.com/lthealth/taxonomy/internal/category"
	"github.com/lthealth/taxonomy/internal/storage"
	"github.com/spf13/cobra"
)

var (
	searchLimit    int
	searchCategory string
	searchYear     string
)

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "Only search this category ID")
	searchCmd.Flags().StringVar(&searchYear, "year", "", "Only return papers from this year")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search catalogued papers by keyword",
	Long: `Full-text search over title, authors, abstract and venue of every
paper in the catalog. Run 'ltt index' first.

Without a query, --category lists that category's papers in document order.

Examples:
  ltt search "focal loss"
  ltt search smote --category data-balancing
  ltt search imbalance --year 2023
  ltt search --category fairness`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchCategory != "" {
		if _, ok := category.Default().Lookup(searchCategory); !ok {
			exitWithError(ExitError, "unknown category %q (see 'ltt categories')", searchCategory)
		}
	}

	root, cfg := mustLoadProject()
	db := mustOpenCatalog(root, cfg)
	defer db.Close()

	mustHaveCatalog(db)

	var entries []storage.Entry
	var err error
	if len(args) == 0 {
		if searchCategory == "" {
			exitWithError(ExitError, "a query or --category is required")
		}
		entries, err = db.ListCategory(searchCategory)
		if err != nil {
			exitWithError(ExitError, "listing: %v", err)
		}
		entries = filterYear(entries, searchYear)
		if searchLimit > 0 && len(entries) > searchLimit {
			entries = entries[:searchLimit]
		}
	} else {
		entries, err = db.Search(args[0], storage.SearchFilters{
			Category: searchCategory,
			Year:     searchYear,
		}, searchLimit)
		if err != nil {
			exitWithError(ExitError, "searching: %v", err)
		}
	}

	if !humanOutput {
		outputJSON(entries)
		return nil
	}

	if len(entries) == 0 {
		outputHuman("No papers found\n")
		return nil
	}
	outputHuman("Found %d papers:\n\n", len(entries))
	for i, e := range entries {
		printEntrySummary(i+1, e)
	}
	return nil
}

// filterYear keeps the entries published in year. An empty year keeps all.
func filterYear(entries []storage.Entry, year string) []storage.Entry {
	if year == "" {
		return entries
	}
	kept := []storage.Entry{}
	for _, e := range entries {
		if e.Year == year {
			kept = append(kept, e)
		}
	}
	return kept
}

// mustHaveCatalog exits with a config error if the catalog is empty.
func mustHaveCatalog(db *storage.DB) {
	count, err := db.Count()
	if err != nil {
		exitWithError(ExitError, "reading catalog: %v", err)
	}
	if count == 0 {
		exitWithError(ExitConfigError, "catalog is empty\n\nRun 'ltt build' and then 'ltt index' to create it.")
	}
}

func printEntrySummary(n int, e storage.Entry) {
	outputHuman("%d. %s [%s]\n", n, e.ID, e.Category)
	outputHuman("   %s\n", truncateString(e.Title, SearchTitleMaxLen))
	outputHuman("   %s (%s)\n\n", truncateString(e.Authors, SearchTitleMaxLen), e.Year)
}
