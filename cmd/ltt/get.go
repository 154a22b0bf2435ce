package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get catalogued papers by citation key",
	Long: `Get every catalogued paper with the given citation key. A paper filed
under several categories is listed once per category.

Example:
  ltt get foo2020`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	root, cfg := mustLoadProject()
	db := mustOpenCatalog(root, cfg)
	defer db.Close()

	mustHaveCatalog(db)

	entries, err := db.GetByID(args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if len(entries) == 0 {
		exitWithError(ExitDataError, "paper not found: %s", args[0])
	}

	if !humanOutput {
		outputJSON(entries)
		return nil
	}

	for i, e := range entries {
		if i > 0 {
			outputHuman("\n")
		}
		printRefDetail(e.Category, e.Reference)
	}
	return nil
}
