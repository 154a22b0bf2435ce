package main

import (
	"github.com/lthealth/taxonomy/internal/category"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the research categories",
	Long: `List every category with its folder name, display name and description,
in canonical order.`,
	Args: cobra.NoArgs,
	RunE: runCategories,
}

func runCategories(cmd *cobra.Command, args []string) error {
	cats := category.Default().All()

	if !humanOutput {
		outputJSON(cats)
		return nil
	}

	for i, c := range cats {
		if i > 0 {
			outputHuman("\n")
		}
		outputHuman("%s/\n", c.ID)
		outputHuman("  %s\n", c.Name)
		outputHuman("  -> %s\n", wrapText(c.Description, TextWrapWidth, "     "))
	}
	return nil
}
