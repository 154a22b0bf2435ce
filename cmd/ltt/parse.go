package main

import (
	"github.com/lthealth/taxonomy/internal/bibtex"
	"github.com/lthealth/taxonomy/internal/reference"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <file.bib>...",
	Short: "Show the record extracted from citation files",
	Long: `Parse one or more citation files and print the records exactly as
'ltt build' would write them. Useful for checking a new .bib file before
rebuilding.

Example:
  ltt parse citations/loss-functions/focal.bib`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	refs := make([]reference.Reference, 0, len(args))
	for _, path := range args {
		ref, err := bibtex.ParseFile(path)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		refs = append(refs, ref)
	}

	if !humanOutput {
		outputJSON(refs)
		return nil
	}

	for i, ref := range refs {
		if i > 0 {
			outputHuman("\n")
		}
		printRefDetail(args[i], ref)
	}
	return nil
}

func printRefDetail(source string, ref reference.Reference) {
	outputHuman("%s\n", source)
	outputHuman("  ID:       %s\n", ref.ID)
	outputHuman("  Type:     %s\n", ref.EntryType)
	outputHuman("  Title:    %s\n", wrapText(ref.Title, TextWrapWidth, "            "))
	outputHuman("  Authors:  %s\n", wrapText(ref.Authors, TextWrapWidth, "            "))
	outputHuman("  Year:     %s\n", ref.Year)
	outputHuman("  Venue:    %s\n", ref.Venue)
	outputHuman("  Abstract: %s\n", wrapText(ref.Abstract, TextWrapWidth, "            "))
}
