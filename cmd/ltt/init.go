package main

import (
	"os"

	"github.com/lthealth/taxonomy/internal/category"
	"github.com/lthealth/taxonomy/internal/config"
	"github.com/lthealth/taxonomy/internal/scaffold"
	"github.com/spf13/cobra"
)

var initWriteConfig bool

func init() {
	initCmd.Flags().BoolVar(&initWriteConfig, "write-config", false, "Also write a default taxonomy.yml if none exists")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create one citation folder per category",
	Long: `Create the citations directory and one subdirectory per category.

Existing folders and their contents are left untouched, so this is safe to
run again at any time.

Creates:
  citations/
  ├── surveys/
  ├── data-balancing/
  └── ...`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

// InitResponse is the response for the init command.
type InitResponse struct {
	Status   string   `json:"status"`
	Root     string   `json:"root"`
	Created  []string `json:"created"`
	Existing []string `json:"existing"`
	Total    int      `json:"total"`
	Config   string   `json:"config,omitempty"`
}

func runInit(cmd *cobra.Command, args []string) error {
	root, cfg := mustLoadProject()
	cats := category.Default().All()

	res, err := scaffold.Init(cfg.CitationsPath(root), cats, logger)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	var configPath string
	if initWriteConfig {
		configPath = config.ConfigPath(root)
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			if err := cfg.Save(root); err != nil {
				exitWithError(ExitError, "%v", err)
			}
		}
	}

	if !humanOutput {
		outputJSON(InitResponse{
			Status:   "initialized",
			Root:     res.Root,
			Created:  res.Created,
			Existing: res.Existing,
			Total:    res.Total(),
			Config:   configPath,
		})
		return nil
	}

	created := make(map[string]bool, len(res.Created))
	for _, id := range res.Created {
		created[id] = true
	}

	outputHuman("Base directory: %s\n\n", res.Root)
	for _, c := range cats {
		state := "already exists"
		if created[c.ID] {
			state = "created"
		}
		outputHuman("  %-*s (%s)\n", NameColumnWidth, c.ID, state)
	}

	outputHuman("\n%s\n", rule())
	outputHuman("  Created:  %d folders\n", len(res.Created))
	outputHuman("  Existing: %d folders\n", len(res.Existing))
	outputHuman("  Total:    %d folders\n", res.Total())
	outputHuman("%s\n", rule())

	outputHuman("\nNext steps:\n")
	outputHuman("  1. Save .bib files to the category folders, e.g.\n")
	for _, c := range cats[:min(3, len(cats))] {
		outputHuman("     - %s/%s/<paper>.bib\n", cfg.CitationsDir, c.ID)
	}
	outputHuman("  2. Run: ltt build\n")
	outputHuman("  3. Run 'ltt categories --human' for the category reference\n")
	if configPath != "" {
		outputHuman("\nConfig: %s\n", configPath)
	}

	return nil
}
