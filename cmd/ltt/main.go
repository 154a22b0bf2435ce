// Package main provides the ltt CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lthealth/taxonomy/internal/config"
	"github.com/lthealth/taxonomy/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	// rootFlag overrides project root discovery
	rootFlag string
	// verbose enables debug logging on stderr
	verbose bool

	logger = zap.NewNop()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ltt",
	Short: "Build long-tail learning taxonomies from BibTeX folders",
	Long: `ltt turns folders of BibTeX citation files, one folder per research
category, into one JSON taxonomy document per category for the website.

Typical workflow:
  ltt init      # create citations/<category>/ folders
  (save .bib files into the folders)
  ltt build     # regenerate taxonomies/<category>.json

All commands output JSON by default; use --human for readable text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Project root (default: nearest directory with taxonomy.yml or citations/)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")
	rootCmd.Version = Version
}

// projectRoot returns --root if set, otherwise the nearest project root
// above the working directory, otherwise the working directory itself.
func projectRoot() (string, error) {
	if rootFlag != "" {
		return config.ExpandPath(rootFlag), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}

	root, err := config.FindProject(cwd)
	if errors.Is(err, config.ErrNotProject) {
		return cwd, nil
	}
	return root, err
}

// mustLoadProject resolves the project root and its configuration, exits on error.
func mustLoadProject() (string, *config.Config) {
	root, err := projectRoot()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return root, cfg
}

// mustOpenCatalog opens the catalog database, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenCatalog(root string, cfg *config.Config) *storage.DB {
	db, err := storage.OpenDB(cfg.CatalogPath(root))
	if err != nil {
		exitWithError(ExitError, "opening catalog: %v", err)
	}
	return db
}
