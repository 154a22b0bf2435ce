// Package config handles project configuration: where citation folders live,
// where taxonomy documents are written and where caches go.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents project configuration stored in taxonomy.yml at the
// project root. Every field is optional; relative paths are resolved against
// the project root.
type Config struct {
	CitationsDir string `yaml:"citations_dir"` // Category folders of .bib files
	OutputDir    string `yaml:"output_dir"`    // Taxonomy JSON documents
	CacheDir     string `yaml:"cache_dir"`     // Ephemeral query database
}

const (
	ConfigFile          = "taxonomy.yml"
	DefaultCitationsDir = "citations"
	DefaultOutputDir    = "taxonomies"
	DefaultCacheDir     = ".cache"
	CatalogFile         = "catalog.db"
)

// ErrNotProject is returned by FindProject when no project root is found.
var ErrNotProject = errors.New("not in a taxonomy project (no taxonomy.yml or citations directory found)")

// Default returns the configuration used when taxonomy.yml is absent.
func Default() *Config {
	return &Config{
		CitationsDir: DefaultCitationsDir,
		OutputDir:    DefaultOutputDir,
		CacheDir:     DefaultCacheDir,
	}
}

// ConfigPath returns the path to taxonomy.yml from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigFile)
}

// IsProject checks if the given path looks like a project root: it holds a
// taxonomy.yml file or a citations directory.
func IsProject(root string) bool {
	if info, err := os.Stat(ConfigPath(root)); err == nil && !info.IsDir() {
		return true
	}
	info, err := os.Stat(filepath.Join(root, DefaultCitationsDir))
	return err == nil && info.IsDir()
}

// FindProject walks up from the given path to find a project root.
func FindProject(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsProject(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrNotProject
		}
		abs = parent
	}
}

// Load reads taxonomy.yml from root. A missing file yields Default(); fields
// left empty in the file take their default values.
func Load(root string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if file.CitationsDir != "" {
		cfg.CitationsDir = file.CitationsDir
	}
	if file.OutputDir != "" {
		cfg.OutputDir = file.OutputDir
	}
	if file.CacheDir != "" {
		cfg.CacheDir = file.CacheDir
	}

	if err := cfg.Validate(root); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration to taxonomy.yml at root.
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate rejects configurations where inputs and outputs collide.
func (c *Config) Validate(root string) error {
	citations := c.CitationsPath(root)
	if citations == c.OutputPath(root) {
		return fmt.Errorf("citations_dir and output_dir must differ: both are %s", citations)
	}
	if citations == c.CachePath(root) {
		return fmt.Errorf("citations_dir and cache_dir must differ: both are %s", citations)
	}
	return nil
}

// CitationsPath returns the directory holding the category folders.
func (c *Config) CitationsPath(root string) string {
	return resolve(root, c.CitationsDir)
}

// OutputPath returns the directory taxonomy documents are written to.
func (c *Config) OutputPath(root string) string {
	return resolve(root, c.OutputDir)
}

// CachePath returns the cache directory.
func (c *Config) CachePath(root string) string {
	return resolve(root, c.CacheDir)
}

// CatalogPath returns the path to the catalog database.
func (c *Config) CatalogPath(root string) string {
	return filepath.Join(c.CachePath(root), CatalogFile)
}

func resolve(root, path string) string {
	path = ExpandPath(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
