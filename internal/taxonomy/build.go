package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lthealth/taxonomy/internal/category"
	"github.com/lthealth/taxonomy/internal/reference"
	"go.uber.org/zap"
)

// CategoryStats describes one category written by a build.
type CategoryStats struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Papers int    `json:"papers"`
	Output string `json:"output"`
}

// Summary is the result of a full build.
type Summary struct {
	Categories []CategoryStats `json:"categories"` // Sorted by category ID
	Total      int             `json:"total"`
	OutputDir  string          `json:"output_dir"`
	Failed     []FileError     `json:"failed,omitempty"`
}

// Builder regenerates every taxonomy document from a citations root.
type Builder struct {
	CitationsDir string
	OutputDir    string
	Categories   *category.Table
	Logger       *zap.Logger
}

// NewBuilder returns a Builder over the given directories. A nil logger is
// replaced by a no-op logger.
func NewBuilder(citationsDir, outputDir string, cats *category.Table, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		CitationsDir: citationsDir,
		OutputDir:    outputDir,
		Categories:   cats,
		Logger:       logger,
	}
}

// Build processes each recognized category folder under CitationsDir and
// overwrites OutputDir/<id>.json. Folders whose name is not a known category
// are skipped without being reported.
//
// Filesystem errors on the roots or on output files stop the build; files
// already written by then are left in place.
func (b *Builder) Build() (*Summary, error) {
	if err := os.MkdirAll(b.CitationsDir, 0755); err != nil {
		return nil, fmt.Errorf("creating citations directory: %w", err)
	}
	if err := os.MkdirAll(b.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	// os.ReadDir sorts by file name.
	entries, err := os.ReadDir(b.CitationsDir)
	if err != nil {
		return nil, fmt.Errorf("listing citations directory: %w", err)
	}

	summary := &Summary{
		Categories: []CategoryStats{},
		OutputDir:  b.OutputDir,
	}

	for _, e := range entries {
		if !isDir(b.CitationsDir, e) {
			continue
		}
		cat, ok := b.Categories.Lookup(e.Name())
		if !ok {
			b.Logger.Debug("skipping unknown folder", zap.String("folder", e.Name()))
			continue
		}

		dir := filepath.Join(b.CitationsDir, e.Name())
		doc, failed, err := BuildCategory(dir, cat)
		if err != nil {
			return nil, fmt.Errorf("processing %s: %w", cat.ID, err)
		}
		for _, f := range failed {
			b.Logger.Warn("skipping unreadable citation file",
				zap.String("path", f.Path), zap.String("error", f.Err))
		}
		summary.Failed = append(summary.Failed, failed...)

		out := filepath.Join(b.OutputDir, OutputName(cat.ID))
		if err := WriteDocument(out, doc); err != nil {
			return nil, err
		}

		b.Logger.Info("wrote taxonomy",
			zap.String("category", cat.ID),
			zap.Int("papers", len(doc.Papers)),
			zap.String("output", out))

		summary.Categories = append(summary.Categories, CategoryStats{
			ID:     cat.ID,
			Name:   cat.Name,
			Papers: len(doc.Papers),
			Output: out,
		})
		summary.Total += len(doc.Papers)
	}

	return summary, nil
}

// isDir reports whether e is a directory, following symlinks.
func isDir(parent string, e os.DirEntry) bool {
	if e.Type()&os.ModeSymlink == 0 {
		return e.IsDir()
	}
	info, err := os.Stat(filepath.Join(parent, e.Name()))
	return err == nil && info.IsDir()
}

// WriteDocument writes doc to path as indented JSON, replacing any existing
// file. HTML characters are not escaped.
func WriteDocument(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadDocument loads a taxonomy document written by WriteDocument.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if doc.Papers == nil {
		doc.Papers = []reference.Reference{}
	}
	return &doc, nil
}
