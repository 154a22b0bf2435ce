// Package taxonomy turns category folders of BibTeX files into taxonomy
// documents, one JSON file per category.
package taxonomy

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lthealth/taxonomy/internal/bibtex"
	"github.com/lthealth/taxonomy/internal/category"
	"github.com/lthealth/taxonomy/internal/reference"
)

// BibExt is the extension of citation files inside a category folder.
const BibExt = ".bib"

// Document is the aggregate written for one category.
type Document struct {
	Category    string                `json:"category"`    // Display name
	Description string                `json:"description"` // Category description
	Papers      []reference.Reference `json:"papers"`      // Ordered by file name
}

// FileError records a citation file that could not be read.
type FileError struct {
	Path string `json:"path"`
	Err  string `json:"error"`
}

// ListBibFiles returns the .bib files directly inside dir, sorted by name.
// Subdirectories and other extensions are ignored. Dotfiles such as
// .draft.bib are citation files like any other.
func ListBibFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != BibExt {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

// BuildCategory parses every citation file in dir into a Document for cat.
//
// A file that cannot be read is reported in the returned FileError slice
// and left out of the document; the rest of the folder is still processed.
// Only a failure to list dir is returned as an error.
func BuildCategory(dir string, cat category.Category) (*Document, []FileError, error) {
	files, err := ListBibFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	doc := &Document{
		Category:    cat.Name,
		Description: cat.Description,
		Papers:      make([]reference.Reference, 0, len(files)),
	}

	var failed []FileError
	for _, path := range files {
		ref, err := bibtex.ParseFile(path)
		if err != nil {
			failed = append(failed, FileError{Path: path, Err: err.Error()})
			continue
		}
		doc.Papers = append(doc.Papers, ref)
	}

	return doc, failed, nil
}

// OutputName returns the JSON file name for a category ID.
func OutputName(categoryID string) string {
	return categoryID + ".json"
}

// CategoryIDFromOutput is the inverse of OutputName. It reports false for
// names that are not taxonomy outputs.
func CategoryIDFromOutput(name string) (string, bool) {
	if !strings.HasSuffix(name, ".json") {
		return "", false
	}
	id := strings.TrimSuffix(name, ".json")
	return id, id != ""
}
