// Package category defines the fixed set of research-topic categories that
// citation folders and taxonomy documents are organized by.
package category

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Category is a topical bucket for citation entries.
type Category struct {
	ID          string `yaml:"id" json:"id"`                   // Folder and output file name, e.g. "loss-functions"
	Name        string `yaml:"name" json:"name"`               // Display name
	Description string `yaml:"description" json:"description"` // One-line summary shown on the website
}

//go:embed categories.yml
var categoriesYAML []byte

// Table is an ordered, immutable set of categories with lookup by ID.
type Table struct {
	list []Category
	byID map[string]Category
}

// defaultTable is parsed once from the embedded categories.yml.
var defaultTable = mustParse(categoriesYAML)

// Default returns the built-in category table.
func Default() *Table {
	return defaultTable
}

// Parse reads a category table from YAML. Entries must have a non-empty,
// unique id.
func Parse(data []byte) (*Table, error) {
	var list []Category
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parsing categories: %w", err)
	}

	t := &Table{
		list: make([]Category, 0, len(list)),
		byID: make(map[string]Category, len(list)),
	}
	for i, c := range list {
		if c.ID == "" {
			return nil, fmt.Errorf("category %d: missing id", i+1)
		}
		if _, dup := t.byID[c.ID]; dup {
			return nil, fmt.Errorf("category %d: duplicate id %q", i+1, c.ID)
		}
		t.list = append(t.list, c)
		t.byID[c.ID] = c
	}
	return t, nil
}

func mustParse(data []byte) *Table {
	t, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return t
}

// All returns the categories in table order. The returned slice is a copy.
func (t *Table) All() []Category {
	out := make([]Category, len(t.list))
	copy(out, t.list)
	return out
}

// Lookup returns the category with the given ID.
func (t *Table) Lookup(id string) (Category, bool) {
	c, ok := t.byID[id]
	return c, ok
}

// Len returns the number of categories.
func (t *Table) Len() int {
	return len(t.list)
}
