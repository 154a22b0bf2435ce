// Package scaffold creates the citation folder layout, one directory per
// category.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lthealth/taxonomy/internal/category"
	"go.uber.org/zap"
)

// Result reports which category folders were created by Init.
type Result struct {
	Root     string   `json:"root"`
	Created  []string `json:"created"`
	Existing []string `json:"existing"`
}

// Total returns the number of category folders considered.
func (r *Result) Total() int {
	return len(r.Created) + len(r.Existing)
}

// Init ensures root and root/<id> exist for every category, in the order
// given. Anything already present at a category path, file or directory, is
// counted as existing and left untouched, so repeated runs are safe.
func Init(root string, cats []category.Category, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating citations directory: %w", err)
	}

	res := &Result{
		Root:     root,
		Created:  []string{},
		Existing: []string{},
	}

	for _, c := range cats {
		path := filepath.Join(root, c.ID)

		// Lstat so a dangling symlink counts as existing and is left alone.
		if _, err := os.Lstat(path); err == nil {
			logger.Debug("folder exists", zap.String("category", c.ID))
			res.Existing = append(res.Existing, c.ID)
			continue
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("checking %s: %w", path, err)
		}

		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", path, err)
		}
		logger.Info("created folder", zap.String("category", c.ID), zap.String("path", path))
		res.Created = append(res.Created, c.ID)
	}

	return res, nil
}
