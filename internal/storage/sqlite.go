// Package storage maintains an ephemeral SQLite catalog of the papers in the
// generated taxonomy documents. The JSON documents remain the source of
// truth; the catalog is rebuilt from them and only serves queries.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/lthealth/taxonomy/internal/bibtex"
	"github.com/lthealth/taxonomy/internal/category"
	"github.com/lthealth/taxonomy/internal/reference"
	"github.com/lthealth/taxonomy/internal/taxonomy"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// Entry is a catalogued paper together with the category it was filed under.
type Entry struct {
	Category string `json:"category"`
	reference.Reference
}

// RebuildStats reports what RebuildFromTaxonomies loaded.
type RebuildStats struct {
	Categories int `json:"categories"`
	Papers     int `json:"papers"`
}

// selectPaperFields contains the standard field list for SELECT queries.
const selectPaperFields = `category, id, entry_type, title, authors, year, venue, abstract, bibtex`

// OpenDB opens or creates a SQLite database at the given path. The parent
// directory is created if needed.
func OpenDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- One row per paper per category, in document order
		CREATE TABLE IF NOT EXISTS papers (
			category TEXT NOT NULL,
			position INTEGER NOT NULL,
			id TEXT NOT NULL,
			entry_type TEXT NOT NULL,
			title TEXT NOT NULL,
			authors TEXT NOT NULL,
			year TEXT NOT NULL,
			venue TEXT NOT NULL,
			abstract TEXT NOT NULL,
			bibtex TEXT NOT NULL,
			PRIMARY KEY (category, position)
		);

		CREATE INDEX IF NOT EXISTS idx_papers_id ON papers(id) WHERE id != '';

		-- Full-text search; rowid mirrors papers.rowid
		CREATE VIRTUAL TABLE IF NOT EXISTS papers_fts USING fts5(
			title,
			authors,
			abstract,
			venue
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromTaxonomies clears the catalog and reloads it from the
// <id>.json documents in dir. Files that are not named after a category in
// cats are ignored.
func (d *DB) RebuildFromTaxonomies(dir string, cats *category.Table) (*RebuildStats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing taxonomy directory: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM papers"); err != nil {
		return nil, fmt.Errorf("clearing papers table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM papers_fts"); err != nil {
		return nil, fmt.Errorf("clearing papers_fts table: %w", err)
	}

	papersStmt, err := tx.Prepare(`
		INSERT INTO papers (category, position, id, entry_type, title, authors, year, venue, abstract, bibtex)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("preparing papers insert: %w", err)
	}
	defer papersStmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO papers_fts (rowid, title, authors, abstract, venue)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	stats := &RebuildStats{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		id, ok := taxonomy.CategoryIDFromOutput(e.Name())
		if !ok {
			continue
		}
		if _, known := cats.Lookup(id); !known {
			continue
		}

		doc, err := taxonomy.ReadDocument(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}

		for pos, ref := range doc.Papers {
			entryType := ref.EntryType
			if entryType == "" {
				entryType = bibtex.ParseEntry(ref.BibTeX).EntryType
			}

			res, err := papersStmt.Exec(
				id, pos, ref.ID, entryType, ref.Title, ref.Authors,
				ref.Year, ref.Venue, ref.Abstract, ref.BibTeX,
			)
			if err != nil {
				return nil, fmt.Errorf("inserting %s/%d: %w", id, pos, err)
			}
			rowID, err := res.LastInsertId()
			if err != nil {
				return nil, fmt.Errorf("reading rowid for %s/%d: %w", id, pos, err)
			}

			// The placeholder would otherwise match searches for "abstract".
			abstract := ref.Abstract
			if abstract == reference.AbstractPlaceholder {
				abstract = ""
			}
			if _, err := ftsStmt.Exec(rowID, ref.Title, ref.Authors, abstract, ref.Venue); err != nil {
				return nil, fmt.Errorf("inserting fts for %s/%d: %w", id, pos, err)
			}
			stats.Papers++
		}
		stats.Categories++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing catalog: %w", err)
	}
	return stats, nil
}

// SearchFilters narrows Search results. Zero values mean no filter.
type SearchFilters struct {
	Category string // Exact category ID
	Year     string // Exact four-digit year
}

// Search performs a full-text search over title, authors, abstract and
// venue. Results are ordered by relevance.
func (d *DB) Search(query string, filters SearchFilters, limit int) ([]Entry, error) {
	ftsQuery := prepareFTSQuery(query)
	if ftsQuery == "" {
		return nil, fmt.Errorf("empty search query")
	}

	q := `SELECT p.` + strings.ReplaceAll(selectPaperFields, ", ", ", p.") + `
		FROM papers_fts
		JOIN papers p ON p.rowid = papers_fts.rowid
		WHERE papers_fts MATCH ?`
	args := []interface{}{ftsQuery}

	if filters.Category != "" {
		q += " AND p.category = ?"
		args = append(args, filters.Category)
	}
	if filters.Year != "" {
		q += " AND p.year = ?"
		args = append(args, filters.Year)
	}

	q += " ORDER BY rank LIMIT ?"
	args = append(args, limit)

	rows, err := d.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetByID returns every catalogued paper with the given citation key. A
// paper filed under several categories appears once per category.
func (d *DB) GetByID(id string) ([]Entry, error) {
	rows, err := d.db.Query(`SELECT `+selectPaperFields+`
		FROM papers WHERE id = ? ORDER BY category, position`, id)
	if err != nil {
		return nil, fmt.Errorf("looking up %s: %w", id, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListCategory returns the papers of one category in document order.
func (d *DB) ListCategory(categoryID string) ([]Entry, error) {
	rows, err := d.db.Query(`SELECT `+selectPaperFields+`
		FROM papers WHERE category = ? ORDER BY position`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", categoryID, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Count returns the total number of catalogued papers.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM papers").Scan(&count)
	return count, err
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(s scanner) (Entry, error) {
	var e Entry
	err := s.Scan(
		&e.Category, &e.ID, &e.EntryType, &e.Title, &e.Authors,
		&e.Year, &e.Venue, &e.Abstract, &e.BibTeX,
	)
	return e, err
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// prepareFTSQuery turns free text into an FTS5 query that cannot fail to
// parse. Each whitespace-separated token becomes a quoted string, so operator
// words (AND, OR, NOT, NEAR) and punctuation are matched as plain text and the
// tokens are implicitly ANDed. Tokens with no letter or digit carry nothing
// the tokenizer would index and are dropped.
func prepareFTSQuery(query string) string {
	var terms []string
	for _, tok := range strings.Fields(query) {
		if !strings.ContainsFunc(tok, isWordRune) {
			continue
		}
		terms = append(terms, `"`+strings.ReplaceAll(tok, `"`, `""`)+`"`)
	}
	return strings.Join(terms, " ")
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
