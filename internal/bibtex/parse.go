// Package bibtex extracts citation metadata from single BibTeX entries.
//
// Extraction is regex based and field-by-field. It does not validate BibTeX
// syntax and does not understand nested braces: a field value ends at the
// first closing brace, so `title = {The {RNA} World}` yields "The {RNA".
// Field names are not word-anchored either, so a booktitle field that
// appears before title also satisfies the title pattern.
package bibtex

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/lthealth/taxonomy/internal/reference"
)

var (
	// Match entry start at the very beginning of the text: @type{key,
	entryStartRegex = regexp.MustCompile(`^@(\w+)\{([^,]+),`)

	titleRegex     = fieldRegex("title")
	authorRegex    = fieldRegex("author")
	journalRegex   = fieldRegex("journal")
	booktitleRegex = fieldRegex("booktitle")
	abstractRegex  = fieldRegex("abstract")

	// year = {2020}, year = 2020 or year = {2020
	yearRegex = regexp.MustCompile(`(?i)year\s*=\s*\{?(\d{4})\}?`)
)

// fieldRegex matches `name = {value}` case-insensitively. [^}] also matches
// newlines, so values may span lines.
func fieldRegex(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + name + `\s*=\s*\{([^}]+)\}`)
}

// ParseEntry converts the text of one BibTeX entry into a Reference.
// It never fails; absent fields are left empty and a missing abstract is
// replaced by reference.AbstractPlaceholder.
func ParseEntry(text string) reference.Reference {
	ref := reference.Reference{
		BibTeX: strings.TrimSpace(text),
	}

	if m := entryStartRegex.FindStringSubmatch(text); m != nil {
		ref.EntryType = strings.ToLower(m[1])
		ref.ID = strings.TrimSpace(m[2])
	}

	ref.Title = firstField(titleRegex, text)
	ref.Authors = firstField(authorRegex, text)

	if m := yearRegex.FindStringSubmatch(text); m != nil {
		ref.Year = m[1]
	}

	// Journal wins; booktitle is only a fallback.
	if venue, ok := lookupField(journalRegex, text); ok {
		ref.Venue = venue
	} else {
		ref.Venue = firstField(booktitleRegex, text)
	}

	if abstract, ok := lookupField(abstractRegex, text); ok {
		ref.Abstract = abstract
	} else {
		ref.Abstract = reference.AbstractPlaceholder
	}

	return ref
}

// ParseFile reads path and parses its contents as one entry.
func ParseFile(path string) (reference.Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return reference.Reference{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseEntry(string(data)), nil
}

func firstField(re *regexp.Regexp, text string) string {
	v, _ := lookupField(re, text)
	return v
}

// lookupField returns the trimmed value of the first match and whether the
// field was present at all. A present field may still trim to "".
func lookupField(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
