// Package reference defines the citation record produced from one BibTeX entry.
package reference

// AbstractPlaceholder is used when an entry has no abstract field.
const AbstractPlaceholder = "Abstract not available."

// Reference is the structured form of a single citation file.
//
// Missing fields are empty strings, never absent keys, except Abstract which
// falls back to AbstractPlaceholder.
type Reference struct {
	ID       string `json:"id"`       // Citation key from the entry declaration
	Title    string `json:"title"`    // Text up to the first closing brace
	Authors  string `json:"authors"`  // Raw author field, e.g. "Doe, Jane and Roe, Rick"
	Year     string `json:"year"`     // Four digits or empty
	Venue    string `json:"venue"`    // Journal, else booktitle
	Abstract string `json:"abstract"` // Abstract text or AbstractPlaceholder
	BibTeX   string `json:"bibtex"`   // Original entry text, trimmed

	// EntryType is the declared type (article, inproceedings, ...). It is
	// kept for the catalog and not written to taxonomy documents.
	EntryType string `json:"-"`
}
