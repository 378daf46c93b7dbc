package domain

import "strings"

// ChunkSeparator delimits sections and chunks inside a composed document.
const ChunkSeparator = "-------------------------"

// Metadata keys stored alongside every document.
const (
	MetaCaseTitle        = "case_title"
	MetaCaseType         = "case_type"
	MetaCNRNumber        = "cnr_num"
	MetaInterimOrderURLs = "list_of_interim_order_urls"
	MetaJudgementURL     = "judgement_url"
	MetaInterimStatus    = "interim_orders_status"
	MetaJudgementStatus  = "judgement_status"
)

// Document is the unit stored in a collection.
// Documents are immutable once added.
type Document struct {
	// ID is the stable key, "id_<n>".
	ID string

	// Text is the composed, chunk-delimited document.
	Text string

	// Metadata holds flat string values keyed by the Meta* constants.
	Metadata map[string]string
}

// Title returns the case title from metadata, falling back to the ID.
func (d *Document) Title() string {
	if t := d.Metadata[MetaCaseTitle]; t != "" {
		return t
	}
	return d.ID
}

// InterimOrderURLs parses the stored interim order list.
func (d *Document) InterimOrderURLs() ([]string, error) {
	return ParseURLList(d.Metadata[MetaInterimOrderURLs])
}

// Sections splits the document text on the chunk separator.
// Empty sections are dropped.
func (d *Document) Sections() []string {
	parts := strings.Split(d.Text, ChunkSeparator)
	sections := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sections = append(sections, p)
		}
	}
	return sections
}

// DocumentKind distinguishes the two downloadable document types.
type DocumentKind string

const (
	KindInterimOrder DocumentKind = "Interim Order"
	KindJudgement    DocumentKind = "Judgement"
)

// Chunk is a retrievable slice of a document used by question answering.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int
}
