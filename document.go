package cencenelec

import (
	"context"
	"time"
)

// Document is a normalized publication record handed to the platform.
type Document struct {
	// ID is assigned by the platform's storage; it is empty at creation.
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Abstract  string         `json:"abstract"`
	FullText  *string        `json:"fullText"`
	WebLink   string         `json:"webLink"`
	LocalLink *string        `json:"localLink"`
	Extra     map[string]any `json:"extra"`
	PubDate   time.Time      `json:"pubDate"`
	OtherDate *time.Time     `json:"otherDate"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.Title == "" {
		return Errorf(EINVALID, "document title required")
	}
	if d.WebLink == "" {
		return Errorf(EINVALID, "document web link required")
	}
	if d.PubDate.IsZero() {
		return Errorf(EINVALID, "document publication date required")
	}
	return nil
}

// WebLink returns the portal locator of a publication's PDF.
func WebLink(host, title string) string {
	return host + "/ugd/" + title + ".pdf"
}

// Collector runs a single collection pass over a source.
type Collector interface {
	// Content resets the collection, discovers documents and returns them
	// in discovery order. The returned slice is owned by the caller.
	Content(ctx context.Context) ([]*Document, error)
}

// SaveResult reports what SaveDocument did with a document.
type SaveResult int

// SaveResult values.
const (
	SaveUnchanged SaveResult = iota
	SaveCreated
	SaveUpdated
)

// String returns a lowercase label for the result.
func (r SaveResult) String() string {
	switch r {
	case SaveCreated:
		return "created"
	case SaveUpdated:
		return "updated"
	default:
		return "unchanged"
	}
}

// DocumentService represents a service for storing harvested documents.
type DocumentService interface {
	// CreateDocument stores a new document and assigns its ID.
	// Returns ECONFLICT if a document with the same web link exists.
	CreateDocument(ctx context.Context, doc *Document) error

	// SaveDocument creates the document or updates the stored copy when
	// its content changed. The document's ID is set in all cases.
	SaveDocument(ctx context.Context, doc *Document) (SaveResult, error)

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// DeleteDocument permanently removes a document.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error
}

// SortOrder represents the sort order for document queries.
type SortOrder string

// SortOrder constants for DocumentFilter.
const (
	SortByCreatedAt SortOrder = "created_at"
	SortByPubDate   SortOrder = "pub_date"
)

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID      *string `json:"id"`
	WebLink *string `json:"webLink"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}

// DocumentStore persists the documents of a pass with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type DocumentStore interface {
	Save(ctx context.Context, doc *Document) error
	Commit() error
	Abort() error
}
