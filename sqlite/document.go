package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/cencenelec"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cencenelec.DocumentService = (*DocumentService)(nil)

// DocumentService implements cencenelec.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashDocument computes an xxHash over every stored field a re-harvest may
// change. extra is the encoded Extra map.
func hashDocument(doc *cencenelec.Document, extra string) string {
	d := xxhash.New()
	for _, field := range []string{
		doc.Title,
		doc.Abstract,
		deref(doc.FullText),
		deref(doc.LocalLink),
		extra,
		doc.PubDate.UTC().Format(timestampLayout),
		nullTime(doc.OtherDate).String,
	} {
		_, _ = d.WriteString(field)
		_, _ = d.WriteString("\x00")
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

// CreateDocument creates a new document.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *cencenelec.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	if _, err := s.findByWebLink(ctx, doc.WebLink); err == nil {
		return cencenelec.Errorf(cencenelec.ECONFLICT, "document with web link %q already exists", doc.WebLink)
	} else if cencenelec.ErrorCode(err) != cencenelec.ENOTFOUND {
		return err
	}

	extra, err := encodeExtra(doc.Extra)
	if err != nil {
		return err
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, title, abstract, full_text, web_link, local_link, extra, pub_date, other_date, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, doc.Title, doc.Abstract, nullString(doc.FullText), doc.WebLink, nullString(doc.LocalLink), extra,
		doc.PubDate.UTC().Format(timestampLayout), nullTime(doc.OtherDate), hashDocument(doc, extra),
		time.Now().UTC().Format(timestampLayout))
	if err != nil {
		return err
	}

	doc.ID = id
	return nil
}

// SaveDocument creates the document, or updates the stored copy with the
// same web link when its content hash differs.
func (s *DocumentService) SaveDocument(ctx context.Context, doc *cencenelec.Document) (cencenelec.SaveResult, error) {
	if err := doc.Validate(); err != nil {
		return cencenelec.SaveUnchanged, err
	}

	existing, err := s.findByWebLink(ctx, doc.WebLink)
	if cencenelec.ErrorCode(err) == cencenelec.ENOTFOUND {
		if err := s.CreateDocument(ctx, doc); err != nil {
			return cencenelec.SaveUnchanged, err
		}
		return cencenelec.SaveCreated, nil
	} else if err != nil {
		return cencenelec.SaveUnchanged, err
	}

	extra, err := encodeExtra(doc.Extra)
	if err != nil {
		return cencenelec.SaveUnchanged, err
	}

	doc.ID = existing.id
	hash := hashDocument(doc, extra)
	if hash == existing.hash {
		return cencenelec.SaveUnchanged, nil
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE documents
		SET title = ?, abstract = ?, full_text = ?, local_link = ?, extra = ?, pub_date = ?, other_date = ?, content_hash = ?
		WHERE id = ?
	`, doc.Title, doc.Abstract, nullString(doc.FullText), nullString(doc.LocalLink), extra,
		doc.PubDate.UTC().Format(timestampLayout), nullTime(doc.OtherDate), hash, doc.ID)
	if err != nil {
		return cencenelec.SaveUnchanged, err
	}

	return cencenelec.SaveUpdated, nil
}

type storedRef struct {
	id   string
	hash string
}

// findByWebLink returns the ID and content hash stored for a web link.
func (s *DocumentService) findByWebLink(ctx context.Context, webLink string) (*storedRef, error) {
	var ref storedRef
	err := s.db.QueryRowContext(ctx, "SELECT id, content_hash FROM documents WHERE web_link = ?", webLink).
		Scan(&ref.id, &ref.hash)
	if err == sql.ErrNoRows {
		return nil, cencenelec.Errorf(cencenelec.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*cencenelec.Document, error) {
	var r row
	err := s.db.QueryRowContext(ctx, "SELECT "+documentColumns+" FROM documents WHERE id = ?", id).
		Scan(r.dest()...)
	if err == sql.ErrNoRows {
		return nil, cencenelec.Errorf(cencenelec.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}

	return r.document()
}

// FindDocuments retrieves documents matching the filter.
func (s *DocumentService) FindDocuments(ctx context.Context, filter cencenelec.DocumentFilter) ([]*cencenelec.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.WebLink != nil {
		query.WriteString(" AND web_link = ?")
		args = append(args, *filter.WebLink)
	}

	switch filter.SortBy {
	case cencenelec.SortByPubDate:
		query.WriteString(" ORDER BY pub_date ASC, rowid ASC")
	default:
		query.WriteString(" ORDER BY created_at ASC, rowid ASC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []*cencenelec.Document{}
	for rows.Next() {
		var r row
		if err := rows.Scan(r.dest()...); err != nil {
			return nil, err
		}

		doc, err := r.document()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// DeleteDocument permanently removes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return cencenelec.Errorf(cencenelec.ENOTFOUND, "document not found")
	}

	return nil
}
