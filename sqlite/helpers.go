package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/cencenelec"
)

// timestampLayout is RFC3339 with fixed-width nanoseconds. Timestamps are
// stored in UTC so they sort lexicographically in time order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// parseRFC3339 parses an RFC3339 formatted timestamp string, with or without
// fractional seconds.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		// SQLite requires a LIMIT before OFFSET.
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(timestampLayout), Valid: true}
}

func encodeExtra(extra map[string]any) (string, error) {
	if extra == nil {
		return "{}", nil
	}
	b, err := json.Marshal(extra)
	if err != nil {
		return "", fmt.Errorf("failed to encode extra: %w", err)
	}
	return string(b), nil
}

// row is the column set shared by every document query.
type row struct {
	doc       cencenelec.Document
	fullText  sql.NullString
	localLink sql.NullString
	extra     string
	pubDate   string
	otherDate sql.NullString
	hash      string
}

const documentColumns = "id, title, abstract, full_text, web_link, local_link, extra, pub_date, other_date, content_hash"

func (r *row) dest() []any {
	return []any{&r.doc.ID, &r.doc.Title, &r.doc.Abstract, &r.fullText, &r.doc.WebLink,
		&r.localLink, &r.extra, &r.pubDate, &r.otherDate, &r.hash}
}

// document converts the scanned columns into a cencenelec.Document.
func (r *row) document() (*cencenelec.Document, error) {
	doc := r.doc

	var err error
	if doc.PubDate, err = parseRFC3339(r.pubDate, "pub_date"); err != nil {
		return nil, err
	}
	if r.otherDate.Valid {
		t, err := parseRFC3339(r.otherDate.String, "other_date")
		if err != nil {
			return nil, err
		}
		doc.OtherDate = &t
	}
	if r.fullText.Valid {
		doc.FullText = &r.fullText.String
	}
	if r.localLink.Valid {
		doc.LocalLink = &r.localLink.String
	}

	doc.Extra = map[string]any{}
	if err := json.Unmarshal([]byte(r.extra), &doc.Extra); err != nil {
		return nil, fmt.Errorf("failed to decode extra: %w", err)
	}

	return &doc, nil
}
