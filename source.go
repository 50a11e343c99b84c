package cencenelec

import (
	"context"
	"iter"
	"time"
)

// RawDocument is a publication as described by a source, before
// normalization into a Document.
type RawDocument struct {
	Title    string
	Abstract string

	// PubDate is the publication date. The zero value means "now".
	PubDate time.Time
}

// Source discovers publications on a host.
// Real site traversal plugs in here without changing how records are built.
type Source interface {
	// Discover returns a lazy, finite sequence of raw documents found on
	// host. A non-nil error ends the sequence.
	Discover(ctx context.Context, host string) iter.Seq2[RawDocument, error]
}
