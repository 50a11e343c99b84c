package mock

import (
	"context"

	"github.com/fwojciec/cencenelec"
)

var _ cencenelec.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of cencenelec.DocumentStore.
type DocumentStore struct {
	SaveFn   func(ctx context.Context, doc *cencenelec.Document) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *DocumentStore) Save(ctx context.Context, doc *cencenelec.Document) error {
	return s.SaveFn(ctx, doc)
}

func (s *DocumentStore) Commit() error {
	return s.CommitFn()
}

func (s *DocumentStore) Abort() error {
	return s.AbortFn()
}
