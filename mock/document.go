package mock

import (
	"context"

	"github.com/fwojciec/cencenelec"
)

var _ cencenelec.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of cencenelec.DocumentService.
type DocumentService struct {
	CreateDocumentFn   func(ctx context.Context, doc *cencenelec.Document) error
	SaveDocumentFn     func(ctx context.Context, doc *cencenelec.Document) (cencenelec.SaveResult, error)
	FindDocumentByIDFn func(ctx context.Context, id string) (*cencenelec.Document, error)
	FindDocumentsFn    func(ctx context.Context, filter cencenelec.DocumentFilter) ([]*cencenelec.Document, error)
	DeleteDocumentFn   func(ctx context.Context, id string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *cencenelec.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) SaveDocument(ctx context.Context, doc *cencenelec.Document) (cencenelec.SaveResult, error) {
	return s.SaveDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*cencenelec.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter cencenelec.DocumentFilter) ([]*cencenelec.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}
