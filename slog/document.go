package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cencenelec"
)

// Ensure LoggingDocumentService implements cencenelec.DocumentService.
var _ cencenelec.DocumentService = (*LoggingDocumentService)(nil)

// LoggingDocumentService wraps a DocumentService and logs writes.
// Reads are delegated without logging.
type LoggingDocumentService struct {
	next   cencenelec.DocumentService
	logger *slog.Logger
}

// NewLoggingDocumentService creates a new LoggingDocumentService.
func NewLoggingDocumentService(next cencenelec.DocumentService, logger *slog.Logger) *LoggingDocumentService {
	return &LoggingDocumentService{next: next, logger: logger}
}

func (s *LoggingDocumentService) CreateDocument(ctx context.Context, doc *cencenelec.Document) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create document",
			"web_link", doc.WebLink,
			"id", doc.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateDocument(ctx, doc)
}

func (s *LoggingDocumentService) SaveDocument(ctx context.Context, doc *cencenelec.Document) (result cencenelec.SaveResult, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("save document",
			"web_link", doc.WebLink,
			"id", doc.ID,
			"result", result.String(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveDocument(ctx, doc)
}

func (s *LoggingDocumentService) FindDocumentByID(ctx context.Context, id string) (*cencenelec.Document, error) {
	return s.next.FindDocumentByID(ctx, id)
}

func (s *LoggingDocumentService) FindDocuments(ctx context.Context, filter cencenelec.DocumentFilter) ([]*cencenelec.Document, error) {
	return s.next.FindDocuments(ctx, filter)
}

func (s *LoggingDocumentService) DeleteDocument(ctx context.Context, id string) (err error) {
	defer func() {
		s.logger.Debug("delete document", "id", id, "err", err)
	}()
	return s.next.DeleteDocument(ctx, id)
}
