package services

import (
	"context"
	"io"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
	"github.com/gastosapp/gastos_backend/internal/dto"
)

// FileStore persists opaque evidence blobs. Nothing is written until the
// whole upload completes; an abandoned upload leaves no state behind.
type FileStore interface {
	Save(ctx context.Context, key string, contentType string, r io.Reader) (string, error)
	Open(ctx context.Context, storagePath string) (io.ReadCloser, error)
	Delete(ctx context.Context, storagePath string) error
}

// OCRClient is the external text-extraction service: best-effort structured
// fields that always require human confirmation.
type OCRClient interface {
	Extract(ctx context.Context, fileName string, contentType string, r io.Reader) (*domain.OCRExtraction, error)
}

// DocumentSvcFacade handles evidence uploads and OCR capture.
type DocumentSvcFacade interface {
	AttachDocument(ctx context.Context, expenseID string, req dto.AttachDocumentRequest, actorUserID string) (*domain.ExpenseDocument, error)
	ListDocuments(ctx context.Context, expenseID string, requestingUserID string) ([]domain.ExpenseDocument, error)
	ExtractFields(ctx context.Context, req dto.OCRExtractRequest) (*domain.OCRExtraction, error)
}
