package services

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/gastosapp/gastos_backend/internal/apperrors"
	"github.com/gastosapp/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastosapp/gastos_backend/internal/core/ports/repositories"
	portssvc "github.com/gastosapp/gastos_backend/internal/core/ports/services"
	"github.com/gastosapp/gastos_backend/internal/dto"
	"github.com/gastosapp/gastos_backend/internal/middleware"
	"github.com/google/uuid"
)

// maxDocumentSizeBytes caps evidence uploads at 10 MiB.
const maxDocumentSizeBytes = 10 << 20

var allowedContentTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"application/pdf": {},
}

type documentService struct {
	documentRepo portsrepo.DocumentRepositoryFacade
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade
	store        portssvc.FileStore
	ocr          portssvc.OCRClient
}

func NewDocumentService(
	documentRepo portsrepo.DocumentRepositoryFacade,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	store portssvc.FileStore,
	ocr portssvc.OCRClient,
) portssvc.DocumentSvcFacade {
	return &documentService{
		documentRepo: documentRepo,
		expenseRepo:  expenseRepo,
		userRepo:     userRepo,
		store:        store,
		ocr:          ocr,
	}
}

// AttachDocument stores an evidence file and records it against the expense.
// Attachments are allowed while the expense is still moving through the
// workflow; terminal expenses are immutable.
func (s *documentService) AttachDocument(ctx context.Context, expenseID string, req dto.AttachDocumentRequest, actorUserID string) (*domain.ExpenseDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.userRepo.FindUserByID(ctx, actorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load acting user %s: %w", actorUserID, err)
	}
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.CompanyID != actor.CompanyID {
		return nil, fmt.Errorf("%w: expense belongs to another company", apperrors.ErrForbidden)
	}
	if expense.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: cannot attach documents to expense in status %s", apperrors.ErrInvalidTransition, expense.Status)
	}

	vErr := &apperrors.ValidationError{}
	if _, ok := allowedContentTypes[req.ContentType]; !ok {
		vErr.Add("contentType", fmt.Sprintf("unsupported type %s, expected jpeg, png or pdf", req.ContentType))
	}
	if req.SizeBytes <= 0 || req.SizeBytes > maxDocumentSizeBytes {
		vErr.Add("file", "size must be between 1 byte and 10MB")
	}
	if req.FileName == "" {
		vErr.Add("fileName", "is required")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	documentID := uuid.NewString()
	key := path.Join(expense.CompanyID, expenseID, documentID+path.Ext(req.FileName))
	storagePath, err := s.store.Save(ctx, key, req.ContentType, req.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	doc := domain.ExpenseDocument{
		DocumentID:   documentID,
		ExpenseID:    expenseID,
		DocumentType: req.DocumentType,
		FileName:     req.FileName,
		ContentType:  req.ContentType,
		SizeBytes:    req.SizeBytes,
		StoragePath:  storagePath,
		UploadedBy:   actorUserID,
		UploadedAt:   time.Now(),
	}
	if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
		// Roll back the blob so the store and the table stay in sync.
		if delErr := s.store.Delete(ctx, storagePath); delErr != nil {
			logger.Error("failed to delete orphaned document blob", "storagePath", storagePath, "error", delErr)
		}
		return nil, fmt.Errorf("failed to save document record: %w", err)
	}

	logger.Info("document attached", "expenseID", expenseID, "documentID", doc.DocumentID, "type", doc.DocumentType)
	return &doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, expenseID string, requestingUserID string) ([]domain.ExpenseDocument, error) {
	actor, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load acting user %s: %w", requestingUserID, err)
	}
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.CompanyID != actor.CompanyID {
		return nil, fmt.Errorf("%w: expense belongs to another company", apperrors.ErrForbidden)
	}
	return s.documentRepo.ListDocumentsByExpense(ctx, expenseID)
}

// ExtractFields runs the uploaded image through the OCR service without
// persisting anything. The caller reviews the suggestion before creating or
// updating an expense.
func (s *documentService) ExtractFields(ctx context.Context, req dto.OCRExtractRequest) (*domain.OCRExtraction, error) {
	if _, ok := allowedContentTypes[req.ContentType]; !ok {
		vErr := &apperrors.ValidationError{}
		vErr.Add("contentType", fmt.Sprintf("unsupported type %s, expected jpeg, png or pdf", req.ContentType))
		return nil, vErr
	}
	extraction, err := s.ocr.Extract(ctx, req.FileName, req.ContentType, req.Content)
	if err != nil {
		return nil, fmt.Errorf("ocr extraction failed: %w", err)
	}
	return extraction, nil
}
