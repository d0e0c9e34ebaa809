package dto

import (
	"io"
	"time"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
)

// AttachDocumentRequest carries an uploaded evidence file for an expense.
// The reader is consumed exactly once; nothing persists if it fails mid-way.
type AttachDocumentRequest struct {
	DocumentType domain.DocumentType
	FileName     string
	ContentType  string
	SizeBytes    int64
	Content      io.Reader
}

// DocumentResponse mirrors domain.ExpenseDocument.
type DocumentResponse struct {
	DocumentID   string              `json:"documentID"`
	ExpenseID    string              `json:"expenseID"`
	DocumentType domain.DocumentType `json:"documentType"`
	FileName     string              `json:"fileName"`
	ContentType  string              `json:"contentType"`
	SizeBytes    int64               `json:"sizeBytes"`
	UploadedBy   string              `json:"uploadedBy"`
	UploadedAt   time.Time           `json:"uploadedAt"`
}

// ToDocumentResponse converts a domain.ExpenseDocument to its response DTO.
func ToDocumentResponse(d *domain.ExpenseDocument) DocumentResponse {
	return DocumentResponse{
		DocumentID:   d.DocumentID,
		ExpenseID:    d.ExpenseID,
		DocumentType: d.DocumentType,
		FileName:     d.FileName,
		ContentType:  d.ContentType,
		SizeBytes:    d.SizeBytes,
		UploadedBy:   d.UploadedBy,
		UploadedAt:   d.UploadedAt,
	}
}

// ToDocumentResponses converts a slice of documents.
func ToDocumentResponses(docs []domain.ExpenseDocument) []DocumentResponse {
	res := make([]DocumentResponse, len(docs))
	for i := range docs {
		res[i] = ToDocumentResponse(&docs[i])
	}
	return res
}

// OCRExtractRequest carries a scanned receipt or invoice for field extraction.
type OCRExtractRequest struct {
	FileName    string
	ContentType string
	Content     io.Reader
}
