package mapping

import (
	"github.com/gastosapp/gastos_backend/internal/core/domain"
	"github.com/gastosapp/gastos_backend/internal/models"
)

// ToModelExpenseDocument converts a domain ExpenseDocument to a model ExpenseDocument
func ToModelExpenseDocument(d domain.ExpenseDocument) models.ExpenseDocument {
	return models.ExpenseDocument{
		DocumentID:   d.DocumentID,
		ExpenseID:    d.ExpenseID,
		DocumentType: string(d.DocumentType),
		FileName:     d.FileName,
		ContentType:  d.ContentType,
		SizeBytes:    d.SizeBytes,
		StoragePath:  d.StoragePath,
		UploadedBy:   d.UploadedBy,
		UploadedAt:   d.UploadedAt,
	}
}

// ToDomainExpenseDocument converts a model ExpenseDocument to a domain ExpenseDocument
func ToDomainExpenseDocument(m models.ExpenseDocument) domain.ExpenseDocument {
	return domain.ExpenseDocument{
		DocumentID:   m.DocumentID,
		ExpenseID:    m.ExpenseID,
		DocumentType: domain.DocumentType(m.DocumentType),
		FileName:     m.FileName,
		ContentType:  m.ContentType,
		SizeBytes:    m.SizeBytes,
		StoragePath:  m.StoragePath,
		UploadedBy:   m.UploadedBy,
		UploadedAt:   m.UploadedAt,
	}
}

// ToDomainExpenseDocumentSlice converts a slice of model ExpenseDocuments to domain ExpenseDocuments
func ToDomainExpenseDocumentSlice(ms []models.ExpenseDocument) []domain.ExpenseDocument {
	ds := make([]domain.ExpenseDocument, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpenseDocument(m)
	}
	return ds
}
