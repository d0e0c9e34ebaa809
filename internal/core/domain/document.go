package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseDocument is a supporting document attached to an expense, stored as
// an opaque blob addressed by storage path.
type ExpenseDocument struct {
	DocumentID   string       `json:"documentID"` // Primary Key (UUID)
	ExpenseID    string       `json:"expenseID"`
	DocumentType DocumentType `json:"documentType"`
	FileName     string       `json:"fileName"`
	ContentType  string       `json:"contentType"`
	SizeBytes    int64        `json:"sizeBytes"`
	StoragePath  string       `json:"storagePath"`
	UploadedBy   string       `json:"uploadedBy"`
	UploadedAt   time.Time    `json:"uploadedAt"`
}

// OCRExtraction is the best-effort structured result returned by the external
// OCR service for a scanned receipt or invoice. It always requires human
// confirmation before anything is persisted.
type OCRExtraction struct {
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	CurrencyCode   string           `json:"currencyCode,omitempty"`
	TaxID          string           `json:"taxID,omitempty"` // Issuer RUC
	DocumentNumber string           `json:"documentNumber,omitempty"`
	IssueDate      *time.Time       `json:"issueDate,omitempty"`
	BeneficiaryName string          `json:"beneficiaryName,omitempty"`
	Confidence     float64          `json:"confidence"` // 0..1
	RawText        string           `json:"rawText,omitempty"`
}
