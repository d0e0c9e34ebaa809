package models

import "time"

// ExpenseDocument is the DB shape of an expense_documents row.
type ExpenseDocument struct {
	DocumentID   string    `db:"document_id"`
	ExpenseID    string    `db:"expense_id"`
	DocumentType string    `db:"document_type"`
	FileName     string    `db:"file_name"`
	ContentType  string    `db:"content_type"`
	SizeBytes    int64     `db:"size_bytes"`
	StoragePath  string    `db:"storage_path"`
	UploadedBy   string    `db:"uploaded_by"`
	UploadedAt   time.Time `db:"uploaded_at"`
}
