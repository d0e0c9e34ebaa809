package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/gastosapp/gastos_backend/internal/apperrors"
	"github.com/gastosapp/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastosapp/gastos_backend/internal/core/ports/repositories"
	"github.com/gastosapp/gastos_backend/internal/models"
	"github.com/gastosapp/gastos_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for expense document data.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

// SaveDocument inserts an expense document row.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.ExpenseDocument) error {
	m := mapping.ToModelExpenseDocument(doc)

	query := `
		INSERT INTO expense_documents (document_id, expense_id, document_type, file_name, content_type, size_bytes, storage_path, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DocumentID, m.ExpenseID, m.DocumentType, m.FileName, m.ContentType, m.SizeBytes, m.StoragePath, m.UploadedBy, m.UploadedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("document %s already exists: %w", m.DocumentID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save document %s: %w", m.DocumentID, err)
	}
	return nil
}

// ListDocumentsByExpense retrieves the documents of an expense in upload order.
func (r *PgxDocumentRepository) ListDocumentsByExpense(ctx context.Context, expenseID string) ([]domain.ExpenseDocument, error) {
	query := `
		SELECT document_id, expense_id, document_type, file_name, content_type, size_bytes, storage_path, uploaded_by, uploaded_at
		FROM expense_documents
		WHERE expense_id = $1
		ORDER BY uploaded_at;
	`
	rows, err := r.Pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents for expense %s: %w", expenseID, err)
	}
	defer rows.Close()

	var modelDocs []models.ExpenseDocument
	for rows.Next() {
		var m models.ExpenseDocument
		if err := rows.Scan(
			&m.DocumentID, &m.ExpenseID, &m.DocumentType, &m.FileName, &m.ContentType, &m.SizeBytes, &m.StoragePath, &m.UploadedBy, &m.UploadedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		modelDocs = append(modelDocs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read document rows: %w", err)
	}

	return mapping.ToDomainExpenseDocumentSlice(modelDocs), nil
}

// AttachedTypes returns the distinct document types attached to an expense.
func (r *PgxDocumentRepository) AttachedTypes(ctx context.Context, expenseID string) (map[domain.DocumentType]struct{}, error) {
	query := `SELECT DISTINCT document_type FROM expense_documents WHERE expense_id = $1;`

	rows, err := r.Pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attached types for expense %s: %w", expenseID, err)
	}
	defer rows.Close()

	attached := make(map[domain.DocumentType]struct{})
	for rows.Next() {
		var docType string
		if err := rows.Scan(&docType); err != nil {
			return nil, fmt.Errorf("failed to scan document type: %w", err)
		}
		attached[domain.DocumentType(docType)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read document type rows: %w", err)
	}

	return attached, nil
}
