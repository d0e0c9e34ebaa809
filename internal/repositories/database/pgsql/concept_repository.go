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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxConceptRepository struct {
	BaseRepository
}

// newPgxConceptRepository creates a new repository for expense concept data.
func newPgxConceptRepository(pool *pgxpool.Pool) portsrepo.ConceptRepositoryFacade {
	return &PgxConceptRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ConceptRepositoryFacade = (*PgxConceptRepository)(nil)

const conceptColumns = `
	concept_id, company_id, name, description, requires_approval, approval_threshold, enforce_documents, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanConceptRow(row pgx.Row) (models.ExpenseConcept, error) {
	var m models.ExpenseConcept
	err := row.Scan(
		&m.ConceptID, &m.CompanyID, &m.Name, &m.Description, &m.RequiresApproval, &m.ApprovalThreshold, &m.EnforceDocuments, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveConcept inserts a new expense concept row.
func (r *PgxConceptRepository) SaveConcept(ctx context.Context, concept domain.ExpenseConcept) error {
	m := mapping.ToModelExpenseConcept(concept)

	query := `
		INSERT INTO expense_concepts (` + conceptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ConceptID, m.CompanyID, m.Name, m.Description, m.RequiresApproval, m.ApprovalThreshold, m.EnforceDocuments, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save concept %s: %w", m.ConceptID, err)
	}
	return nil
}

// FindConceptByID retrieves a single concept by its ID.
func (r *PgxConceptRepository) FindConceptByID(ctx context.Context, conceptID string) (*domain.ExpenseConcept, error) {
	query := `SELECT ` + conceptColumns + ` FROM expense_concepts WHERE concept_id = $1;`

	m, err := scanConceptRow(r.Pool.QueryRow(ctx, query, conceptID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find concept %s: %w", conceptID, err)
	}

	d := mapping.ToDomainExpenseConcept(m)
	return &d, nil
}

// ListConcepts retrieves all concepts of a company ordered by name.
func (r *PgxConceptRepository) ListConcepts(ctx context.Context, companyID string) ([]domain.ExpenseConcept, error) {
	query := `SELECT ` + conceptColumns + ` FROM expense_concepts WHERE company_id = $1 ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query concepts: %w", err)
	}
	defer rows.Close()

	var modelConcepts []models.ExpenseConcept
	for rows.Next() {
		m, scanErr := scanConceptRow(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan concept row: %w", scanErr)
		}
		modelConcepts = append(modelConcepts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read concept rows: %w", err)
	}

	return mapping.ToDomainExpenseConceptSlice(modelConcepts), nil
}

// UpdateConcept writes the mutable concept fields.
func (r *PgxConceptRepository) UpdateConcept(ctx context.Context, concept domain.ExpenseConcept) error {
	m := mapping.ToModelExpenseConcept(concept)

	query := `
		UPDATE expense_concepts
		SET name = $2, description = $3, requires_approval = $4, approval_threshold = $5,
			enforce_documents = $6, is_active = $7, last_updated_at = $8, last_updated_by = $9
		WHERE concept_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ConceptID, m.Name, m.Description, m.RequiresApproval, m.ApprovalThreshold,
		m.EnforceDocuments, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update concept %s: %w", m.ConceptID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListRequirements retrieves a concept's checklist in position order.
func (r *PgxConceptRepository) ListRequirements(ctx context.Context, conceptID string) ([]domain.DocumentRequirement, error) {
	query := `
		SELECT requirement_id, concept_id, name, document_type, mandatory, position
		FROM concept_requirements
		WHERE concept_id = $1
		ORDER BY position;
	`
	rows, err := r.Pool.Query(ctx, query, conceptID)
	if err != nil {
		return nil, fmt.Errorf("failed to query requirements for concept %s: %w", conceptID, err)
	}
	defer rows.Close()

	var modelReqs []models.DocumentRequirement
	for rows.Next() {
		var m models.DocumentRequirement
		if err := rows.Scan(&m.RequirementID, &m.ConceptID, &m.Name, &m.DocumentType, &m.Mandatory, &m.Position); err != nil {
			return nil, fmt.Errorf("failed to scan requirement row: %w", err)
		}
		modelReqs = append(modelReqs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read requirement rows: %w", err)
	}

	return mapping.ToDomainDocumentRequirementSlice(modelReqs), nil
}

// ReplaceRequirements swaps the concept's full checklist in one transaction.
func (r *PgxConceptRepository) ReplaceRequirements(ctx context.Context, conceptID string, requirements []domain.DocumentRequirement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM concept_requirements WHERE concept_id = $1;`, conceptID); err != nil {
		return fmt.Errorf("failed to clear requirements for concept %s: %w", conceptID, err)
	}

	insertQuery := `
		INSERT INTO concept_requirements (requirement_id, concept_id, name, document_type, mandatory, position)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, req := range requirements {
		m := mapping.ToModelDocumentRequirement(req)
		if _, err := tx.Exec(ctx, insertQuery,
			m.RequirementID, m.ConceptID, m.Name, m.DocumentType, m.Mandatory, m.Position,
		); err != nil {
			return fmt.Errorf("failed to save requirement %s: %w", m.RequirementID, err)
		}
	}

	return r.Commit(ctx, tx)
}
