package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gastosapp/gastos_backend/internal/apperrors"
	"github.com/gastosapp/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastosapp/gastos_backend/internal/core/ports/repositories"
	"github.com/gastosapp/gastos_backend/internal/models"
	"github.com/gastosapp/gastos_backend/internal/utils/mapping"
	"github.com/gastosapp/gastos_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `
	expense_id, code, company_id, branch_id, glosa, amount, currency_code, exchange_rate,
	expense_date, concept_id, cost_center_id, fund_id, status,
	beneficiary_type, beneficiary_document, beneficiary_name,
	approved_by, approved_at, rejected_by, rejected_at, reject_reason,
	paid_by, paid_at, payment_method, annulled_by, annulled_at, annul_reason,
	version, created_at, created_by, last_updated_at, last_updated_by`

func scanExpenseRow(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID, &m.Code, &m.CompanyID, &m.BranchID, &m.Glosa, &m.Amount, &m.CurrencyCode, &m.ExchangeRate,
		&m.ExpenseDate, &m.ConceptID, &m.CostCenterID, &m.FundID, &m.Status,
		&m.BeneficiaryType, &m.BeneficiaryDocument, &m.BeneficiaryName,
		&m.ApprovedBy, &m.ApprovedAt, &m.RejectedBy, &m.RejectedAt, &m.RejectReason,
		&m.PaidBy, &m.PaidAt, &m.PaymentMeth, &m.AnnulledBy, &m.AnnulledAt, &m.AnnulReason,
		&m.Version, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveExpense inserts a new expense row.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)

	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13,
			$14, $15, $16,
			$17, $18, $19, $20, $21,
			$22, $23, $24, $25, $26, $27,
			$28, $29, $30, $31, $32);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExpenseID, m.Code, m.CompanyID, m.BranchID, m.Glosa, m.Amount, m.CurrencyCode, m.ExchangeRate,
		m.ExpenseDate, m.ConceptID, m.CostCenterID, m.FundID, m.Status,
		m.BeneficiaryType, m.BeneficiaryDocument, m.BeneficiaryName,
		m.ApprovedBy, m.ApprovedAt, m.RejectedBy, m.RejectedAt, m.RejectReason,
		m.PaidBy, m.PaidAt, m.PaymentMeth, m.AnnulledBy, m.AnnulledAt, m.AnnulReason,
		m.Version, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return fmt.Errorf("expense code %s already exists: %w", m.Code, apperrors.ErrDuplicate)
			}
		}
		return fmt.Errorf("failed to save expense %s: %w", m.ExpenseID, err)
	}
	return nil
}

// FindExpenseByID retrieves a single expense by its ID.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`

	m, err := scanExpenseRow(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}

	d := mapping.ToDomainExpense(m)
	return &d, nil
}

// FindExpensesByIDs retrieves multiple expenses keyed by their ID. Missing IDs
// are simply absent from the result map.
func (r *PgxExpenseRepository) FindExpensesByIDs(ctx context.Context, expenseIDs []string) (map[string]domain.Expense, error) {
	if len(expenseIDs) == 0 {
		return map[string]domain.Expense{}, nil
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, expenseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses by IDs: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Expense, len(expenseIDs))
	for rows.Next() {
		m, scanErr := scanExpenseRow(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", scanErr)
		}
		result[m.ExpenseID] = mapping.ToDomainExpense(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expense rows: %w", err)
	}
	return result, nil
}

// ListExpenses retrieves a filtered, token-paginated page of expenses ordered
// by expense date descending.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, filter portsrepo.ListExpensesFilter) ([]domain.Expense, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE company_id = $1`
	args := []interface{}{filter.CompanyID}
	argPos := 2

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, string(*filter.Status))
		argPos++
	}
	if filter.ConceptID != nil {
		query += fmt.Sprintf(" AND concept_id = $%d", argPos)
		args = append(args, *filter.ConceptID)
		argPos++
	}
	if filter.CostCenterID != nil {
		query += fmt.Sprintf(" AND cost_center_id = $%d", argPos)
		args = append(args, *filter.CostCenterID)
		argPos++
	}
	if filter.FundID != nil {
		query += fmt.Sprintf(" AND fund_id = $%d", argPos)
		args = append(args, *filter.FundID)
		argPos++
	}
	if filter.CreatedBy != nil {
		query += fmt.Sprintf(" AND created_by = $%d", argPos)
		args = append(args, *filter.CreatedBy)
		argPos++
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*filter.NextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("invalid nextToken: %w", apperrors.ErrValidation)
		}
		query += fmt.Sprintf(" AND (expense_date, created_at) < ($%d, $%d)", argPos, argPos+1)
		args = append(args, lastDate, lastCreatedAt)
		argPos += 2
	}

	// Fetch one extra row to know whether a next page exists.
	query += fmt.Sprintf(" ORDER BY expense_date DESC, created_at DESC LIMIT $%d;", argPos)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var modelExpenses []models.Expense
	for rows.Next() {
		m, scanErr := scanExpenseRow(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan expense row: %w", scanErr)
		}
		modelExpenses = append(modelExpenses, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read expense rows: %w", err)
	}

	var nextTokenVal *string
	if len(modelExpenses) > limit {
		modelExpenses = modelExpenses[:limit]
		last := modelExpenses[limit-1]
		token := pagination.EncodeToken(last.ExpenseDate, last.CreatedAt)
		nextTokenVal = &token
	}

	return mapping.ToDomainExpenseSlice(modelExpenses), nextTokenVal, nil
}

const expenseUpdateSet = `
	glosa = $2, amount = $3, currency_code = $4, exchange_rate = $5, expense_date = $6,
	concept_id = $7, cost_center_id = $8, fund_id = $9, branch_id = $10, status = $11,
	beneficiary_type = $12, beneficiary_document = $13, beneficiary_name = $14,
	approved_by = $15, approved_at = $16, rejected_by = $17, rejected_at = $18, reject_reason = $19,
	paid_by = $20, paid_at = $21, payment_method = $22,
	annulled_by = $23, annulled_at = $24, annul_reason = $25,
	version = $26, last_updated_at = $27, last_updated_by = $28`

func expenseUpdateArgs(m models.Expense) []interface{} {
	return []interface{}{
		m.ExpenseID,
		m.Glosa, m.Amount, m.CurrencyCode, m.ExchangeRate, m.ExpenseDate,
		m.ConceptID, m.CostCenterID, m.FundID, m.BranchID, m.Status,
		m.BeneficiaryType, m.BeneficiaryDocument, m.BeneficiaryName,
		m.ApprovedBy, m.ApprovedAt, m.RejectedBy, m.RejectedAt, m.RejectReason,
		m.PaidBy, m.PaidAt, m.PaymentMeth,
		m.AnnulledBy, m.AnnulledAt, m.AnnulReason,
		m.Version, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

// UpdateExpense writes the expense row guarded by the optimistic version check.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense, expectedVersion int64) error {
	m := mapping.ToModelExpense(expense)

	query := `UPDATE expenses SET ` + expenseUpdateSet + ` WHERE expense_id = $1 AND version = $29;`
	args := append(expenseUpdateArgs(m), expectedVersion)

	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", m.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMissedUpdate(ctx, m.ExpenseID)
	}
	return nil
}

// UpdateExpenseWithBudget writes the expense row and applies the cost-center
// consumption delta in one transaction. Both succeed or both roll back.
func (r *PgxExpenseRepository) UpdateExpenseWithBudget(ctx context.Context, expense domain.Expense, expectedVersion int64, delta *portsrepo.BudgetDelta) error {
	if delta == nil {
		return r.UpdateExpense(ctx, expense, expectedVersion)
	}

	m := mapping.ToModelExpense(expense)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `UPDATE expenses SET ` + expenseUpdateSet + ` WHERE expense_id = $1 AND version = $29;`
	args := append(expenseUpdateArgs(m), expectedVersion)

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", m.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMissedUpdate(ctx, m.ExpenseID)
	}

	budgetQuery := `
		UPDATE cost_centers
		SET presupuesto_consumido = presupuesto_consumido + $2,
			last_updated_at = $3,
			last_updated_by = $4
		WHERE cost_center_id = $1;
	`
	budgetTag, err := tx.Exec(ctx, budgetQuery, delta.CostCenterID, delta.Amount, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to apply budget delta to cost center %s: %w", delta.CostCenterID, err)
	}
	if budgetTag.RowsAffected() == 0 {
		return fmt.Errorf("cost center %s: %w", delta.CostCenterID, apperrors.ErrNotFound)
	}

	return r.Commit(ctx, tx)
}

// classifyMissedUpdate distinguishes a stale version from a missing row.
func (r *PgxExpenseRepository) classifyMissedUpdate(ctx context.Context, expenseID string) error {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM expenses WHERE expense_id = $1);`, expenseID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check expense %s existence: %w", expenseID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("expense %s was modified concurrently: %w", expenseID, apperrors.ErrVersionConflict)
}

// DeleteExpense removes the expense row. Draft-only enforcement happens in
// the service layer.
func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// NextExpenseCode reserves the next sequential code for the company and year,
// e.g. "GTO-2026-000123". The counter row upsert is atomic.
func (r *PgxExpenseRepository) NextExpenseCode(ctx context.Context, companyID string) (string, error) {
	return nextCode(ctx, r.Pool, companyID, "EXPENSE", "GTO")
}

// nextCode increments the per-company, per-scope, per-year counter and
// formats the resulting code.
func nextCode(ctx context.Context, pool *pgxpool.Pool, companyID, scope, prefix string) (string, error) {
	year := time.Now().UTC().Year()

	query := `
		INSERT INTO code_counters (company_id, scope, year, value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (company_id, scope, year) DO UPDATE SET value = code_counters.value + 1
		RETURNING value;
	`
	var value int64
	if err := pool.QueryRow(ctx, query, companyID, scope, year).Scan(&value); err != nil {
		return "", fmt.Errorf("failed to reserve %s code for company %s: %w", scope, companyID, err)
	}
	return fmt.Sprintf("%s-%d-%06d", prefix, year, value), nil
}
