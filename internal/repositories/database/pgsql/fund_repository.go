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
	"github.com/gastosapp/gastos_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFundRepository struct {
	BaseRepository
}

// newPgxFundRepository creates a new repository for fund assignment data.
func newPgxFundRepository(pool *pgxpool.Pool) portsrepo.FundRepositoryFacade {
	return &PgxFundRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.FundRepositoryFacade = (*PgxFundRepository)(nil)

const fundColumns = `
	fund_id, code, company_id, branch_id, responsible_id, currency_code,
	monto_asignado, monto_rendido, saldo_pendiente, status, observations,
	rendered_at, rendered_by, annulled_at,
	version, created_at, created_by, last_updated_at, last_updated_by`

func scanFundRow(row pgx.Row) (models.FundAssignment, error) {
	var m models.FundAssignment
	err := row.Scan(
		&m.FundID, &m.Code, &m.CompanyID, &m.BranchID, &m.ResponsibleID, &m.CurrencyCode,
		&m.MontoAsignado, &m.MontoRendido, &m.SaldoPendiente, &m.Status, &m.Observations,
		&m.RenderedAt, &m.RenderedBy, &m.AnnulledAt,
		&m.Version, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveFund inserts a new fund assignment row.
func (r *PgxFundRepository) SaveFund(ctx context.Context, fund domain.FundAssignment) error {
	m := mapping.ToModelFundAssignment(fund)

	query := `
		INSERT INTO funds (` + fundColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14,
			$15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.FundID, m.Code, m.CompanyID, m.BranchID, m.ResponsibleID, m.CurrencyCode,
		m.MontoAsignado, m.MontoRendido, m.SaldoPendiente, m.Status, m.Observations,
		m.RenderedAt, m.RenderedBy, m.AnnulledAt,
		m.Version, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return fmt.Errorf("fund code %s already exists: %w", m.Code, apperrors.ErrDuplicate)
			}
		}
		return fmt.Errorf("failed to save fund %s: %w", m.FundID, err)
	}
	return nil
}

// FindFundByID retrieves a single fund assignment by its ID.
func (r *PgxFundRepository) FindFundByID(ctx context.Context, fundID string) (*domain.FundAssignment, error) {
	query := `SELECT ` + fundColumns + ` FROM funds WHERE fund_id = $1;`

	m, err := scanFundRow(r.Pool.QueryRow(ctx, query, fundID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fund %s: %w", fundID, err)
	}

	d := mapping.ToDomainFundAssignment(m)
	return &d, nil
}

// ListFunds retrieves a filtered, token-paginated page of fund assignments
// ordered by creation time descending.
func (r *PgxFundRepository) ListFunds(ctx context.Context, filter portsrepo.ListFundsFilter) ([]domain.FundAssignment, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + fundColumns + ` FROM funds WHERE company_id = $1`
	args := []interface{}{filter.CompanyID}
	argPos := 2

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, string(*filter.Status))
		argPos++
	}
	if filter.ResponsibleID != nil {
		query += fmt.Sprintf(" AND responsible_id = $%d", argPos)
		args = append(args, *filter.ResponsibleID)
		argPos++
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*filter.NextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("invalid nextToken: %w", apperrors.ErrValidation)
		}
		query += fmt.Sprintf(" AND created_at < $%d", argPos)
		args = append(args, lastCreatedAt)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d;", argPos)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query funds: %w", err)
	}
	defer rows.Close()

	var modelFunds []models.FundAssignment
	for rows.Next() {
		m, scanErr := scanFundRow(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan fund row: %w", scanErr)
		}
		modelFunds = append(modelFunds, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read fund rows: %w", err)
	}

	var nextTokenVal *string
	if len(modelFunds) > limit {
		modelFunds = modelFunds[:limit]
		token := pagination.EncodeDateBasedToken(modelFunds[limit-1].CreatedAt)
		nextTokenVal = &token
	}

	return mapping.ToDomainFundAssignmentSlice(modelFunds), nextTokenVal, nil
}

const fundUpdateSet = `
	responsible_id = $2, monto_asignado = $3, monto_rendido = $4, saldo_pendiente = $5,
	status = $6, observations = $7, rendered_at = $8, rendered_by = $9, annulled_at = $10,
	version = $11, last_updated_at = $12, last_updated_by = $13`

func fundUpdateArgs(m models.FundAssignment) []interface{} {
	return []interface{}{
		m.FundID,
		m.ResponsibleID, m.MontoAsignado, m.MontoRendido, m.SaldoPendiente,
		m.Status, m.Observations, m.RenderedAt, m.RenderedBy, m.AnnulledAt,
		m.Version, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

// UpdateFund writes the fund row guarded by the optimistic version check.
func (r *PgxFundRepository) UpdateFund(ctx context.Context, fund domain.FundAssignment, expectedVersion int64) error {
	m := mapping.ToModelFundAssignment(fund)

	query := `UPDATE funds SET ` + fundUpdateSet + ` WHERE fund_id = $1 AND version = $14;`
	args := append(fundUpdateArgs(m), expectedVersion)

	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update fund %s: %w", m.FundID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMissedFundUpdate(ctx, m.FundID)
	}
	return nil
}

// RenderFund persists the rendered fund and its rendition items in one
// transaction. A stale version rolls everything back.
func (r *PgxFundRepository) RenderFund(ctx context.Context, fund domain.FundAssignment, items []domain.RenditionItem, expectedVersion int64) error {
	m := mapping.ToModelFundAssignment(fund)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `UPDATE funds SET ` + fundUpdateSet + ` WHERE fund_id = $1 AND version = $14;`
	args := append(fundUpdateArgs(m), expectedVersion)

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update fund %s: %w", m.FundID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMissedFundUpdate(ctx, m.FundID)
	}

	itemQuery := `
		INSERT INTO fund_rendition_items (fund_id, expense_id, importe_rendido, original_amount, original_currency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, item := range items {
		im := mapping.ToModelRenditionItem(item)
		if _, err := tx.Exec(ctx, itemQuery,
			im.FundID, im.ExpenseID, im.ImporteRendido, im.OriginalAmount, im.OriginalCurrency, im.CreatedAt,
		); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("expense %s already rendered against fund %s: %w", im.ExpenseID, im.FundID, apperrors.ErrDuplicate)
			}
			return fmt.Errorf("%w: rendition item for expense %s: %v", apperrors.ErrReconciliation, im.ExpenseID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// ListRenditionItems retrieves the rendition items of a fund in insertion order.
func (r *PgxFundRepository) ListRenditionItems(ctx context.Context, fundID string) ([]domain.RenditionItem, error) {
	query := `
		SELECT fund_id, expense_id, importe_rendido, original_amount, original_currency, created_at
		FROM fund_rendition_items
		WHERE fund_id = $1
		ORDER BY created_at, expense_id;
	`
	rows, err := r.Pool.Query(ctx, query, fundID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rendition items for fund %s: %w", fundID, err)
	}
	defer rows.Close()

	var modelItems []models.RenditionItem
	for rows.Next() {
		var m models.RenditionItem
		if err := rows.Scan(&m.FundID, &m.ExpenseID, &m.ImporteRendido, &m.OriginalAmount, &m.OriginalCurrency, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rendition item row: %w", err)
		}
		modelItems = append(modelItems, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rendition item rows: %w", err)
	}

	return mapping.ToDomainRenditionItemSlice(modelItems), nil
}

// NextFundCode reserves the next sequential code for the company and year,
// e.g. "AF-2026-000042".
func (r *PgxFundRepository) NextFundCode(ctx context.Context, companyID string) (string, error) {
	return nextCode(ctx, r.Pool, companyID, "FUND", "AF")
}

func (r *PgxFundRepository) classifyMissedFundUpdate(ctx context.Context, fundID string) error {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM funds WHERE fund_id = $1);`, fundID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check fund %s existence: %w", fundID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("fund %s was modified concurrently: %w", fundID, apperrors.ErrVersionConflict)
}
