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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCostCenterRepository struct {
	BaseRepository
}

// newPgxCostCenterRepository creates a new repository for cost center data.
func newPgxCostCenterRepository(pool *pgxpool.Pool) portsrepo.CostCenterRepositoryFacade {
	return &PgxCostCenterRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CostCenterRepositoryFacade = (*PgxCostCenterRepository)(nil)

const costCenterColumns = `
	cost_center_id, company_id, code, name, presupuesto_asignado, presupuesto_consumido, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCostCenterRow(row pgx.Row) (models.CostCenter, error) {
	var m models.CostCenter
	err := row.Scan(
		&m.CostCenterID, &m.CompanyID, &m.Code, &m.Name, &m.PresupuestoAsignado, &m.PresupuestoConsumido, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveCostCenter inserts a new cost center row.
func (r *PgxCostCenterRepository) SaveCostCenter(ctx context.Context, costCenter domain.CostCenter) error {
	m := mapping.ToModelCostCenter(costCenter)

	query := `
		INSERT INTO cost_centers (` + costCenterColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CostCenterID, m.CompanyID, m.Code, m.Name, m.PresupuestoAsignado, m.PresupuestoConsumido, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("cost center code %s already exists: %w", m.Code, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save cost center %s: %w", m.CostCenterID, err)
	}
	return nil
}

// FindCostCenterByID retrieves a single cost center by its ID.
func (r *PgxCostCenterRepository) FindCostCenterByID(ctx context.Context, costCenterID string) (*domain.CostCenter, error) {
	query := `SELECT ` + costCenterColumns + ` FROM cost_centers WHERE cost_center_id = $1;`

	m, err := scanCostCenterRow(r.Pool.QueryRow(ctx, query, costCenterID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cost center %s: %w", costCenterID, err)
	}

	d := mapping.ToDomainCostCenter(m)
	return &d, nil
}

// ListCostCenters retrieves all cost centers of a company ordered by code.
func (r *PgxCostCenterRepository) ListCostCenters(ctx context.Context, companyID string) ([]domain.CostCenter, error) {
	query := `SELECT ` + costCenterColumns + ` FROM cost_centers WHERE company_id = $1 ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cost centers: %w", err)
	}
	defer rows.Close()

	var modelCenters []models.CostCenter
	for rows.Next() {
		m, scanErr := scanCostCenterRow(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan cost center row: %w", scanErr)
		}
		modelCenters = append(modelCenters, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cost center rows: %w", err)
	}

	return mapping.ToDomainCostCenterSlice(modelCenters), nil
}

// UpdateCostCenter writes the mutable cost center fields. Consumption is
// never written here; it moves only through expense status transactions.
func (r *PgxCostCenterRepository) UpdateCostCenter(ctx context.Context, costCenter domain.CostCenter) error {
	m := mapping.ToModelCostCenter(costCenter)

	query := `
		UPDATE cost_centers
		SET code = $2, name = $3, presupuesto_asignado = $4, is_active = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE cost_center_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CostCenterID, m.Code, m.Name, m.PresupuestoAsignado, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("cost center code %s already exists: %w", m.Code, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update cost center %s: %w", m.CostCenterID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
