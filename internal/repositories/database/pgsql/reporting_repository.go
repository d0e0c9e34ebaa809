package pgsql

import (
	"context"
	"fmt"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastosapp/gastos_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a repository for aggregate read-models.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &ReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ReportingRepositoryFacade = (*ReportingRepository)(nil)

// ExpenseStatistics aggregates expense counts and base-currency totals per
// status. Non-base amounts use the exchange rate recorded on the expense;
// drafts without a rate contribute zero to the total.
func (r *ReportingRepository) ExpenseStatistics(ctx context.Context, companyID string) ([]portsrepo.ExpenseStatusCount, error) {
	query := `
		SELECT status,
			COUNT(*),
			COALESCE(SUM(CASE WHEN currency_code = $2 THEN amount ELSE amount * COALESCE(exchange_rate, 0) END), 0)
		FROM expenses
		WHERE company_id = $1
		GROUP BY status
		ORDER BY status;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, domain.BaseCurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense statistics: %w", err)
	}
	defer rows.Close()

	var results []portsrepo.ExpenseStatusCount
	for rows.Next() {
		var row portsrepo.ExpenseStatusCount
		var status string
		if err := rows.Scan(&status, &row.Count, &row.Total); err != nil {
			return nil, fmt.Errorf("failed to scan expense statistics row: %w", err)
		}
		row.Status = domain.ExpenseStatus(status)
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expense statistics rows: %w", err)
	}

	return results, nil
}

// CostCenterSummaries returns the budget position of every cost center.
func (r *ReportingRepository) CostCenterSummaries(ctx context.Context, companyID string) ([]portsrepo.CostCenterSummary, error) {
	query := `
		SELECT cost_center_id, code, name,
			presupuesto_asignado, presupuesto_consumido,
			presupuesto_asignado - presupuesto_consumido
		FROM cost_centers
		WHERE company_id = $1
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cost center summaries: %w", err)
	}
	defer rows.Close()

	var results []portsrepo.CostCenterSummary
	for rows.Next() {
		var row portsrepo.CostCenterSummary
		if err := rows.Scan(&row.CostCenterID, &row.Code, &row.Name, &row.Asignado, &row.Consumido, &row.Disponible); err != nil {
			return nil, fmt.Errorf("failed to scan cost center summary row: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cost center summary rows: %w", err)
	}

	return results, nil
}

// FundOverview returns the reconciliation position of every fund assignment.
func (r *ReportingRepository) FundOverview(ctx context.Context, companyID string) ([]portsrepo.FundOverviewRow, error) {
	query := `
		SELECT fund_id, code, responsible_id, status,
			monto_asignado, monto_rendido, saldo_pendiente
		FROM funds
		WHERE company_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund overview: %w", err)
	}
	defer rows.Close()

	var results []portsrepo.FundOverviewRow
	for rows.Next() {
		var row portsrepo.FundOverviewRow
		var status string
		if err := rows.Scan(&row.FundID, &row.Code, &row.ResponsibleID, &status, &row.MontoAsignado, &row.MontoRendido, &row.SaldoPendiente); err != nil {
			return nil, fmt.Errorf("failed to scan fund overview row: %w", err)
		}
		row.Status = domain.FundStatus(status)
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fund overview rows: %w", err)
	}

	return results, nil
}
