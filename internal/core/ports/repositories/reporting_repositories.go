package repositories

import (
	"context"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExpenseStatusCount aggregates expenses of one status.
type ExpenseStatusCount struct {
	Status domain.ExpenseStatus
	Count  int64
	Total  decimal.Decimal // Base currency
}

// CostCenterSummary is the budget position of one cost center.
type CostCenterSummary struct {
	CostCenterID string
	Code         string
	Name         string
	Asignado     decimal.Decimal
	Consumido    decimal.Decimal
	Disponible   decimal.Decimal
}

// FundOverviewRow is the reconciliation position of one fund assignment.
type FundOverviewRow struct {
	FundID         string
	Code           string
	ResponsibleID  string
	Status         domain.FundStatus
	MontoAsignado  decimal.Decimal
	MontoRendido   decimal.Decimal
	SaldoPendiente decimal.Decimal
}

// ReportingRepositoryFacade serves aggregate read-models. Results are
// cache-scoped copies; staleness between invalidations is acceptable.
type ReportingRepositoryFacade interface {
	ExpenseStatistics(ctx context.Context, companyID string) ([]ExpenseStatusCount, error)
	CostCenterSummaries(ctx context.Context, companyID string) ([]CostCenterSummary, error)
	FundOverview(ctx context.Context, companyID string) ([]FundOverviewRow, error)
}
