package services

import (
	"context"
	"time"

	"github.com/gastosapp/gastos_backend/internal/dto"
)

// ReportCache is the read-model cache consulted by the reporting service and
// invalidated by mutating services. A nil-safe no-op implementation is used
// when no cache backend is configured.
type ReportCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateCompany(ctx context.Context, companyID string) error
}

// ReportingSvcFacade serves aggregate read-models for dashboards.
type ReportingSvcFacade interface {
	ExpenseStatistics(ctx context.Context, companyID string) (*dto.ExpenseStatisticsResponse, error)
	CostCenterSummaries(ctx context.Context, companyID string) (*dto.CostCenterReportResponse, error)
	FundOverview(ctx context.Context, companyID string) (*dto.FundOverviewResponse, error)
}
