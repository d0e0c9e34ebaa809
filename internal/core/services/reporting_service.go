package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastosapp/gastos_backend/internal/core/ports/repositories"
	portssvc "github.com/gastosapp/gastos_backend/internal/core/ports/services"
	"github.com/gastosapp/gastos_backend/internal/dto"
	"github.com/gastosapp/gastos_backend/internal/middleware"
	"github.com/gastosapp/gastos_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// reportCacheTTL bounds staleness between explicit invalidations.
const reportCacheTTL = 5 * time.Minute

type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	cache         portssvc.ReportCache
}

func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, cache portssvc.ReportCache) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		cache:         cache,
	}
}

func (s *reportingService) ExpenseStatistics(ctx context.Context, companyID string) (*dto.ExpenseStatisticsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	cacheKey := fmt.Sprintf("reports:%s:expense-stats", companyID)

	var cached dto.ExpenseStatisticsResponse
	if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		logger.Warn("report cache read failed", "key", cacheKey, "error", err)
	} else if hit {
		return &cached, nil
	}

	counts, err := s.reportingRepo.ExpenseStatistics(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute expense statistics: %w", err)
	}

	resp := &dto.ExpenseStatisticsResponse{
		CompanyID:  companyID,
		ByStatus:   make([]dto.ExpenseStatusStat, len(counts)),
		GrandTotal: decimal.Zero,
	}
	for i, c := range counts {
		resp.ByStatus[i] = dto.ExpenseStatusStat{Status: c.Status, Count: c.Count, Total: c.Total}
		resp.GrandTotal = resp.GrandTotal.Add(c.Total)
	}
	resp.GrandTotalDisplay = utils.FormatWithPrecision(resp.GrandTotal, domain.BaseCurrencyPrecision)

	if err := s.cache.SetJSON(ctx, cacheKey, resp, reportCacheTTL); err != nil {
		logger.Warn("report cache write failed", "key", cacheKey, "error", err)
	}
	return resp, nil
}

func (s *reportingService) CostCenterSummaries(ctx context.Context, companyID string) (*dto.CostCenterReportResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	cacheKey := fmt.Sprintf("reports:%s:cost-centers", companyID)

	var cached dto.CostCenterReportResponse
	if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		logger.Warn("report cache read failed", "key", cacheKey, "error", err)
	} else if hit {
		return &cached, nil
	}

	summaries, err := s.reportingRepo.CostCenterSummaries(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute cost center summaries: %w", err)
	}

	resp := &dto.CostCenterReportResponse{
		CompanyID:   companyID,
		CostCenters: make([]dto.CostCenterReportRow, len(summaries)),
	}
	for i, cc := range summaries {
		resp.CostCenters[i] = dto.CostCenterReportRow{
			CostCenterID: cc.CostCenterID,
			Code:         cc.Code,
			Name:         cc.Name,
			Asignado:     cc.Asignado,
			Consumido:    cc.Consumido,
			Disponible:   cc.Disponible,
		}
	}

	if err := s.cache.SetJSON(ctx, cacheKey, resp, reportCacheTTL); err != nil {
		logger.Warn("report cache write failed", "key", cacheKey, "error", err)
	}
	return resp, nil
}

func (s *reportingService) FundOverview(ctx context.Context, companyID string) (*dto.FundOverviewResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	cacheKey := fmt.Sprintf("reports:%s:funds", companyID)

	var cached dto.FundOverviewResponse
	if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		logger.Warn("report cache read failed", "key", cacheKey, "error", err)
	} else if hit {
		return &cached, nil
	}

	rows, err := s.reportingRepo.FundOverview(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute fund overview: %w", err)
	}

	resp := &dto.FundOverviewResponse{
		CompanyID: companyID,
		Funds:     make([]dto.FundOverviewRow, len(rows)),
	}
	for i, f := range rows {
		resp.Funds[i] = dto.FundOverviewRow{
			FundID:         f.FundID,
			Code:           f.Code,
			ResponsibleID:  f.ResponsibleID,
			Status:         f.Status,
			MontoAsignado:  f.MontoAsignado,
			MontoRendido:   f.MontoRendido,
			SaldoPendiente: f.SaldoPendiente,
		}
	}

	if err := s.cache.SetJSON(ctx, cacheKey, resp, reportCacheTTL); err != nil {
		logger.Warn("report cache write failed", "key", cacheKey, "error", err)
	}
	return resp, nil
}
