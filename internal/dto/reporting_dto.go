package dto

import (
	"github.com/gastosapp/gastos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExpenseStatusStat aggregates expenses of one status.
type ExpenseStatusStat struct {
	Status domain.ExpenseStatus `json:"status"`
	Count  int64                `json:"count"`
	Total  decimal.Decimal      `json:"total"` // Base currency
}

// ExpenseStatisticsResponse is the per-company expense dashboard read-model.
// GrandTotalDisplay carries the total pre-formatted at base-currency precision.
type ExpenseStatisticsResponse struct {
	CompanyID         string              `json:"companyID"`
	ByStatus          []ExpenseStatusStat `json:"byStatus"`
	GrandTotal        decimal.Decimal     `json:"grandTotal"`
	GrandTotalDisplay string              `json:"grandTotalDisplay"`
}

// CostCenterReportRow is the budget position of one cost center.
type CostCenterReportRow struct {
	CostCenterID string          `json:"costCenterID"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Asignado     decimal.Decimal `json:"asignado"`
	Consumido    decimal.Decimal `json:"consumido"`
	Disponible   decimal.Decimal `json:"disponible"`
}

// CostCenterReportResponse lists budget positions for a company.
type CostCenterReportResponse struct {
	CompanyID   string                `json:"companyID"`
	CostCenters []CostCenterReportRow `json:"costCenters"`
}

// FundOverviewRow is the reconciliation position of one fund assignment.
type FundOverviewRow struct {
	FundID         string            `json:"fundID"`
	Code           string            `json:"code"`
	ResponsibleID  string            `json:"responsibleID"`
	Status         domain.FundStatus `json:"status"`
	MontoAsignado  decimal.Decimal   `json:"montoAsignado"`
	MontoRendido   decimal.Decimal   `json:"montoRendido"`
	SaldoPendiente decimal.Decimal   `json:"saldoPendiente"`
}

// FundOverviewResponse lists fund positions for a company.
type FundOverviewResponse struct {
	CompanyID string            `json:"companyID"`
	Funds     []FundOverviewRow `json:"funds"`
}
