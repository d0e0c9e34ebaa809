package dto

import (
	"time"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFundRequest defines the data needed to create a fund assignment.
type CreateFundRequest struct {
	BranchID      *string         `json:"branchID"`
	ResponsibleID string          `json:"responsibleID" binding:"required"`
	MontoAsignado decimal.Decimal `json:"montoAsignado" binding:"required"`
	Observations  string          `json:"observations"`
}

// RenderFundRequest selects the expenses attached to a rendición.
type RenderFundRequest struct {
	ExpenseIDs   []string `json:"expenseIDs" binding:"required"`
	Observations string   `json:"observations"`
}

// FundResponse mirrors domain.FundAssignment.
type FundResponse struct {
	FundID         string            `json:"fundID"`
	Code           string            `json:"code"`
	CompanyID      string            `json:"companyID"`
	BranchID       *string           `json:"branchID,omitempty"`
	ResponsibleID  string            `json:"responsibleID"`
	CurrencyCode   string            `json:"currencyCode"`
	MontoAsignado  decimal.Decimal   `json:"montoAsignado"`
	MontoRendido   decimal.Decimal   `json:"montoRendido"`
	SaldoPendiente decimal.Decimal   `json:"saldoPendiente"`
	Status         domain.FundStatus `json:"status"`
	Observations   string            `json:"observations,omitempty"`
	RenderedAt     *time.Time        `json:"renderedAt,omitempty"`
	RenderedBy     *string           `json:"renderedBy,omitempty"`
	Version        int64             `json:"version"`
	CreatedAt      time.Time         `json:"createdAt"`
	CreatedBy      string            `json:"createdBy"`
}

// RenditionItemResponse is one expense line of a rendición.
type RenditionItemResponse struct {
	ExpenseID        string          `json:"expenseID"`
	ImporteRendido   decimal.Decimal `json:"importeRendido"`
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	OriginalCurrency string          `json:"originalCurrency"`
}

// FundDetail is a fund assignment with its rendition items, if rendered.
type FundDetail struct {
	Fund  FundResponse            `json:"fund"`
	Items []RenditionItemResponse `json:"items,omitempty"`
}

// ToFundResponse converts a domain.FundAssignment to its response DTO.
func ToFundResponse(f domain.FundAssignment) FundResponse {
	return FundResponse{
		FundID:         f.FundID,
		Code:           f.Code,
		CompanyID:      f.CompanyID,
		BranchID:       f.BranchID,
		ResponsibleID:  f.ResponsibleID,
		CurrencyCode:   f.CurrencyCode,
		MontoAsignado:  f.MontoAsignado,
		MontoRendido:   f.MontoRendido,
		SaldoPendiente: f.SaldoPendiente,
		Status:         f.Status,
		Observations:   f.Observations,
		RenderedAt:     f.RenderedAt,
		RenderedBy:     f.RenderedBy,
		Version:        f.Version,
		CreatedAt:      f.CreatedAt,
		CreatedBy:      f.CreatedBy,
	}
}

// ToFundResponses converts a slice of fund assignments.
func ToFundResponses(funds []domain.FundAssignment) []FundResponse {
	res := make([]FundResponse, len(funds))
	for i, f := range funds {
		res[i] = ToFundResponse(f)
	}
	return res
}

// ToRenditionItemResponses converts domain rendition items.
func ToRenditionItemResponses(items []domain.RenditionItem) []RenditionItemResponse {
	res := make([]RenditionItemResponse, len(items))
	for i, it := range items {
		res[i] = RenditionItemResponse{
			ExpenseID:        it.ExpenseID,
			ImporteRendido:   it.ImporteRendido,
			OriginalAmount:   it.OriginalAmount,
			OriginalCurrency: it.OriginalCurrency,
		}
	}
	return res
}

// ListFundsParams defines query parameters for listing fund assignments.
type ListFundsParams struct {
	Status        *string `form:"status"`
	ResponsibleID *string `form:"responsibleID"`
	Limit         int     `form:"limit,default=20"`
	NextToken     *string `form:"nextToken"`
}

// ListFundsResponse wraps a page of fund assignments.
type ListFundsResponse struct {
	Items     []FundResponse `json:"items"`
	NextToken *string        `json:"nextToken,omitempty"`
}
