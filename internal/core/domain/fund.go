package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundStatus is the lifecycle state of a fund assignment.
type FundStatus string

const (
	FundAsignado  FundStatus = "ASIGNADO"
	FundPorRendir FundStatus = "POR_RENDIR"
	FundRendido   FundStatus = "RENDIDO"
	FundAnulado   FundStatus = "ANULADO"
)

var fundTransitions = map[FundStatus]map[FundStatus]bool{
	FundAsignado: {
		FundPorRendir: true,
		FundRendido:   true, // render allowed directly from ASIGNADO
		FundAnulado:   true,
	},
	FundPorRendir: {
		FundRendido: true,
		FundAnulado: true,
	},
	FundRendido: {},
	FundAnulado: {},
}

// CanTransitionTo reports whether the move from the current status is legal.
func (s FundStatus) CanTransitionTo(target FundStatus) bool {
	return fundTransitions[s][target]
}

// IsValid reports whether the status is one of the known fund states.
func (s FundStatus) IsValid() bool {
	_, ok := fundTransitions[s]
	return ok
}

// IsTerminal reports whether the assignment is immutable.
func (s FundStatus) IsTerminal() bool {
	return s == FundRendido || s == FundAnulado
}

func (s FundStatus) String() string {
	return string(s)
}

// FundAssignment is a petty-cash assignment handed to a responsible party,
// later reconciled against the expenses that consumed it. Rendering is a
// single terminal operation: monto_rendido is set exactly once.
type FundAssignment struct {
	FundID         string          `json:"fundID"` // Primary Key (UUID)
	Code           string          `json:"code"`   // e.g. "AF-2026-000042"
	CompanyID      string          `json:"companyID"`
	BranchID       *string         `json:"branchID,omitempty"`
	ResponsibleID  string          `json:"responsibleID"` // FK -> users.user_id
	CurrencyCode   string          `json:"currencyCode"`  // Currency rendering totals are kept in
	MontoAsignado  decimal.Decimal `json:"montoAsignado"`
	MontoRendido   decimal.Decimal `json:"montoRendido"`
	SaldoPendiente decimal.Decimal `json:"saldoPendiente"` // asignado - rendido; may be negative
	Status         FundStatus      `json:"status"`
	Observations   string          `json:"observations,omitempty"`
	RenderedAt     *time.Time      `json:"renderedAt,omitempty"`
	RenderedBy     *string         `json:"renderedBy,omitempty"`
	AnnulledAt     *time.Time      `json:"annulledAt,omitempty"`

	Version int64 `json:"version"`
	AuditFields
}

// RenditionItem links a rendered expense to its fund assignment, recording
// the base-normalized amount that entered the reconciliation sum.
type RenditionItem struct {
	FundID           string          `json:"fundID"`
	ExpenseID        string          `json:"expenseID"`
	ImporteRendido   decimal.Decimal `json:"importeRendido"` // Amount in the assignment's currency
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	OriginalCurrency string          `json:"originalCurrency"`
	CreatedAt        time.Time       `json:"createdAt"`
}
