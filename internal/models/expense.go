package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the DB shape of an expense row. Status is stored as its
// Spanish-valued text representation; nullable columns use pointers.
type Expense struct {
	ExpenseID    string           `db:"expense_id"`
	Code         string           `db:"code"`
	CompanyID    string           `db:"company_id"`
	BranchID     *string          `db:"branch_id"`
	Glosa        string           `db:"glosa"`
	Amount       decimal.Decimal  `db:"amount"`
	CurrencyCode string           `db:"currency_code"`
	ExchangeRate *decimal.Decimal `db:"exchange_rate"`
	ExpenseDate  time.Time        `db:"expense_date"`
	ConceptID    string           `db:"concept_id"`
	CostCenterID *string          `db:"cost_center_id"`
	FundID       *string          `db:"fund_id"`
	Status       string           `db:"status"`

	BeneficiaryType     *string `db:"beneficiary_type"`
	BeneficiaryDocument string  `db:"beneficiary_document"`
	BeneficiaryName     string  `db:"beneficiary_name"`

	ApprovedBy   *string    `db:"approved_by"`
	ApprovedAt   *time.Time `db:"approved_at"`
	RejectedBy   *string    `db:"rejected_by"`
	RejectedAt   *time.Time `db:"rejected_at"`
	RejectReason string     `db:"reject_reason"`
	PaidBy       *string    `db:"paid_by"`
	PaidAt       *time.Time `db:"paid_at"`
	PaymentMeth  string     `db:"payment_method"`
	AnnulledBy   *string    `db:"annulled_by"`
	AnnulledAt   *time.Time `db:"annulled_at"`
	AnnulReason  string     `db:"annul_reason"`

	Version int64 `db:"version"`
	AuditFields
}
