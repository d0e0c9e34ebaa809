package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundAssignment is the DB shape of a petty-cash assignment row.
type FundAssignment struct {
	FundID         string          `db:"fund_id"`
	Code           string          `db:"code"`
	CompanyID      string          `db:"company_id"`
	BranchID       *string         `db:"branch_id"`
	ResponsibleID  string          `db:"responsible_id"`
	CurrencyCode   string          `db:"currency_code"`
	MontoAsignado  decimal.Decimal `db:"monto_asignado"`
	MontoRendido   decimal.Decimal `db:"monto_rendido"`
	SaldoPendiente decimal.Decimal `db:"saldo_pendiente"`
	Status         string          `db:"status"`
	Observations   string          `db:"observations"`
	RenderedAt     *time.Time      `db:"rendered_at"`
	RenderedBy     *string         `db:"rendered_by"`
	AnnulledAt     *time.Time      `db:"annulled_at"`
	Version        int64           `db:"version"`
	AuditFields
}

// RenditionItem is the DB shape of one fund_rendition_items row.
type RenditionItem struct {
	FundID           string          `db:"fund_id"`
	ExpenseID        string          `db:"expense_id"`
	ImporteRendido   decimal.Decimal `db:"importe_rendido"`
	OriginalAmount   decimal.Decimal `db:"original_amount"`
	OriginalCurrency string          `db:"original_currency"`
	CreatedAt        time.Time       `db:"created_at"`
}
