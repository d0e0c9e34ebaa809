package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus is the lifecycle state of an expense. Values match the
// persisted representation; conversion happens only at the storage boundary.
type ExpenseStatus string

const (
	ExpenseDraft    ExpenseStatus = "BORRADOR"
	ExpensePending  ExpenseStatus = "PENDIENTE"
	ExpenseApproved ExpenseStatus = "APROBADO"
	ExpenseRejected ExpenseStatus = "RECHAZADO"
	ExpensePaid     ExpenseStatus = "PAGADO"
	ExpenseAnnulled ExpenseStatus = "ANULADO"
)

// expenseTransitions is the single source of truth for legal status moves.
// draft -> pending | approved (auto-approval) ; pending -> approved | rejected ;
// approved -> paid ; draft/pending/approved -> annulled.
var expenseTransitions = map[ExpenseStatus]map[ExpenseStatus]bool{
	ExpenseDraft: {
		ExpensePending:  true,
		ExpenseApproved: true, // concept does not require approval
		ExpenseAnnulled: true,
	},
	ExpensePending: {
		ExpenseApproved: true,
		ExpenseRejected: true,
		ExpenseAnnulled: true,
	},
	ExpenseApproved: {
		ExpensePaid:     true,
		ExpenseAnnulled: true,
	},
	ExpenseRejected: {},
	ExpensePaid:     {},
	ExpenseAnnulled: {},
}

var expenseTerminalStates = map[ExpenseStatus]bool{
	ExpenseRejected: true,
	ExpensePaid:     true,
	ExpenseAnnulled: true,
}

// CanTransitionTo reports whether the move from the current status is legal.
func (s ExpenseStatus) CanTransitionTo(target ExpenseStatus) bool {
	return expenseTransitions[s][target]
}

// IsTerminal reports whether no further transition is allowed from this status.
func (s ExpenseStatus) IsTerminal() bool {
	return expenseTerminalStates[s]
}

// IsValid reports whether the status is one of the known lifecycle states.
func (s ExpenseStatus) IsValid() bool {
	_, ok := expenseTransitions[s]
	return ok
}

func (s ExpenseStatus) String() string {
	return string(s)
}

// BeneficiaryType classifies who the expense was paid to.
type BeneficiaryType string

const (
	BeneficiaryProveedor BeneficiaryType = "PROVEEDOR"
	BeneficiaryEmpleado  BeneficiaryType = "EMPLEADO"
	BeneficiaryOtro      BeneficiaryType = "OTRO"
)

// Beneficiary identifies the receiving party of an expense.
type Beneficiary struct {
	Type           *BeneficiaryType `json:"type,omitempty"`
	DocumentNumber string           `json:"documentNumber,omitempty"`
	Name           string           `json:"name,omitempty"`
}

// Expense is a single expense moving through the approval lifecycle.
// Amount is immutable once the status leaves BORRADOR.
type Expense struct {
	ExpenseID    string           `json:"expenseID"` // Primary Key (UUID)
	Code         string           `json:"code"`      // Human-readable code, e.g. "GTO-2026-000123"
	CompanyID    string           `json:"companyID"`
	BranchID     *string          `json:"branchID,omitempty"`
	Glosa        string           `json:"glosa"` // Free-text description
	Amount       decimal.Decimal  `json:"amount"`
	CurrencyCode string           `json:"currencyCode"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate,omitempty"` // Required when currency != base
	ExpenseDate  time.Time        `json:"expenseDate"`
	ConceptID    string           `json:"conceptID"`
	CostCenterID *string          `json:"costCenterID,omitempty"`
	FundID       *string          `json:"fundID,omitempty"` // Caja / fund assignment reference
	Status       ExpenseStatus    `json:"status"`
	Beneficiary  Beneficiary      `json:"beneficiary"`

	ApprovedBy   *string    `json:"approvedBy,omitempty"`
	ApprovedAt   *time.Time `json:"approvedAt,omitempty"`
	RejectedBy   *string    `json:"rejectedBy,omitempty"`
	RejectedAt   *time.Time `json:"rejectedAt,omitempty"`
	RejectReason string     `json:"rejectReason,omitempty"`
	PaidBy       *string    `json:"paidBy,omitempty"`
	PaidAt       *time.Time `json:"paidAt,omitempty"`
	PaymentMeth  string     `json:"paymentMethod,omitempty"`
	AnnulledBy   *string    `json:"annulledBy,omitempty"`
	AnnulledAt   *time.Time `json:"annulledAt,omitempty"`
	AnnulReason  string     `json:"annulReason,omitempty"`

	// Version is the optimistic-concurrency token. Status-changing writes
	// must match it or fail with ErrVersionConflict.
	Version int64 `json:"version"`
	AuditFields
}

// NormalizedAmount converts the expense amount to the base currency using
// its own recorded exchange rate.
func (e *Expense) NormalizedAmount() (decimal.Decimal, error) {
	return NormalizeToBase(e.Amount, e.CurrencyCode, e.ExchangeRate)
}

// IsEditable reports whether the expense fields may still be mutated.
func (e *Expense) IsEditable() bool {
	return e.Status == ExpenseDraft
}

// Renderable reports whether the expense may be attached to a fund rendición.
func (e *Expense) Renderable() bool {
	return e.Status == ExpenseApproved || e.Status == ExpensePaid
}
