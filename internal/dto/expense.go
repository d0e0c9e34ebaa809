package dto

import (
	"time"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to create a draft expense.
type CreateExpenseRequest struct {
	BranchID       *string                 `json:"branchID"`
	Glosa          string                  `json:"glosa"`
	Amount         decimal.Decimal         `json:"amount" binding:"required"`
	CurrencyCode   string                  `json:"currencyCode" binding:"required,oneof=PEN USD EUR"`
	ExchangeRate   *decimal.Decimal        `json:"exchangeRate"`
	ExpenseDate    time.Time               `json:"expenseDate" binding:"required"`
	ConceptID      string                  `json:"conceptID" binding:"required"`
	CostCenterID   *string                 `json:"costCenterID"`
	FundID         *string                 `json:"fundID"`
	Beneficiary    *BeneficiaryRequest     `json:"beneficiary"`
}

// BeneficiaryRequest identifies the receiving party of an expense.
type BeneficiaryRequest struct {
	Type           domain.BeneficiaryType `json:"type" binding:"required,oneof=PROVEEDOR EMPLEADO OTRO"`
	DocumentNumber string                 `json:"documentNumber"`
	Name           string                 `json:"name"`
}

// UpdateExpenseRequest defines the fields editable while the expense is a
// draft. Use pointers to distinguish zero-value updates from omitted fields.
type UpdateExpenseRequest struct {
	Glosa        *string          `json:"glosa"`
	Amount       *decimal.Decimal `json:"amount"`
	CurrencyCode *string          `json:"currencyCode"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate"`
	ExpenseDate  *time.Time       `json:"expenseDate"`
	ConceptID    *string          `json:"conceptID"`
	CostCenterID *string          `json:"costCenterID"`
	FundID       *string          `json:"fundID"`
	Beneficiary  *BeneficiaryRequest `json:"beneficiary"`
}

// ApproveExpenseRequest carries optional approver observations.
type ApproveExpenseRequest struct {
	Observations string `json:"observations"`
}

// RejectExpenseRequest carries the mandatory rejection reason.
type RejectExpenseRequest struct {
	Motivo string `json:"motivo" binding:"required"`
}

// PayExpenseRequest carries the optional payment method.
type PayExpenseRequest struct {
	MetodoPago string `json:"metodoPago"`
}

// AnnulExpenseRequest carries the mandatory annulment reason.
type AnnulExpenseRequest struct {
	Motivo string `json:"motivo" binding:"required"`
}

// ExpenseResponse mirrors domain.Expense for API consumers.
type ExpenseResponse struct {
	ExpenseID    string           `json:"expenseID"`
	Code         string           `json:"code"`
	CompanyID    string           `json:"companyID"`
	BranchID     *string          `json:"branchID,omitempty"`
	Glosa        string           `json:"glosa"`
	Amount       decimal.Decimal  `json:"amount"`
	CurrencyCode string           `json:"currencyCode"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate,omitempty"`
	ExpenseDate  time.Time        `json:"expenseDate"`
	ConceptID    string           `json:"conceptID"`
	CostCenterID *string          `json:"costCenterID,omitempty"`
	FundID       *string          `json:"fundID,omitempty"`
	Status       domain.ExpenseStatus `json:"status"`
	Beneficiary  domain.Beneficiary   `json:"beneficiary"`

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

	Version       int64     `json:"version"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToExpenseResponse converts a domain.Expense to its response DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:    e.ExpenseID,
		Code:         e.Code,
		CompanyID:    e.CompanyID,
		BranchID:     e.BranchID,
		Glosa:        e.Glosa,
		Amount:       e.Amount,
		CurrencyCode: e.CurrencyCode,
		ExchangeRate: e.ExchangeRate,
		ExpenseDate:  e.ExpenseDate,
		ConceptID:    e.ConceptID,
		CostCenterID: e.CostCenterID,
		FundID:       e.FundID,
		Status:       e.Status,
		Beneficiary:  e.Beneficiary,
		ApprovedBy:   e.ApprovedBy,
		ApprovedAt:   e.ApprovedAt,
		RejectedBy:   e.RejectedBy,
		RejectedAt:   e.RejectedAt,
		RejectReason: e.RejectReason,
		PaidBy:       e.PaidBy,
		PaidAt:       e.PaidAt,
		PaymentMeth:  e.PaymentMeth,
		AnnulledBy:   e.AnnulledBy,
		AnnulledAt:   e.AnnulledAt,
		AnnulReason:  e.AnnulReason,
		Version:      e.Version,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
		LastUpdatedAt: e.LastUpdatedAt,
		LastUpdatedBy: e.LastUpdatedBy,
	}
}

// ToExpenseResponses converts a slice of domain expenses.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return res
}

// SubmitExpenseResult is the outcome of submitting a draft. MissingDocuments
// lists mandatory checklist types not yet attached; when the concept does not
// enforce its checklist this is advisory and the submission still proceeds.
type SubmitExpenseResult struct {
	Expense          ExpenseResponse       `json:"expense"`
	MissingDocuments []domain.DocumentType `json:"missingDocuments,omitempty"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	Status       *string `form:"status"`
	ConceptID    *string `form:"conceptID"`
	CostCenterID *string `form:"costCenterID"`
	FundID       *string `form:"fundID"`
	CreatedBy    *string `form:"createdBy"`
	Limit        int     `form:"limit,default=20"`
	NextToken    *string `form:"nextToken"`
}

// ListExpensesResponse wraps a page of expenses with the pagination token.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}
