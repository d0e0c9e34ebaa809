package mapping

import (
	"github.com/gastosapp/gastos_backend/internal/core/domain"
	"github.com/gastosapp/gastos_backend/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	var benType *string
	if d.Beneficiary.Type != nil {
		s := string(*d.Beneficiary.Type)
		benType = &s
	}
	return models.Expense{
		ExpenseID:           d.ExpenseID,
		Code:                d.Code,
		CompanyID:           d.CompanyID,
		BranchID:            d.BranchID,
		Glosa:               d.Glosa,
		Amount:              d.Amount,
		CurrencyCode:        d.CurrencyCode,
		ExchangeRate:        d.ExchangeRate,
		ExpenseDate:         d.ExpenseDate,
		ConceptID:           d.ConceptID,
		CostCenterID:        d.CostCenterID,
		FundID:              d.FundID,
		Status:              string(d.Status),
		BeneficiaryType:     benType,
		BeneficiaryDocument: d.Beneficiary.DocumentNumber,
		BeneficiaryName:     d.Beneficiary.Name,
		ApprovedBy:          d.ApprovedBy,
		ApprovedAt:          d.ApprovedAt,
		RejectedBy:          d.RejectedBy,
		RejectedAt:          d.RejectedAt,
		RejectReason:        d.RejectReason,
		PaidBy:              d.PaidBy,
		PaidAt:              d.PaidAt,
		PaymentMeth:         d.PaymentMeth,
		AnnulledBy:          d.AnnulledBy,
		AnnulledAt:          d.AnnulledAt,
		AnnulReason:         d.AnnulReason,
		Version:             d.Version,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	var benType *domain.BeneficiaryType
	if m.BeneficiaryType != nil {
		t := domain.BeneficiaryType(*m.BeneficiaryType)
		benType = &t
	}
	return domain.Expense{
		ExpenseID:    m.ExpenseID,
		Code:         m.Code,
		CompanyID:    m.CompanyID,
		BranchID:     m.BranchID,
		Glosa:        m.Glosa,
		Amount:       m.Amount,
		CurrencyCode: m.CurrencyCode,
		ExchangeRate: m.ExchangeRate,
		ExpenseDate:  m.ExpenseDate,
		ConceptID:    m.ConceptID,
		CostCenterID: m.CostCenterID,
		FundID:       m.FundID,
		Status:       domain.ExpenseStatus(m.Status),
		Beneficiary: domain.Beneficiary{
			Type:           benType,
			DocumentNumber: m.BeneficiaryDocument,
			Name:           m.BeneficiaryName,
		},
		ApprovedBy:   m.ApprovedBy,
		ApprovedAt:   m.ApprovedAt,
		RejectedBy:   m.RejectedBy,
		RejectedAt:   m.RejectedAt,
		RejectReason: m.RejectReason,
		PaidBy:       m.PaidBy,
		PaidAt:       m.PaidAt,
		PaymentMeth:  m.PaymentMeth,
		AnnulledBy:   m.AnnulledBy,
		AnnulledAt:   m.AnnulledAt,
		AnnulReason:  m.AnnulReason,
		Version:      m.Version,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to a slice of domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}
