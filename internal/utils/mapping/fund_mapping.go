package mapping

import (
	"github.com/gastosapp/gastos_backend/internal/core/domain"
	"github.com/gastosapp/gastos_backend/internal/models"
)

// ToModelFundAssignment converts a domain FundAssignment to a model FundAssignment
func ToModelFundAssignment(d domain.FundAssignment) models.FundAssignment {
	return models.FundAssignment{
		FundID:         d.FundID,
		Code:           d.Code,
		CompanyID:      d.CompanyID,
		BranchID:       d.BranchID,
		ResponsibleID:  d.ResponsibleID,
		CurrencyCode:   d.CurrencyCode,
		MontoAsignado:  d.MontoAsignado,
		MontoRendido:   d.MontoRendido,
		SaldoPendiente: d.SaldoPendiente,
		Status:         string(d.Status),
		Observations:   d.Observations,
		RenderedAt:     d.RenderedAt,
		RenderedBy:     d.RenderedBy,
		AnnulledAt:     d.AnnulledAt,
		Version:        d.Version,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFundAssignment converts a model FundAssignment to a domain FundAssignment
func ToDomainFundAssignment(m models.FundAssignment) domain.FundAssignment {
	return domain.FundAssignment{
		FundID:         m.FundID,
		Code:           m.Code,
		CompanyID:      m.CompanyID,
		BranchID:       m.BranchID,
		ResponsibleID:  m.ResponsibleID,
		CurrencyCode:   m.CurrencyCode,
		MontoAsignado:  m.MontoAsignado,
		MontoRendido:   m.MontoRendido,
		SaldoPendiente: m.SaldoPendiente,
		Status:         domain.FundStatus(m.Status),
		Observations:   m.Observations,
		RenderedAt:     m.RenderedAt,
		RenderedBy:     m.RenderedBy,
		AnnulledAt:     m.AnnulledAt,
		Version:        m.Version,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFundAssignmentSlice converts a slice of model FundAssignments to domain FundAssignments
func ToDomainFundAssignmentSlice(ms []models.FundAssignment) []domain.FundAssignment {
	ds := make([]domain.FundAssignment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFundAssignment(m)
	}
	return ds
}

// ToModelRenditionItem converts a domain RenditionItem to a model RenditionItem
func ToModelRenditionItem(d domain.RenditionItem) models.RenditionItem {
	return models.RenditionItem{
		FundID:           d.FundID,
		ExpenseID:        d.ExpenseID,
		ImporteRendido:   d.ImporteRendido,
		OriginalAmount:   d.OriginalAmount,
		OriginalCurrency: d.OriginalCurrency,
		CreatedAt:        d.CreatedAt,
	}
}

// ToDomainRenditionItem converts a model RenditionItem to a domain RenditionItem
func ToDomainRenditionItem(m models.RenditionItem) domain.RenditionItem {
	return domain.RenditionItem{
		FundID:           m.FundID,
		ExpenseID:        m.ExpenseID,
		ImporteRendido:   m.ImporteRendido,
		OriginalAmount:   m.OriginalAmount,
		OriginalCurrency: m.OriginalCurrency,
		CreatedAt:        m.CreatedAt,
	}
}

// ToDomainRenditionItemSlice converts a slice of model RenditionItems to domain RenditionItems
func ToDomainRenditionItemSlice(ms []models.RenditionItem) []domain.RenditionItem {
	ds := make([]domain.RenditionItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRenditionItem(m)
	}
	return ds
}
