package mapping

import (
	"github.com/gastosapp/gastos_backend/internal/core/domain"
	"github.com/gastosapp/gastos_backend/internal/models"
)

// ToModelExpenseConcept converts a domain ExpenseConcept to a model ExpenseConcept
func ToModelExpenseConcept(d domain.ExpenseConcept) models.ExpenseConcept {
	return models.ExpenseConcept{
		ConceptID:         d.ConceptID,
		CompanyID:         d.CompanyID,
		Name:              d.Name,
		Description:       d.Description,
		RequiresApproval:  d.RequiresApproval,
		ApprovalThreshold: d.ApprovalThreshold,
		EnforceDocuments:  d.EnforceDocuments,
		IsActive:          d.IsActive,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpenseConcept converts a model ExpenseConcept to a domain ExpenseConcept
func ToDomainExpenseConcept(m models.ExpenseConcept) domain.ExpenseConcept {
	return domain.ExpenseConcept{
		ConceptID:         m.ConceptID,
		CompanyID:         m.CompanyID,
		Name:              m.Name,
		Description:       m.Description,
		RequiresApproval:  m.RequiresApproval,
		ApprovalThreshold: m.ApprovalThreshold,
		EnforceDocuments:  m.EnforceDocuments,
		IsActive:          m.IsActive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseConceptSlice converts a slice of model ExpenseConcepts to domain ExpenseConcepts
func ToDomainExpenseConceptSlice(ms []models.ExpenseConcept) []domain.ExpenseConcept {
	ds := make([]domain.ExpenseConcept, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpenseConcept(m)
	}
	return ds
}

// ToModelDocumentRequirement converts a domain DocumentRequirement to a model DocumentRequirement
func ToModelDocumentRequirement(d domain.DocumentRequirement) models.DocumentRequirement {
	return models.DocumentRequirement{
		RequirementID: d.RequirementID,
		ConceptID:     d.ConceptID,
		Name:          d.Name,
		DocumentType:  string(d.DocumentType),
		Mandatory:     d.Mandatory,
		Position:      d.Position,
	}
}

// ToDomainDocumentRequirement converts a model DocumentRequirement to a domain DocumentRequirement
func ToDomainDocumentRequirement(m models.DocumentRequirement) domain.DocumentRequirement {
	return domain.DocumentRequirement{
		RequirementID: m.RequirementID,
		ConceptID:     m.ConceptID,
		Name:          m.Name,
		DocumentType:  domain.DocumentType(m.DocumentType),
		Mandatory:     m.Mandatory,
		Position:      m.Position,
	}
}

// ToDomainDocumentRequirementSlice converts a slice of model DocumentRequirements to domain DocumentRequirements
func ToDomainDocumentRequirementSlice(ms []models.DocumentRequirement) []domain.DocumentRequirement {
	ds := make([]domain.DocumentRequirement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDocumentRequirement(m)
	}
	return ds
}
