package models

import "github.com/shopspring/decimal"

// ExpenseConcept is the DB shape of an expense_concepts row.
type ExpenseConcept struct {
	ConceptID         string           `db:"concept_id"`
	CompanyID         string           `db:"company_id"`
	Name              string           `db:"name"`
	Description       string           `db:"description"`
	RequiresApproval  bool             `db:"requires_approval"`
	ApprovalThreshold *decimal.Decimal `db:"approval_threshold"`
	EnforceDocuments  bool             `db:"enforce_documents"`
	IsActive          bool             `db:"is_active"`
	AuditFields
}

// DocumentRequirement is the DB shape of a concept_requirements row.
type DocumentRequirement struct {
	RequirementID string `db:"requirement_id"`
	ConceptID     string `db:"concept_id"`
	Name          string `db:"name"`
	DocumentType  string `db:"document_type"`
	Mandatory     bool   `db:"mandatory"`
	Position      int    `db:"position"`
}
