package domain

import "github.com/shopspring/decimal"

// DocumentType classifies a supporting document attached to an expense.
type DocumentType string

const (
	DocFactura     DocumentType = "FACTURA"
	DocBoleta      DocumentType = "BOLETA"
	DocRecibo      DocumentType = "RECIBO"
	DocTicket      DocumentType = "TICKET"
	DocDeclaracion DocumentType = "DECLARACION_JURADA"
	DocOtro        DocumentType = "OTRO"
)

// ExpenseConcept configures a category of expenses: whether it demands
// approval, its spending threshold and its document checklist.
type ExpenseConcept struct {
	ConceptID         string           `json:"conceptID"` // Primary Key (UUID)
	CompanyID         string           `json:"companyID"`
	Name              string           `json:"name"`
	Description       string           `json:"description,omitempty"`
	RequiresApproval  bool             `json:"requiresApproval"`
	ApprovalThreshold *decimal.Decimal `json:"approvalThreshold,omitempty"` // Base currency; amounts above it force approval
	EnforceDocuments  bool             `json:"enforceDocuments"`            // Hard-gate submission on the mandatory checklist
	IsActive          bool             `json:"isActive"`
	AuditFields
}

// NeedsApproval decides whether an expense of the given base-normalized
// amount must go through the PENDIENTE state for this concept.
func (c *ExpenseConcept) NeedsApproval(normalizedAmount decimal.Decimal) bool {
	if c.RequiresApproval {
		return true
	}
	if c.ApprovalThreshold != nil && normalizedAmount.GreaterThan(*c.ApprovalThreshold) {
		return true
	}
	return false
}

// DocumentRequirement is one entry of a concept's ordered checklist.
type DocumentRequirement struct {
	RequirementID string       `json:"requirementID"`
	ConceptID     string       `json:"conceptID"`
	Name          string       `json:"name"`
	DocumentType  DocumentType `json:"documentType"`
	Mandatory     bool         `json:"mandatory"`
	Position      int          `json:"position"` // Checklist order
}

// MissingMandatoryTypes returns the document types of mandatory requirements
// not covered by the attached set, preserving checklist order.
func MissingMandatoryTypes(requirements []DocumentRequirement, attached map[DocumentType]struct{}) []DocumentType {
	var missing []DocumentType
	for _, req := range requirements {
		if !req.Mandatory {
			continue
		}
		if _, ok := attached[req.DocumentType]; !ok {
			missing = append(missing, req.DocumentType)
		}
	}
	return missing
}

// IsChecklistComplete reports whether every mandatory requirement has a
// matching attached document type.
func IsChecklistComplete(requirements []DocumentRequirement, attached map[DocumentType]struct{}) bool {
	return len(MissingMandatoryTypes(requirements, attached)) == 0
}
