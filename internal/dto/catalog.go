package dto

import (
	"time"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Companies & branches ---

type CreateCompanyRequest struct {
	RUC  string `json:"ruc" binding:"required,len=11"`
	Name string `json:"name" binding:"required"`
}

type UpdateCompanyRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`
}

type CompanyResponse struct {
	CompanyID string    `json:"companyID"`
	RUC       string    `json:"ruc"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID: c.CompanyID,
		RUC:       c.RUC,
		Name:      c.Name,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
}

type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

type BranchResponse struct {
	BranchID  string `json:"branchID"`
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	IsActive  bool   `json:"isActive"`
}

func ToBranchResponse(b *domain.Branch) BranchResponse {
	return BranchResponse{
		BranchID:  b.BranchID,
		CompanyID: b.CompanyID,
		Name:      b.Name,
		Address:   b.Address,
		IsActive:  b.IsActive,
	}
}

// --- Cost centers ---

type CreateCostCenterRequest struct {
	CompanyID           string          `json:"companyID" binding:"required"`
	Code                string          `json:"code" binding:"required"`
	Name                string          `json:"name" binding:"required"`
	PresupuestoAsignado decimal.Decimal `json:"presupuestoAsignado" binding:"required"`
}

type UpdateCostCenterRequest struct {
	Name                *string          `json:"name"`
	PresupuestoAsignado *decimal.Decimal `json:"presupuestoAsignado"`
	IsActive            *bool            `json:"isActive"`
}

type CostCenterResponse struct {
	CostCenterID         string          `json:"costCenterID"`
	CompanyID            string          `json:"companyID"`
	Code                 string          `json:"code"`
	Name                 string          `json:"name"`
	PresupuestoAsignado  decimal.Decimal `json:"presupuestoAsignado"`
	PresupuestoConsumido decimal.Decimal `json:"presupuestoConsumido"`
	Disponible           decimal.Decimal `json:"disponible"`
	IsActive             bool            `json:"isActive"`
}

func ToCostCenterResponse(cc *domain.CostCenter) CostCenterResponse {
	return CostCenterResponse{
		CostCenterID:         cc.CostCenterID,
		CompanyID:            cc.CompanyID,
		Code:                 cc.Code,
		Name:                 cc.Name,
		PresupuestoAsignado:  cc.PresupuestoAsignado,
		PresupuestoConsumido: cc.PresupuestoConsumido,
		Disponible:           cc.Disponible(),
		IsActive:             cc.IsActive,
	}
}

// --- Expense concepts & document requirements ---

type RequirementRequest struct {
	Name         string              `json:"name" binding:"required"`
	DocumentType domain.DocumentType `json:"documentType" binding:"required,oneof=FACTURA BOLETA RECIBO TICKET DECLARACION_JURADA OTRO"`
	Mandatory    bool                `json:"mandatory"`
}

type CreateConceptRequest struct {
	CompanyID         string               `json:"companyID" binding:"required"`
	Name              string               `json:"name" binding:"required"`
	Description       string               `json:"description"`
	RequiresApproval  bool                 `json:"requiresApproval"`
	ApprovalThreshold *decimal.Decimal     `json:"approvalThreshold"`
	EnforceDocuments  bool                 `json:"enforceDocuments"`
	Requirements      []RequirementRequest `json:"requirements"`
}

type UpdateConceptRequest struct {
	Name              *string              `json:"name"`
	Description       *string              `json:"description"`
	RequiresApproval  *bool                `json:"requiresApproval"`
	ApprovalThreshold *decimal.Decimal     `json:"approvalThreshold"`
	EnforceDocuments  *bool                `json:"enforceDocuments"`
	IsActive          *bool                `json:"isActive"`
	Requirements      []RequirementRequest `json:"requirements"`
}

type ConceptResponse struct {
	ConceptID         string           `json:"conceptID"`
	CompanyID         string           `json:"companyID"`
	Name              string           `json:"name"`
	Description       string           `json:"description,omitempty"`
	RequiresApproval  bool             `json:"requiresApproval"`
	ApprovalThreshold *decimal.Decimal `json:"approvalThreshold,omitempty"`
	EnforceDocuments  bool             `json:"enforceDocuments"`
	IsActive          bool             `json:"isActive"`
}

func ToConceptResponse(c *domain.ExpenseConcept) ConceptResponse {
	return ConceptResponse{
		ConceptID:         c.ConceptID,
		CompanyID:         c.CompanyID,
		Name:              c.Name,
		Description:       c.Description,
		RequiresApproval:  c.RequiresApproval,
		ApprovalThreshold: c.ApprovalThreshold,
		EnforceDocuments:  c.EnforceDocuments,
		IsActive:          c.IsActive,
	}
}

type RequirementResponse struct {
	RequirementID string              `json:"requirementID"`
	Name          string              `json:"name"`
	DocumentType  domain.DocumentType `json:"documentType"`
	Mandatory     bool                `json:"mandatory"`
	Position      int                 `json:"position"`
}

func ToRequirementResponses(reqs []domain.DocumentRequirement) []RequirementResponse {
	res := make([]RequirementResponse, len(reqs))
	for i, r := range reqs {
		res[i] = RequirementResponse{
			RequirementID: r.RequirementID,
			Name:          r.Name,
			DocumentType:  r.DocumentType,
			Mandatory:     r.Mandatory,
			Position:      r.Position,
		}
	}
	return res
}
