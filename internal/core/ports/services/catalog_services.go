package services

import (
	"context"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
	"github.com/gastosapp/gastos_backend/internal/dto"
)

// CompanySvcFacade manages companies and branches.
type CompanySvcFacade interface {
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error)
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
	UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, actorUserID string) (*domain.Company, error)
	CreateBranch(ctx context.Context, companyID string, req dto.CreateBranchRequest, creatorUserID string) (*domain.Branch, error)
	ListBranches(ctx context.Context, companyID string) ([]domain.Branch, error)
}

// CostCenterSvcFacade manages cost centers and enforces the budget floor
// invariant (asignado never below consumido).
type CostCenterSvcFacade interface {
	CreateCostCenter(ctx context.Context, req dto.CreateCostCenterRequest, creatorUserID string) (*domain.CostCenter, error)
	GetCostCenterByID(ctx context.Context, costCenterID string) (*domain.CostCenter, error)
	ListCostCenters(ctx context.Context, companyID string) ([]domain.CostCenter, error)
	UpdateCostCenter(ctx context.Context, costCenterID string, req dto.UpdateCostCenterRequest, actorUserID string) (*domain.CostCenter, error)
}

// ConceptSvcFacade manages expense concepts and their document checklists.
type ConceptSvcFacade interface {
	CreateConcept(ctx context.Context, req dto.CreateConceptRequest, creatorUserID string) (*domain.ExpenseConcept, error)
	GetConceptByID(ctx context.Context, conceptID string) (*domain.ExpenseConcept, error)
	ListConcepts(ctx context.Context, companyID string) ([]domain.ExpenseConcept, error)
	UpdateConcept(ctx context.Context, conceptID string, req dto.UpdateConceptRequest, actorUserID string) (*domain.ExpenseConcept, error)
	ListRequired(ctx context.Context, conceptID string) ([]domain.DocumentRequirement, error)
	IsComplete(ctx context.Context, conceptID string, attached map[domain.DocumentType]struct{}) (bool, []domain.DocumentType, error)
}

// CurrencySvcFacade manages the currency catalog.
type CurrencySvcFacade interface {
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
