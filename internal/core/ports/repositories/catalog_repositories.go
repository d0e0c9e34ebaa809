package repositories

import (
	"context"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
)

// CompanyRepositoryFacade is the persistence boundary for companies and branches.
type CompanyRepositoryFacade interface {
	SaveCompany(ctx context.Context, company domain.Company) error
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
	UpdateCompany(ctx context.Context, company domain.Company) error
	SaveBranch(ctx context.Context, branch domain.Branch) error
	FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)
	ListBranches(ctx context.Context, companyID string) ([]domain.Branch, error)
}

// CostCenterRepositoryFacade is the persistence boundary for cost centers.
type CostCenterRepositoryFacade interface {
	SaveCostCenter(ctx context.Context, costCenter domain.CostCenter) error
	FindCostCenterByID(ctx context.Context, costCenterID string) (*domain.CostCenter, error)
	ListCostCenters(ctx context.Context, companyID string) ([]domain.CostCenter, error)
	UpdateCostCenter(ctx context.Context, costCenter domain.CostCenter) error
}

// ConceptRepositoryFacade is the persistence boundary for expense concepts
// and their document-requirement checklists.
type ConceptRepositoryFacade interface {
	SaveConcept(ctx context.Context, concept domain.ExpenseConcept) error
	FindConceptByID(ctx context.Context, conceptID string) (*domain.ExpenseConcept, error)
	ListConcepts(ctx context.Context, companyID string) ([]domain.ExpenseConcept, error)
	UpdateConcept(ctx context.Context, concept domain.ExpenseConcept) error
	ListRequirements(ctx context.Context, conceptID string) ([]domain.DocumentRequirement, error)
	ReplaceRequirements(ctx context.Context, conceptID string, requirements []domain.DocumentRequirement) error
}

// CurrencyRepositoryFacade is the persistence boundary for currencies.
type CurrencyRepositoryFacade interface {
	SaveCurrency(ctx context.Context, currency domain.Currency) error
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// DocumentRepositoryFacade is the persistence boundary for expense documents.
type DocumentRepositoryFacade interface {
	SaveDocument(ctx context.Context, doc domain.ExpenseDocument) error
	ListDocumentsByExpense(ctx context.Context, expenseID string) ([]domain.ExpenseDocument, error)
	AttachedTypes(ctx context.Context, expenseID string) (map[domain.DocumentType]struct{}, error)
}
