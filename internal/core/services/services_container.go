package services

import (
	portsrepo "github.com/gastosapp/gastos_backend/internal/core/ports/repositories"
	portssvc "github.com/gastosapp/gastos_backend/internal/core/ports/services"
	"github.com/gastosapp/gastos_backend/internal/platform/config"
)

// NewServiceContainer wires every service with its repositories, the report
// cache and the evidence store/OCR clients.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	cache portssvc.ReportCache,
	store portssvc.FileStore,
	ocr portssvc.OCRClient,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Company = NewCompanyService(repos.CompanyRepo, repos.UserRepo)
	container.CostCenter = NewCostCenterService(repos.CostCenterRepo, repos.UserRepo, cache)
	container.Concept = NewConceptService(repos.ConceptRepo, repos.UserRepo)
	container.Currency = NewCurrencyService(repos.CurrencyRepo, repos.UserRepo)
	container.User = NewUserService(repos.UserRepo, repos.CompanyRepo)

	container.Expense = NewExpenseService(
		repos.ExpenseRepo,
		repos.ConceptRepo,
		repos.CostCenterRepo,
		repos.DocumentRepo,
		repos.UserRepo,
		cache,
	)
	container.Fund = NewFundService(repos.FundRepo, repos.ExpenseRepo, repos.UserRepo, cache)
	container.Reporting = NewReportingService(repos.ReportingRepo, cache)
	container.Document = NewDocumentService(repos.DocumentRepo, repos.ExpenseRepo, repos.UserRepo, store, ocr)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.ExpenseSvcFacade    = (*expenseService)(nil)
	_ portssvc.FundSvcFacade       = (*fundService)(nil)
	_ portssvc.CostCenterSvcFacade = (*costCenterService)(nil)
	_ portssvc.ConceptSvcFacade    = (*conceptService)(nil)
	_ portssvc.CompanySvcFacade    = (*companyService)(nil)
	_ portssvc.UserSvcFacade       = (*userService)(nil)
	_ portssvc.CurrencySvcFacade   = (*currencyService)(nil)
	_ portssvc.ReportingSvcFacade  = (*reportingService)(nil)
	_ portssvc.DocumentSvcFacade   = (*documentService)(nil)
)
