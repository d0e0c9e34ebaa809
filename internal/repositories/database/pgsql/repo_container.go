package pgsql

import (
	portsrepo "github.com/gastosapp/gastos_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CompanyRepo:    newPgxCompanyRepository(dbPool),
		CostCenterRepo: newPgxCostCenterRepository(dbPool),
		ConceptRepo:    newPgxConceptRepository(dbPool),
		ExpenseRepo:    newPgxExpenseRepository(dbPool),
		FundRepo:       newPgxFundRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
		CurrencyRepo:   newPgxCurrencyRepository(dbPool),
		DocumentRepo:   newPgxDocumentRepository(dbPool),
		ReportingRepo:  newReportingRepository(dbPool),
	}
}
