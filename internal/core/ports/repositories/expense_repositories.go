package repositories

import (
	"context"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetDelta is the cost-center consumption change that must be applied in
// the same transaction as an expense status write. A positive amount
// consumes budget, a negative one releases it.
type BudgetDelta struct {
	CostCenterID string
	Amount       decimal.Decimal
}

// ListExpensesFilter narrows expense list queries.
type ListExpensesFilter struct {
	CompanyID    string
	Status       *domain.ExpenseStatus
	ConceptID    *string
	CostCenterID *string
	FundID       *string
	CreatedBy    *string
	Limit        int
	NextToken    *string
}

// ExpenseRepositoryFacade is the persistence boundary for expenses.
//
// UpdateExpenseWithBudget applies the expense row update and the cost-center
// consumption delta in one database transaction; both succeed or both roll
// back. expectedVersion is the optimistic-concurrency token: a mismatch
// returns apperrors.ErrVersionConflict.
type ExpenseRepositoryFacade interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	FindExpensesByIDs(ctx context.Context, expenseIDs []string) (map[string]domain.Expense, error)
	ListExpenses(ctx context.Context, filter ListExpensesFilter) ([]domain.Expense, *string, error)
	UpdateExpense(ctx context.Context, expense domain.Expense, expectedVersion int64) error
	UpdateExpenseWithBudget(ctx context.Context, expense domain.Expense, expectedVersion int64, delta *BudgetDelta) error
	DeleteExpense(ctx context.Context, expenseID string) error
	NextExpenseCode(ctx context.Context, companyID string) (string, error)
}
