package services

import (
	"context"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
	"github.com/gastosapp/gastos_backend/internal/dto"
)

// ExpenseSvcFacade drives the expense lifecycle. Every transition consults
// the approval policy for the actor's server-side role set and validates the
// move against the status machine before persisting.
type ExpenseSvcFacade interface {
	CreateDraft(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error)
	GetExpenseByID(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, params dto.ListExpensesParams, requestingUserID string) (*dto.ListExpensesResponse, error)
	UpdateDraft(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, actorUserID string) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string, actorUserID string) error

	Submit(ctx context.Context, expenseID string, actorUserID string) (*dto.SubmitExpenseResult, error)
	Approve(ctx context.Context, expenseID string, actorUserID string, observations string) (*domain.Expense, error)
	Reject(ctx context.Context, expenseID string, actorUserID string, motivo string) (*domain.Expense, error)
	MarkPaid(ctx context.Context, expenseID string, actorUserID string, metodoPago string) (*domain.Expense, error)
	Annul(ctx context.Context, expenseID string, actorUserID string, motivo string) (*domain.Expense, error)
}
