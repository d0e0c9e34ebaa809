package repositories

import (
	"context"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
)

// ListFundsFilter narrows fund assignment list queries.
type ListFundsFilter struct {
	CompanyID     string
	Status        *domain.FundStatus
	ResponsibleID *string
	Limit         int
	NextToken     *string
}

// FundRepositoryFacade is the persistence boundary for fund assignments.
//
// RenderFund persists the rendered assignment and its rendition items in one
// database transaction. expectedVersion works as in ExpenseRepositoryFacade.
type FundRepositoryFacade interface {
	SaveFund(ctx context.Context, fund domain.FundAssignment) error
	FindFundByID(ctx context.Context, fundID string) (*domain.FundAssignment, error)
	ListFunds(ctx context.Context, filter ListFundsFilter) ([]domain.FundAssignment, *string, error)
	UpdateFund(ctx context.Context, fund domain.FundAssignment, expectedVersion int64) error
	RenderFund(ctx context.Context, fund domain.FundAssignment, items []domain.RenditionItem, expectedVersion int64) error
	ListRenditionItems(ctx context.Context, fundID string) ([]domain.RenditionItem, error)
	NextFundCode(ctx context.Context, companyID string) (string, error)
}
