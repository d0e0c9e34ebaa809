package services

import (
	"context"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
	"github.com/gastosapp/gastos_backend/internal/dto"
)

// FundSvcFacade drives fund assignments and their rendición reconciliation.
type FundSvcFacade interface {
	CreateAssignment(ctx context.Context, req dto.CreateFundRequest, creatorUserID string) (*domain.FundAssignment, error)
	GetFundByID(ctx context.Context, fundID string, requestingUserID string) (*dto.FundDetail, error)
	ListFunds(ctx context.Context, params dto.ListFundsParams, requestingUserID string) (*dto.ListFundsResponse, error)

	MarkForRendering(ctx context.Context, fundID string, actorUserID string) (*domain.FundAssignment, error)
	Render(ctx context.Context, fundID string, req dto.RenderFundRequest, actorUserID string) (*dto.FundDetail, error)
	Annul(ctx context.Context, fundID string, actorUserID string, motivo string) (*domain.FundAssignment, error)
}
