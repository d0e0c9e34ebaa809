package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gastosapp/gastos_backend/internal/apperrors"
	"github.com/gastosapp/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastosapp/gastos_backend/internal/core/ports/repositories"
	portssvc "github.com/gastosapp/gastos_backend/internal/core/ports/services"
	"github.com/gastosapp/gastos_backend/internal/dto"
	"github.com/gastosapp/gastos_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type costCenterService struct {
	costCenterRepo portsrepo.CostCenterRepositoryFacade
	userRepo       portsrepo.UserRepositoryFacade
	cache          portssvc.ReportCache
}

func NewCostCenterService(
	costCenterRepo portsrepo.CostCenterRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	cache portssvc.ReportCache,
) portssvc.CostCenterSvcFacade {
	return &costCenterService{
		costCenterRepo: costCenterRepo,
		userRepo:       userRepo,
		cache:          cache,
	}
}

func (s *costCenterService) requireCatalogManager(ctx context.Context, userID string) error {
	actor, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load acting user %s: %w", userID, err)
	}
	if !domain.CanManageCatalogs(actor.Roles) {
		return fmt.Errorf("%w: insufficient role to manage cost centers", apperrors.ErrForbidden)
	}
	return nil
}

func (s *costCenterService) CreateCostCenter(ctx context.Context, req dto.CreateCostCenterRequest, creatorUserID string) (*domain.CostCenter, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireCatalogManager(ctx, creatorUserID); err != nil {
		return nil, err
	}
	if req.PresupuestoAsignado.LessThan(decimal.Zero) {
		vErr := &apperrors.ValidationError{}
		vErr.Add("presupuesto_asignado", "cannot be negative")
		return nil, vErr
	}

	now := time.Now()
	costCenter := domain.CostCenter{
		CostCenterID:         uuid.NewString(),
		CompanyID:            req.CompanyID,
		Code:                 strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:                 strings.TrimSpace(req.Name),
		PresupuestoAsignado:  req.PresupuestoAsignado,
		PresupuestoConsumido: decimal.Zero,
		IsActive:             true,
		AuditFields:          domain.NewAuditFields(creatorUserID, now),
	}
	if err := s.costCenterRepo.SaveCostCenter(ctx, costCenter); err != nil {
		return nil, fmt.Errorf("failed to save cost center: %w", err)
	}

	s.cache.InvalidateCompany(ctx, costCenter.CompanyID)
	logger.Info("cost center created", "costCenterID", costCenter.CostCenterID, "code", costCenter.Code)
	return &costCenter, nil
}

func (s *costCenterService) GetCostCenterByID(ctx context.Context, costCenterID string) (*domain.CostCenter, error) {
	return s.costCenterRepo.FindCostCenterByID(ctx, costCenterID)
}

func (s *costCenterService) ListCostCenters(ctx context.Context, companyID string) ([]domain.CostCenter, error) {
	return s.costCenterRepo.ListCostCenters(ctx, companyID)
}

// UpdateCostCenter changes name, active flag or the assigned budget. The
// assigned budget can never drop below what approved expenses have already
// consumed.
func (s *costCenterService) UpdateCostCenter(ctx context.Context, costCenterID string, req dto.UpdateCostCenterRequest, actorUserID string) (*domain.CostCenter, error) {
	if err := s.requireCatalogManager(ctx, actorUserID); err != nil {
		return nil, err
	}
	costCenter, err := s.costCenterRepo.FindCostCenterByID(ctx, costCenterID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		costCenter.Name = strings.TrimSpace(*req.Name)
	}
	if req.PresupuestoAsignado != nil {
		if !costCenter.CanSetBudget(*req.PresupuestoAsignado) {
			vErr := &apperrors.ValidationError{}
			vErr.Add("presupuesto_asignado", fmt.Sprintf("cannot be less than consumed %s", costCenter.PresupuestoConsumido.String()))
			return nil, vErr
		}
		costCenter.PresupuestoAsignado = *req.PresupuestoAsignado
	}
	if req.IsActive != nil {
		costCenter.IsActive = *req.IsActive
	}
	costCenter.Touch(actorUserID, time.Now())

	if err := s.costCenterRepo.UpdateCostCenter(ctx, *costCenter); err != nil {
		return nil, err
	}

	s.cache.InvalidateCompany(ctx, costCenter.CompanyID)
	return costCenter, nil
}
