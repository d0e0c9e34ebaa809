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
	"github.com/google/uuid"
)

type companyService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
}

func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{
		companyRepo: companyRepo,
		userRepo:    userRepo,
	}
}

func (s *companyService) requireCatalogManager(ctx context.Context, userID string) error {
	actor, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load acting user %s: %w", userID, err)
	}
	if !domain.CanManageCatalogs(actor.Roles) {
		return fmt.Errorf("%w: insufficient role to manage companies", apperrors.ErrForbidden)
	}
	return nil
}

func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	if err := s.requireCatalogManager(ctx, creatorUserID); err != nil {
		return nil, err
	}

	now := time.Now()
	company := domain.Company{
		CompanyID:   uuid.NewString(),
		RUC:         strings.TrimSpace(req.RUC),
		Name:        strings.TrimSpace(req.Name),
		IsActive:    true,
		AuditFields: domain.NewAuditFields(creatorUserID, now),
	}
	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to save company: %w", err)
	}
	return &company, nil
}

func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	return s.companyRepo.FindCompanyByID(ctx, companyID)
}

func (s *companyService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	return s.companyRepo.ListCompanies(ctx)
}

func (s *companyService) UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, actorUserID string) (*domain.Company, error) {
	if err := s.requireCatalogManager(ctx, actorUserID); err != nil {
		return nil, err
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		company.Name = strings.TrimSpace(*req.Name)
	}
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}
	company.Touch(actorUserID, time.Now())

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) CreateBranch(ctx context.Context, companyID string, req dto.CreateBranchRequest, creatorUserID string) (*domain.Branch, error) {
	if err := s.requireCatalogManager(ctx, creatorUserID); err != nil {
		return nil, err
	}
	if _, err := s.companyRepo.FindCompanyByID(ctx, companyID); err != nil {
		return nil, err
	}

	now := time.Now()
	branch := domain.Branch{
		BranchID:    uuid.NewString(),
		CompanyID:   companyID,
		Name:        strings.TrimSpace(req.Name),
		Address:     strings.TrimSpace(req.Address),
		IsActive:    true,
		AuditFields: domain.NewAuditFields(creatorUserID, now),
	}
	if err := s.companyRepo.SaveBranch(ctx, branch); err != nil {
		return nil, fmt.Errorf("failed to save branch: %w", err)
	}
	return &branch, nil
}

func (s *companyService) ListBranches(ctx context.Context, companyID string) ([]domain.Branch, error) {
	return s.companyRepo.ListBranches(ctx, companyID)
}
