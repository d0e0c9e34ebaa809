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
	"github.com/shopspring/decimal"
)

type conceptService struct {
	conceptRepo portsrepo.ConceptRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
}

func NewConceptService(conceptRepo portsrepo.ConceptRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.ConceptSvcFacade {
	return &conceptService{
		conceptRepo: conceptRepo,
		userRepo:    userRepo,
	}
}

func (s *conceptService) requireCatalogManager(ctx context.Context, userID string) error {
	actor, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load acting user %s: %w", userID, err)
	}
	if !domain.CanManageCatalogs(actor.Roles) {
		return fmt.Errorf("%w: insufficient role to manage concepts", apperrors.ErrForbidden)
	}
	return nil
}

func buildRequirements(conceptID string, reqs []dto.RequirementRequest) []domain.DocumentRequirement {
	out := make([]domain.DocumentRequirement, len(reqs))
	for i, r := range reqs {
		out[i] = domain.DocumentRequirement{
			RequirementID: uuid.NewString(),
			ConceptID:     conceptID,
			Name:          strings.TrimSpace(r.Name),
			DocumentType:  r.DocumentType,
			Mandatory:     r.Mandatory,
			Position:      i,
		}
	}
	return out
}

func (s *conceptService) CreateConcept(ctx context.Context, req dto.CreateConceptRequest, creatorUserID string) (*domain.ExpenseConcept, error) {
	if err := s.requireCatalogManager(ctx, creatorUserID); err != nil {
		return nil, err
	}
	if req.ApprovalThreshold != nil && req.ApprovalThreshold.LessThan(decimal.Zero) {
		vErr := &apperrors.ValidationError{}
		vErr.Add("approval_threshold", "cannot be negative")
		return nil, vErr
	}

	now := time.Now()
	concept := domain.ExpenseConcept{
		ConceptID:         uuid.NewString(),
		CompanyID:         req.CompanyID,
		Name:              strings.TrimSpace(req.Name),
		Description:       strings.TrimSpace(req.Description),
		RequiresApproval:  req.RequiresApproval,
		ApprovalThreshold: req.ApprovalThreshold,
		EnforceDocuments:  req.EnforceDocuments,
		IsActive:          true,
		AuditFields:       domain.NewAuditFields(creatorUserID, now),
	}
	if err := s.conceptRepo.SaveConcept(ctx, concept); err != nil {
		return nil, fmt.Errorf("failed to save concept: %w", err)
	}
	if len(req.Requirements) > 0 {
		if err := s.conceptRepo.ReplaceRequirements(ctx, concept.ConceptID, buildRequirements(concept.ConceptID, req.Requirements)); err != nil {
			return nil, fmt.Errorf("failed to save document requirements: %w", err)
		}
	}
	return &concept, nil
}

func (s *conceptService) GetConceptByID(ctx context.Context, conceptID string) (*domain.ExpenseConcept, error) {
	return s.conceptRepo.FindConceptByID(ctx, conceptID)
}

func (s *conceptService) ListConcepts(ctx context.Context, companyID string) ([]domain.ExpenseConcept, error) {
	return s.conceptRepo.ListConcepts(ctx, companyID)
}

func (s *conceptService) UpdateConcept(ctx context.Context, conceptID string, req dto.UpdateConceptRequest, actorUserID string) (*domain.ExpenseConcept, error) {
	if err := s.requireCatalogManager(ctx, actorUserID); err != nil {
		return nil, err
	}
	concept, err := s.conceptRepo.FindConceptByID(ctx, conceptID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		concept.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		concept.Description = strings.TrimSpace(*req.Description)
	}
	if req.RequiresApproval != nil {
		concept.RequiresApproval = *req.RequiresApproval
	}
	if req.ApprovalThreshold != nil {
		if req.ApprovalThreshold.LessThan(decimal.Zero) {
			vErr := &apperrors.ValidationError{}
			vErr.Add("approval_threshold", "cannot be negative")
			return nil, vErr
		}
		concept.ApprovalThreshold = req.ApprovalThreshold
	}
	if req.EnforceDocuments != nil {
		concept.EnforceDocuments = *req.EnforceDocuments
	}
	if req.IsActive != nil {
		concept.IsActive = *req.IsActive
	}
	concept.Touch(actorUserID, time.Now())

	if err := s.conceptRepo.UpdateConcept(ctx, *concept); err != nil {
		return nil, err
	}
	if req.Requirements != nil {
		if err := s.conceptRepo.ReplaceRequirements(ctx, conceptID, buildRequirements(conceptID, req.Requirements)); err != nil {
			return nil, fmt.Errorf("failed to replace document requirements: %w", err)
		}
	}
	return concept, nil
}

func (s *conceptService) ListRequired(ctx context.Context, conceptID string) ([]domain.DocumentRequirement, error) {
	if _, err := s.conceptRepo.FindConceptByID(ctx, conceptID); err != nil {
		return nil, err
	}
	return s.conceptRepo.ListRequirements(ctx, conceptID)
}

// IsComplete evaluates a concept's checklist against the attached document
// types, returning the mandatory types still missing in checklist order.
func (s *conceptService) IsComplete(ctx context.Context, conceptID string, attached map[domain.DocumentType]struct{}) (bool, []domain.DocumentType, error) {
	reqs, err := s.ListRequired(ctx, conceptID)
	if err != nil {
		return false, nil, err
	}
	missing := domain.MissingMandatoryTypes(reqs, attached)
	return len(missing) == 0, missing, nil
}
