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

type fundService struct {
	fundRepo    portsrepo.FundRepositoryFacade
	expenseRepo portsrepo.ExpenseRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	cache       portssvc.ReportCache
}

func NewFundService(
	fundRepo portsrepo.FundRepositoryFacade,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	cache portssvc.ReportCache,
) portssvc.FundSvcFacade {
	return &fundService{
		fundRepo:    fundRepo,
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
		cache:       cache,
	}
}

func (s *fundService) loadActor(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load acting user %s: %w", userID, err)
	}
	return user, nil
}

func (s *fundService) CreateAssignment(ctx context.Context, req dto.CreateFundRequest, actorUserID string) (*domain.FundAssignment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.loadActor(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	roles := actor.Roles
	if !domain.CanAssignFunds(roles) {
		return nil, fmt.Errorf("%w: insufficient role to assign funds", apperrors.ErrForbidden)
	}

	vErr := &apperrors.ValidationError{}
	if req.MontoAsignado.LessThanOrEqual(decimal.Zero) {
		vErr.Add("monto_asignado", "must be greater than zero")
	}
	responsible, err := s.userRepo.FindUserByID(ctx, req.ResponsibleID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("failed to load responsible user %s: %w", req.ResponsibleID, err)
		}
		vErr.Add("responsable_id", "does not exist")
	} else if responsible.CompanyID != actor.CompanyID {
		vErr.Add("responsable_id", "belongs to another company")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	code, err := s.fundRepo.NextFundCode(ctx, actor.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate fund code: %w", err)
	}

	now := time.Now()
	fund := domain.FundAssignment{
		FundID:         uuid.NewString(),
		Code:           code,
		CompanyID:      actor.CompanyID,
		BranchID:       req.BranchID,
		ResponsibleID:  req.ResponsibleID,
		CurrencyCode:   domain.BaseCurrencyCode,
		MontoAsignado:  req.MontoAsignado,
		MontoRendido:   decimal.Zero,
		SaldoPendiente: req.MontoAsignado,
		Status:         domain.FundAsignado,
		Observations:   strings.TrimSpace(req.Observations),
		Version:        1,
		AuditFields:    domain.NewAuditFields(actorUserID, now),
	}

	if err := s.fundRepo.SaveFund(ctx, fund); err != nil {
		return nil, fmt.Errorf("failed to save fund assignment: %w", err)
	}

	s.cache.InvalidateCompany(ctx, actor.CompanyID)
	logger.Info("fund assigned", "fundID", fund.FundID, "code", fund.Code, "responsibleID", fund.ResponsibleID)

	return &fund, nil
}

func (s *fundService) GetFundByID(ctx context.Context, fundID string, userID string) (*dto.FundDetail, error) {
	actor, err := s.loadActor(ctx, userID)
	if err != nil {
		return nil, err
	}
	fund, err := s.fundRepo.FindFundByID(ctx, fundID)
	if err != nil {
		return nil, err
	}
	if fund.CompanyID != actor.CompanyID {
		return nil, fmt.Errorf("%w: fund belongs to another company", apperrors.ErrForbidden)
	}
	items, err := s.fundRepo.ListRenditionItems(ctx, fundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rendition items: %w", err)
	}
	return &dto.FundDetail{
		Fund:  dto.ToFundResponse(*fund),
		Items: dto.ToRenditionItemResponses(items),
	}, nil
}

func (s *fundService) ListFunds(ctx context.Context, params dto.ListFundsParams, userID string) (*dto.ListFundsResponse, error) {
	actor, err := s.loadActor(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter := portsrepo.ListFundsFilter{
		CompanyID: actor.CompanyID,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	if params.Status != nil {
		st := domain.FundStatus(*params.Status)
		if !st.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *params.Status)
		}
		filter.Status = &st
	}
	// Responsables without admin-level roles only see funds assigned to them.
	roles := actor.Roles
	if !roles.HasAny(domain.RoleResponsable, domain.RoleAdmin) {
		filter.ResponsibleID = &actor.UserID
	} else if params.ResponsibleID != nil {
		filter.ResponsibleID = params.ResponsibleID
	}

	funds, nextToken, err := s.fundRepo.ListFunds(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list funds: %w", err)
	}
	return &dto.ListFundsResponse{
		Items:     dto.ToFundResponses(funds),
		NextToken: nextToken,
	}, nil
}

func (s *fundService) MarkForRendering(ctx context.Context, fundID string, actorUserID string) (*domain.FundAssignment, error) {
	actor, err := s.loadActor(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	fund, err := s.fundRepo.FindFundByID(ctx, fundID)
	if err != nil {
		return nil, err
	}
	if fund.CompanyID != actor.CompanyID {
		return nil, fmt.Errorf("%w: fund belongs to another company", apperrors.ErrForbidden)
	}
	roles := actor.Roles
	if fund.ResponsibleID != actor.UserID && !roles.HasAny(domain.RoleResponsable, domain.RoleAdmin) {
		return nil, fmt.Errorf("%w: fund is assigned to another user", apperrors.ErrForbidden)
	}
	if !fund.Status.CanTransitionTo(domain.FundPorRendir) {
		return nil, fmt.Errorf("%w: cannot mark fund in status %s for rendering", apperrors.ErrInvalidTransition, fund.Status)
	}

	expectedVersion := fund.Version
	fund.Version++
	fund.Status = domain.FundPorRendir
	fund.Touch(actorUserID, time.Now())

	if err := s.fundRepo.UpdateFund(ctx, *fund, expectedVersion); err != nil {
		return nil, err
	}

	s.cache.InvalidateCompany(ctx, fund.CompanyID)

	return fund, nil
}

// Render reconciles a fund against a set of approved or paid expenses.
// Every selected expense is normalized to the base currency at its own
// exchange rate before being counted against the assigned amount. The fund
// and its rendition items are written atomically; the resulting balance may
// be negative when the responsible spent more than was assigned.
func (s *fundService) Render(ctx context.Context, fundID string, req dto.RenderFundRequest, actorUserID string) (*dto.FundDetail, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.loadActor(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	fund, err := s.fundRepo.FindFundByID(ctx, fundID)
	if err != nil {
		return nil, err
	}
	if fund.CompanyID != actor.CompanyID {
		return nil, fmt.Errorf("%w: fund belongs to another company", apperrors.ErrForbidden)
	}
	roles := actor.Roles
	if fund.ResponsibleID != actor.UserID && !roles.HasAny(domain.RoleResponsable, domain.RoleAdmin) {
		return nil, fmt.Errorf("%w: fund is assigned to another user", apperrors.ErrForbidden)
	}
	if !fund.Status.CanTransitionTo(domain.FundRendido) {
		return nil, fmt.Errorf("%w: cannot render fund in status %s", apperrors.ErrInvalidTransition, fund.Status)
	}
	if len(req.ExpenseIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one expense is required", apperrors.ErrEmptySelection)
	}

	seen := make(map[string]struct{}, len(req.ExpenseIDs))
	for _, id := range req.ExpenseIDs {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: expense %s selected more than once", apperrors.ErrValidation, id)
		}
		seen[id] = struct{}{}
	}

	expenses, err := s.expenseRepo.FindExpensesByIDs(ctx, req.ExpenseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load selected expenses: %w", err)
	}

	now := time.Now()
	total := decimal.Zero
	items := make([]domain.RenditionItem, 0, len(req.ExpenseIDs))
	for _, id := range req.ExpenseIDs {
		expense, ok := expenses[id]
		if !ok {
			return nil, fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, id)
		}
		if expense.CompanyID != fund.CompanyID {
			return nil, fmt.Errorf("%w: expense %s belongs to another company", apperrors.ErrForbidden, id)
		}
		if expense.FundID == nil || *expense.FundID != fund.FundID {
			return nil, fmt.Errorf("%w: expense %s is not linked to fund %s", apperrors.ErrForeignExpense, id, fund.FundID)
		}
		if !expense.Renderable() {
			return nil, fmt.Errorf("%w: expense %s in status %s cannot be rendered", apperrors.ErrInvalidTransition, id, expense.Status)
		}
		normalized, err := expense.NormalizedAmount()
		if err != nil {
			return nil, fmt.Errorf("%w: expense %s", err, id)
		}
		total = total.Add(normalized)
		items = append(items, domain.RenditionItem{
			FundID:           fund.FundID,
			ExpenseID:        expense.ExpenseID,
			ImporteRendido:   normalized,
			OriginalAmount:   expense.Amount,
			OriginalCurrency: expense.CurrencyCode,
			CreatedAt:        now,
		})
	}

	expectedVersion := fund.Version
	fund.Version++
	fund.Status = domain.FundRendido
	fund.MontoRendido = total
	fund.SaldoPendiente = fund.MontoAsignado.Sub(total)
	fund.RenderedAt = &now
	fund.RenderedBy = &actorUserID
	fund.Touch(actorUserID, now)

	if err := s.fundRepo.RenderFund(ctx, *fund, items, expectedVersion); err != nil {
		return nil, err
	}

	s.cache.InvalidateCompany(ctx, fund.CompanyID)
	logger.Info("fund rendered",
		"fundID", fund.FundID,
		"montoRendido", fund.MontoRendido.String(),
		"saldoPendiente", fund.SaldoPendiente.String(),
		"items", len(items),
	)

	return &dto.FundDetail{
		Fund:  dto.ToFundResponse(*fund),
		Items: dto.ToRenditionItemResponses(items),
	}, nil
}

func (s *fundService) Annul(ctx context.Context, fundID string, actorUserID string, motivo string) (*domain.FundAssignment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.loadActor(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	roles := actor.Roles
	if !domain.CanAssignFunds(roles) {
		return nil, fmt.Errorf("%w: insufficient role to annul funds", apperrors.ErrForbidden)
	}
	if strings.TrimSpace(motivo) == "" {
		vErr := &apperrors.ValidationError{}
		vErr.Add("motivo", "is required")
		return nil, vErr
	}
	fund, err := s.fundRepo.FindFundByID(ctx, fundID)
	if err != nil {
		return nil, err
	}
	if fund.CompanyID != actor.CompanyID {
		return nil, fmt.Errorf("%w: fund belongs to another company", apperrors.ErrForbidden)
	}
	if !fund.Status.CanTransitionTo(domain.FundAnulado) {
		return nil, fmt.Errorf("%w: cannot annul fund in status %s", apperrors.ErrInvalidTransition, fund.Status)
	}

	now := time.Now()
	expectedVersion := fund.Version
	fund.Version++
	fund.Status = domain.FundAnulado
	fund.AnnulledAt = &now
	motivo = strings.TrimSpace(motivo)
	fund.Observations = motivo
	fund.Touch(actorUserID, now)

	if err := s.fundRepo.UpdateFund(ctx, *fund, expectedVersion); err != nil {
		return nil, err
	}

	s.cache.InvalidateCompany(ctx, fund.CompanyID)
	logger.Info("fund annulled", "fundID", fund.FundID, "annulledBy", actorUserID)

	return fund, nil
}
