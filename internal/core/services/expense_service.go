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

type expenseService struct {
	expenseRepo    portsrepo.ExpenseRepositoryFacade
	conceptRepo    portsrepo.ConceptRepositoryFacade
	costCenterRepo portsrepo.CostCenterRepositoryFacade
	documentRepo   portsrepo.DocumentRepositoryFacade
	userRepo       portsrepo.UserRepositoryFacade
	cache          portssvc.ReportCache
}

func NewExpenseService(
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	conceptRepo portsrepo.ConceptRepositoryFacade,
	costCenterRepo portsrepo.CostCenterRepositoryFacade,
	documentRepo portsrepo.DocumentRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	cache portssvc.ReportCache,
) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo:    expenseRepo,
		conceptRepo:    conceptRepo,
		costCenterRepo: costCenterRepo,
		documentRepo:   documentRepo,
		userRepo:       userRepo,
		cache:          cache,
	}
}

func (s *expenseService) loadActor(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load acting user %s: %w", userID, err)
	}
	return user, nil
}

// actorMayTouch reports whether a pure collaborator may act on an expense
// they did not create. Users holding any higher role may act on any
// expense within their company.
func actorMayTouch(actor *domain.User, expense *domain.Expense) bool {
	roles := actor.Roles
	if roles.HasAny(domain.RoleAprobador, domain.RoleResponsable, domain.RoleAdmin) {
		return true
	}
	return expense.CreatedBy == actor.UserID
}

func (s *expenseService) CreateDraft(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.loadActor(ctx, creatorUserID)
	if err != nil {
		return nil, err
	}

	vErr := &apperrors.ValidationError{}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		vErr.Add("importe", "must be greater than zero")
	}
	if strings.TrimSpace(req.Glosa) == "" {
		vErr.Add("glosa", "is required")
	}
	if req.ExpenseDate.After(time.Now()) {
		vErr.Add("fecha", "cannot be in the future")
	}
	if req.CurrencyCode != domain.BaseCurrencyCode {
		if req.ExchangeRate == nil || req.ExchangeRate.LessThanOrEqual(decimal.Zero) {
			vErr.Add("tipo_cambio", fmt.Sprintf("is required for currency %s", req.CurrencyCode))
		}
	}

	concept, err := s.conceptRepo.FindConceptByID(ctx, req.ConceptID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("failed to load concept %s: %w", req.ConceptID, err)
		}
		vErr.Add("concepto_id", "does not exist")
	} else if !concept.IsActive {
		vErr.Add("concepto_id", "is inactive")
	}

	if req.CostCenterID != nil {
		cc, err := s.costCenterRepo.FindCostCenterByID(ctx, *req.CostCenterID)
		if err != nil {
			if !apperrors.IsNotFound(err) {
				return nil, fmt.Errorf("failed to load cost center %s: %w", *req.CostCenterID, err)
			}
			vErr.Add("centro_costo_id", "does not exist")
		} else if !cc.IsActive {
			vErr.Add("centro_costo_id", "is inactive")
		}
	}

	if vErr.HasErrors() {
		return nil, vErr
	}

	code, err := s.expenseRepo.NextExpenseCode(ctx, actor.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate expense code: %w", err)
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:    uuid.NewString(),
		Code:         code,
		CompanyID:    actor.CompanyID,
		BranchID:     actor.BranchID,
		Glosa:        strings.TrimSpace(req.Glosa),
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
		ExchangeRate: req.ExchangeRate,
		ExpenseDate:  req.ExpenseDate,
		ConceptID:    req.ConceptID,
		CostCenterID: req.CostCenterID,
		FundID:       req.FundID,
		Status:       domain.ExpenseDraft,
		Version:      1,
		AuditFields:  domain.NewAuditFields(creatorUserID, now),
	}
	if req.Beneficiary != nil {
		benType := req.Beneficiary.Type
		expense.Beneficiary = domain.Beneficiary{
			Type:           &benType,
			DocumentNumber: req.Beneficiary.DocumentNumber,
			Name:           strings.TrimSpace(req.Beneficiary.Name),
		}
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	s.cache.InvalidateCompany(ctx, actor.CompanyID)
	logger.Info("expense draft created", "expenseID", expense.ExpenseID, "code", expense.Code)

	return &expense, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string, userID string) (*domain.Expense, error) {
	actor, err := s.loadActor(ctx, userID)
	if err != nil {
		return nil, err
	}
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.CompanyID != actor.CompanyID {
		return nil, fmt.Errorf("%w: expense belongs to another company", apperrors.ErrForbidden)
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams, userID string) (*dto.ListExpensesResponse, error) {
	actor, err := s.loadActor(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter := portsrepo.ListExpensesFilter{
		CompanyID:    actor.CompanyID,
		ConceptID:    params.ConceptID,
		CostCenterID: params.CostCenterID,
		FundID:       params.FundID,
		Limit:        params.Limit,
		NextToken:    params.NextToken,
	}
	if params.Status != nil {
		st := domain.ExpenseStatus(*params.Status)
		if !st.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *params.Status)
		}
		filter.Status = &st
	}
	// Pure collaborators only see their own expenses.
	roles := actor.Roles
	if !roles.HasAny(domain.RoleAprobador, domain.RoleResponsable, domain.RoleAdmin) {
		filter.CreatedBy = &actor.UserID
	} else if params.CreatedBy != nil {
		filter.CreatedBy = params.CreatedBy
	}

	expenses, nextToken, err := s.expenseRepo.ListExpenses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return &dto.ListExpensesResponse{
		Expenses:  dto.ToExpenseResponses(expenses),
		NextToken: nextToken,
	}, nil
}

func (s *expenseService) UpdateDraft(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, userID string) (*domain.Expense, error) {
	actor, err := s.loadActor(ctx, userID)
	if err != nil {
		return nil, err
	}
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.CompanyID != actor.CompanyID || !actorMayTouch(actor, expense) {
		return nil, fmt.Errorf("%w: cannot edit this expense", apperrors.ErrForbidden)
	}
	if !expense.IsEditable() {
		return nil, fmt.Errorf("%w: expense in status %s cannot be edited", apperrors.ErrInvalidTransition, expense.Status)
	}

	vErr := &apperrors.ValidationError{}
	if req.Glosa != nil {
		if strings.TrimSpace(*req.Glosa) == "" {
			vErr.Add("glosa", "cannot be empty")
		} else {
			expense.Glosa = strings.TrimSpace(*req.Glosa)
		}
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			vErr.Add("importe", "must be greater than zero")
		} else {
			expense.Amount = *req.Amount
		}
	}
	if req.CurrencyCode != nil {
		expense.CurrencyCode = *req.CurrencyCode
	}
	if req.ExchangeRate != nil {
		if req.ExchangeRate.LessThanOrEqual(decimal.Zero) {
			vErr.Add("tipo_cambio", "must be greater than zero")
		} else {
			expense.ExchangeRate = req.ExchangeRate
		}
	}
	if req.ExpenseDate != nil {
		if req.ExpenseDate.After(time.Now()) {
			vErr.Add("fecha", "cannot be in the future")
		} else {
			expense.ExpenseDate = *req.ExpenseDate
		}
	}
	if req.ConceptID != nil {
		concept, err := s.conceptRepo.FindConceptByID(ctx, *req.ConceptID)
		if err != nil {
			if !apperrors.IsNotFound(err) {
				return nil, fmt.Errorf("failed to load concept %s: %w", *req.ConceptID, err)
			}
			vErr.Add("concepto_id", "does not exist")
		} else if !concept.IsActive {
			vErr.Add("concepto_id", "is inactive")
		} else {
			expense.ConceptID = *req.ConceptID
		}
	}
	if req.CostCenterID != nil {
		if *req.CostCenterID == "" {
			expense.CostCenterID = nil
		} else {
			cc, err := s.costCenterRepo.FindCostCenterByID(ctx, *req.CostCenterID)
			if err != nil {
				if !apperrors.IsNotFound(err) {
					return nil, fmt.Errorf("failed to load cost center %s: %w", *req.CostCenterID, err)
				}
				vErr.Add("centro_costo_id", "does not exist")
			} else if !cc.IsActive {
				vErr.Add("centro_costo_id", "is inactive")
			} else {
				expense.CostCenterID = req.CostCenterID
			}
		}
	}
	if req.FundID != nil {
		if *req.FundID == "" {
			expense.FundID = nil
		} else {
			expense.FundID = req.FundID
		}
	}
	if req.Beneficiary != nil {
		benType := req.Beneficiary.Type
		expense.Beneficiary = domain.Beneficiary{
			Type:           &benType,
			DocumentNumber: req.Beneficiary.DocumentNumber,
			Name:           strings.TrimSpace(req.Beneficiary.Name),
		}
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	expectedVersion := expense.Version
	expense.Version++
	expense.Touch(userID, time.Now())
	if err := s.expenseRepo.UpdateExpense(ctx, *expense, expectedVersion); err != nil {
		return nil, err
	}

	s.cache.InvalidateCompany(ctx, expense.CompanyID)

	return expense, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, expenseID string, userID string) error {
	actor, err := s.loadActor(ctx, userID)
	if err != nil {
		return err
	}
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.CompanyID != actor.CompanyID {
		return fmt.Errorf("%w: expense belongs to another company", apperrors.ErrForbidden)
	}
	roles := actor.Roles
	ownDraft := expense.CreatedBy == actor.UserID
	if !domain.CanDelete(roles) && !ownDraft {
		return fmt.Errorf("%w: insufficient role to delete expenses", apperrors.ErrForbidden)
	}
	if expense.Status != domain.ExpenseDraft {
		return fmt.Errorf("%w: only draft expenses may be deleted, status is %s", apperrors.ErrInvalidTransition, expense.Status)
	}
	if err := s.expenseRepo.DeleteExpense(ctx, expenseID); err != nil {
		return err
	}
	s.cache.InvalidateCompany(ctx, expense.CompanyID)
	return nil
}

// Submit moves a draft through the checklist and approval gate. Expenses
// under a concept that does not require approval (or whose amount is under
// the threshold) go straight to APROBADO, consuming budget when a cost
// center is attached.
func (s *expenseService) Submit(ctx context.Context, expenseID string, userID string) (*dto.SubmitExpenseResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.loadActor(ctx, userID)
	if err != nil {
		return nil, err
	}
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.CompanyID != actor.CompanyID || !actorMayTouch(actor, expense) {
		return nil, fmt.Errorf("%w: cannot submit this expense", apperrors.ErrForbidden)
	}
	roles := actor.Roles
	if !domain.CanSubmit(roles) {
		return nil, fmt.Errorf("%w: insufficient role to submit expenses", apperrors.ErrForbidden)
	}
	if expense.Status != domain.ExpenseDraft {
		return nil, fmt.Errorf("%w: only draft expenses may be submitted, status is %s", apperrors.ErrInvalidTransition, expense.Status)
	}

	vErr := &apperrors.ValidationError{}
	if strings.TrimSpace(expense.Glosa) == "" {
		vErr.Add("glosa", "is required")
	}
	if expense.Amount.LessThanOrEqual(decimal.Zero) {
		vErr.Add("importe", "must be greater than zero")
	}
	if expense.ExpenseDate.IsZero() || expense.ExpenseDate.After(time.Now()) {
		vErr.Add("fecha", "must be a valid date not in the future")
	}

	normalized, normErr := expense.NormalizedAmount()
	if normErr != nil {
		vErr.Add("tipo_cambio", fmt.Sprintf("is required for currency %s", expense.CurrencyCode))
	}

	concept, err := s.conceptRepo.FindConceptByID(ctx, expense.ConceptID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("failed to load concept %s: %w", expense.ConceptID, err)
		}
		vErr.Add("concepto_id", "does not exist")
	}

	var missing []domain.DocumentType
	if concept != nil {
		reqs, err := s.conceptRepo.ListRequirements(ctx, concept.ConceptID)
		if err != nil {
			return nil, fmt.Errorf("failed to load document requirements: %w", err)
		}
		attached, err := s.documentRepo.AttachedTypes(ctx, expense.ExpenseID)
		if err != nil {
			return nil, fmt.Errorf("failed to load attached documents: %w", err)
		}
		missing = domain.MissingMandatoryTypes(reqs, attached)
		if len(missing) > 0 && concept.EnforceDocuments {
			for _, m := range missing {
				vErr.Add("documentos", fmt.Sprintf("missing mandatory document %s", m))
			}
		}
	}

	if vErr.HasErrors() {
		return nil, vErr
	}

	now := time.Now()
	expectedVersion := expense.Version
	expense.Version++
	expense.Touch(userID, now)

	var delta *portsrepo.BudgetDelta
	if concept.NeedsApproval(normalized) {
		expense.Status = domain.ExpensePending
	} else {
		expense.Status = domain.ExpenseApproved
		expense.ApprovedBy = &userID
		expense.ApprovedAt = &now
		if expense.CostCenterID != nil {
			delta = &portsrepo.BudgetDelta{CostCenterID: *expense.CostCenterID, Amount: normalized}
		}
	}

	if delta != nil {
		err = s.expenseRepo.UpdateExpenseWithBudget(ctx, *expense, expectedVersion, delta)
	} else {
		err = s.expenseRepo.UpdateExpense(ctx, *expense, expectedVersion)
	}
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateCompany(ctx, expense.CompanyID)
	logger.Info("expense submitted", "expenseID", expense.ExpenseID, "newStatus", expense.Status)

	return &dto.SubmitExpenseResult{
		Expense:          dto.ToExpenseResponse(expense),
		MissingDocuments: missing,
	}, nil
}

func (s *expenseService) Approve(ctx context.Context, expenseID string, actorUserID string, observations string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.loadActor(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	roles := actor.Roles
	if !domain.CanApprove(roles) {
		return nil, fmt.Errorf("%w: insufficient role to approve expenses", apperrors.ErrForbidden)
	}
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.CompanyID != actor.CompanyID {
		return nil, fmt.Errorf("%w: expense belongs to another company", apperrors.ErrForbidden)
	}
	if expense.Status != domain.ExpensePending {
		return nil, fmt.Errorf("%w: cannot approve expense in status %s", apperrors.ErrInvalidTransition, expense.Status)
	}

	normalized, err := expense.NormalizedAmount()
	if err != nil {
		return nil, fmt.Errorf("%w: expense %s", err, expense.ExpenseID)
	}

	now := time.Now()
	expectedVersion := expense.Version
	expense.Version++
	expense.Status = domain.ExpenseApproved
	expense.ApprovedBy = &actorUserID
	expense.ApprovedAt = &now
	expense.Touch(actorUserID, now)

	var delta *portsrepo.BudgetDelta
	if expense.CostCenterID != nil {
		delta = &portsrepo.BudgetDelta{CostCenterID: *expense.CostCenterID, Amount: normalized}
	}
	if err := s.expenseRepo.UpdateExpenseWithBudget(ctx, *expense, expectedVersion, delta); err != nil {
		return nil, err
	}

	s.cache.InvalidateCompany(ctx, expense.CompanyID)
	logger.Info("expense approved", "expenseID", expense.ExpenseID, "approvedBy", actorUserID, "observations", observations)

	return expense, nil
}

func (s *expenseService) Reject(ctx context.Context, expenseID string, actorUserID string, motivo string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.loadActor(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	roles := actor.Roles
	if !domain.CanReject(roles) {
		return nil, fmt.Errorf("%w: insufficient role to reject expenses", apperrors.ErrForbidden)
	}
	if strings.TrimSpace(motivo) == "" {
		vErr := &apperrors.ValidationError{}
		vErr.Add("motivo", "is required")
		return nil, vErr
	}
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.CompanyID != actor.CompanyID {
		return nil, fmt.Errorf("%w: expense belongs to another company", apperrors.ErrForbidden)
	}
	if expense.Status != domain.ExpensePending {
		return nil, fmt.Errorf("%w: cannot reject expense in status %s", apperrors.ErrInvalidTransition, expense.Status)
	}

	now := time.Now()
	expectedVersion := expense.Version
	expense.Version++
	expense.Status = domain.ExpenseRejected
	expense.RejectedBy = &actorUserID
	expense.RejectedAt = &now
	expense.RejectReason = strings.TrimSpace(motivo)
	expense.Touch(actorUserID, now)

	if err := s.expenseRepo.UpdateExpense(ctx, *expense, expectedVersion); err != nil {
		return nil, err
	}

	s.cache.InvalidateCompany(ctx, expense.CompanyID)
	logger.Info("expense rejected", "expenseID", expense.ExpenseID, "rejectedBy", actorUserID)

	return expense, nil
}

func (s *expenseService) MarkPaid(ctx context.Context, expenseID string, actorUserID string, metodoPago string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.loadActor(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	roles := actor.Roles
	if !domain.CanMarkPaid(roles) {
		return nil, fmt.Errorf("%w: insufficient role to mark expenses as paid", apperrors.ErrForbidden)
	}
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.CompanyID != actor.CompanyID {
		return nil, fmt.Errorf("%w: expense belongs to another company", apperrors.ErrForbidden)
	}
	if expense.Status != domain.ExpenseApproved {
		return nil, fmt.Errorf("%w: cannot pay expense in status %s", apperrors.ErrInvalidTransition, expense.Status)
	}

	now := time.Now()
	expectedVersion := expense.Version
	expense.Version++
	expense.Status = domain.ExpensePaid
	expense.PaidBy = &actorUserID
	expense.PaidAt = &now
	expense.PaymentMeth = metodoPago
	expense.Touch(actorUserID, now)

	if err := s.expenseRepo.UpdateExpense(ctx, *expense, expectedVersion); err != nil {
		return nil, err
	}

	s.cache.InvalidateCompany(ctx, expense.CompanyID)
	logger.Info("expense paid", "expenseID", expense.ExpenseID, "paidBy", actorUserID)

	return expense, nil
}

// Annul voids an expense from any non-terminal state. Annulling an approved
// expense releases the budget it had consumed.
func (s *expenseService) Annul(ctx context.Context, expenseID string, actorUserID string, motivo string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.loadActor(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(motivo) == "" {
		vErr := &apperrors.ValidationError{}
		vErr.Add("motivo", "is required")
		return nil, vErr
	}
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.CompanyID != actor.CompanyID || !actorMayTouch(actor, expense) {
		return nil, fmt.Errorf("%w: cannot annul this expense", apperrors.ErrForbidden)
	}
	roles := actor.Roles
	if !domain.CanAnnul(roles) {
		return nil, fmt.Errorf("%w: insufficient role to annul expenses", apperrors.ErrForbidden)
	}
	if !expense.Status.CanTransitionTo(domain.ExpenseAnnulled) {
		return nil, fmt.Errorf("%w: cannot annul expense in status %s", apperrors.ErrInvalidTransition, expense.Status)
	}

	var delta *portsrepo.BudgetDelta
	if expense.Status == domain.ExpenseApproved && expense.CostCenterID != nil {
		normalized, err := expense.NormalizedAmount()
		if err != nil {
			return nil, fmt.Errorf("%w: expense %s", err, expense.ExpenseID)
		}
		delta = &portsrepo.BudgetDelta{CostCenterID: *expense.CostCenterID, Amount: normalized.Neg()}
	}

	now := time.Now()
	expectedVersion := expense.Version
	expense.Version++
	expense.Status = domain.ExpenseAnnulled
	expense.AnnulledBy = &actorUserID
	expense.AnnulledAt = &now
	expense.AnnulReason = strings.TrimSpace(motivo)
	expense.Touch(actorUserID, now)

	var updErr error
	if delta != nil {
		updErr = s.expenseRepo.UpdateExpenseWithBudget(ctx, *expense, expectedVersion, delta)
	} else {
		updErr = s.expenseRepo.UpdateExpense(ctx, *expense, expectedVersion)
	}
	if updErr != nil {
		return nil, updErr
	}

	s.cache.InvalidateCompany(ctx, expense.CompanyID)
	logger.Info("expense annulled", "expenseID", expense.ExpenseID, "annulledBy", actorUserID)

	return expense, nil
}
