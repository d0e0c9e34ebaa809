package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/gastosapp/gastos_backend/internal/apperrors"
	"github.com/gastosapp/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastosapp/gastos_backend/internal/core/ports/repositories"
	portssvc "github.com/gastosapp/gastos_backend/internal/core/ports/services"
	"github.com/gastosapp/gastos_backend/internal/core/services"
	"github.com/gastosapp/gastos_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo    *MockExpenseRepository
	mockConceptRepo    *MockConceptRepository
	mockCostCenterRepo *MockCostCenterRepository
	mockDocumentRepo   *MockDocumentRepository
	mockUserRepo       *MockUserRepository
	mockCache          *MockReportCache
	service            portssvc.ExpenseSvcFacade

	ctx       context.Context
	companyID string
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockConceptRepo = new(MockConceptRepository)
	suite.mockCostCenterRepo = new(MockCostCenterRepository)
	suite.mockDocumentRepo = new(MockDocumentRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockCache = new(MockReportCache)
	suite.service = services.NewExpenseService(
		suite.mockExpenseRepo,
		suite.mockConceptRepo,
		suite.mockCostCenterRepo,
		suite.mockDocumentRepo,
		suite.mockUserRepo,
		suite.mockCache,
	)
	suite.ctx = context.Background()
	suite.companyID = uuid.NewString()
}

func (suite *ExpenseServiceTestSuite) newActor(roles ...domain.Role) *domain.User {
	return &domain.User{
		UserID:    uuid.NewString(),
		Name:      "Test User",
		Email:     "user@example.com",
		Roles:     domain.NewRoleSet(roles...),
		CompanyID: suite.companyID,
	}
}

func (suite *ExpenseServiceTestSuite) expectActor(actor *domain.User) {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, actor.UserID).Return(actor, nil).Once()
}

func (suite *ExpenseServiceTestSuite) newDraft(createdBy string) *domain.Expense {
	return &domain.Expense{
		ExpenseID:    uuid.NewString(),
		Code:         "GTO-2026-000007",
		CompanyID:    suite.companyID,
		Glosa:        "Office supplies",
		Amount:       decimal.NewFromInt(200),
		CurrencyCode: domain.BaseCurrencyCode,
		ExpenseDate:  time.Now().Add(-24 * time.Hour),
		ConceptID:    uuid.NewString(),
		Status:       domain.ExpenseDraft,
		Version:      1,
		AuditFields:  domain.NewAuditFields(createdBy, time.Now().Add(-24*time.Hour)),
	}
}

// --- CreateDraft ---

func (suite *ExpenseServiceTestSuite) TestCreateDraft_RequiresExchangeRateForForeignCurrency() {
	actor := suite.newActor(domain.RoleColaborador)
	suite.expectActor(actor)

	conceptID := uuid.NewString()
	suite.mockConceptRepo.On("FindConceptByID", suite.ctx, conceptID).
		Return(&domain.ExpenseConcept{ConceptID: conceptID, CompanyID: suite.companyID, IsActive: true}, nil).Once()

	req := dto.CreateExpenseRequest{
		Glosa:        "Hotel in Miami",
		Amount:       decimal.NewFromInt(300),
		CurrencyCode: "USD",
		ExpenseDate:  time.Now().Add(-time.Hour),
		ConceptID:    conceptID,
	}

	expense, err := suite.service.CreateDraft(suite.ctx, req, actor.UserID)

	suite.Nil(expense)
	vErr, ok := apperrors.AsValidationError(err)
	suite.True(ok, "expected a validation error, got: %v", err)
	if ok {
		assert.NotEmpty(suite.T(), vErr.Fields)
	}
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense")
}

// --- Submit ---

func (suite *ExpenseServiceTestSuite) TestSubmit_AutoApproveConsumesBudget() {
	actor := suite.newActor(domain.RoleColaborador)
	suite.expectActor(actor)

	costCenterID := uuid.NewString()
	expense := suite.newDraft(actor.UserID)
	expense.CostCenterID = &costCenterID

	concept := &domain.ExpenseConcept{
		ConceptID:        expense.ConceptID,
		CompanyID:        suite.companyID,
		RequiresApproval: false,
		IsActive:         true,
	}

	suite.mockExpenseRepo.On("FindExpenseByID", suite.ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockConceptRepo.On("FindConceptByID", suite.ctx, expense.ConceptID).Return(concept, nil).Once()
	suite.mockConceptRepo.On("ListRequirements", suite.ctx, concept.ConceptID).
		Return([]domain.DocumentRequirement{}, nil).Once()
	suite.mockDocumentRepo.On("AttachedTypes", suite.ctx, expense.ExpenseID).
		Return(map[domain.DocumentType]struct{}{}, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpenseWithBudget",
		suite.ctx,
		mock.MatchedBy(func(e domain.Expense) bool {
			return e.Status == domain.ExpenseApproved && e.Version == 2 && e.ApprovedBy != nil
		}),
		int64(1),
		mock.MatchedBy(func(d *portsrepo.BudgetDelta) bool {
			return d != nil && d.CostCenterID == costCenterID && d.Amount.Equal(decimal.NewFromInt(200))
		}),
	).Return(nil).Once()
	suite.mockCache.On("InvalidateCompany", suite.ctx, suite.companyID).Return(nil).Once()

	result, err := suite.service.Submit(suite.ctx, expense.ExpenseID, actor.UserID)

	suite.NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(domain.ExpenseApproved, result.Expense.Status)
	suite.Empty(result.MissingDocuments)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestSubmit_GoesPendingWhenApprovalRequired() {
	actor := suite.newActor(domain.RoleColaborador)
	suite.expectActor(actor)

	expense := suite.newDraft(actor.UserID)
	concept := &domain.ExpenseConcept{
		ConceptID:        expense.ConceptID,
		CompanyID:        suite.companyID,
		RequiresApproval: true,
		IsActive:         true,
	}

	suite.mockExpenseRepo.On("FindExpenseByID", suite.ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockConceptRepo.On("FindConceptByID", suite.ctx, expense.ConceptID).Return(concept, nil).Once()
	suite.mockConceptRepo.On("ListRequirements", suite.ctx, concept.ConceptID).
		Return([]domain.DocumentRequirement{}, nil).Once()
	suite.mockDocumentRepo.On("AttachedTypes", suite.ctx, expense.ExpenseID).
		Return(map[domain.DocumentType]struct{}{}, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpense",
		suite.ctx,
		mock.MatchedBy(func(e domain.Expense) bool {
			return e.Status == domain.ExpensePending && e.Version == 2
		}),
		int64(1),
	).Return(nil).Once()
	suite.mockCache.On("InvalidateCompany", suite.ctx, suite.companyID).Return(nil).Once()

	result, err := suite.service.Submit(suite.ctx, expense.ExpenseID, actor.UserID)

	suite.NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(domain.ExpensePending, result.Expense.Status)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "UpdateExpenseWithBudget")
}

func (suite *ExpenseServiceTestSuite) TestSubmit_EnforcedChecklistBlocksSubmission() {
	actor := suite.newActor(domain.RoleColaborador)
	suite.expectActor(actor)

	expense := suite.newDraft(actor.UserID)
	concept := &domain.ExpenseConcept{
		ConceptID:        expense.ConceptID,
		CompanyID:        suite.companyID,
		RequiresApproval: true,
		EnforceDocuments: true,
		IsActive:         true,
	}
	requirements := []domain.DocumentRequirement{
		{RequirementID: uuid.NewString(), ConceptID: concept.ConceptID, Name: "Factura electrónica", DocumentType: domain.DocFactura, Mandatory: true},
	}

	suite.mockExpenseRepo.On("FindExpenseByID", suite.ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockConceptRepo.On("FindConceptByID", suite.ctx, expense.ConceptID).Return(concept, nil).Once()
	suite.mockConceptRepo.On("ListRequirements", suite.ctx, concept.ConceptID).Return(requirements, nil).Once()
	suite.mockDocumentRepo.On("AttachedTypes", suite.ctx, expense.ExpenseID).
		Return(map[domain.DocumentType]struct{}{}, nil).Once()

	result, err := suite.service.Submit(suite.ctx, expense.ExpenseID, actor.UserID)

	suite.Nil(result)
	_, ok := apperrors.AsValidationError(err)
	suite.True(ok, "expected a validation error, got: %v", err)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "UpdateExpense")
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "UpdateExpenseWithBudget")
}

func (suite *ExpenseServiceTestSuite) TestSubmit_NotOwnExpenseForbidden() {
	actor := suite.newActor(domain.RoleColaborador)
	suite.expectActor(actor)

	expense := suite.newDraft(uuid.NewString()) // created by someone else

	suite.mockExpenseRepo.On("FindExpenseByID", suite.ctx, expense.ExpenseID).Return(expense, nil).Once()

	result, err := suite.service.Submit(suite.ctx, expense.ExpenseID, actor.UserID)

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- Approve ---

func (suite *ExpenseServiceTestSuite) TestApprove_NormalizesForeignAmountIntoBudget() {
	actor := suite.newActor(domain.RoleAprobador)
	suite.expectActor(actor)

	costCenterID := uuid.NewString()
	rate := decimal.NewFromFloat(3.75)
	expense := suite.newDraft(uuid.NewString())
	expense.Status = domain.ExpensePending
	expense.Amount = decimal.NewFromInt(40)
	expense.CurrencyCode = "USD"
	expense.ExchangeRate = &rate
	expense.CostCenterID = &costCenterID

	suite.mockExpenseRepo.On("FindExpenseByID", suite.ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpenseWithBudget",
		suite.ctx,
		mock.MatchedBy(func(e domain.Expense) bool {
			return e.Status == domain.ExpenseApproved && e.ApprovedBy != nil && *e.ApprovedBy == actor.UserID
		}),
		int64(1),
		mock.MatchedBy(func(d *portsrepo.BudgetDelta) bool {
			// 40 USD at 3.75 consumes 150 in the base currency
			return d != nil && d.Amount.Equal(decimal.NewFromInt(150))
		}),
	).Return(nil).Once()
	suite.mockCache.On("InvalidateCompany", suite.ctx, suite.companyID).Return(nil).Once()

	approved, err := suite.service.Approve(suite.ctx, expense.ExpenseID, actor.UserID, "ok")

	suite.NoError(err)
	suite.Require().NotNil(approved)
	suite.Equal(domain.ExpenseApproved, approved.Status)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestApprove_CollaboratorForbidden() {
	actor := suite.newActor(domain.RoleColaborador)
	suite.expectActor(actor)

	approved, err := suite.service.Approve(suite.ctx, uuid.NewString(), actor.UserID, "")

	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "FindExpenseByID")
}

func (suite *ExpenseServiceTestSuite) TestApprove_VersionConflictPropagates() {
	actor := suite.newActor(domain.RoleAprobador)
	suite.expectActor(actor)

	expense := suite.newDraft(uuid.NewString())
	expense.Status = domain.ExpensePending

	suite.mockExpenseRepo.On("FindExpenseByID", suite.ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpenseWithBudget", suite.ctx, mock.Anything, int64(1), mock.Anything).
		Return(apperrors.ErrVersionConflict).Once()

	approved, err := suite.service.Approve(suite.ctx, expense.ExpenseID, actor.UserID, "")

	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrVersionConflict)
}

// --- Reject ---

func (suite *ExpenseServiceTestSuite) TestReject_RequiresMotivo() {
	actor := suite.newActor(domain.RoleAprobador)
	suite.expectActor(actor)

	rejected, err := suite.service.Reject(suite.ctx, uuid.NewString(), actor.UserID, "   ")

	suite.Nil(rejected)
	_, ok := apperrors.AsValidationError(err)
	suite.True(ok, "expected a validation error, got: %v", err)
}

// --- Annul ---

func (suite *ExpenseServiceTestSuite) TestAnnul_ApprovedReleasesBudget() {
	actor := suite.newActor(domain.RoleResponsable)
	suite.expectActor(actor)

	costCenterID := uuid.NewString()
	expense := suite.newDraft(uuid.NewString())
	expense.Status = domain.ExpenseApproved
	expense.CostCenterID = &costCenterID

	suite.mockExpenseRepo.On("FindExpenseByID", suite.ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpenseWithBudget",
		suite.ctx,
		mock.MatchedBy(func(e domain.Expense) bool {
			return e.Status == domain.ExpenseAnnulled && e.AnnulReason == "duplicate entry"
		}),
		int64(1),
		mock.MatchedBy(func(d *portsrepo.BudgetDelta) bool {
			return d != nil && d.Amount.Equal(decimal.NewFromInt(-200))
		}),
	).Return(nil).Once()
	suite.mockCache.On("InvalidateCompany", suite.ctx, suite.companyID).Return(nil).Once()

	annulled, err := suite.service.Annul(suite.ctx, expense.ExpenseID, actor.UserID, "duplicate entry")

	suite.NoError(err)
	suite.Require().NotNil(annulled)
	suite.Equal(domain.ExpenseAnnulled, annulled.Status)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestAnnul_PaidExpenseRejected() {
	actor := suite.newActor(domain.RoleAdmin)
	suite.expectActor(actor)

	expense := suite.newDraft(uuid.NewString())
	expense.Status = domain.ExpensePaid

	suite.mockExpenseRepo.On("FindExpenseByID", suite.ctx, expense.ExpenseID).Return(expense, nil).Once()

	annulled, err := suite.service.Annul(suite.ctx, expense.ExpenseID, actor.UserID, "late void")

	suite.Nil(annulled)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

// --- DeleteExpense ---

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_OwnDraftAllowed() {
	actor := suite.newActor(domain.RoleColaborador)
	suite.expectActor(actor)

	expense := suite.newDraft(actor.UserID)

	suite.mockExpenseRepo.On("FindExpenseByID", suite.ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockExpenseRepo.On("DeleteExpense", suite.ctx, expense.ExpenseID).Return(nil).Once()
	suite.mockCache.On("InvalidateCompany", suite.ctx, suite.companyID).Return(nil).Once()

	err := suite.service.DeleteExpense(suite.ctx, expense.ExpenseID, actor.UserID)

	suite.NoError(err)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_SubmittedDraftRejected() {
	actor := suite.newActor(domain.RoleAdmin)
	suite.expectActor(actor)

	expense := suite.newDraft(uuid.NewString())
	expense.Status = domain.ExpensePending

	suite.mockExpenseRepo.On("FindExpenseByID", suite.ctx, expense.ExpenseID).Return(expense, nil).Once()

	err := suite.service.DeleteExpense(suite.ctx, expense.ExpenseID, actor.UserID)

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "DeleteExpense")
}

// --- ListExpenses ---

func (suite *ExpenseServiceTestSuite) TestListExpenses_CollaboratorScopedToOwn() {
	actor := suite.newActor(domain.RoleColaborador)
	suite.expectActor(actor)

	suite.mockExpenseRepo.On("ListExpenses",
		suite.ctx,
		mock.MatchedBy(func(f portsrepo.ListExpensesFilter) bool {
			return f.CompanyID == suite.companyID && f.CreatedBy != nil && *f.CreatedBy == actor.UserID
		}),
	).Return([]domain.Expense{}, nil, nil).Once()

	resp, err := suite.service.ListExpenses(suite.ctx, dto.ListExpensesParams{Limit: 20}, actor.UserID)

	suite.NoError(err)
	suite.Require().NotNil(resp)
	suite.Empty(resp.Expenses)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func TestExpenseService(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
