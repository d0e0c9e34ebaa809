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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type FundServiceTestSuite struct {
	suite.Suite
	mockFundRepo    *MockFundRepository
	mockExpenseRepo *MockExpenseRepository
	mockUserRepo    *MockUserRepository
	mockCache       *MockReportCache
	service         portssvc.FundSvcFacade

	ctx       context.Context
	companyID string
}

func (suite *FundServiceTestSuite) SetupTest() {
	suite.mockFundRepo = new(MockFundRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockCache = new(MockReportCache)
	suite.service = services.NewFundService(
		suite.mockFundRepo,
		suite.mockExpenseRepo,
		suite.mockUserRepo,
		suite.mockCache,
	)
	suite.ctx = context.Background()
	suite.companyID = uuid.NewString()
}

func (suite *FundServiceTestSuite) newActor(roles ...domain.Role) *domain.User {
	return &domain.User{
		UserID:    uuid.NewString(),
		Name:      "Fund User",
		Email:     "funds@example.com",
		Roles:     domain.NewRoleSet(roles...),
		CompanyID: suite.companyID,
	}
}

func (suite *FundServiceTestSuite) expectActor(actor *domain.User) {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, actor.UserID).Return(actor, nil).Once()
}

func (suite *FundServiceTestSuite) newFund(responsibleID string, asignado decimal.Decimal) *domain.FundAssignment {
	return &domain.FundAssignment{
		FundID:         uuid.NewString(),
		Code:           "AF-2026-000042",
		CompanyID:      suite.companyID,
		ResponsibleID:  responsibleID,
		CurrencyCode:   domain.BaseCurrencyCode,
		MontoAsignado:  asignado,
		MontoRendido:   decimal.Zero,
		SaldoPendiente: asignado,
		Status:         domain.FundAsignado,
		Version:        1,
		AuditFields:    domain.NewAuditFields(uuid.NewString(), time.Now().Add(-48*time.Hour)),
	}
}

// fundExpense builds an approved expense already linked to the given fund.
func (suite *FundServiceTestSuite) fundExpense(fundID string, amount decimal.Decimal, currency string, rate *decimal.Decimal) domain.Expense {
	return domain.Expense{
		ExpenseID:    uuid.NewString(),
		Code:         "GTO-2026-000101",
		CompanyID:    suite.companyID,
		Glosa:        "Fuel",
		Amount:       amount,
		CurrencyCode: currency,
		ExchangeRate: rate,
		ExpenseDate:  time.Now().Add(-24 * time.Hour),
		ConceptID:    uuid.NewString(),
		FundID:       &fundID,
		Status:       domain.ExpenseApproved,
		Version:      1,
	}
}

// --- CreateAssignment ---

func (suite *FundServiceTestSuite) TestCreateAssignment_Success() {
	actor := suite.newActor(domain.RoleResponsable)
	suite.expectActor(actor)

	responsible := suite.newActor(domain.RoleColaborador)
	suite.mockUserRepo.On("FindUserByID", suite.ctx, responsible.UserID).Return(responsible, nil).Once()
	suite.mockFundRepo.On("NextFundCode", suite.ctx, suite.companyID).Return("AF-2026-000043", nil).Once()
	suite.mockFundRepo.On("SaveFund", suite.ctx, mock.MatchedBy(func(f domain.FundAssignment) bool {
		return f.Status == domain.FundAsignado &&
			f.CurrencyCode == domain.BaseCurrencyCode &&
			f.SaldoPendiente.Equal(decimal.NewFromInt(500)) &&
			f.Code == "AF-2026-000043"
	})).Return(nil).Once()
	suite.mockCache.On("InvalidateCompany", suite.ctx, suite.companyID).Return(nil).Once()

	fund, err := suite.service.CreateAssignment(suite.ctx, dto.CreateFundRequest{
		ResponsibleID: responsible.UserID,
		MontoAsignado: decimal.NewFromInt(500),
	}, actor.UserID)

	suite.NoError(err)
	suite.Require().NotNil(fund)
	suite.True(fund.MontoRendido.IsZero())
	suite.mockFundRepo.AssertExpectations(suite.T())
}

func (suite *FundServiceTestSuite) TestCreateAssignment_CollaboratorForbidden() {
	actor := suite.newActor(domain.RoleColaborador)
	suite.expectActor(actor)

	fund, err := suite.service.CreateAssignment(suite.ctx, dto.CreateFundRequest{
		ResponsibleID: uuid.NewString(),
		MontoAsignado: decimal.NewFromInt(100),
	}, actor.UserID)

	suite.Nil(fund)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockFundRepo.AssertNotCalled(suite.T(), "SaveFund")
}

func (suite *FundServiceTestSuite) TestCreateAssignment_ResponsibleFromAnotherCompany() {
	actor := suite.newActor(domain.RoleAdmin)
	suite.expectActor(actor)

	foreign := &domain.User{
		UserID:    uuid.NewString(),
		Roles:     domain.NewRoleSet(domain.RoleColaborador),
		CompanyID: uuid.NewString(),
	}
	suite.mockUserRepo.On("FindUserByID", suite.ctx, foreign.UserID).Return(foreign, nil).Once()

	fund, err := suite.service.CreateAssignment(suite.ctx, dto.CreateFundRequest{
		ResponsibleID: foreign.UserID,
		MontoAsignado: decimal.NewFromInt(100),
	}, actor.UserID)

	suite.Nil(fund)
	_, ok := apperrors.AsValidationError(err)
	suite.True(ok, "expected a validation error, got: %v", err)
}

// --- Render ---

func (suite *FundServiceTestSuite) TestRender_NormalizesEachExpenseAtItsOwnRate() {
	actor := suite.newActor(domain.RoleResponsable)
	suite.expectActor(actor)

	fund := suite.newFund(actor.UserID, decimal.NewFromInt(500))
	rate := decimal.NewFromFloat(3.75)
	usdExpense := suite.fundExpense(fund.FundID, decimal.NewFromInt(40), "USD", &rate)
	penExpense := suite.fundExpense(fund.FundID, decimal.NewFromInt(120), domain.BaseCurrencyCode, nil)

	suite.mockFundRepo.On("FindFundByID", suite.ctx, fund.FundID).Return(fund, nil).Once()
	suite.mockExpenseRepo.On("FindExpensesByIDs", suite.ctx, []string{usdExpense.ExpenseID, penExpense.ExpenseID}).
		Return(map[string]domain.Expense{
			usdExpense.ExpenseID: usdExpense,
			penExpense.ExpenseID: penExpense,
		}, nil).Once()
	// 40 USD at 3.75 plus 120 PEN totals 270; balance 500 - 270 = 230.
	suite.mockFundRepo.On("RenderFund",
		suite.ctx,
		mock.MatchedBy(func(f domain.FundAssignment) bool {
			return f.Status == domain.FundRendido &&
				f.MontoRendido.Equal(decimal.NewFromInt(270)) &&
				f.SaldoPendiente.Equal(decimal.NewFromInt(230)) &&
				f.RenderedBy != nil && *f.RenderedBy == actor.UserID
		}),
		mock.MatchedBy(func(items []domain.RenditionItem) bool {
			return len(items) == 2 &&
				items[0].ImporteRendido.Equal(decimal.NewFromInt(150)) &&
				items[0].OriginalCurrency == "USD" &&
				items[1].ImporteRendido.Equal(decimal.NewFromInt(120))
		}),
		int64(1),
	).Return(nil).Once()
	suite.mockCache.On("InvalidateCompany", suite.ctx, suite.companyID).Return(nil).Once()

	detail, err := suite.service.Render(suite.ctx, fund.FundID, dto.RenderFundRequest{
		ExpenseIDs: []string{usdExpense.ExpenseID, penExpense.ExpenseID},
	}, actor.UserID)

	suite.NoError(err)
	suite.Require().NotNil(detail)
	suite.Len(detail.Items, 2)
	suite.Equal(domain.FundRendido, detail.Fund.Status)
	suite.mockFundRepo.AssertExpectations(suite.T())
}

func (suite *FundServiceTestSuite) TestRender_OverspendLeavesNegativeBalance() {
	actor := suite.newActor(domain.RoleResponsable)
	suite.expectActor(actor)

	fund := suite.newFund(actor.UserID, decimal.NewFromInt(100))
	expense := suite.fundExpense(fund.FundID, decimal.NewFromInt(130), domain.BaseCurrencyCode, nil)

	suite.mockFundRepo.On("FindFundByID", suite.ctx, fund.FundID).Return(fund, nil).Once()
	suite.mockExpenseRepo.On("FindExpensesByIDs", suite.ctx, []string{expense.ExpenseID}).
		Return(map[string]domain.Expense{expense.ExpenseID: expense}, nil).Once()
	suite.mockFundRepo.On("RenderFund",
		suite.ctx,
		mock.MatchedBy(func(f domain.FundAssignment) bool {
			return f.SaldoPendiente.Equal(decimal.NewFromInt(-30))
		}),
		mock.Anything,
		int64(1),
	).Return(nil).Once()
	suite.mockCache.On("InvalidateCompany", suite.ctx, suite.companyID).Return(nil).Once()

	detail, err := suite.service.Render(suite.ctx, fund.FundID, dto.RenderFundRequest{
		ExpenseIDs: []string{expense.ExpenseID},
	}, actor.UserID)

	suite.NoError(err)
	suite.Require().NotNil(detail)
	suite.True(detail.Fund.SaldoPendiente.IsNegative())
}

func (suite *FundServiceTestSuite) TestRender_EmptySelectionRejected() {
	actor := suite.newActor(domain.RoleResponsable)
	suite.expectActor(actor)

	fund := suite.newFund(actor.UserID, decimal.NewFromInt(100))
	suite.mockFundRepo.On("FindFundByID", suite.ctx, fund.FundID).Return(fund, nil).Once()

	detail, err := suite.service.Render(suite.ctx, fund.FundID, dto.RenderFundRequest{}, actor.UserID)

	suite.Nil(detail)
	suite.ErrorIs(err, apperrors.ErrEmptySelection)
	suite.mockFundRepo.AssertNotCalled(suite.T(), "RenderFund")
}

func (suite *FundServiceTestSuite) TestRender_DuplicateExpenseRejected() {
	actor := suite.newActor(domain.RoleResponsable)
	suite.expectActor(actor)

	fund := suite.newFund(actor.UserID, decimal.NewFromInt(100))
	expenseID := uuid.NewString()
	suite.mockFundRepo.On("FindFundByID", suite.ctx, fund.FundID).Return(fund, nil).Once()

	detail, err := suite.service.Render(suite.ctx, fund.FundID, dto.RenderFundRequest{
		ExpenseIDs: []string{expenseID, expenseID},
	}, actor.UserID)

	suite.Nil(detail)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "FindExpensesByIDs")
}

func (suite *FundServiceTestSuite) TestRender_ExpenseNotLinkedToFund() {
	actor := suite.newActor(domain.RoleResponsable)
	suite.expectActor(actor)

	fund := suite.newFund(actor.UserID, decimal.NewFromInt(100))
	otherFundID := uuid.NewString()
	expense := suite.fundExpense(otherFundID, decimal.NewFromInt(50), domain.BaseCurrencyCode, nil)

	suite.mockFundRepo.On("FindFundByID", suite.ctx, fund.FundID).Return(fund, nil).Once()
	suite.mockExpenseRepo.On("FindExpensesByIDs", suite.ctx, []string{expense.ExpenseID}).
		Return(map[string]domain.Expense{expense.ExpenseID: expense}, nil).Once()

	detail, err := suite.service.Render(suite.ctx, fund.FundID, dto.RenderFundRequest{
		ExpenseIDs: []string{expense.ExpenseID},
	}, actor.UserID)

	suite.Nil(detail)
	suite.ErrorIs(err, apperrors.ErrForeignExpense)
	suite.NotErrorIs(err, apperrors.ErrReconciliation)
}

func (suite *FundServiceTestSuite) TestRender_DraftExpenseRejected() {
	actor := suite.newActor(domain.RoleResponsable)
	suite.expectActor(actor)

	fund := suite.newFund(actor.UserID, decimal.NewFromInt(100))
	expense := suite.fundExpense(fund.FundID, decimal.NewFromInt(50), domain.BaseCurrencyCode, nil)
	expense.Status = domain.ExpenseDraft

	suite.mockFundRepo.On("FindFundByID", suite.ctx, fund.FundID).Return(fund, nil).Once()
	suite.mockExpenseRepo.On("FindExpensesByIDs", suite.ctx, []string{expense.ExpenseID}).
		Return(map[string]domain.Expense{expense.ExpenseID: expense}, nil).Once()

	detail, err := suite.service.Render(suite.ctx, fund.FundID, dto.RenderFundRequest{
		ExpenseIDs: []string{expense.ExpenseID},
	}, actor.UserID)

	suite.Nil(detail)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *FundServiceTestSuite) TestRender_UnknownExpenseNotFound() {
	actor := suite.newActor(domain.RoleResponsable)
	suite.expectActor(actor)

	fund := suite.newFund(actor.UserID, decimal.NewFromInt(100))
	missingID := uuid.NewString()

	suite.mockFundRepo.On("FindFundByID", suite.ctx, fund.FundID).Return(fund, nil).Once()
	suite.mockExpenseRepo.On("FindExpensesByIDs", suite.ctx, []string{missingID}).
		Return(map[string]domain.Expense{}, nil).Once()

	detail, err := suite.service.Render(suite.ctx, fund.FundID, dto.RenderFundRequest{
		ExpenseIDs: []string{missingID},
	}, actor.UserID)

	suite.Nil(detail)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *FundServiceTestSuite) TestRender_OtherUsersFundForbidden() {
	actor := suite.newActor(domain.RoleColaborador)
	suite.expectActor(actor)

	fund := suite.newFund(uuid.NewString(), decimal.NewFromInt(100))
	suite.mockFundRepo.On("FindFundByID", suite.ctx, fund.FundID).Return(fund, nil).Once()

	detail, err := suite.service.Render(suite.ctx, fund.FundID, dto.RenderFundRequest{
		ExpenseIDs: []string{uuid.NewString()},
	}, actor.UserID)

	suite.Nil(detail)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *FundServiceTestSuite) TestRender_AlreadyRenderedFundRejected() {
	actor := suite.newActor(domain.RoleAdmin)
	suite.expectActor(actor)

	fund := suite.newFund(actor.UserID, decimal.NewFromInt(100))
	fund.Status = domain.FundRendido

	suite.mockFundRepo.On("FindFundByID", suite.ctx, fund.FundID).Return(fund, nil).Once()

	detail, err := suite.service.Render(suite.ctx, fund.FundID, dto.RenderFundRequest{
		ExpenseIDs: []string{uuid.NewString()},
	}, actor.UserID)

	suite.Nil(detail)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

// --- MarkForRendering / Annul ---

func (suite *FundServiceTestSuite) TestMarkForRendering_Success() {
	actor := suite.newActor(domain.RoleColaborador)
	suite.expectActor(actor)

	fund := suite.newFund(actor.UserID, decimal.NewFromInt(100))
	suite.mockFundRepo.On("FindFundByID", suite.ctx, fund.FundID).Return(fund, nil).Once()
	suite.mockFundRepo.On("UpdateFund",
		suite.ctx,
		mock.MatchedBy(func(f domain.FundAssignment) bool {
			return f.Status == domain.FundPorRendir && f.Version == 2
		}),
		int64(1),
	).Return(nil).Once()
	suite.mockCache.On("InvalidateCompany", suite.ctx, suite.companyID).Return(nil).Once()

	updated, err := suite.service.MarkForRendering(suite.ctx, fund.FundID, actor.UserID)

	suite.NoError(err)
	suite.Require().NotNil(updated)
	suite.Equal(domain.FundPorRendir, updated.Status)
}

func (suite *FundServiceTestSuite) TestAnnul_RequiresMotivo() {
	actor := suite.newActor(domain.RoleAdmin)
	suite.expectActor(actor)

	fund, err := suite.service.Annul(suite.ctx, uuid.NewString(), actor.UserID, " ")

	suite.Nil(fund)
	_, ok := apperrors.AsValidationError(err)
	suite.True(ok, "expected a validation error, got: %v", err)
	suite.mockFundRepo.AssertNotCalled(suite.T(), "FindFundByID")
}

func (suite *FundServiceTestSuite) TestAnnul_VersionConflictPropagates() {
	actor := suite.newActor(domain.RoleResponsable)
	suite.expectActor(actor)

	fund := suite.newFund(actor.UserID, decimal.NewFromInt(100))
	suite.mockFundRepo.On("FindFundByID", suite.ctx, fund.FundID).Return(fund, nil).Once()
	suite.mockFundRepo.On("UpdateFund", suite.ctx, mock.Anything, int64(1)).
		Return(apperrors.ErrVersionConflict).Once()

	annulled, err := suite.service.Annul(suite.ctx, fund.FundID, actor.UserID, "never delivered")

	suite.Nil(annulled)
	suite.ErrorIs(err, apperrors.ErrVersionConflict)
}

// --- ListFunds ---

func (suite *FundServiceTestSuite) TestListFunds_CollaboratorScopedToOwn() {
	actor := suite.newActor(domain.RoleColaborador)
	suite.expectActor(actor)

	suite.mockFundRepo.On("ListFunds",
		suite.ctx,
		mock.MatchedBy(func(f portsrepo.ListFundsFilter) bool {
			return f.CompanyID == suite.companyID && f.ResponsibleID != nil && *f.ResponsibleID == actor.UserID
		}),
	).Return([]domain.FundAssignment{}, nil, nil).Once()

	resp, err := suite.service.ListFunds(suite.ctx, dto.ListFundsParams{Limit: 20}, actor.UserID)

	suite.NoError(err)
	suite.Require().NotNil(resp)
	suite.Empty(resp.Items)
	suite.mockFundRepo.AssertExpectations(suite.T())
}

func TestFundService(t *testing.T) {
	suite.Run(t, new(FundServiceTestSuite))
}
