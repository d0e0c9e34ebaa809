package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/gastosapp/gastos_backend/internal/apperrors"
	"github.com/gastosapp/gastos_backend/internal/core/domain"
	portssvc "github.com/gastosapp/gastos_backend/internal/core/ports/services"
	"github.com/gastosapp/gastos_backend/internal/core/services"
	"github.com/gastosapp/gastos_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CostCenterServiceTestSuite struct {
	suite.Suite
	mockCostCenterRepo *MockCostCenterRepository
	mockUserRepo       *MockUserRepository
	mockCache          *MockReportCache
	service            portssvc.CostCenterSvcFacade

	ctx       context.Context
	companyID string
}

func (suite *CostCenterServiceTestSuite) SetupTest() {
	suite.mockCostCenterRepo = new(MockCostCenterRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockCache = new(MockReportCache)
	suite.service = services.NewCostCenterService(
		suite.mockCostCenterRepo,
		suite.mockUserRepo,
		suite.mockCache,
	)
	suite.ctx = context.Background()
	suite.companyID = uuid.NewString()
}

func (suite *CostCenterServiceTestSuite) expectActor(roles ...domain.Role) *domain.User {
	actor := &domain.User{
		UserID:    uuid.NewString(),
		Name:      "Catalog User",
		Email:     "catalog@example.com",
		Roles:     domain.NewRoleSet(roles...),
		CompanyID: suite.companyID,
	}
	suite.mockUserRepo.On("FindUserByID", suite.ctx, actor.UserID).Return(actor, nil).Once()
	return actor
}

func (suite *CostCenterServiceTestSuite) newCostCenter(asignado, consumido decimal.Decimal) *domain.CostCenter {
	return &domain.CostCenter{
		CostCenterID:         uuid.NewString(),
		CompanyID:            suite.companyID,
		Code:                 "CC-VENTAS",
		Name:                 "Ventas",
		PresupuestoAsignado:  asignado,
		PresupuestoConsumido: consumido,
		IsActive:             true,
		AuditFields:          domain.NewAuditFields(uuid.NewString(), time.Now().Add(-72*time.Hour)),
	}
}

func (suite *CostCenterServiceTestSuite) TestCreateCostCenter_NormalizesCode() {
	actor := suite.expectActor(domain.RoleAdmin)

	suite.mockCostCenterRepo.On("SaveCostCenter", suite.ctx, mock.MatchedBy(func(cc domain.CostCenter) bool {
		return cc.Code == "CC-LOGISTICA" && cc.PresupuestoConsumido.IsZero() && cc.IsActive
	})).Return(nil).Once()
	suite.mockCache.On("InvalidateCompany", suite.ctx, suite.companyID).Return(nil).Once()

	cc, err := suite.service.CreateCostCenter(suite.ctx, dto.CreateCostCenterRequest{
		CompanyID:           suite.companyID,
		Code:                "  cc-logistica ",
		Name:                "Logística",
		PresupuestoAsignado: decimal.NewFromInt(10000),
	}, actor.UserID)

	suite.NoError(err)
	suite.Require().NotNil(cc)
	suite.Equal("CC-LOGISTICA", cc.Code)
	suite.mockCostCenterRepo.AssertExpectations(suite.T())
}

func (suite *CostCenterServiceTestSuite) TestCreateCostCenter_NegativeBudgetRejected() {
	actor := suite.expectActor(domain.RoleAdmin)

	cc, err := suite.service.CreateCostCenter(suite.ctx, dto.CreateCostCenterRequest{
		CompanyID:           suite.companyID,
		Code:                "CC-X",
		Name:                "X",
		PresupuestoAsignado: decimal.NewFromInt(-1),
	}, actor.UserID)

	suite.Nil(cc)
	_, ok := apperrors.AsValidationError(err)
	suite.True(ok, "expected a validation error, got: %v", err)
	suite.mockCostCenterRepo.AssertNotCalled(suite.T(), "SaveCostCenter")
}

func (suite *CostCenterServiceTestSuite) TestCreateCostCenter_CollaboratorForbidden() {
	actor := suite.expectActor(domain.RoleColaborador)

	cc, err := suite.service.CreateCostCenter(suite.ctx, dto.CreateCostCenterRequest{
		CompanyID:           suite.companyID,
		Code:                "CC-X",
		Name:                "X",
		PresupuestoAsignado: decimal.NewFromInt(100),
	}, actor.UserID)

	suite.Nil(cc)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CostCenterServiceTestSuite) TestUpdateCostCenter_BudgetBelowConsumedRejected() {
	actor := suite.expectActor(domain.RoleResponsable)

	cc := suite.newCostCenter(decimal.NewFromInt(1000), decimal.NewFromInt(950))
	suite.mockCostCenterRepo.On("FindCostCenterByID", suite.ctx, cc.CostCenterID).Return(cc, nil).Once()

	lowered := decimal.NewFromInt(900)
	updated, err := suite.service.UpdateCostCenter(suite.ctx, cc.CostCenterID, dto.UpdateCostCenterRequest{
		PresupuestoAsignado: &lowered,
	}, actor.UserID)

	suite.Nil(updated)
	vErr, ok := apperrors.AsValidationError(err)
	suite.True(ok, "expected a validation error, got: %v", err)
	if ok {
		suite.Len(vErr.Fields, 1)
		suite.Equal("presupuesto_asignado", vErr.Fields[0].Field)
	}
	suite.mockCostCenterRepo.AssertNotCalled(suite.T(), "UpdateCostCenter")
}

func (suite *CostCenterServiceTestSuite) TestUpdateCostCenter_RaiseBudgetAndDeactivate() {
	actor := suite.expectActor(domain.RoleAdmin)

	cc := suite.newCostCenter(decimal.NewFromInt(1000), decimal.NewFromInt(950))
	suite.mockCostCenterRepo.On("FindCostCenterByID", suite.ctx, cc.CostCenterID).Return(cc, nil).Once()

	raised := decimal.NewFromInt(2000)
	inactive := false
	suite.mockCostCenterRepo.On("UpdateCostCenter", suite.ctx, mock.MatchedBy(func(c domain.CostCenter) bool {
		return c.PresupuestoAsignado.Equal(raised) && !c.IsActive && c.LastUpdatedBy == actor.UserID
	})).Return(nil).Once()
	suite.mockCache.On("InvalidateCompany", suite.ctx, suite.companyID).Return(nil).Once()

	updated, err := suite.service.UpdateCostCenter(suite.ctx, cc.CostCenterID, dto.UpdateCostCenterRequest{
		PresupuestoAsignado: &raised,
		IsActive:            &inactive,
	}, actor.UserID)

	suite.NoError(err)
	suite.Require().NotNil(updated)
	suite.True(updated.PresupuestoAsignado.Equal(raised))
	suite.False(updated.IsActive)
	suite.mockCostCenterRepo.AssertExpectations(suite.T())
}

func (suite *CostCenterServiceTestSuite) TestUpdateCostCenter_BudgetEqualToConsumedAllowed() {
	actor := suite.expectActor(domain.RoleAdmin)

	cc := suite.newCostCenter(decimal.NewFromInt(1000), decimal.NewFromInt(950))
	suite.mockCostCenterRepo.On("FindCostCenterByID", suite.ctx, cc.CostCenterID).Return(cc, nil).Once()

	exact := decimal.NewFromInt(950)
	suite.mockCostCenterRepo.On("UpdateCostCenter", suite.ctx, mock.MatchedBy(func(c domain.CostCenter) bool {
		return c.PresupuestoAsignado.Equal(exact)
	})).Return(nil).Once()
	suite.mockCache.On("InvalidateCompany", suite.ctx, suite.companyID).Return(nil).Once()

	updated, err := suite.service.UpdateCostCenter(suite.ctx, cc.CostCenterID, dto.UpdateCostCenterRequest{
		PresupuestoAsignado: &exact,
	}, actor.UserID)

	suite.NoError(err)
	suite.Require().NotNil(updated)
}

func TestCostCenterService(t *testing.T) {
	suite.Run(t, new(CostCenterServiceTestSuite))
}
