package services_test

import (
	"context"
	"testing"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastosapp/gastos_backend/internal/core/ports/repositories"
	portssvc "github.com/gastosapp/gastos_backend/internal/core/ports/services"
	"github.com/gastosapp/gastos_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockCache         *MockReportCache
	service           portssvc.ReportingSvcFacade

	ctx       context.Context
	companyID string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockCache = new(MockReportCache)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockCache)
	suite.ctx = context.Background()
	suite.companyID = uuid.NewString()
}

func (suite *ReportingServiceTestSuite) TestExpenseStatistics_SumsAndFormatsGrandTotal() {
	suite.mockCache.On("GetJSON", suite.ctx, mock.Anything, mock.Anything).Return(false, nil).Once()
	suite.mockReportingRepo.On("ExpenseStatistics", suite.ctx, suite.companyID).
		Return([]portsrepo.ExpenseStatusCount{
			{Status: domain.ExpenseApproved, Count: 3, Total: decimal.NewFromFloat(150.5)},
			{Status: domain.ExpensePaid, Count: 1, Total: decimal.NewFromInt(49)},
		}, nil).Once()
	suite.mockCache.On("SetJSON", suite.ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	resp, err := suite.service.ExpenseStatistics(suite.ctx, suite.companyID)

	suite.NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.ByStatus, 2)
	suite.True(resp.GrandTotal.Equal(decimal.NewFromFloat(199.5)))
	suite.Equal("199.50", resp.GrandTotalDisplay)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestExpenseStatistics_ServesFromCache() {
	suite.mockCache.On("GetJSON", suite.ctx, mock.Anything, mock.Anything).Return(true, nil).Once()

	resp, err := suite.service.ExpenseStatistics(suite.ctx, suite.companyID)

	suite.NoError(err)
	suite.Require().NotNil(resp)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "ExpenseStatistics")
}

func (suite *ReportingServiceTestSuite) TestCostCenterSummaries_PassesRowsThrough() {
	suite.mockCache.On("GetJSON", suite.ctx, mock.Anything, mock.Anything).Return(false, nil).Once()
	suite.mockReportingRepo.On("CostCenterSummaries", suite.ctx, suite.companyID).
		Return([]portsrepo.CostCenterSummary{
			{
				CostCenterID: uuid.NewString(),
				Code:         "CC-VENTAS",
				Name:         "Ventas",
				Asignado:     decimal.NewFromInt(1000),
				Consumido:    decimal.NewFromInt(400),
				Disponible:   decimal.NewFromInt(600),
			},
		}, nil).Once()
	suite.mockCache.On("SetJSON", suite.ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	resp, err := suite.service.CostCenterSummaries(suite.ctx, suite.companyID)

	suite.NoError(err)
	suite.Require().NotNil(resp)
	suite.Require().Len(resp.CostCenters, 1)
	suite.True(resp.CostCenters[0].Disponible.Equal(decimal.NewFromInt(600)))
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
