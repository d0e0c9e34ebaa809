package services_test

// Shared repository and cache mocks used across the service test suites.

import (
	"context"
	"time"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastosapp/gastos_backend/internal/core/ports/repositories"
	portssvc "github.com/gastosapp/gastos_backend/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock ExpenseRepository ---

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindExpensesByIDs(ctx context.Context, expenseIDs []string) (map[string]domain.Expense, error) {
	args := m.Called(ctx, expenseIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context, filter portsrepo.ListExpensesFilter) ([]domain.Expense, *string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Expense), next, args.Error(2)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense, expectedVersion int64) error {
	args := m.Called(ctx, expense, expectedVersion)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateExpenseWithBudget(ctx context.Context, expense domain.Expense, expectedVersion int64, delta *portsrepo.BudgetDelta) error {
	args := m.Called(ctx, expense, expectedVersion, delta)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	args := m.Called(ctx, expenseID)
	return args.Error(0)
}

func (m *MockExpenseRepository) NextExpenseCode(ctx context.Context, companyID string) (string, error) {
	args := m.Called(ctx, companyID)
	return args.String(0), args.Error(1)
}

var _ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)

// --- Mock FundRepository ---

type MockFundRepository struct {
	mock.Mock
}

func (m *MockFundRepository) SaveFund(ctx context.Context, fund domain.FundAssignment) error {
	args := m.Called(ctx, fund)
	return args.Error(0)
}

func (m *MockFundRepository) FindFundByID(ctx context.Context, fundID string) (*domain.FundAssignment, error) {
	args := m.Called(ctx, fundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundAssignment), args.Error(1)
}

func (m *MockFundRepository) ListFunds(ctx context.Context, filter portsrepo.ListFundsFilter) ([]domain.FundAssignment, *string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.FundAssignment), next, args.Error(2)
}

func (m *MockFundRepository) UpdateFund(ctx context.Context, fund domain.FundAssignment, expectedVersion int64) error {
	args := m.Called(ctx, fund, expectedVersion)
	return args.Error(0)
}

func (m *MockFundRepository) RenderFund(ctx context.Context, fund domain.FundAssignment, items []domain.RenditionItem, expectedVersion int64) error {
	args := m.Called(ctx, fund, items, expectedVersion)
	return args.Error(0)
}

func (m *MockFundRepository) ListRenditionItems(ctx context.Context, fundID string) ([]domain.RenditionItem, error) {
	args := m.Called(ctx, fundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RenditionItem), args.Error(1)
}

func (m *MockFundRepository) NextFundCode(ctx context.Context, companyID string) (string, error) {
	args := m.Called(ctx, companyID)
	return args.String(0), args.Error(1)
}

var _ portsrepo.FundRepositoryFacade = (*MockFundRepository)(nil)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.User, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.User), next, args.Error(2)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, userID, deletedBy, deletedAt)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime *time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiryTime)
	return args.Error(0)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// --- Mock ConceptRepository ---

type MockConceptRepository struct {
	mock.Mock
}

func (m *MockConceptRepository) SaveConcept(ctx context.Context, concept domain.ExpenseConcept) error {
	args := m.Called(ctx, concept)
	return args.Error(0)
}

func (m *MockConceptRepository) FindConceptByID(ctx context.Context, conceptID string) (*domain.ExpenseConcept, error) {
	args := m.Called(ctx, conceptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseConcept), args.Error(1)
}

func (m *MockConceptRepository) ListConcepts(ctx context.Context, companyID string) ([]domain.ExpenseConcept, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseConcept), args.Error(1)
}

func (m *MockConceptRepository) UpdateConcept(ctx context.Context, concept domain.ExpenseConcept) error {
	args := m.Called(ctx, concept)
	return args.Error(0)
}

func (m *MockConceptRepository) ListRequirements(ctx context.Context, conceptID string) ([]domain.DocumentRequirement, error) {
	args := m.Called(ctx, conceptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentRequirement), args.Error(1)
}

func (m *MockConceptRepository) ReplaceRequirements(ctx context.Context, conceptID string, requirements []domain.DocumentRequirement) error {
	args := m.Called(ctx, conceptID, requirements)
	return args.Error(0)
}

var _ portsrepo.ConceptRepositoryFacade = (*MockConceptRepository)(nil)

// --- Mock CostCenterRepository ---

type MockCostCenterRepository struct {
	mock.Mock
}

func (m *MockCostCenterRepository) SaveCostCenter(ctx context.Context, costCenter domain.CostCenter) error {
	args := m.Called(ctx, costCenter)
	return args.Error(0)
}

func (m *MockCostCenterRepository) FindCostCenterByID(ctx context.Context, costCenterID string) (*domain.CostCenter, error) {
	args := m.Called(ctx, costCenterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostCenter), args.Error(1)
}

func (m *MockCostCenterRepository) ListCostCenters(ctx context.Context, companyID string) ([]domain.CostCenter, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostCenter), args.Error(1)
}

func (m *MockCostCenterRepository) UpdateCostCenter(ctx context.Context, costCenter domain.CostCenter) error {
	args := m.Called(ctx, costCenter)
	return args.Error(0)
}

var _ portsrepo.CostCenterRepositoryFacade = (*MockCostCenterRepository)(nil)

// --- Mock DocumentRepository ---

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.ExpenseDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) ListDocumentsByExpense(ctx context.Context, expenseID string) ([]domain.ExpenseDocument, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseDocument), args.Error(1)
}

func (m *MockDocumentRepository) AttachedTypes(ctx context.Context, expenseID string) (map[domain.DocumentType]struct{}, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.DocumentType]struct{}), args.Error(1)
}

var _ portsrepo.DocumentRepositoryFacade = (*MockDocumentRepository)(nil)

// --- Mock ReportCache ---

type MockReportCache struct {
	mock.Mock
}

func (m *MockReportCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockReportCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockReportCache) InvalidateCompany(ctx context.Context, companyID string) error {
	args := m.Called(ctx, companyID)
	return args.Error(0)
}

var _ portssvc.ReportCache = (*MockReportCache)(nil)

type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) ExpenseStatistics(ctx context.Context, companyID string) ([]portsrepo.ExpenseStatusCount, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.ExpenseStatusCount), args.Error(1)
}

func (m *MockReportingRepository) CostCenterSummaries(ctx context.Context, companyID string) ([]portsrepo.CostCenterSummary, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.CostCenterSummary), args.Error(1)
}

func (m *MockReportingRepository) FundOverview(ctx context.Context, companyID string) ([]portsrepo.FundOverviewRow, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.FundOverviewRow), args.Error(1)
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)
