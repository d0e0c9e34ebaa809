package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gastosapp/gastos_backend/internal/apperrors"
	"github.com/gastosapp/gastos_backend/internal/core/domain"
	portssvc "github.com/gastosapp/gastos_backend/internal/core/ports/services"
	"github.com/gastosapp/gastos_backend/internal/dto"
	"github.com/gastosapp/gastos_backend/internal/handlers"
	"github.com/gastosapp/gastos_backend/internal/middleware"
	"github.com/gastosapp/gastos_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) CreateDraft(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) GetExpenseByID(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams, requestingUserID string) (*dto.ListExpensesResponse, error) {
	args := m.Called(ctx, params, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListExpensesResponse), args.Error(1)
}
func (m *MockExpenseService) UpdateDraft(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, actorUserID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, req, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) DeleteExpense(ctx context.Context, expenseID string, actorUserID string) error {
	args := m.Called(ctx, expenseID, actorUserID)
	return args.Error(0)
}
func (m *MockExpenseService) Submit(ctx context.Context, expenseID string, actorUserID string) (*dto.SubmitExpenseResult, error) {
	args := m.Called(ctx, expenseID, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SubmitExpenseResult), args.Error(1)
}
func (m *MockExpenseService) Approve(ctx context.Context, expenseID string, actorUserID string, observations string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, actorUserID, observations)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) Reject(ctx context.Context, expenseID string, actorUserID string, motivo string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, actorUserID, motivo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) MarkPaid(ctx context.Context, expenseID string, actorUserID string, metodoPago string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, actorUserID, metodoPago)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) Annul(ctx context.Context, expenseID string, actorUserID string, motivo string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, actorUserID, motivo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

// --- Mock DocumentService ---
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) AttachDocument(ctx context.Context, expenseID string, req dto.AttachDocumentRequest, actorUserID string) (*domain.ExpenseDocument, error) {
	args := m.Called(ctx, expenseID, req, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseDocument), args.Error(1)
}
func (m *MockDocumentService) ListDocuments(ctx context.Context, expenseID string, requestingUserID string) ([]domain.ExpenseDocument, error) {
	args := m.Called(ctx, expenseID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseDocument), args.Error(1)
}
func (m *MockDocumentService) ExtractFields(ctx context.Context, req dto.OCRExtractRequest) (*domain.OCRExtraction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OCRExtraction), args.Error(1)
}

var _ portssvc.DocumentSvcFacade = (*MockDocumentService)(nil)

// --- Test Suite ---
type ExpenseHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockExpenseService  *MockExpenseService
	mockDocumentService *MockDocumentService
	jwtSecret           string
}

func (suite *ExpenseHandlerTestSuite) generateTestToken(userID string, roles ...domain.Role) string {
	token, err := utils.GenerateJWT(userID, roles, suite.jwtSecret, time.Hour, "gastos-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *ExpenseHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockExpenseService = new(MockExpenseService)
	suite.mockDocumentService = new(MockDocumentService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterExpenseRoutes(v1, suite.mockExpenseService, suite.mockDocumentService)
}

func (suite *ExpenseHandlerTestSuite) doJSON(method, url, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func sampleExpense(creatorUserID string) *domain.Expense {
	benType := domain.BeneficiaryProveedor
	now := time.Now().UTC()
	return &domain.Expense{
		ExpenseID:    uuid.NewString(),
		Code:         "GTO-2026-000123",
		CompanyID:    uuid.NewString(),
		Glosa:        "Taxi to client site",
		Amount:       decimal.NewFromInt(120),
		CurrencyCode: "PEN",
		ExpenseDate:  now,
		ConceptID:    uuid.NewString(),
		Status:       domain.ExpenseDraft,
		Beneficiary: domain.Beneficiary{
			Type:           &benType,
			DocumentNumber: "20100047218",
			Name:           "Taxi Seguro SAC",
		},
		Version: 1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
}

// --- Test Cases ---

func (suite *ExpenseHandlerTestSuite) TestCreateDraft_Success() {
	creatorUserID := uuid.NewString()
	expected := sampleExpense(creatorUserID)

	suite.mockExpenseService.On("CreateDraft",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateExpenseRequest) bool {
			return req.Glosa == "Taxi to client site" && req.CurrencyCode == "PEN"
		}),
		creatorUserID,
	).Return(expected, nil).Once()

	body := dto.CreateExpenseRequest{
		Glosa:        "Taxi to client site",
		Amount:       decimal.NewFromInt(120),
		CurrencyCode: "PEN",
		ExpenseDate:  time.Now().UTC(),
		ConceptID:    expected.ConceptID,
	}
	token := suite.generateTestToken(creatorUserID, domain.RoleColaborador)
	w := suite.doJSON(http.MethodPost, "/api/v1/expenses", token, body)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.ExpenseResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.ExpenseID, resp.ExpenseID)
	suite.Equal("GTO-2026-000123", resp.Code)
	suite.Equal(domain.ExpenseDraft, resp.Status)

	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestCreateDraft_MissingAmount() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleColaborador)
	w := suite.doJSON(http.MethodPost, "/api/v1/expenses", token, gin.H{
		"glosa":        "no amount",
		"currencyCode": "PEN",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockExpenseService.AssertNotCalled(suite.T(), "CreateDraft")
}

func (suite *ExpenseHandlerTestSuite) TestGetExpense_NotFound() {
	userID := uuid.NewString()
	expenseID := uuid.NewString()

	suite.mockExpenseService.On("GetExpenseByID", mock.Anything, expenseID, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	token := suite.generateTestToken(userID, domain.RoleColaborador)
	w := suite.doJSON(http.MethodGet, "/api/v1/expenses/"+expenseID, token, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestListExpenses_Unauthenticated() {
	w := suite.doJSON(http.MethodGet, "/api/v1/expenses", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockExpenseService.AssertNotCalled(suite.T(), "ListExpenses")
}

func (suite *ExpenseHandlerTestSuite) TestListExpenses_PassesFilters() {
	userID := uuid.NewString()
	status := string(domain.ExpensePending)
	expected := &dto.ListExpensesResponse{
		Expenses: []dto.ExpenseResponse{dto.ToExpenseResponse(sampleExpense(userID))},
	}

	suite.mockExpenseService.On("ListExpenses",
		mock.Anything,
		mock.MatchedBy(func(p dto.ListExpensesParams) bool {
			return p.Limit == 5 && p.Status != nil && *p.Status == status
		}),
		userID,
	).Return(expected, nil).Once()

	token := suite.generateTestToken(userID, domain.RoleAprobador)
	url := fmt.Sprintf("/api/v1/expenses?limit=5&status=%s", status)
	w := suite.doJSON(http.MethodGet, url, token, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListExpensesResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Expenses, 1)
	suite.Nil(resp.NextToken)

	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestSubmit_ReportsMissingDocuments() {
	userID := uuid.NewString()
	exp := sampleExpense(userID)
	exp.Status = domain.ExpensePending
	result := &dto.SubmitExpenseResult{
		Expense:          dto.ToExpenseResponse(exp),
		MissingDocuments: []domain.DocumentType{domain.DocFactura},
	}

	suite.mockExpenseService.On("Submit", mock.Anything, exp.ExpenseID, userID).
		Return(result, nil).Once()

	token := suite.generateTestToken(userID, domain.RoleColaborador)
	w := suite.doJSON(http.MethodPost, "/api/v1/expenses/"+exp.ExpenseID+"/submit", token, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.SubmitExpenseResult
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.ExpensePending, resp.Expense.Status)
	suite.Equal([]domain.DocumentType{domain.DocFactura}, resp.MissingDocuments)

	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestApprove_VersionConflict() {
	userID := uuid.NewString()
	expenseID := uuid.NewString()

	suite.mockExpenseService.On("Approve", mock.Anything, expenseID, userID, "").
		Return(nil, apperrors.ErrVersionConflict).Once()

	token := suite.generateTestToken(userID, domain.RoleAprobador)
	w := suite.doJSON(http.MethodPost, "/api/v1/expenses/"+expenseID+"/approve", token, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestApprove_MissingExchangeRate() {
	userID := uuid.NewString()
	expenseID := uuid.NewString()

	suite.mockExpenseService.On("Approve", mock.Anything, expenseID, userID, "").
		Return(nil, fmt.Errorf("%w: currency USD", domain.ErrMissingExchangeRate)).Once()

	token := suite.generateTestToken(userID, domain.RoleAprobador)
	w := suite.doJSON(http.MethodPost, "/api/v1/expenses/"+expenseID+"/approve", token, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "exchange rate")
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestReject_RequiresMotivo() {
	userID := uuid.NewString()
	expenseID := uuid.NewString()

	token := suite.generateTestToken(userID, domain.RoleAprobador)
	w := suite.doJSON(http.MethodPost, "/api/v1/expenses/"+expenseID+"/reject", token, gin.H{})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockExpenseService.AssertNotCalled(suite.T(), "Reject")
}

func (suite *ExpenseHandlerTestSuite) TestDeleteExpense_Forbidden() {
	userID := uuid.NewString()
	expenseID := uuid.NewString()

	suite.mockExpenseService.On("DeleteExpense", mock.Anything, expenseID, userID).
		Return(apperrors.ErrForbidden).Once()

	token := suite.generateTestToken(userID, domain.RoleColaborador)
	w := suite.doJSON(http.MethodDelete, "/api/v1/expenses/"+expenseID, token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockExpenseService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestExpenseHandler(t *testing.T) {
	suite.Run(t, new(ExpenseHandlerTestSuite))
}
