package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ratbook/ratbook_backend/internal/apperrors"
	"github.com/ratbook/ratbook_backend/internal/core/domain"
	portssvc "github.com/ratbook/ratbook_backend/internal/core/ports/services"
	"github.com/ratbook/ratbook_backend/internal/dto"
	"github.com/ratbook/ratbook_backend/internal/handlers"
	"github.com/ratbook/ratbook_backend/internal/middleware"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ratbook-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidators()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockAccountService = new(MockAccountService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterAccountRoutes(v1, suite.mockAccountService)
}

func (suite *AccountHandlerTestSuite) authedRequest(method, url string, body []byte, userID string) *http.Request {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Accept", "application/json")
	return req
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	userID := uuid.NewString()
	reqBody := dto.CreateAccountRequest{
		Code:          "11250",
		Name:          "Sewa Dibayar Dimuka",
		Category:      domain.CategoryAsset,
		NormalBalance: domain.NormalDebit,
	}
	body, _ := json.Marshal(reqBody)

	created := &domain.Account{
		AccountID:     uuid.NewString(),
		Code:          reqBody.Code,
		Name:          reqBody.Name,
		Category:      reqBody.Category,
		NormalBalance: reqBody.NormalBalance,
	}

	suite.mockAccountService.On("CreateAccount",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateAccountRequest) bool {
			return r.Code == reqBody.Code && r.Category == domain.CategoryAsset
		}),
		userID,
	).Return(created, nil).Once()

	req := suite.authedRequest(http.MethodPost, "/api/v1/accounts", body, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var response dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(created.AccountID, response.AccountID)
	suite.Equal("11250", response.Code)

	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidCategory() {
	userID := uuid.NewString()
	body := []byte(`{"code":"99999","name":"Aneh","category":"LAINNYA","normalBalance":"debit"}`)

	req := suite.authedRequest(http.MethodPost, "/api/v1/accounts", body, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateCode() {
	userID := uuid.NewString()
	reqBody := dto.CreateAccountRequest{
		Code:          "10100",
		Name:          "Kas Lagi",
		Category:      domain.CategoryAsset,
		NormalBalance: domain.NormalDebit,
	}
	body, _ := json.Marshal(reqBody)

	suite.mockAccountService.On("CreateAccount", mock.Anything, mock.AnythingOfType("dto.CreateAccountRequest"), userID).
		Return(nil, fmt.Errorf("%w: account code 10100 already exists", apperrors.ErrDuplicate)).Once()

	req := suite.authedRequest(http.MethodPost, "/api/v1/accounts", body, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListAccounts_Success() {
	userID := uuid.NewString()
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), Code: "10100", Name: "Kas", Category: domain.CategoryAsset, NormalBalance: domain.NormalDebit},
		{AccountID: uuid.NewString(), Code: "21000", Name: "Utang Usaha", Category: domain.CategoryLiability, NormalBalance: domain.NormalCredit},
	}

	suite.mockAccountService.On("ListAccounts", mock.Anything).Return(accounts, nil).Once()

	req := suite.authedRequest(http.MethodGet, "/api/v1/accounts", nil, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var response dto.ListAccountsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Len(response.Accounts, 2)
	suite.Equal("10100", response.Accounts[0].Code)

	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID", mock.Anything, accountID).
		Return(nil, apperrors.ErrNotFound).Once()

	req := suite.authedRequest(http.MethodGet, "/api/v1/accounts/"+accountID, nil, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_Referenced() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountService.On("DeleteAccount", mock.Anything, accountID).
		Return(fmt.Errorf("%w: account is referenced by journal entries", apperrors.ErrValidation)).Once()

	req := suite.authedRequest(http.MethodDelete, "/api/v1/accounts/"+accountID, nil, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_Success() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountService.On("DeleteAccount", mock.Anything, accountID).Return(nil).Once()

	req := suite.authedRequest(http.MethodDelete, "/api/v1/accounts/"+accountID, nil, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything)
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
