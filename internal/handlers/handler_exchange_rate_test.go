package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nvcfn/swiftgate/internal/apperrors"
	"github.com/nvcfn/swiftgate/internal/core/domain"
	portssvc "github.com/nvcfn/swiftgate/internal/core/ports/services"
	"github.com/nvcfn/swiftgate/internal/dto"
	"github.com/nvcfn/swiftgate/internal/handlers"
	"github.com/nvcfn/swiftgate/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}
func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}
func (m *MockCurrencyService) RegisterCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) GetRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}
func (m *MockExchangeRateService) PutRate(ctx context.Context, req dto.CreateExchangeRateRequest, updaterUserID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}
func (m *MockExchangeRateService) DeactivateRate(ctx context.Context, fromCode, toCode string, updaterUserID string) error {
	args := m.Called(ctx, fromCode, toCode, updaterUserID)
	return args.Error(0)
}
func (m *MockExchangeRateService) SeedDefaultRates(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

// --- Mock RateResolver ---
type MockRateResolver struct {
	mock.Mock
}

func (m *MockRateResolver) Resolve(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, fromCode, toCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockRateResolver) ResolveQuote(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, fromCode, toCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockRateResolver) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, fromCode, toCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.RateResolverSvc = (*MockRateResolver)(nil)

// --- Mock SwiftService ---
type MockSwiftService struct {
	mock.Mock
}

func (m *MockSwiftService) IssueStandbyLetterOfCredit(ctx context.Context, req dto.IssueLetterOfCreditRequest, userID string) (*domain.SwiftTransaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SwiftTransaction), args.Error(1)
}
func (m *MockSwiftService) IssueFundTransfer(ctx context.Context, req dto.IssueFundTransferRequest, userID string) (*domain.SwiftTransaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SwiftTransaction), args.Error(1)
}
func (m *MockSwiftService) SendFreeFormatMessage(ctx context.Context, req dto.FreeFormatMessageRequest, userID string) (*domain.SwiftTransaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SwiftTransaction), args.Error(1)
}
func (m *MockSwiftService) GetMessageStatus(ctx context.Context, reference string) (*domain.SwiftTransaction, *domain.DeliveryRecord, error) {
	args := m.Called(ctx, reference)
	var txn *domain.SwiftTransaction
	var record *domain.DeliveryRecord
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.SwiftTransaction)
	}
	if args.Get(1) != nil {
		record = args.Get(1).(*domain.DeliveryRecord)
	}
	return txn, record, args.Error(2)
}
func (m *MockSwiftService) ListUserMessages(ctx context.Context, userID string, limit int) ([]domain.SwiftTransaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SwiftTransaction), args.Error(1)
}
func (m *MockSwiftService) ListSwiftInstitutions(ctx context.Context) ([]domain.FinancialInstitution, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialInstitution), args.Error(1)
}

var _ portssvc.SwiftSvcFacade = (*MockSwiftService)(nil)

// --- Test Suite ---
type ExchangeRateHandlerTestSuite struct {
	suite.Suite
	router                  *gin.Engine
	mockCurrencyService     *MockCurrencyService
	mockExchangeRateService *MockExchangeRateService
	mockRateResolver        *MockRateResolver
	mockSwiftService        *MockSwiftService
}

func (suite *ExchangeRateHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockCurrencyService = new(MockCurrencyService)
	suite.mockExchangeRateService = new(MockExchangeRateService)
	suite.mockRateResolver = new(MockRateResolver)
	suite.mockSwiftService = new(MockSwiftService)

	services := &portssvc.ServiceContainer{
		Currency:     suite.mockCurrencyService,
		ExchangeRate: suite.mockExchangeRateService,
		RateResolver: suite.mockRateResolver,
		Swift:        suite.mockSwiftService,
	}
	handlers.RegisterRoutes(suite.router, &config.Config{}, services)
}

// serve issues a request with the identity header set and returns the
// recorder.
func (suite *ExchangeRateHandlerTestSuite) serve(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-1")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ExchangeRateHandlerTestSuite) TestResolveExchangeRate_Strict() {
	suite.mockRateResolver.On("Resolve", mock.Anything, "USD", "EUR").
		Return(decimal.NewFromFloat(0.92), nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/exchange-rates/USD/EUR", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.QuoteResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("USD", resp.FromCurrencyCode)
	suite.Equal("EUR", resp.ToCurrencyCode)
	suite.True(resp.Rate.Equal(decimal.NewFromFloat(0.92)))
	suite.False(resp.BestEffort)

	suite.mockRateResolver.AssertExpectations(suite.T())
	suite.mockRateResolver.AssertNotCalled(suite.T(), "ResolveQuote")
}

func (suite *ExchangeRateHandlerTestSuite) TestResolveExchangeRate_BestEffort() {
	suite.mockRateResolver.On("ResolveQuote", mock.Anything, "AFD1", "ZZZ").
		Return(decimal.NewFromInt(1), nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/exchange-rates/AFD1/ZZZ?best_effort=true", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.QuoteResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.BestEffort)
	suite.True(resp.Rate.Equal(decimal.NewFromInt(1)))

	suite.mockRateResolver.AssertNotCalled(suite.T(), "Resolve")
}

func (suite *ExchangeRateHandlerTestSuite) TestResolveExchangeRate_NotFound() {
	suite.mockRateResolver.On("Resolve", mock.Anything, "USD", "ZZZ").
		Return(decimal.Decimal{}, apperrors.ErrNotFound).Once()

	w := suite.serve(http.MethodGet, "/api/v1/exchange-rates/USD/ZZZ", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ExchangeRateHandlerTestSuite) TestResolveExchangeRate_MalformedCode() {
	w := suite.serve(http.MethodGet, "/api/v1/exchange-rates/usd/EUR", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRateResolver.AssertNotCalled(suite.T(), "Resolve")
}

func (suite *ExchangeRateHandlerTestSuite) TestMissingIdentityHeader() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/exchange-rates/USD/EUR", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRateResolver.AssertNotCalled(suite.T(), "Resolve")
}

func (suite *ExchangeRateHandlerTestSuite) TestPutExchangeRate() {
	saved := &domain.ExchangeRate{
		ExchangeRateID:   "rate-1",
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "NGN",
		Rate:             decimal.NewFromInt(1550),
		InverseRate:      decimal.NewFromInt(1).Div(decimal.NewFromInt(1550)),
		Source:           "manual",
		Active:           true,
	}
	suite.mockExchangeRateService.On("PutRate", mock.Anything, mock.MatchedBy(func(req dto.CreateExchangeRateRequest) bool {
		return req.FromCurrencyCode == "USD" && req.ToCurrencyCode == "NGN"
	}), "user-1").Return(saved, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/exchange-rates", dto.CreateExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "NGN",
		Rate:             decimal.NewFromInt(1550),
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ExchangeRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("rate-1", resp.ExchangeRateID)
	suite.mockExchangeRateService.AssertExpectations(suite.T())
}

func (suite *ExchangeRateHandlerTestSuite) TestPutExchangeRate_BindingRejectsBadCode() {
	w := suite.serve(http.MethodPost, "/api/v1/exchange-rates", map[string]any{
		"fromCurrencyCode": "u$",
		"toCurrencyCode":   "EUR",
		"rate":             "1.5",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockExchangeRateService.AssertNotCalled(suite.T(), "PutRate")
}

func (suite *ExchangeRateHandlerTestSuite) TestConvertAmount() {
	amount := decimal.NewFromInt(200)
	rate := decimal.NewFromFloat(0.85)
	suite.mockRateResolver.On("Resolve", mock.Anything, "USD", "EUR").Return(rate, nil).Once()
	suite.mockRateResolver.On("Convert", mock.Anything, amount, "USD", "EUR").
		Return(decimal.NewFromInt(170), nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/exchange-rates/convert", dto.ConvertRequest{
		Amount:           amount,
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "EUR",
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConvertResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.ConvertedAmount.Equal(decimal.NewFromInt(170)))
	suite.True(resp.Rate.Equal(rate))
	suite.mockRateResolver.AssertExpectations(suite.T())
}

func (suite *ExchangeRateHandlerTestSuite) TestDeactivateExchangeRate() {
	suite.mockExchangeRateService.On("DeactivateRate", mock.Anything, "USD", "EUR", "user-1").
		Return(nil).Once()

	w := suite.serve(http.MethodDelete, "/api/v1/exchange-rates/USD/EUR", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockExchangeRateService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestExchangeRateHandler(t *testing.T) {
	suite.Run(t, new(ExchangeRateHandlerTestSuite))
}
