package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/nvcfn/swiftgate/internal/apperrors"
	"github.com/nvcfn/swiftgate/internal/core/domain"
	"github.com/nvcfn/swiftgate/internal/core/services"
	"github.com/nvcfn/swiftgate/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) DeactivateExchangeRate(ctx context.Context, fromCode, toCode string) error {
	args := m.Called(ctx, fromCode, toCode)
	return args.Error(0)
}

// --- Mock GoldFeed ---
type MockGoldFeed struct {
	mock.Mock
}

func (m *MockGoldFeed) CurrentPrice(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockExchangeRateRepository
	mockGoldFeed *MockGoldFeed
	service      *services.ExchangeRateService
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockGoldFeed = new(MockGoldFeed)
	// The real registry already knows the fiat majors and platform tokens.
	currencySvc := services.NewCurrencyService()
	suite.service = services.NewExchangeRateService(suite.mockRateRepo, currencySvc, suite.mockGoldFeed, "NVCT")
}

// --- Test Cases ---

func (suite *ExchangeRateServiceTestSuite) TestPutRate_Success() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		FromCurrencyCode: "usd",
		ToCurrencyCode:   "eur",
		Rate:             decimal.RequireFromString("0.85"),
	}

	var saved domain.ExchangeRate
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.ExchangeRate) }).
		Return(nil).Once()

	rate, err := suite.service.PutRate(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.NotEmpty(rate.ExchangeRateID)
	suite.Equal("USD", rate.FromCurrencyCode)
	suite.Equal("EUR", rate.ToCurrencyCode)
	suite.True(rate.Active)
	suite.Equal("manual", rate.Source)
	suite.Equal("user-1", rate.CreatedBy)

	// The stored inverse must reconstruct the rate to within rounding noise.
	product := saved.Rate.Mul(saved.InverseRate)
	drift := product.Sub(decimal.NewFromInt(1)).Abs()
	suite.True(drift.LessThan(decimal.RequireFromString("0.000000001")),
		"rate*inverse drifted by %s", drift)

	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestPutRate_RejectsNonPositiveRate() {
	ctx := context.Background()
	for _, bad := range []decimal.Decimal{decimal.Zero, decimal.RequireFromString("-0.5")} {
		req := dto.CreateExchangeRateRequest{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Rate: bad}
		rate, err := suite.service.PutRate(ctx, req, "user-1")
		suite.Require().Error(err)
		suite.Nil(rate)
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.Contains(err.Error(), "must be positive")
	}
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate")
}

func (suite *ExchangeRateServiceTestSuite) TestPutRate_RejectsSamePair() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{FromCurrencyCode: "USD", ToCurrencyCode: "usd", Rate: decimal.NewFromInt(1)}

	rate, err := suite.service.PutRate(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "cannot be the same")
}

func (suite *ExchangeRateServiceTestSuite) TestPutRate_RejectsUnregisteredCurrency() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{FromCurrencyCode: "XXX", ToCurrencyCode: "EUR", Rate: decimal.NewFromInt(2)}

	rate, err := suite.service.PutRate(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "'from' currency code")
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate")
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_MalformedPair() {
	ctx := context.Background()
	rate, err := suite.service.GetRate(ctx, "U$", "EUR")
	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_Found() {
	ctx := context.Background()
	expected := &domain.ExchangeRate{FromCurrencyCode: "USD", ToCurrencyCode: "EUR"}
	suite.mockRateRepo.On("FindExchangeRate", ctx, "USD", "EUR").Return(expected, nil).Once()

	rate, err := suite.service.GetRate(ctx, "usd", "eur")

	suite.Require().NoError(err)
	suite.Equal(expected, rate)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestDeactivateRate() {
	ctx := context.Background()
	suite.mockRateRepo.On("DeactivateExchangeRate", ctx, "USD", "EUR").Return(nil).Once()

	err := suite.service.DeactivateRate(ctx, "usd", "eur", "user-1")

	suite.Require().NoError(err)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestSeedDefaultRates_InsertsAllPairs() {
	ctx := context.Background()
	goldPrice := decimal.RequireFromString("3394.00")
	suite.mockGoldFeed.On("CurrentPrice", ctx).Return(goldPrice, nil).Once()

	suite.mockRateRepo.On("FindExchangeRate", ctx, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrNotFound)

	var saved []domain.ExchangeRate
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).
		Run(func(args mock.Arguments) { saved = append(saved, args.Get(1).(domain.ExchangeRate)) }).
		Return(nil)

	err := suite.service.SeedDefaultRates(ctx)
	suite.Require().NoError(err)

	byPair := make(map[string]domain.ExchangeRate, len(saved))
	for _, rate := range saved {
		byPair[rate.FromCurrencyCode+"_"+rate.ToCurrencyCode] = rate
		suite.Equal("system_default", rate.Source)
		suite.True(rate.Active)
	}

	suite.True(byPair["NVCT_USD"].Rate.Equal(decimal.NewFromInt(1)), "base token pegged 1:1 to USD")
	suite.True(byPair["USD_EUR"].Rate.Equal(decimal.RequireFromString("0.92")))
	suite.True(byPair["SFN_NVCT"].Rate.Equal(decimal.NewFromInt(1)))
	suite.True(byPair["AKLUMI_USD"].Rate.Equal(decimal.RequireFromString("100.0")))

	// The gold-pegged token seeds at 10% of the gold price.
	suite.True(byPair["AFD1_USD"].Rate.Equal(decimal.RequireFromString("339.40")),
		"AFD1 seed was %s", byPair["AFD1_USD"].Rate)
}

func (suite *ExchangeRateServiceTestSuite) TestSeedDefaultRates_SkipsExistingPairs() {
	ctx := context.Background()
	suite.mockGoldFeed.On("CurrentPrice", ctx).Return(decimal.Zero, fmt.Errorf("feed offline")).Once()

	// Every pair already has a record; a reseed must not overwrite anything.
	existing := &domain.ExchangeRate{ExchangeRateID: "existing", Active: true}
	suite.mockRateRepo.On("FindExchangeRate", ctx, mock.Anything, mock.Anything).
		Return(existing, nil)

	err := suite.service.SeedDefaultRates(ctx)

	suite.Require().NoError(err)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate")
}

func (suite *ExchangeRateServiceTestSuite) TestSeedDefaultRates_GoldFeedFailureSkipsGoldPair() {
	ctx := context.Background()
	suite.mockGoldFeed.On("CurrentPrice", ctx).Return(decimal.Zero, fmt.Errorf("feed offline")).Once()

	suite.mockRateRepo.On("FindExchangeRate", ctx, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrNotFound)

	var saved []domain.ExchangeRate
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).
		Run(func(args mock.Arguments) { saved = append(saved, args.Get(1).(domain.ExchangeRate)) }).
		Return(nil)

	err := suite.service.SeedDefaultRates(ctx)
	suite.Require().NoError(err)

	for _, rate := range saved {
		suite.NotEqual("AFD1", rate.FromCurrencyCode, "gold pair must be skipped when the feed is down")
	}
	suite.NotEmpty(saved, "the static pairs still seed without the gold feed")
}

// --- Run Suite ---
func TestExchangeRateService(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
