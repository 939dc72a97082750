package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/paylinear/payroll_backend/internal/apperrors"
	"github.com/paylinear/payroll_backend/internal/core/domain"
	portssvc "github.com/paylinear/payroll_backend/internal/core/ports/services"
	"github.com/paylinear/payroll_backend/internal/core/services"
	"github.com/paylinear/payroll_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindRateByCurrency(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListLatestRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

// --- Test Suite ---
type RateServiceTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.RateSvcFacade
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewRateService(suite.mockRateRepo, suite.mockCurrencyRepo, "USD", []string{"USDT"})
}

// --- Test Cases ---

func (suite *RateServiceTestSuite) TestCreateExchangeRate_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateExchangeRateRequest{
		CurrencyCode:  "EUR",
		RateToUSD:     decimal.RequireFromString("1.08"),
		DateEffective: time.Now(),
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(&domain.Currency{CurrencyCode: "EUR"}, nil).Once()
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.CurrencyCode == "EUR" && r.RateToUSD.Equal(req.RateToUSD) && r.CreatedBy == creatorUserID
	})).Return(nil).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.Equal("EUR", rate.CurrencyCode)
	suite.NotEmpty(rate.ExchangeRateID)

	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestCreateExchangeRate_NonPositiveRejected() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		CurrencyCode:  "EUR",
		RateToUSD:     decimal.Zero,
		DateEffective: time.Now(),
	}

	rate, err := suite.service.CreateExchangeRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate")
}

func (suite *RateServiceTestSuite) TestCreateExchangeRate_SettlementMustStayOne() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		CurrencyCode:  "USD",
		RateToUSD:     decimal.RequireFromString("1.05"),
		DateEffective: time.Now(),
	}

	rate, err := suite.service.CreateExchangeRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate")
}

func (suite *RateServiceTestSuite) TestCreateExchangeRate_UnknownCurrencyRejected() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		CurrencyCode:  "DOGE",
		RateToUSD:     decimal.RequireFromString("0.1"),
		DateEffective: time.Now(),
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "DOGE").Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate")
}

func (suite *RateServiceTestSuite) TestRateTable_BuildsSnapshotWithSettlementForcedToOne() {
	ctx := context.Background()
	stored := []domain.ExchangeRate{
		{CurrencyCode: "EUR", RateToUSD: decimal.RequireFromString("1.08")},
		{CurrencyCode: "BTC", RateToUSD: decimal.RequireFromString("65000")},
	}
	currencies := []domain.Currency{
		{CurrencyCode: "USD"},
		{CurrencyCode: "EUR"},
		{CurrencyCode: "BTC", IsCrypto: true},
	}

	suite.mockRateRepo.On("ListLatestRates", ctx).Return(stored, nil).Once()
	suite.mockCurrencyRepo.On("ListCurrencies", ctx).Return(currencies, nil).Once()

	table, err := suite.service.RateTable(ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(table)

	usdRate, err := table.Rate("USD")
	suite.Require().NoError(err)
	suite.True(usdRate.Equal(decimal.NewFromInt(1)))

	eurRate, err := table.Rate("EUR")
	suite.Require().NoError(err)
	suite.True(eurRate.Equal(decimal.RequireFromString("1.08")))

	// Crypto flags merge the configured list with the store's flags.
	suite.True(table.IsCrypto("BTC"))
	suite.True(table.IsCrypto("USDT"))
	suite.False(table.IsCrypto("EUR"))

	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestRateTable_SnapshotIsCached() {
	ctx := context.Background()

	suite.mockRateRepo.On("ListLatestRates", ctx).Return([]domain.ExchangeRate{}, nil).Once()
	suite.mockCurrencyRepo.On("ListCurrencies", ctx).Return([]domain.Currency{}, nil).Once()

	first, err := suite.service.RateTable(ctx)
	suite.Require().NoError(err)

	// Second call must reuse the snapshot without touching the repos.
	second, err := suite.service.RateTable(ctx)
	suite.Require().NoError(err)
	suite.Same(first, second)

	suite.mockRateRepo.AssertNumberOfCalls(suite.T(), "ListLatestRates", 1)
}

func (suite *RateServiceTestSuite) TestCreateExchangeRate_InvalidatesSnapshot() {
	ctx := context.Background()

	suite.mockRateRepo.On("ListLatestRates", ctx).Return([]domain.ExchangeRate{}, nil).Twice()
	suite.mockCurrencyRepo.On("ListCurrencies", ctx).Return([]domain.Currency{}, nil).Twice()

	_, err := suite.service.RateTable(ctx)
	suite.Require().NoError(err)

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(&domain.Currency{CurrencyCode: "EUR"}, nil).Once()
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(nil).Once()

	_, err = suite.service.CreateExchangeRate(ctx, dto.CreateExchangeRateRequest{
		CurrencyCode:  "EUR",
		RateToUSD:     decimal.RequireFromString("1.10"),
		DateEffective: time.Now(),
	}, uuid.NewString())
	suite.Require().NoError(err)

	// The write dropped the snapshot, so the next read rebuilds it.
	_, err = suite.service.RateTable(ctx)
	suite.Require().NoError(err)

	suite.mockRateRepo.AssertNumberOfCalls(suite.T(), "ListLatestRates", 2)
}

func (suite *RateServiceTestSuite) TestRefreshRateTable_RepoError() {
	ctx := context.Background()

	suite.mockRateRepo.On("ListLatestRates", ctx).Return(nil, apperrors.ErrNotFound).Once()

	table, err := suite.service.RefreshRateTable(ctx)

	suite.Require().Error(err)
	suite.Nil(table)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestRateService(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
