package services_test

import (
	"context"
	"testing"

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

// --- Mock ExpenseBatchRepository ---
type MockExpenseBatchRepository struct {
	mock.Mock
}

func (m *MockExpenseBatchRepository) SaveExpenseBatch(ctx context.Context, batch domain.ExpenseBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockExpenseBatchRepository) UpdateExpenseBatch(ctx context.Context, batch domain.ExpenseBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockExpenseBatchRepository) FindExpenseBatchByID(ctx context.Context, batchID string) (*domain.ExpenseBatch, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseBatch), args.Error(1)
}

func (m *MockExpenseBatchRepository) ListExpenseBatches(ctx context.Context, limit, offset int) ([]domain.ExpenseBatch, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseBatch), args.Error(1)
}

// --- Test Suite ---
type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo  *MockExpenseBatchRepository
	mockEmployeeRepo *MockEmployeeRepository
	service          portssvc.ExpenseSvcFacade
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseBatchRepository)
	suite.mockEmployeeRepo = new(MockEmployeeRepository)
	provider := &fakeRateTableProvider{table: fixedRateTable(suite.T())}
	suite.service = services.NewExpenseService(suite.mockExpenseRepo, suite.mockEmployeeRepo, provider)
}

// --- Test Cases ---

func (suite *ExpenseServiceTestSuite) TestCreateExpenseBatch_Success() {
	ctx := context.Background()
	empID := uuid.NewString()

	suite.mockEmployeeRepo.On("FindEmployeesByIDs", ctx, []string{empID}).
		Return(map[string]domain.Employee{empID: {EmployeeID: empID, Status: domain.EmployeeActive}}, nil).Once()
	suite.mockExpenseRepo.On("SaveExpenseBatch", ctx, mock.MatchedBy(func(b domain.ExpenseBatch) bool {
		return b.Status == domain.StatusDraft &&
			b.ItemCount == 1 &&
			b.Items[0].EmployeeID == empID &&
			b.Items[0].Description == "Team dinner"
	})).Return(nil).Once()

	batch, err := suite.service.CreateExpenseBatch(ctx, dto.CreateExpenseBatchRequest{
		Name: "July expenses",
		Items: []dto.ExpenseItemRequest{{
			EmployeeID:   empID,
			Description:  "Team dinner",
			Amount:       decimal.RequireFromString("200"),
			CurrencyCode: "EUR",
		}},
	}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(batch)
	// 200 EUR at 1.08 settles to 216; cross-currency fee is 20 + 0.5% of 216.
	suite.True(batch.TotalAmount.Equal(decimal.RequireFromString("216")))
	suite.True(batch.TotalFee.Equal(decimal.RequireFromString("21.08")))

	suite.mockExpenseRepo.AssertExpectations(suite.T())
	suite.mockEmployeeRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpenseBatch_UnknownEmployeeRejected() {
	ctx := context.Background()
	missingID := uuid.NewString()

	suite.mockEmployeeRepo.On("FindEmployeesByIDs", ctx, []string{missingID}).
		Return(map[string]domain.Employee{}, nil).Once()

	batch, err := suite.service.CreateExpenseBatch(ctx, dto.CreateExpenseBatchRequest{
		Name: "Bad batch",
		Items: []dto.ExpenseItemRequest{{
			EmployeeID:   missingID,
			Description:  "Taxi",
			Amount:       decimal.RequireFromString("30"),
			CurrencyCode: "USD",
		}},
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(batch)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpenseBatch")
}

func (suite *ExpenseServiceTestSuite) TestCreateExpenseBatch_NonPositiveAmountRejected() {
	ctx := context.Background()
	empID := uuid.NewString()

	suite.mockEmployeeRepo.On("FindEmployeesByIDs", ctx, []string{empID}).
		Return(map[string]domain.Employee{empID: {EmployeeID: empID}}, nil).Once()

	batch, err := suite.service.CreateExpenseBatch(ctx, dto.CreateExpenseBatchRequest{
		Name: "Refund batch",
		Items: []dto.ExpenseItemRequest{{
			EmployeeID:   empID,
			Description:  "Refund",
			Amount:       decimal.RequireFromString("-10"),
			CurrencyCode: "USD",
		}},
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(batch)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (suite *ExpenseServiceTestSuite) TestAdvanceExpenseBatch_SummaryToCheckout() {
	ctx := context.Background()
	batchID := uuid.NewString()
	batch := &domain.ExpenseBatch{
		ExpenseBatchID: batchID,
		Status:         domain.StatusSummary,
		Items: []domain.ExpenseItem{
			{ItemID: "exp-1", EmployeeID: "emp-1", Amount: decimal.RequireFromString("100"), CurrencyCode: "USD"},
		},
	}

	suite.mockExpenseRepo.On("FindExpenseBatchByID", ctx, batchID).Return(batch, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpenseBatch", ctx, mock.MatchedBy(func(b domain.ExpenseBatch) bool {
		return b.Status == domain.StatusCheckout
	})).Return(nil).Once()

	advanced, err := suite.service.AdvanceExpenseBatch(ctx, batchID, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCheckout, advanced.Status)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCheckoutExpenseBatch_Success() {
	ctx := context.Background()
	batchID := uuid.NewString()
	batch := &domain.ExpenseBatch{
		ExpenseBatchID: batchID,
		Status:         domain.StatusCheckout,
		Items: []domain.ExpenseItem{
			{ItemID: "exp-1", EmployeeID: "emp-1", Amount: decimal.RequireFromString("100"), CurrencyCode: "USD"},
		},
	}

	suite.mockExpenseRepo.On("FindExpenseBatchByID", ctx, batchID).Return(batch, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpenseBatch", ctx, mock.MatchedBy(func(b domain.ExpenseBatch) bool {
		return b.Status == domain.StatusPaid && b.PaymentCurrency == "USD"
	})).Return(nil).Once()

	quote, err := suite.service.CheckoutExpenseBatch(ctx, batchID, "USD", uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(quote)
	// Fiat settlement currency: no surcharge, payable equals the base total.
	suite.True(quote.BaseTotal.Equal(decimal.RequireFromString("110")))
	suite.True(quote.CryptoSurcharge.IsZero())
	suite.True(quote.Payable.Equal(decimal.RequireFromString("110")))

	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCheckoutExpenseBatch_UnconvertibleItemBlocks() {
	ctx := context.Background()
	batchID := uuid.NewString()
	batch := &domain.ExpenseBatch{
		ExpenseBatchID: batchID,
		Status:         domain.StatusCheckout,
		Items: []domain.ExpenseItem{
			{ItemID: "exp-1", EmployeeID: "emp-1", Amount: decimal.RequireFromString("100"), CurrencyCode: "ZWL"},
		},
	}

	suite.mockExpenseRepo.On("FindExpenseBatchByID", ctx, batchID).Return(batch, nil).Once()

	quote, err := suite.service.CheckoutExpenseBatch(ctx, batchID, "USD", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(quote)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "exp-1")
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "UpdateExpenseBatch")
}

func (suite *ExpenseServiceTestSuite) TestSummarizeExpenseBatch_ReportsFailedItems() {
	ctx := context.Background()
	batchID := uuid.NewString()
	batch := &domain.ExpenseBatch{
		ExpenseBatchID: batchID,
		Status:         domain.StatusReview,
		Items: []domain.ExpenseItem{
			{ItemID: "exp-1", EmployeeID: "emp-1", Amount: decimal.RequireFromString("100"), CurrencyCode: "USD"},
			{ItemID: "exp-2", EmployeeID: "emp-2", Amount: decimal.RequireFromString("50"), CurrencyCode: "ZWL"},
		},
	}

	suite.mockExpenseRepo.On("FindExpenseBatchByID", ctx, batchID).Return(batch, nil).Once()

	summary, failed, err := suite.service.SummarizeExpenseBatch(ctx, batchID)

	suite.Require().NoError(err)
	suite.Require().NotNil(summary)
	suite.Len(failed, 1)
	suite.Contains(failed, "exp-2")
	suite.True(summary.TotalSettlementValue.Equal(decimal.RequireFromString("100")))
}

func (suite *ExpenseServiceTestSuite) TestCancelExpenseBatch_PaidRejected() {
	ctx := context.Background()
	batchID := uuid.NewString()
	batch := &domain.ExpenseBatch{ExpenseBatchID: batchID, Status: domain.StatusPaid}

	suite.mockExpenseRepo.On("FindExpenseBatchByID", ctx, batchID).Return(batch, nil).Once()

	cancelled, err := suite.service.CancelExpenseBatch(ctx, batchID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(cancelled)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "UpdateExpenseBatch")
}

// --- Run Suite ---
func TestExpenseService(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
