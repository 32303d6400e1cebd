package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finstock/finstock_backend/internal/apperrors"
	"github.com/finstock/finstock_backend/internal/core/domain"
	portssvc "github.com/finstock/finstock_backend/internal/core/ports/services"
	"github.com/finstock/finstock_backend/internal/core/services"
	"github.com/finstock/finstock_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type DebtServiceTestSuite struct {
	suite.Suite
	mockDebtRepo    *MockDebtRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.DebtSvcFacade
	purchase        domain.Purchase
	cashAccount     domain.FinancialAccount
	userID          string
}

func (suite *DebtServiceTestSuite) SetupTest() {
	suite.mockDebtRepo = new(MockDebtRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewDebtServiceImpl(suite.mockDebtRepo, suite.mockAccountRepo, false, "USD")

	suite.userID = uuid.NewString()
	suite.purchase = domain.Purchase{
		PurchaseID:        uuid.NewString(),
		SupplierID:        uuid.NewString(),
		TotalAmount:       decimal.NewFromInt(1000),
		PaidAmount:        decimal.NewFromInt(400),
		OutstandingAmount: decimal.NewFromInt(600),
		IsPaid:            false,
		PurchaseDate:      time.Now().AddDate(0, 0, -7),
	}
	suite.cashAccount = domain.FinancialAccount{
		AccountID:   uuid.NewString(),
		Name:        "Till",
		AccountType: domain.Cash,
		Balance:     decimal.NewFromInt(800),
		IsActive:    true,
	}
}

func (suite *DebtServiceTestSuite) TestRecordPurchasePayment_Success() {
	ctx := context.Background()
	req := dto.RecordPurchasePaymentRequest{
		PurchaseID:    suite.purchase.PurchaseID,
		PaidAmount:    decimal.NewFromInt(600),
		PaymentMethod: domain.PayCash,
		PaymentDate:   time.Now(),
	}
	settled := suite.purchase
	settled.PaidAmount = settled.TotalAmount
	settled.OutstandingAmount = decimal.Zero
	settled.IsPaid = true

	suite.mockDebtRepo.On("FindPurchaseByID", ctx, suite.purchase.PurchaseID).Return(&suite.purchase, nil).Once()
	suite.mockDebtRepo.On("RecordPurchasePayment", ctx, mock.MatchedBy(func(p domain.PurchaseDebtTracker) bool {
		return p.PurchaseID == suite.purchase.PurchaseID &&
			p.PaidAmount.Equal(decimal.NewFromInt(600)) &&
			p.PaymentMethod == domain.PayCash
	}), (*domain.Transaction)(nil), false).Return(&settled, nil).Once()

	purchase, payment, err := suite.service.RecordPurchasePayment(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(purchase)
	suite.Require().NotNil(payment)
	suite.True(purchase.IsPaid)
	suite.NotEmpty(payment.PaymentID)
	suite.Equal(suite.userID, payment.CreatedBy)
	suite.mockDebtRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestRecordPurchasePayment_MirrorsLedgerWhenAccountGiven() {
	ctx := context.Background()
	req := dto.RecordPurchasePaymentRequest{
		PurchaseID:         suite.purchase.PurchaseID,
		PaidAmount:         decimal.NewFromInt(250),
		PaymentMethod:      domain.PayBankTransfer,
		PaymentDate:        time.Now(),
		FinancialAccountID: &suite.cashAccount.AccountID,
	}
	updated := suite.purchase
	updated.PaidAmount = decimal.NewFromInt(650)
	updated.OutstandingAmount = decimal.NewFromInt(350)

	suite.mockDebtRepo.On("FindPurchaseByID", ctx, suite.purchase.PurchaseID).Return(&suite.purchase, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockDebtRepo.On("RecordPurchasePayment", ctx, mock.AnythingOfType("domain.PurchaseDebtTracker"),
		mock.MatchedBy(func(txn *domain.Transaction) bool {
			// The ledger leg takes the money out of the paying account.
			return txn != nil &&
				txn.Type == domain.Payment &&
				txn.Status == domain.Completed &&
				txn.FromAccountID != nil && *txn.FromAccountID == suite.cashAccount.AccountID &&
				txn.Amount.Equal(decimal.NewFromInt(250)) &&
				txn.CurrencyCode == "USD"
		}), false).Return(&updated, nil).Once()

	purchase, payment, err := suite.service.RecordPurchasePayment(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.False(purchase.IsPaid)
	suite.Equal(suite.cashAccount.AccountID, *payment.FinancialAccountID)
	suite.mockDebtRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestRecordPurchasePayment_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.RecordPurchasePaymentRequest{
		PurchaseID:    suite.purchase.PurchaseID,
		PaidAmount:    decimal.Zero,
		PaymentMethod: domain.PayCash,
		PaymentDate:   time.Now(),
	}

	_, _, err := suite.service.RecordPurchasePayment(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "FindPurchaseByID", mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestRecordPurchasePayment_OverpaymentRejected() {
	ctx := context.Background()
	req := dto.RecordPurchasePaymentRequest{
		PurchaseID:    suite.purchase.PurchaseID,
		PaidAmount:    decimal.NewFromInt(601), // Outstanding is 600
		PaymentMethod: domain.PayCash,
		PaymentDate:   time.Now(),
	}

	suite.mockDebtRepo.On("FindPurchaseByID", ctx, suite.purchase.PurchaseID).Return(&suite.purchase, nil).Once()

	_, _, err := suite.service.RecordPurchasePayment(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "RecordPurchasePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestRecordPurchasePayment_OverpaymentAllowedWhenConfigured() {
	ctx := context.Background()
	lenient := services.NewDebtServiceImpl(suite.mockDebtRepo, suite.mockAccountRepo, true, "USD")
	req := dto.RecordPurchasePaymentRequest{
		PurchaseID:    suite.purchase.PurchaseID,
		PaidAmount:    decimal.NewFromInt(601),
		PaymentMethod: domain.PayCash,
		PaymentDate:   time.Now(),
	}
	overpaid := suite.purchase
	overpaid.PaidAmount = decimal.NewFromInt(1001)
	overpaid.OutstandingAmount = decimal.NewFromInt(-1)
	overpaid.IsPaid = true

	suite.mockDebtRepo.On("FindPurchaseByID", ctx, suite.purchase.PurchaseID).Return(&suite.purchase, nil).Once()
	suite.mockDebtRepo.On("RecordPurchasePayment", ctx, mock.AnythingOfType("domain.PurchaseDebtTracker"),
		(*domain.Transaction)(nil), true).Return(&overpaid, nil).Once()

	purchase, _, err := lenient.RecordPurchasePayment(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(purchase.IsPaid)
	suite.mockDebtRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestRecordPurchasePayment_InactiveAccountRejected() {
	ctx := context.Background()
	inactive := suite.cashAccount
	inactive.IsActive = false
	req := dto.RecordPurchasePaymentRequest{
		PurchaseID:         suite.purchase.PurchaseID,
		PaidAmount:         decimal.NewFromInt(100),
		PaymentMethod:      domain.PayCash,
		PaymentDate:        time.Now(),
		FinancialAccountID: &inactive.AccountID,
	}

	suite.mockDebtRepo.On("FindPurchaseByID", ctx, suite.purchase.PurchaseID).Return(&suite.purchase, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, inactive.AccountID).Return(&inactive, nil).Once()

	_, _, err := suite.service.RecordPurchasePayment(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "RecordPurchasePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestRecordPurchasePayment_PurchaseNotFound() {
	ctx := context.Background()
	req := dto.RecordPurchasePaymentRequest{
		PurchaseID:    uuid.NewString(),
		PaidAmount:    decimal.NewFromInt(100),
		PaymentMethod: domain.PayCash,
		PaymentDate:   time.Now(),
	}

	suite.mockDebtRepo.On("FindPurchaseByID", ctx, req.PurchaseID).Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.RecordPurchasePayment(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DebtServiceTestSuite) TestListPaymentsByPurchase_PurchaseMustExist() {
	ctx := context.Background()
	purchaseID := uuid.NewString()

	suite.mockDebtRepo.On("FindPurchaseByID", ctx, purchaseID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListPaymentsByPurchase(ctx, purchaseID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "ListPaymentsByPurchase", mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestListUnpaidPurchases_Delegates() {
	ctx := context.Background()
	unpaid := []domain.Purchase{suite.purchase}

	suite.mockDebtRepo.On("ListUnpaidPurchases", ctx, 20, 0).Return(unpaid, nil).Once()

	got, err := suite.service.ListUnpaidPurchases(ctx, 20, 0)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.mockDebtRepo.AssertExpectations(suite.T())
}

func TestDebtService(t *testing.T) {
	suite.Run(t, new(DebtServiceTestSuite))
}
