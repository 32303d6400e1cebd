package services_test

import (
	"context"
	"testing"

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
type NoteServiceTestSuite struct {
	suite.Suite
	mockNoteRepo    *MockNoteRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.NoteSvcFacade
	cashAccount     domain.FinancialAccount
	userID          string
}

func (suite *NoteServiceTestSuite) SetupTest() {
	suite.mockNoteRepo = new(MockNoteRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewNoteServiceImpl(suite.mockNoteRepo, suite.mockAccountRepo, "USD")

	suite.userID = uuid.NewString()
	suite.cashAccount = domain.FinancialAccount{
		AccountID:   uuid.NewString(),
		Name:        "Till",
		AccountType: domain.Cash,
		Balance:     decimal.NewFromInt(1000),
		IsActive:    true,
	}
}

func noteItems(lineTotals ...int64) []dto.NoteItemRequest {
	items := make([]dto.NoteItemRequest, len(lineTotals))
	for i, t := range lineTotals {
		items[i] = dto.NoteItemRequest{
			Description: "Line item",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.NewFromInt(t),
			LineTotal:   decimal.NewFromInt(t),
		}
	}
	return items
}

// --- CreateCreditNote ---

func (suite *NoteServiceTestSuite) TestCreateCreditNote_Success() {
	ctx := context.Background()
	saleID := uuid.NewString()
	req := dto.CreateCreditNoteRequest{
		SaleID:      &saleID,
		CustomerID:  uuid.NewString(),
		Items:       noteItems(60, 40),
		SubTotal:    decimal.NewFromInt(100),
		TaxAmount:   decimal.NewFromInt(18),
		TotalAmount: decimal.NewFromInt(118),
		Reason:      "Damaged goods returned",
	}

	suite.mockNoteRepo.On("SaveCreditNote", ctx, mock.MatchedBy(func(n domain.CreditNote) bool {
		return n.Status == domain.NotePending &&
			n.TotalAmount.Equal(decimal.NewFromInt(118)) &&
			len(n.Items) == 2 &&
			n.Items[0].CreditNoteID == n.CreditNoteID
	})).Return(nil).Once()

	note, err := suite.service.CreateCreditNote(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(note)
	suite.NotEmpty(note.CreditNoteID)
	suite.Equal(domain.NotePending, note.Status)
	suite.Equal(suite.userID, note.CreatedBy)
	suite.mockNoteRepo.AssertExpectations(suite.T())
}

func (suite *NoteServiceTestSuite) TestCreateCreditNote_TotalsMismatch() {
	ctx := context.Background()
	req := dto.CreateCreditNoteRequest{
		CustomerID:  uuid.NewString(),
		Items:       noteItems(60, 40),
		SubTotal:    decimal.NewFromInt(120), // Items sum to 100
		TaxAmount:   decimal.Zero,
		TotalAmount: decimal.NewFromInt(120),
		Reason:      "Overcharge",
	}

	_, err := suite.service.CreateCreditNote(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.mockNoteRepo.AssertNotCalled(suite.T(), "SaveCreditNote", mock.Anything, mock.Anything)
}

func (suite *NoteServiceTestSuite) TestCreateCreditNote_ApplyImmediately() {
	ctx := context.Background()
	req := dto.CreateCreditNoteRequest{
		CustomerID:       uuid.NewString(),
		Items:            noteItems(50),
		SubTotal:         decimal.NewFromInt(50),
		TaxAmount:        decimal.Zero,
		TotalAmount:      decimal.NewFromInt(50),
		Reason:           "Price adjustment",
		ApplyImmediately: true,
	}

	applied := &domain.CreditNote{
		CreditNoteID: uuid.NewString(),
		TotalAmount:  decimal.NewFromInt(50),
		Status:       domain.NoteApplied,
		IsApplied:    true,
	}
	suite.mockNoteRepo.On("SaveCreditNote", ctx, mock.MatchedBy(func(n domain.CreditNote) bool {
		return n.Status == domain.NotePending
	})).Return(nil).Once()
	suite.mockNoteRepo.On("FindCreditNoteByID", ctx, mock.AnythingOfType("string")).
		Return(&domain.CreditNote{CreditNoteID: applied.CreditNoteID, TotalAmount: decimal.NewFromInt(50), Status: domain.NotePending}, nil).Once()
	suite.mockNoteRepo.On("ApplyCreditNote", ctx, mock.AnythingOfType("string"), "", (*domain.Transaction)(nil),
		suite.userID, mock.AnythingOfType("time.Time")).Return(applied, nil).Once()

	note, err := suite.service.CreateCreditNote(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.NoteApplied, note.Status)
	suite.True(note.IsApplied)
	suite.mockNoteRepo.AssertExpectations(suite.T())
}

func (suite *NoteServiceTestSuite) TestCreateCreditNote_AccountWithoutApplyImmediately() {
	ctx := context.Background()
	req := dto.CreateCreditNoteRequest{
		CustomerID:         uuid.NewString(),
		Items:              noteItems(50),
		SubTotal:           decimal.NewFromInt(50),
		TaxAmount:          decimal.Zero,
		TotalAmount:        decimal.NewFromInt(50),
		Reason:             "Price adjustment",
		FinancialAccountID: &suite.cashAccount.AccountID,
	}

	_, err := suite.service.CreateCreditNote(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockNoteRepo.AssertNotCalled(suite.T(), "SaveCreditNote", mock.Anything, mock.Anything)
}

// --- CreateDebitNote ---

func (suite *NoteServiceTestSuite) TestCreateDebitNote_WithPurchaseTarget() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	req := dto.CreateDebitNoteRequest{
		TargetKind:  domain.RefPurchase,
		TargetID:    &purchaseID,
		PartyID:     uuid.NewString(),
		Items:       noteItems(200),
		SubTotal:    decimal.NewFromInt(200),
		TaxAmount:   decimal.Zero,
		TotalAmount: decimal.NewFromInt(200),
		Reason:      "Under-invoiced delivery",
	}

	suite.mockNoteRepo.On("SaveDebitNote", ctx, mock.MatchedBy(func(n domain.DebitNote) bool {
		return n.Target.Kind == domain.RefPurchase && n.Target.ID == purchaseID && n.Status == domain.NotePending
	})).Return(nil).Once()

	note, err := suite.service.CreateDebitNote(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.RefPurchase, note.Target.Kind)
	suite.mockNoteRepo.AssertExpectations(suite.T())
}

func (suite *NoteServiceTestSuite) TestCreateDebitNote_TargetKindWithoutID() {
	ctx := context.Background()
	req := dto.CreateDebitNoteRequest{
		TargetKind:  domain.RefSale,
		PartyID:     uuid.NewString(),
		Items:       noteItems(50),
		SubTotal:    decimal.NewFromInt(50),
		TotalAmount: decimal.NewFromInt(50),
		Reason:      "Extra charge",
	}

	_, err := suite.service.CreateDebitNote(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockNoteRepo.AssertNotCalled(suite.T(), "SaveDebitNote", mock.Anything, mock.Anything)
}

func (suite *NoteServiceTestSuite) TestCreateDebitNote_TargetIDWithoutKind() {
	ctx := context.Background()
	targetID := uuid.NewString()
	req := dto.CreateDebitNoteRequest{
		TargetID:    &targetID,
		PartyID:     uuid.NewString(),
		Items:       noteItems(50),
		SubTotal:    decimal.NewFromInt(50),
		TotalAmount: decimal.NewFromInt(50),
		Reason:      "Extra charge",
	}

	_, err := suite.service.CreateDebitNote(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *NoteServiceTestSuite) TestCreateDebitNote_CapitalMovementTargetRejected() {
	ctx := context.Background()
	targetID := uuid.NewString()
	req := dto.CreateDebitNoteRequest{
		TargetKind:  domain.RefCapitalMovement,
		TargetID:    &targetID,
		PartyID:     uuid.NewString(),
		Items:       noteItems(50),
		SubTotal:    decimal.NewFromInt(50),
		TotalAmount: decimal.NewFromInt(50),
		Reason:      "Misdirected",
	}

	_, err := suite.service.CreateDebitNote(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockNoteRepo.AssertNotCalled(suite.T(), "SaveDebitNote", mock.Anything, mock.Anything)
}

// --- ApplyCreditNote ---

func (suite *NoteServiceTestSuite) TestApplyCreditNote_WithoutRefund() {
	ctx := context.Background()
	noteID := uuid.NewString()
	pending := &domain.CreditNote{
		CreditNoteID: noteID,
		CustomerID:   uuid.NewString(),
		TotalAmount:  decimal.NewFromInt(118),
		Status:       domain.NotePending,
	}
	applied := *pending
	applied.Status = domain.NoteApplied
	applied.IsApplied = true

	suite.mockNoteRepo.On("FindCreditNoteByID", ctx, noteID).Return(pending, nil).Once()
	suite.mockNoteRepo.On("ApplyCreditNote", ctx, noteID, "ok", (*domain.Transaction)(nil),
		suite.userID, mock.AnythingOfType("time.Time")).Return(&applied, nil).Once()

	got, err := suite.service.ApplyCreditNote(ctx, noteID, dto.ApplyNoteRequest{Message: "ok"}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.NoteApplied, got.Status)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
	suite.mockNoteRepo.AssertExpectations(suite.T())
}

func (suite *NoteServiceTestSuite) TestApplyCreditNote_WithCashRefund() {
	ctx := context.Background()
	noteID := uuid.NewString()
	pending := &domain.CreditNote{
		CreditNoteID: noteID,
		CustomerID:   uuid.NewString(),
		TotalAmount:  decimal.NewFromInt(118),
		Status:       domain.NotePending,
	}
	refunded := *pending
	refunded.Status = domain.NoteRefunded
	refunded.IsApplied = true

	suite.mockNoteRepo.On("FindCreditNoteByID", ctx, noteID).Return(pending, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockNoteRepo.On("ApplyCreditNote", ctx, noteID, "", mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn != nil &&
			txn.Type == domain.Refund &&
			txn.Status == domain.Completed &&
			txn.FromAccountID != nil && *txn.FromAccountID == suite.cashAccount.AccountID &&
			txn.Amount.Equal(decimal.NewFromInt(118))
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(&refunded, nil).Once()

	req := dto.ApplyNoteRequest{FinancialAccountID: &suite.cashAccount.AccountID}
	got, err := suite.service.ApplyCreditNote(ctx, noteID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.NoteRefunded, got.Status)
	suite.mockNoteRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *NoteServiceTestSuite) TestApplyCreditNote_InactiveRefundAccount() {
	ctx := context.Background()
	noteID := uuid.NewString()
	inactive := suite.cashAccount
	inactive.IsActive = false
	pending := &domain.CreditNote{
		CreditNoteID: noteID,
		TotalAmount:  decimal.NewFromInt(50),
		Status:       domain.NotePending,
	}

	suite.mockNoteRepo.On("FindCreditNoteByID", ctx, noteID).Return(pending, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, inactive.AccountID).Return(&inactive, nil).Once()

	req := dto.ApplyNoteRequest{FinancialAccountID: &inactive.AccountID}
	_, err := suite.service.ApplyCreditNote(ctx, noteID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockNoteRepo.AssertNotCalled(suite.T(), "ApplyCreditNote",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *NoteServiceTestSuite) TestApplyCreditNote_AlreadyApplied() {
	ctx := context.Background()
	noteID := uuid.NewString()
	applied := &domain.CreditNote{
		CreditNoteID: noteID,
		TotalAmount:  decimal.NewFromInt(50),
		Status:       domain.NoteApplied,
		IsApplied:    true,
	}

	// The repository owns the status latch; the service surfaces its conflict.
	suite.mockNoteRepo.On("FindCreditNoteByID", ctx, noteID).Return(applied, nil).Once()
	suite.mockNoteRepo.On("ApplyCreditNote", ctx, noteID, "", (*domain.Transaction)(nil),
		suite.userID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrConflict).Once()

	_, err := suite.service.ApplyCreditNote(ctx, noteID, dto.ApplyNoteRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- ApplyDebitNote ---

func (suite *NoteServiceTestSuite) TestApplyDebitNote_WithCashRefund() {
	ctx := context.Background()
	noteID := uuid.NewString()
	pending := &domain.DebitNote{
		DebitNoteID: noteID,
		Target:      domain.EntityRef{Kind: domain.RefSale, ID: uuid.NewString()},
		TotalAmount: decimal.NewFromInt(75),
		Status:      domain.NotePending,
	}
	refunded := *pending
	refunded.Status = domain.NoteRefunded

	suite.mockNoteRepo.On("FindDebitNoteByID", ctx, noteID).Return(pending, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockNoteRepo.On("ApplyDebitNote", ctx, noteID, "", mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn != nil && txn.Type == domain.Refund && txn.Amount.Equal(decimal.NewFromInt(75))
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(&refunded, nil).Once()

	req := dto.ApplyNoteRequest{FinancialAccountID: &suite.cashAccount.AccountID}
	got, err := suite.service.ApplyDebitNote(ctx, noteID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.NoteRefunded, got.Status)
	suite.mockNoteRepo.AssertExpectations(suite.T())
}

// --- Cancel ---

func (suite *NoteServiceTestSuite) TestCancelCreditNote_Success() {
	ctx := context.Background()
	noteID := uuid.NewString()

	suite.mockNoteRepo.On("CancelCreditNote", ctx, noteID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.CancelCreditNote(ctx, noteID, suite.userID)

	suite.Require().NoError(err)
	suite.mockNoteRepo.AssertExpectations(suite.T())
}

func (suite *NoteServiceTestSuite) TestCancelDebitNote_ConflictSurfaces() {
	ctx := context.Background()
	noteID := uuid.NewString()

	suite.mockNoteRepo.On("CancelDebitNote", ctx, noteID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrConflict).Once()

	err := suite.service.CancelDebitNote(ctx, noteID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func TestNoteService(t *testing.T) {
	suite.Run(t, new(NoteServiceTestSuite))
}
