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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountServiceImpl(suite.mockAccountRepo)
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:        "Till",
		AccountType: domain.Cash,
		Description: "Front desk cash drawer",
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.FinancialAccount) bool {
		return acc.Name == "Till" &&
			acc.AccountType == domain.Cash &&
			acc.Balance.IsZero() &&
			acc.IsActive &&
			!acc.IsDefault
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.True(account.Balance.IsZero())
	suite.Equal(suite.userID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SetDefaultAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_WithInitialBalanceAndDefault() {
	ctx := context.Background()
	opening := decimal.NewFromInt(1500)
	req := dto.CreateAccountRequest{
		Name:           "Main bank",
		AccountType:    domain.Bank,
		InitialBalance: &opening,
		IsDefault:      true,
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.FinancialAccount) bool {
		return acc.Balance.Equal(opening)
	})).Return(nil).Once()
	suite.mockAccountRepo.On("SetDefaultAccount", ctx, mock.AnythingOfType("string"), suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(account.IsDefault)
	suite.True(account.Balance.Equal(opening))
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NegativeOpeningBalance() {
	ctx := context.Background()
	opening := decimal.NewFromInt(-1)
	req := dto.CreateAccountRequest{
		Name:           "Till",
		AccountType:    domain.Cash,
		InitialBalance: &opening,
	}

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SaveError() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Till", AccountType: domain.Cash}
	repoErr := assert.AnError

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.FinancialAccount")).Return(repoErr).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, repoErr)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_PartialUpdate() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.FinancialAccount{
		AccountID:   accountID,
		Name:        "Old name",
		AccountType: domain.Bank,
		Balance:     decimal.NewFromInt(100),
		IsActive:    true,
		Description: "Keep me",
	}
	newName := "New name"
	req := dto.UpdateAccountRequest{Name: &newName}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(acc domain.FinancialAccount) bool {
		return acc.Name == newName && acc.Description == "Keep me" && acc.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, accountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.Equal("Keep me", updated.Description)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("DeactivateAccount", ctx, accountID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestSetDefaultAccount_ReturnsRefreshedAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	flagged := &domain.FinancialAccount{AccountID: accountID, IsDefault: true, IsActive: true}

	suite.mockAccountRepo.On("SetDefaultAccount", ctx, accountID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(flagged, nil).Once()

	account, err := suite.service.SetDefaultAccount(ctx, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.True(account.IsDefault)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListBalanceAdjustments_UnknownAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListBalanceAdjustments(ctx, accountID, 20, 0)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ListBalanceAdjustments", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListBalanceAdjustments_Success() {
	ctx := context.Background()
	account := &domain.FinancialAccount{AccountID: uuid.NewString(), IsActive: true}
	adjustments := []domain.BalanceAdjustment{
		{AdjustmentID: uuid.NewString(), AccountID: account.AccountID, Delta: decimal.NewFromInt(50)},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("ListBalanceAdjustments", ctx, account.AccountID, 20, 0).Return(adjustments, nil).Once()

	got, err := suite.service.ListBalanceAdjustments(ctx, account.AccountID, 20, 0)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetBalance_Success() {
	ctx := context.Background()
	account := &domain.FinancialAccount{AccountID: uuid.NewString(), Balance: decimal.NewFromFloat(342.75), IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	balance, err := suite.service.GetBalance(ctx, account.AccountID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromFloat(342.75)))
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetBalance_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetBalance(ctx, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestAdjustBalance_Applied() {
	ctx := context.Background()
	accountID := uuid.NewString()
	causeID := uuid.NewString()
	delta := decimal.NewFromFloat(-25.50)
	adjustment := &domain.BalanceAdjustment{
		AdjustmentID:     uuid.NewString(),
		AccountID:        accountID,
		CauseID:          causeID,
		Delta:            delta,
		ResultingBalance: decimal.NewFromFloat(74.50),
	}

	suite.mockAccountRepo.On("AdjustBalance", ctx, accountID, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(delta)
	}), causeID, suite.userID, mock.AnythingOfType("time.Time")).Return(adjustment, true, nil).Once()

	got, err := suite.service.AdjustBalance(ctx, accountID, delta, causeID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(adjustment.AdjustmentID, got.AdjustmentID)
	suite.True(got.ResultingBalance.Equal(decimal.NewFromFloat(74.50)))
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestAdjustBalance_ReplayReturnsPriorResult() {
	ctx := context.Background()
	accountID := uuid.NewString()
	causeID := uuid.NewString()
	delta := decimal.NewFromInt(100)
	prior := &domain.BalanceAdjustment{
		AdjustmentID:     uuid.NewString(),
		AccountID:        accountID,
		CauseID:          causeID,
		Delta:            delta,
		ResultingBalance: decimal.NewFromInt(250),
	}

	suite.mockAccountRepo.On("AdjustBalance", ctx, accountID, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(delta)
	}), causeID, suite.userID, mock.AnythingOfType("time.Time")).Return(prior, false, nil).Once()

	got, err := suite.service.AdjustBalance(ctx, accountID, delta, causeID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(prior.AdjustmentID, got.AdjustmentID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestAdjustBalance_MissingCauseID() {
	ctx := context.Background()

	_, err := suite.service.AdjustBalance(ctx, uuid.NewString(), decimal.NewFromInt(10), "", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "AdjustBalance",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestAdjustBalance_ZeroDelta() {
	ctx := context.Background()

	_, err := suite.service.AdjustBalance(ctx, uuid.NewString(), decimal.Zero, uuid.NewString(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "AdjustBalance",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
