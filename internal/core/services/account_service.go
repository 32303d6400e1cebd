package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finstock/finstock_backend/internal/apperrors"
	"github.com/finstock/finstock_backend/internal/core/domain"
	portsrepo "github.com/finstock/finstock_backend/internal/core/ports/repositories"
	portssvc "github.com/finstock/finstock_backend/internal/core/ports/services"
	"github.com/finstock/finstock_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountServiceImpl implements the AccountSvcFacade interface
type accountServiceImpl struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	now         func() time.Time
}

// NewAccountServiceImpl creates a new account service
func NewAccountServiceImpl(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountServiceImpl{
		accountRepo: repo,
		now:         time.Now,
	}
}

var _ portssvc.AccountSvcFacade = (*accountServiceImpl)(nil)

func (s *accountServiceImpl) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.FinancialAccount, error) {
	now := s.now()

	balance := decimal.Zero
	if req.InitialBalance != nil {
		if req.InitialBalance.IsNegative() {
			return nil, fmt.Errorf("%w: opening balance cannot be negative", apperrors.ErrValidation)
		}
		balance = *req.InitialBalance
	}

	account := domain.FinancialAccount{
		AccountID:   uuid.NewString(),
		Name:        req.Name,
		AccountType: req.AccountType,
		Balance:     balance,
		IsActive:    true,
		IsDefault:   false,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	if req.IsDefault {
		if err := s.accountRepo.SetDefaultAccount(ctx, account.AccountID, userID, now); err != nil {
			s.LogError(ctx, err, "Failed to flag new account as default", slog.String("account_id", account.AccountID))
			return nil, err
		}
		account.IsDefault = true
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

func (s *accountServiceImpl) GetAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

func (s *accountServiceImpl) GetDefaultAccount(ctx context.Context) (*domain.FinancialAccount, error) {
	return s.accountRepo.FindDefaultAccount(ctx)
}

func (s *accountServiceImpl) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

func (s *accountServiceImpl) AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal, causeID string, userID string) (*domain.BalanceAdjustment, error) {
	if causeID == "" {
		return nil, fmt.Errorf("%w: cause ID is required", apperrors.ErrValidation)
	}
	if delta.IsZero() {
		return nil, fmt.Errorf("%w: delta must be non-zero", apperrors.ErrValidation)
	}

	adjustment, applied, err := s.accountRepo.AdjustBalance(ctx, accountID, delta, causeID, userID, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to adjust balance",
			slog.String("account_id", accountID),
			slog.String("cause_id", causeID))
		return nil, err
	}

	if !applied {
		s.LogInfo(ctx, "Balance adjustment replayed, returning prior result",
			slog.String("account_id", accountID),
			slog.String("cause_id", causeID))
		return adjustment, nil
	}

	s.LogInfo(ctx, "Balance adjusted",
		slog.String("account_id", accountID),
		slog.String("cause_id", causeID),
		slog.String("delta", delta.String()))
	return adjustment, nil
}

func (s *accountServiceImpl) ListAccounts(ctx context.Context, accountType *domain.AccountType, includeInactive bool, limit int, offset int) ([]domain.FinancialAccount, error) {
	return s.accountRepo.ListAccounts(ctx, accountType, includeInactive, limit, offset)
}

func (s *accountServiceImpl) ListBalanceAdjustments(ctx context.Context, accountID string, limit int, offset int) ([]domain.BalanceAdjustment, error) {
	// Confirm the account exists so a typo'd ID is a 404, not an empty page.
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.accountRepo.ListBalanceAdjustments(ctx, accountID, limit, offset)
}

func (s *accountServiceImpl) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.FinancialAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	account.LastUpdatedAt = s.now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	return account, nil
}

func (s *accountServiceImpl) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

func (s *accountServiceImpl) SetDefaultAccount(ctx context.Context, accountID string, userID string) (*domain.FinancialAccount, error) {
	if err := s.accountRepo.SetDefaultAccount(ctx, accountID, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to set default account", slog.String("account_id", accountID))
		return nil, err
	}
	return s.accountRepo.FindAccountByID(ctx, accountID)
}
