package services

import (
	"context"

	"github.com/finstock/finstock_backend/internal/core/domain"
	"github.com/finstock/finstock_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for financial account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error)

	// GetDefaultAccount retrieves the account currently flagged as the default.
	GetDefaultAccount(ctx context.Context) (*domain.FinancialAccount, error)

	// GetBalance retrieves an account's live persisted balance. Historical
	// snapshots come only from reconciliation records.
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, accountType *domain.AccountType, includeInactive bool, limit int, offset int) ([]domain.FinancialAccount, error)

	// ListBalanceAdjustments retrieves an account's balance mutation history, newest first.
	ListBalanceAdjustments(ctx context.Context, accountID string, limit int, offset int) ([]domain.BalanceAdjustment, error)
}

// AccountWriterSvc defines write operations for financial account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.FinancialAccount, error)

	// UpdateAccount updates an existing account's descriptive details.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.FinancialAccount, error)

	// DeactivateAccount marks an account as inactive. Balances are untouched.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error

	// SetDefaultAccount makes the given active account the single default.
	SetDefaultAccount(ctx context.Context, accountID string, userID string) (*domain.FinancialAccount, error)

	// AdjustBalance applies a signed balance delta exactly once per causeID.
	// Replaying a causeID is a no-op that returns the prior adjustment.
	AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal, causeID string, userID string) (*domain.BalanceAdjustment, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
