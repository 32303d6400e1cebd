package repositories

import (
	"context"
	"time"

	"github.com/finstock/finstock_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for financial account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.FinancialAccount, error)

	// FindDefaultAccount retrieves the active account currently flagged as default.
	FindDefaultAccount(ctx context.Context) (*domain.FinancialAccount, error)

	// ListAccounts retrieves a paginated list of accounts, optionally filtered by type.
	ListAccounts(ctx context.Context, accountType *domain.AccountType, includeInactive bool, limit int, offset int) ([]domain.FinancialAccount, error)

	// ListBalanceAdjustments retrieves the balance mutation history of an account, newest first.
	ListBalanceAdjustments(ctx context.Context, accountID string, limit int, offset int) ([]domain.BalanceAdjustment, error)
}

// AccountWriter defines write operations for financial account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.FinancialAccount) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.FinancialAccount) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error

	// SetDefaultAccount atomically clears the previous default and flags the given account.
	SetDefaultAccount(ctx context.Context, accountID string, userID string, now time.Time) error

	// AdjustBalance applies a signed delta to an account exactly once per causeID.
	// Replaying a causeID returns the previously recorded adjustment with
	// applied=false and leaves the balance untouched.
	AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal, causeID string, userID string, now time.Time) (adjustment *domain.BalanceAdjustment, applied bool, err error)
}

// AccountBalanceSupport defines operations used when ledger writes mutate balances
type AccountBalanceSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them for update within a transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.FinancialAccount, error)

	// ApplyBalanceEffectsInTx applies balance deltas within a transaction and records one
	// balance_adjustments row per effect keyed by causeID. Returns false without applying
	// anything when the causeID was already recorded for any affected account.
	ApplyBalanceEffectsInTx(ctx context.Context, tx pgx.Tx, effects []domain.BalanceEffect, causeID string, userID string, now time.Time) (bool, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalanceSupport
	TransactionManager
}
