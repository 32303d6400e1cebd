package repositories

import (
	"context"
	"time"

	"github.com/finstock/finstock_backend/internal/core/domain"
)

// TransactionReader defines read operations for ledger transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves transactions touching an account, newest first,
	// using an opaque cursor token. Returns the page and the token for the next page, if any.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for ledger transactions
type TransactionWriter interface {
	// SaveTransaction persists a new transaction. When applyEffects is true the
	// account balance effects are applied atomically in the same database transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction, applyEffects bool) error

	// UpdateStatusWithEffects flips a transaction from an expected status to a new one
	// and applies the given balance effects atomically. The status check is part of the
	// UPDATE predicate; a zero row count means the transaction was not in fromStatus.
	UpdateStatusWithEffects(ctx context.Context, transactionID string, fromStatus, toStatus domain.TransactionStatus, effects []domain.BalanceEffect, causeID string, userID string, now time.Time) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
