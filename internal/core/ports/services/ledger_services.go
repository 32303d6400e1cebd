package services

import (
	"context"

	"github.com/finstock/finstock_backend/internal/core/domain"
	"github.com/finstock/finstock_backend/internal/dto"
)

// LedgerReaderSvc defines read operations for the transaction ledger
type LedgerReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves transactions touching an account,
	// newest first, using an opaque cursor token for pagination.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// LedgerWriterSvc defines write operations for the transaction ledger
type LedgerWriterSvc interface {
	// CreateTransaction records a new transaction. COMPLETED transactions apply
	// their balance effects atomically; PENDING ones record only the row.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// UpdateTransactionStatus moves a transaction along its lifecycle
	// (PENDING to COMPLETED, CANCELLED or FAILED), applying balance effects
	// when the new status is COMPLETED.
	UpdateTransactionStatus(ctx context.Context, transactionID string, newStatus domain.TransactionStatus, userID string) (*domain.Transaction, error)

	// ReverseTransaction flips a COMPLETED transaction to REVERSED and applies
	// the inverse balance effects.
	ReverseTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
