package repositories

import (
	"context"
	"time"

	"github.com/finstock/finstock_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReconciliationReader defines read operations for daily cash reconciliations
type ReconciliationReader interface {
	// FindReconciliationByID retrieves a reconciliation session by its identifier.
	FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.DailyCashReconciliation, error)

	// FindByAccountAndDate retrieves the session for an account on a business date, if any.
	FindByAccountAndDate(ctx context.Context, accountID string, businessDate time.Time) (*domain.DailyCashReconciliation, error)

	// ListByAccount retrieves sessions for an account, newest business date first.
	ListByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.DailyCashReconciliation, error)
}

// ReconciliationWriter defines write operations for daily cash reconciliations
type ReconciliationWriter interface {
	// OpenReconciliation inserts a new open session. A unique violation on the
	// (account, business date) pair surfaces as a conflict error.
	OpenReconciliation(ctx context.Context, recon domain.DailyCashReconciliation) error

	// CloseReconciliation fills the closing columns of an open session. The
	// closed_at IS NULL check is part of the UPDATE predicate; closing an already
	// closed session yields a conflict error.
	CloseReconciliation(ctx context.Context, reconciliationID string, closingSystem, closingCounted, closingVariance decimal.Decimal, notes string, userID string, now time.Time) error
}

// ReconciliationRepositoryFacade combines all reconciliation repository interfaces
type ReconciliationRepositoryFacade interface {
	ReconciliationReader
	ReconciliationWriter
}
