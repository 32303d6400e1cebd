package repositories

import (
	"context"

	"github.com/finstock/finstock_backend/internal/core/domain"
)

// CapitalReader defines read operations for owner capital movements
type CapitalReader interface {
	// FindCapitalMovementByID retrieves a capital movement by its identifier.
	FindCapitalMovementByID(ctx context.Context, movementID string) (*domain.CapitalMovement, error)

	// ListCapitalMovementsByOwner retrieves an owner's movements, newest first.
	ListCapitalMovementsByOwner(ctx context.Context, ownerID string, limit int, offset int) ([]domain.CapitalMovement, error)
}

// CapitalWriter defines write operations for owner capital movements
type CapitalWriter interface {
	// SaveCapitalMovement persists a movement and, when ledgerTxn is non-nil, writes
	// the mirroring ledger transaction and applies its balance effects atomically.
	SaveCapitalMovement(ctx context.Context, movement domain.CapitalMovement, ledgerTxn *domain.Transaction) error
}

// CapitalRepositoryFacade combines all capital-related repository interfaces
type CapitalRepositoryFacade interface {
	CapitalReader
	CapitalWriter
}
