package services

import (
	"context"

	"github.com/finstock/finstock_backend/internal/core/domain"
	"github.com/finstock/finstock_backend/internal/dto"
)

// CapitalReaderSvc defines read operations for owner capital movements
type CapitalReaderSvc interface {
	// GetCapitalMovementByID retrieves a capital movement.
	GetCapitalMovementByID(ctx context.Context, movementID string) (*domain.CapitalMovement, error)

	// ListCapitalMovementsByOwner retrieves an owner's movements, newest first.
	ListCapitalMovementsByOwner(ctx context.Context, ownerID string, limit int, offset int) ([]domain.CapitalMovement, error)
}

// CapitalWriterSvc defines write operations for owner capital movements
type CapitalWriterSvc interface {
	// CreateCapitalMovement records a capital movement and, when a financial
	// account is given, mirrors it in the transaction ledger atomically.
	CreateCapitalMovement(ctx context.Context, req dto.CreateCapitalMovementRequest, userID string) (*domain.CapitalMovement, error)
}

// CapitalSvcFacade combines all capital-related service interfaces
type CapitalSvcFacade interface {
	CapitalReaderSvc
	CapitalWriterSvc
}
