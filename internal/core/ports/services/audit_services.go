package services

import (
	"context"

	"github.com/finstock/finstock_backend/internal/core/domain"
	"github.com/finstock/finstock_backend/internal/dto"
)

// AuditReaderSvc defines read operations for the product audit trail
type AuditReaderSvc interface {
	// GetAuditByID retrieves a single audit trail entry.
	GetAuditByID(ctx context.Context, auditID string) (*domain.ProductAuditTrail, error)

	// ListAuditsByStorage retrieves audit entries for a storage row, newest first.
	ListAuditsByStorage(ctx context.Context, productStorageID string, limit int, offset int) ([]domain.ProductAuditTrail, error)

	// ListAuditsByVariation retrieves audit entries for a variation, newest first.
	ListAuditsByVariation(ctx context.Context, productVariationID string, limit int, offset int) ([]domain.ProductAuditTrail, error)
}

// AuditWriterSvc defines write operations for the product audit trail
type AuditWriterSvc interface {
	// RecordStockCorrection corrects a stock quantity and writes the audit entry
	// linking it to its reason and optional financial cause.
	RecordStockCorrection(ctx context.Context, req dto.RecordStockCorrectionRequest, userID string) (*domain.ProductAuditTrail, error)
}

// AuditSvcFacade combines all audit-related service interfaces
type AuditSvcFacade interface {
	AuditReaderSvc
	AuditWriterSvc
}
