package repositories

import (
	"context"

	"github.com/finstock/finstock_backend/internal/core/domain"
)

// AuditReader defines read operations for the product audit trail
type AuditReader interface {
	// FindAuditByID retrieves a single audit trail entry.
	FindAuditByID(ctx context.Context, auditID string) (*domain.ProductAuditTrail, error)

	// ListAuditsByStorage retrieves audit entries for a product storage row, newest first.
	ListAuditsByStorage(ctx context.Context, productStorageID string, limit int, offset int) ([]domain.ProductAuditTrail, error)

	// ListAuditsByVariation retrieves audit entries for a product variation, newest first.
	ListAuditsByVariation(ctx context.Context, productVariationID string, limit int, offset int) ([]domain.ProductAuditTrail, error)
}

// AuditWriter defines write operations for the product audit trail
type AuditWriter interface {
	// RecordReconciliation locks the product storage row, verifies the caller's
	// quantity-before snapshot, updates the stored quantity and inserts the audit
	// entry in one database transaction. A stale snapshot yields a conflict error.
	RecordReconciliation(ctx context.Context, audit domain.ProductAuditTrail) (*domain.ProductAuditTrail, error)
}

// AuditRepositoryFacade combines all audit-related repository interfaces
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}
