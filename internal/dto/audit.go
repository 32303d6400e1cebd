package dto

import (
	"time"

	"github.com/finstock/finstock_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordStockCorrectionRequest corrects a stock quantity and records why.
// QuantityBefore is the caller's snapshot acting as an optimistic concurrency
// token: the repository re-reads the stored quantity under lock and rejects
// the correction as stale when the two disagree. A count equal to the stored
// quantity is accepted and recorded; confirming the system value is a valid
// reconciliation outcome.
type RecordStockCorrectionRequest struct {
	ProductVariationID string                      `json:"productVariationID" binding:"required"`
	ProductStorageID   string                      `json:"productStorageID" binding:"required"`
	QuantityBefore     decimal.Decimal             `json:"quantityBefore"`
	QuantityAfter      decimal.Decimal             `json:"quantityAfter"`
	Reason             domain.ReconciliationReason `json:"reason" binding:"required"`
	RefKind            domain.EntityRefKind        `json:"refKind" binding:"omitempty,oneof=NONE SALE PURCHASE CAPITAL_MOVEMENT"`
	RefID              *string                     `json:"refID"`
	Notes              string                      `json:"notes"`
}

// AuditTrailResponse defines the data returned for an audit trail entry.
type AuditTrailResponse struct {
	AuditID            string                      `json:"auditID"`
	ProductVariationID string                      `json:"productVariationID"`
	ProductStorageID   string                      `json:"productStorageID"`
	QuantityBefore     decimal.Decimal             `json:"quantityBefore"`
	QuantityAfter      decimal.Decimal             `json:"quantityAfter"`
	Reason             domain.ReconciliationReason `json:"reason"`
	RefKind            domain.EntityRefKind        `json:"refKind"`
	RefID              *string                     `json:"refID"`
	Notes              string                      `json:"notes"`
	CreatedAt          time.Time                   `json:"createdAt"`
	CreatedBy          string                      `json:"createdBy"`
}

// ToAuditTrailResponse converts a domain audit entry to its response DTO
func ToAuditTrailResponse(a *domain.ProductAuditTrail) AuditTrailResponse {
	var refID *string
	if a.Ref.IsSet() {
		id := a.Ref.ID
		refID = &id
	}
	return AuditTrailResponse{
		AuditID:            a.AuditID,
		ProductVariationID: a.ProductVariationID,
		ProductStorageID:   a.ProductStorageID,
		QuantityBefore:     a.QuantityBefore,
		QuantityAfter:      a.QuantityAfter,
		Reason:             a.Reason,
		RefKind:            a.Ref.Kind,
		RefID:              refID,
		Notes:              a.Notes,
		CreatedAt:          a.CreatedAt,
		CreatedBy:          a.CreatedBy,
	}
}

// ToListAuditTrailResponse converts domain audit entries to response DTOs
func ToListAuditTrailResponse(audits []domain.ProductAuditTrail) []AuditTrailResponse {
	res := make([]AuditTrailResponse, len(audits))
	for i, a := range audits {
		res[i] = ToAuditTrailResponse(&a)
	}
	return res
}
