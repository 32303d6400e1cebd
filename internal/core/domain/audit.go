package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationReason explains why a stock quantity was corrected.
type ReconciliationReason string

const (
	ReasonStockLoss  ReconciliationReason = "STOCK_LOSS"
	ReasonStockGain  ReconciliationReason = "STOCK_GAIN"
	ReasonDamage     ReconciliationReason = "DAMAGE"
	ReasonTheft      ReconciliationReason = "THEFT"
	ReasonFound      ReconciliationReason = "FOUND"
	ReasonCorrection ReconciliationReason = "CORRECTION"
	ReasonExpiry     ReconciliationReason = "EXPIRY"
	ReasonSpoilage   ReconciliationReason = "SPOILAGE"
	ReasonReturn     ReconciliationReason = "RETURN"
	ReasonAdjustment ReconciliationReason = "ADJUSTMENT"
	ReasonOther      ReconciliationReason = "OTHER"
)

// ValidReconciliationReason reports whether the reason is one of the known codes.
func ValidReconciliationReason(r ReconciliationReason) bool {
	switch r {
	case ReasonStockLoss, ReasonStockGain, ReasonDamage, ReasonTheft, ReasonFound,
		ReasonCorrection, ReasonExpiry, ReasonSpoilage, ReasonReturn, ReasonAdjustment, ReasonOther:
		return true
	}
	return false
}

// ProductAuditTrail links a stock-quantity correction to its optional financial
// cause. Rows are append-only and never mutated after creation.
type ProductAuditTrail struct {
	AuditID            string               `json:"auditID"` // Primary key (UUID)
	ProductVariationID string               `json:"productVariationID"`
	ProductStorageID   string               `json:"productStorageID"`
	QuantityBefore     decimal.Decimal      `json:"quantityBefore"`
	QuantityAfter      decimal.Decimal      `json:"quantityAfter"`
	Reason             ReconciliationReason `json:"reason"`
	Ref                EntityRef            `json:"ref"` // Optional financial cause
	Notes              string               `json:"notes"`
	CreatedAt          time.Time            `json:"createdAt"`
	CreatedBy          string               `json:"createdBy"`
}
