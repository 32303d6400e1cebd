package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductAuditTrail is the append-only record of a stock-quantity correction.
type ProductAuditTrail struct {
	AuditID            string          `db:"audit_id"` // Primary key (UUID)
	ProductVariationID string          `db:"product_variation_id"`
	ProductStorageID   string          `db:"product_storage_id"`
	QuantityBefore     decimal.Decimal `db:"quantity_before"`
	QuantityAfter      decimal.Decimal `db:"quantity_after"`
	Reason             string          `db:"reason"`
	RefKind            string          `db:"ref_kind"`
	RefID              *string         `db:"ref_id"`
	Notes              string          `db:"notes"`
	CreatedAt          time.Time       `db:"created_at"`
	CreatedBy          string          `db:"created_by"`
}

// ProductStorage is the per-location stock row maintained by the inventory
// collaborator; this service corrects its quantity under lock.
type ProductStorage struct {
	ProductStorageID   string          `db:"product_storage_id"`
	ProductVariationID string          `db:"product_variation_id"`
	StorageID          string          `db:"storage_id"`
	Quantity           decimal.Decimal `db:"quantity"`
}

// ProductVariation is read for inventory valuation in reporting.
type ProductVariation struct {
	ProductVariationID string          `db:"product_variation_id"`
	ProductID          string          `db:"product_id"`
	Name               string          `db:"name"`
	CostPrice          decimal.Decimal `db:"cost_price"`
	SellingPrice       decimal.Decimal `db:"selling_price"`
}
