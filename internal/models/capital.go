package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapitalMovement is an owner capital flow, optionally mirrored in the ledger.
type CapitalMovement struct {
	MovementID         string          `db:"movement_id"` // Primary key (UUID)
	OwnerID            string          `db:"owner_id"`
	MovementType       string          `db:"movement_type"`
	Amount             decimal.Decimal `db:"amount"`
	TransactionDate    time.Time       `db:"transaction_date"`
	FinancialAccountID *string         `db:"financial_account_id"`
	Notes              string          `db:"notes"`
	AuditFields
}
