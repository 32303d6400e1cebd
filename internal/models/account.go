package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies where the money physically lives.
type AccountType string

const (
	Bank        AccountType = "BANK"
	Cash        AccountType = "CASH"
	MobileMoney AccountType = "MOBILE_MONEY"
	Savings     AccountType = "SAVINGS"
)

// FinancialAccount is a registered money location with a persisted live balance.
type FinancialAccount struct {
	AccountID   string          `db:"account_id"`
	Name        string          `db:"name"`
	AccountType AccountType     `db:"account_type"`
	Balance     decimal.Decimal `db:"balance"` // Persisted live balance
	IsActive    bool            `db:"is_active"`
	IsDefault   bool            `db:"is_default"` // At most one active default, enforced by partial unique index
	Description string          `db:"description"`
	AuditFields
}

// BalanceAdjustment is the append-only record of a single balance mutation.
// The (account_id, cause_id) pair is unique, which is what makes balance
// application idempotent under retries.
type BalanceAdjustment struct {
	AdjustmentID     string          `db:"adjustment_id"`
	AccountID        string          `db:"account_id"`
	CauseID          string          `db:"cause_id"`
	Delta            decimal.Decimal `db:"delta"`
	ResultingBalance decimal.Decimal `db:"resulting_balance"`
	CreatedAt        time.Time       `db:"created_at"`
	CreatedBy        string          `db:"created_by"`
}
