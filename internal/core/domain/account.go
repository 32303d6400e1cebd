package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies a financial account by where the money physically lives.
type AccountType string

const (
	Bank        AccountType = "BANK"
	Cash        AccountType = "CASH"
	MobileMoney AccountType = "MOBILE_MONEY"
	Savings     AccountType = "SAVINGS"
)

// FinancialAccount is a named pool of money with a running balance.
// The balance is mutated exclusively by the transaction ledger; it always equals
// the opening balance plus the sum of all completed transaction effects.
type FinancialAccount struct {
	AccountID   string          `json:"accountID"` // Primary key (UUID)
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
	IsActive    bool            `json:"isActive"`
	IsDefault   bool            `json:"isDefault"` // At most one account holds this
	Description string          `json:"description"`
	AuditFields
}

// BalanceAdjustment records a single applied balance delta, keyed by the cause
// that produced it. The (account, cause) pair is unique, which is what makes
// balance mutation exactly-once per cause.
type BalanceAdjustment struct {
	AdjustmentID     string          `json:"adjustmentID"`
	AccountID        string          `json:"accountID"`
	CauseID          string          `json:"causeID"` // Idempotency key, typically a transaction id
	Delta            decimal.Decimal `json:"delta"`
	ResultingBalance decimal.Decimal `json:"resultingBalance"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// BalanceEffect is a signed delta against one account.
type BalanceEffect struct {
	AccountID string
	Delta     decimal.Decimal
}
