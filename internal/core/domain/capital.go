package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapitalMovementType classifies owner capital flows.
type CapitalMovementType string

const (
	InitialCapital       CapitalMovementType = "INITIAL_CAPITAL"
	AdditionalInvestment CapitalMovementType = "ADDITIONAL_INVESTMENT"
	CapitalWithdrawal    CapitalMovementType = "WITHDRAWAL"
	ProfitDistribution   CapitalMovementType = "PROFIT_DISTRIBUTION"
)

// IsContribution reports whether the movement adds money to the business.
func (t CapitalMovementType) IsContribution() bool {
	return t == InitialCapital || t == AdditionalInvestment
}

// CapitalMovement is an owner-level money movement into or out of the business,
// optionally mirrored in the transaction ledger against a financial account.
type CapitalMovement struct {
	MovementID         string              `json:"movementID"` // Primary key (UUID)
	OwnerID            string              `json:"ownerID"`
	Type               CapitalMovementType `json:"type"`
	Amount             decimal.Decimal     `json:"amount"`
	TransactionDate    time.Time           `json:"transactionDate"`
	FinancialAccountID *string             `json:"financialAccountID"`
	Notes              string              `json:"notes"`
	AuditFields
}
