package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType names the business meaning of a ledger entry.
type TransactionType string

const (
	Transfer   TransactionType = "TRANSFER"
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
	Payment    TransactionType = "PAYMENT"
	Refund     TransactionType = "REFUND"
	Adjustment TransactionType = "ADJUSTMENT"
)

// TransactionStatus is the lifecycle state of a ledger entry.
type TransactionStatus string

const (
	Pending   TransactionStatus = "PENDING"
	Completed TransactionStatus = "COMPLETED"
	Failed    TransactionStatus = "FAILED"
	Cancelled TransactionStatus = "CANCELLED"
	Reversed  TransactionStatus = "REVERSED"
)

// Transaction is one row of the money-movement ledger. From/To account columns
// are nullable because not every type uses both sides.
type Transaction struct {
	TransactionID string            `db:"transaction_id"` // Primary key (UUID)
	FromAccountID *string           `db:"from_account_id"`
	ToAccountID   *string           `db:"to_account_id"`
	Amount        decimal.Decimal   `db:"amount"`
	Type          TransactionType   `db:"transaction_type"`
	Status        TransactionStatus `db:"status"`
	MovementDate  time.Time         `db:"movement_date"`
	CurrencyCode  string            `db:"currency_code"`
	Fees          *decimal.Decimal  `db:"fees"`
	ExchangeRate  *decimal.Decimal  `db:"exchange_rate"`
	Description   string            `db:"description"`
	AuditFields
}
