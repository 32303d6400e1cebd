package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType describes the business meaning of a money movement.
type TransactionType string

const (
	Transfer   TransactionType = "TRANSFER"
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
	Payment    TransactionType = "PAYMENT"
	Refund     TransactionType = "REFUND"
	Adjustment TransactionType = "ADJUSTMENT"
)

// TransactionStatus is the lifecycle state of a transaction. Only COMPLETED
// transactions affect balances; the status field is a one-shot latch so a
// transaction applies its effect at most once.
type TransactionStatus string

const (
	Pending   TransactionStatus = "PENDING"
	Completed TransactionStatus = "COMPLETED"
	Failed    TransactionStatus = "FAILED"
	Cancelled TransactionStatus = "CANCELLED"
	Reversed  TransactionStatus = "REVERSED"
)

// Transaction represents a single money movement between financial accounts.
// FromAccountID/ToAccountID are optional depending on the type; see Effects.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary key (UUID)
	FromAccountID *string           `json:"fromAccountID"`
	ToAccountID   *string           `json:"toAccountID"`
	Amount        decimal.Decimal   `json:"amount"` // Always positive
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	MovementDate  time.Time         `json:"movementDate"`
	CurrencyCode  string            `json:"currencyCode"`
	Fees          *decimal.Decimal  `json:"fees"`
	ExchangeRate  *decimal.Decimal  `json:"exchangeRate"`
	Description   string            `json:"description"`
	AuditFields
}

// Validate checks structural invariants that hold for every transaction,
// regardless of status.
func (t Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("transaction amount must be positive, got %s", t.Amount)
	}
	_, err := t.Effects()
	return err
}

// Effects returns the signed balance deltas a COMPLETED transaction of this
// shape applies. The switch is exhaustive over TransactionType; an unknown type
// is an error, never a silent no-op.
func (t Transaction) Effects() ([]BalanceEffect, error) {
	debitFrom := func() (BalanceEffect, error) {
		if t.FromAccountID == nil {
			return BalanceEffect{}, fmt.Errorf("%s transaction requires a source account", t.Type)
		}
		return BalanceEffect{AccountID: *t.FromAccountID, Delta: t.Amount.Neg()}, nil
	}
	creditTo := func() (BalanceEffect, error) {
		if t.ToAccountID == nil {
			return BalanceEffect{}, fmt.Errorf("%s transaction requires a destination account", t.Type)
		}
		return BalanceEffect{AccountID: *t.ToAccountID, Delta: t.Amount}, nil
	}

	switch t.Type {
	case Transfer:
		out, err := debitFrom()
		if err != nil {
			return nil, err
		}
		in, err := creditTo()
		if err != nil {
			return nil, err
		}
		return []BalanceEffect{out, in}, nil
	case Deposit:
		in, err := creditTo()
		if err != nil {
			return nil, err
		}
		return []BalanceEffect{in}, nil
	case Withdrawal, Payment, Refund:
		// All three move money out of the source account; they differ only in
		// what business document caused them.
		out, err := debitFrom()
		if err != nil {
			return nil, err
		}
		return []BalanceEffect{out}, nil
	case Adjustment:
		var effects []BalanceEffect
		if t.FromAccountID != nil {
			effects = append(effects, BalanceEffect{AccountID: *t.FromAccountID, Delta: t.Amount.Neg()})
		}
		if t.ToAccountID != nil {
			effects = append(effects, BalanceEffect{AccountID: *t.ToAccountID, Delta: t.Amount})
		}
		if len(effects) == 0 {
			return nil, fmt.Errorf("ADJUSTMENT transaction requires at least one account side")
		}
		return effects, nil
	default:
		return nil, fmt.Errorf("unknown transaction type %q", t.Type)
	}
}

// InverseEffects returns the exact opposite deltas, used when reversing a
// completed transaction.
func (t Transaction) InverseEffects() ([]BalanceEffect, error) {
	effects, err := t.Effects()
	if err != nil {
		return nil, err
	}
	inverse := make([]BalanceEffect, len(effects))
	for i, e := range effects {
		inverse[i] = BalanceEffect{AccountID: e.AccountID, Delta: e.Delta.Neg()}
	}
	return inverse, nil
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// transition. PENDING may complete, cancel or fail; COMPLETED may only be
// reversed; FAILED, CANCELLED and REVERSED are terminal.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	switch s {
	case Pending:
		return next == Completed || next == Cancelled || next == Failed
	case Completed:
		return next == Reversed
	case Failed, Cancelled, Reversed:
		return false
	default:
		return false
	}
}

// AffectsBalance reports whether entering this status applies a balance effect.
func (s TransactionStatus) AffectsBalance() bool {
	return s == Completed || s == Reversed
}
