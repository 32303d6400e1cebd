package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyCashReconciliation is one open/close cycle for an account on a business
// date. A partial unique index on (financial_account_id, business_date) for
// open rows keeps at most one session per account per day.
type DailyCashReconciliation struct {
	ReconciliationID      string           `db:"reconciliation_id"` // Primary key (UUID)
	FinancialAccountID    string           `db:"financial_account_id"`
	BusinessDate          time.Time        `db:"business_date"` // UTC midnight
	OpenedAt              time.Time        `db:"opened_at"`
	OpeningSystemBalance  decimal.Decimal  `db:"opening_system_balance"`
	OpeningCountedBalance *decimal.Decimal `db:"opening_counted_balance"`
	OpeningVariance       *decimal.Decimal `db:"opening_variance"`
	ClosedAt              *time.Time       `db:"closed_at"`
	ClosingSystemBalance  *decimal.Decimal `db:"closing_system_balance"`
	ClosingCountedBalance *decimal.Decimal `db:"closing_counted_balance"`
	ClosingVariance       *decimal.Decimal `db:"closing_variance"`
	Notes                 string           `db:"notes"`
	AuditFields
}
