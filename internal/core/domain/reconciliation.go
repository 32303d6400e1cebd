package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyCashReconciliation compares a financial account's system balance to a
// physically counted balance for one business day. Lifecycle per
// (account, businessDate): NotOpened -> Open -> Closed; a closed record is
// immutable.
type DailyCashReconciliation struct {
	ReconciliationID      string           `json:"reconciliationID"` // Primary key (UUID)
	FinancialAccountID    string           `json:"financialAccountID"`
	BusinessDateUTC       time.Time        `json:"businessDateUTC"` // Day granularity, UTC midnight
	OpenedAtUTC           time.Time        `json:"openedAtUTC"`
	OpeningSystemBalance  decimal.Decimal  `json:"openingSystemBalance"`
	OpeningCountedBalance *decimal.Decimal `json:"openingCountedBalance"`
	OpeningVariance       *decimal.Decimal `json:"openingVariance"` // counted - system
	ClosedAtUTC           *time.Time       `json:"closedAtUTC"`
	ClosingSystemBalance  *decimal.Decimal `json:"closingSystemBalance"`
	ClosingCountedBalance *decimal.Decimal `json:"closingCountedBalance"`
	ClosingVariance       *decimal.Decimal `json:"closingVariance"`
	Notes                 string           `json:"notes"`
	AuditFields
}

// IsClosed reports whether the record has reached its terminal state.
func (r DailyCashReconciliation) IsClosed() bool {
	return r.ClosedAtUTC != nil
}

// NormalizeBusinessDate truncates an instant to its UTC calendar day.
func NormalizeBusinessDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
