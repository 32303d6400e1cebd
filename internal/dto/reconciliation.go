package dto

import (
	"time"

	"github.com/finstock/finstock_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenDayRequest opens a daily cash reconciliation session for an account.
type OpenDayRequest struct {
	FinancialAccountID string           `json:"financialAccountID" binding:"required"`
	BusinessDate       time.Time        `json:"businessDate"` // Defaults to the current UTC day; normalized to UTC midnight
	CountedBalance     *decimal.Decimal `json:"countedBalance"`                  // Optional physical count at opening
	Notes              string           `json:"notes"`
}

// CloseDayRequest closes an open reconciliation session.
type CloseDayRequest struct {
	CountedBalance decimal.Decimal `json:"countedBalance" binding:"required,dp2"`
	Notes          string          `json:"notes"`
}

// ReconciliationResponse defines the data returned for a reconciliation session.
type ReconciliationResponse struct {
	ReconciliationID      string           `json:"reconciliationID"`
	FinancialAccountID    string           `json:"financialAccountID"`
	BusinessDate          time.Time        `json:"businessDate"`
	State                 string           `json:"state"` // OPEN or CLOSED
	OpenedAt              time.Time        `json:"openedAt"`
	OpeningSystemBalance  decimal.Decimal  `json:"openingSystemBalance"`
	OpeningCountedBalance *decimal.Decimal `json:"openingCountedBalance"`
	OpeningVariance       *decimal.Decimal `json:"openingVariance"`
	ClosedAt              *time.Time       `json:"closedAt"`
	ClosingSystemBalance  *decimal.Decimal `json:"closingSystemBalance"`
	ClosingCountedBalance *decimal.Decimal `json:"closingCountedBalance"`
	ClosingVariance       *decimal.Decimal `json:"closingVariance"`
	Notes                 string           `json:"notes"`
	CreatedAt             time.Time        `json:"createdAt"`
	CreatedBy             string           `json:"createdBy"`
}

// ToReconciliationResponse converts a domain reconciliation to its response DTO
func ToReconciliationResponse(r *domain.DailyCashReconciliation) ReconciliationResponse {
	state := "OPEN"
	if r.IsClosed() {
		state = "CLOSED"
	}
	return ReconciliationResponse{
		ReconciliationID:      r.ReconciliationID,
		FinancialAccountID:    r.FinancialAccountID,
		BusinessDate:          r.BusinessDateUTC,
		State:                 state,
		OpenedAt:              r.OpenedAtUTC,
		OpeningSystemBalance:  r.OpeningSystemBalance,
		OpeningCountedBalance: r.OpeningCountedBalance,
		OpeningVariance:       r.OpeningVariance,
		ClosedAt:              r.ClosedAtUTC,
		ClosingSystemBalance:  r.ClosingSystemBalance,
		ClosingCountedBalance: r.ClosingCountedBalance,
		ClosingVariance:       r.ClosingVariance,
		Notes:                 r.Notes,
		CreatedAt:             r.CreatedAt,
		CreatedBy:             r.CreatedBy,
	}
}

// ToListReconciliationResponse converts domain reconciliations to response DTOs
func ToListReconciliationResponse(recons []domain.DailyCashReconciliation) []ReconciliationResponse {
	res := make([]ReconciliationResponse, len(recons))
	for i, r := range recons {
		res[i] = ToReconciliationResponse(&r)
	}
	return res
}
