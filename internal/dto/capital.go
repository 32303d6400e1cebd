package dto

import (
	"time"

	"github.com/finstock/finstock_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCapitalMovementRequest records an owner capital flow.
type CreateCapitalMovementRequest struct {
	OwnerID            string                     `json:"ownerID" binding:"required"`
	Type               domain.CapitalMovementType `json:"type" binding:"required,oneof=INITIAL_CAPITAL ADDITIONAL_INVESTMENT WITHDRAWAL PROFIT_DISTRIBUTION"`
	Amount             decimal.Decimal            `json:"amount" binding:"required,dp2"`
	TransactionDate    time.Time                  `json:"transactionDate" binding:"required"`
	FinancialAccountID *string                    `json:"financialAccountID"` // When set the movement is mirrored in the ledger
	Notes              string                     `json:"notes"`
}

// CapitalMovementResponse defines the data returned for a capital movement.
type CapitalMovementResponse struct {
	MovementID         string                     `json:"movementID"`
	OwnerID            string                     `json:"ownerID"`
	Type               domain.CapitalMovementType `json:"type"`
	Amount             decimal.Decimal            `json:"amount"`
	TransactionDate    time.Time                  `json:"transactionDate"`
	FinancialAccountID *string                    `json:"financialAccountID"`
	Notes              string                     `json:"notes"`
	CreatedAt          time.Time                  `json:"createdAt"`
	CreatedBy          string                     `json:"createdBy"`
}

// ToCapitalMovementResponse converts a domain capital movement to its response DTO
func ToCapitalMovementResponse(m *domain.CapitalMovement) CapitalMovementResponse {
	return CapitalMovementResponse{
		MovementID:         m.MovementID,
		OwnerID:            m.OwnerID,
		Type:               m.Type,
		Amount:             m.Amount,
		TransactionDate:    m.TransactionDate,
		FinancialAccountID: m.FinancialAccountID,
		Notes:              m.Notes,
		CreatedAt:          m.CreatedAt,
		CreatedBy:          m.CreatedBy,
	}
}

// ToListCapitalMovementResponse converts domain capital movements to response DTOs
func ToListCapitalMovementResponse(movements []domain.CapitalMovement) []CapitalMovementResponse {
	res := make([]CapitalMovementResponse, len(movements))
	for i, m := range movements {
		res[i] = ToCapitalMovementResponse(&m)
	}
	return res
}
