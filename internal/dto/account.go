package dto

import (
	"time"

	"github.com/finstock/finstock_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to register a financial account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=BANK CASH MOBILE_MONEY SAVINGS"`
	InitialBalance *decimal.Decimal   `json:"initialBalance"` // Optional, defaults to zero
	IsDefault      bool               `json:"isDefault"`
	Description    string             `json:"description"` // Optional
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// AccountResponse defines the data returned for a financial account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"accountType"`
	Balance       decimal.Decimal    `json:"balance"`
	IsActive      bool               `json:"isActive"`
	IsDefault     bool               `json:"isDefault"`
	Description   string             `json:"description"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.FinancialAccount to AccountResponse DTO
func ToAccountResponse(acc *domain.FinancialAccount) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		Balance:       acc.Balance,
		IsActive:      acc.IsActive,
		IsDefault:     acc.IsDefault,
		Description:   acc.Description,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain accounts to response DTOs
func ToListAccountResponse(accounts []domain.FinancialAccount) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Type            *domain.AccountType `form:"type"`
	IncludeInactive bool                `form:"includeInactive,default=false"`
	Limit           int                 `form:"limit,default=20"`
	Offset          int                 `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// AdjustBalanceRequest defines a direct signed balance mutation. The causeID
// makes the adjustment idempotent: replaying it returns the original result.
type AdjustBalanceRequest struct {
	Delta   decimal.Decimal `json:"delta" binding:"required,dp2"`
	CauseID string          `json:"causeID" binding:"required"`
}

// BalanceResponse carries an account's current persisted balance.
type BalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

// BalanceAdjustmentResponse defines one entry of an account's balance history.
type BalanceAdjustmentResponse struct {
	AdjustmentID     string          `json:"adjustmentID"`
	AccountID        string          `json:"accountID"`
	CauseID          string          `json:"causeID"`
	Delta            decimal.Decimal `json:"delta"`
	ResultingBalance decimal.Decimal `json:"resultingBalance"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// ToBalanceAdjustmentResponse converts a domain.BalanceAdjustment to its response DTO
func ToBalanceAdjustmentResponse(a *domain.BalanceAdjustment) BalanceAdjustmentResponse {
	return BalanceAdjustmentResponse{
		AdjustmentID:     a.AdjustmentID,
		AccountID:        a.AccountID,
		CauseID:          a.CauseID,
		Delta:            a.Delta,
		ResultingBalance: a.ResultingBalance,
		CreatedAt:        a.CreatedAt,
		CreatedBy:        a.CreatedBy,
	}
}

// ToListBalanceAdjustmentResponse converts balance adjustments to response DTOs
func ToListBalanceAdjustmentResponse(adjs []domain.BalanceAdjustment) []BalanceAdjustmentResponse {
	res := make([]BalanceAdjustmentResponse, len(adjs))
	for i, a := range adjs {
		res[i] = ToBalanceAdjustmentResponse(&a)
	}
	return res
}
