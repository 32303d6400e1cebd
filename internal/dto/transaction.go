package dto

import (
	"time"

	"github.com/finstock/finstock_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a ledger transaction.
type CreateTransactionRequest struct {
	FromAccountID *string                  `json:"fromAccountID"`
	ToAccountID   *string                  `json:"toAccountID"`
	Amount        decimal.Decimal          `json:"amount" binding:"required,dp2"`
	Type          domain.TransactionType   `json:"type" binding:"required,oneof=TRANSFER DEPOSIT WITHDRAWAL PAYMENT REFUND ADJUSTMENT"`
	Status        domain.TransactionStatus `json:"status" binding:"omitempty,oneof=PENDING COMPLETED"` // Defaults to COMPLETED
	MovementDate  time.Time                `json:"movementDate" binding:"required"`
	CurrencyCode  string                   `json:"currencyCode" binding:"required,len=3"`
	Fees          *decimal.Decimal         `json:"fees"`
	ExchangeRate  *decimal.Decimal         `json:"exchangeRate"`
	Description   string                   `json:"description"`
}

// UpdateTransactionStatusRequest moves a transaction along its lifecycle.
type UpdateTransactionStatusRequest struct {
	Status domain.TransactionStatus `json:"status" binding:"required,oneof=COMPLETED CANCELLED FAILED"`
}

// TransactionResponse defines the data returned for a ledger transaction.
type TransactionResponse struct {
	TransactionID string                   `json:"transactionID"`
	FromAccountID *string                  `json:"fromAccountID"`
	ToAccountID   *string                  `json:"toAccountID"`
	Amount        decimal.Decimal          `json:"amount"`
	Type          domain.TransactionType   `json:"type"`
	Status        domain.TransactionStatus `json:"status"`
	MovementDate  time.Time                `json:"movementDate"`
	CurrencyCode  string                   `json:"currencyCode"`
	Fees          *decimal.Decimal         `json:"fees"`
	ExchangeRate  *decimal.Decimal         `json:"exchangeRate"`
	Description   string                   `json:"description"`
	CreatedAt     time.Time                `json:"createdAt"`
	CreatedBy     string                   `json:"createdBy"`
	LastUpdatedAt time.Time                `json:"lastUpdatedAt"`
	LastUpdatedBy string                   `json:"lastUpdatedBy"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		FromAccountID: txn.FromAccountID,
		ToAccountID:   txn.ToAccountID,
		Amount:        txn.Amount,
		Type:          txn.Type,
		Status:        txn.Status,
		MovementDate:  txn.MovementDate,
		CurrencyCode:  txn.CurrencyCode,
		Fees:          txn.Fees,
		ExchangeRate:  txn.ExchangeRate,
		Description:   txn.Description,
		CreatedAt:     txn.CreatedAt,
		CreatedBy:     txn.CreatedBy,
		LastUpdatedAt: txn.LastUpdatedAt,
		LastUpdatedBy: txn.LastUpdatedBy,
	}
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions with the cursor for the next page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToListTransactionsResponse converts a page of domain transactions to the response DTO
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToTransactionResponse(&t)
	}
	return ListTransactionsResponse{Transactions: res, NextToken: nextToken}
}
