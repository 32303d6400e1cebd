package dto

import (
	"time"

	"github.com/finstock/finstock_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPurchasePaymentRequest defines the data needed to record a payment
// against a supplier purchase.
type RecordPurchasePaymentRequest struct {
	PurchaseID         string               `json:"purchaseID" binding:"required"`
	PaidAmount         decimal.Decimal      `json:"paidAmount" binding:"required,dp2"`
	PaymentMethod      domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=CASH BANK_TRANSFER MOBILE_MONEY CHEQUE OTHER"`
	PaymentDate        time.Time            `json:"paymentDate" binding:"required"`
	FinancialAccountID *string              `json:"financialAccountID"` // When set the payment is mirrored in the ledger
	Notes              string               `json:"notes"`
}

// PurchasePaymentResponse defines the data returned for a recorded payment.
type PurchasePaymentResponse struct {
	PaymentID          string               `json:"paymentID"`
	PurchaseID         string               `json:"purchaseID"`
	PaidAmount         decimal.Decimal      `json:"paidAmount"`
	PaymentMethod      domain.PaymentMethod `json:"paymentMethod"`
	PaymentDate        time.Time            `json:"paymentDate"`
	FinancialAccountID *string              `json:"financialAccountID"`
	Notes              string               `json:"notes"`
	CreatedAt          time.Time            `json:"createdAt"`
	CreatedBy          string               `json:"createdBy"`
}

// ToPurchasePaymentResponse converts a domain payment record to its response DTO
func ToPurchasePaymentResponse(p *domain.PurchaseDebtTracker) PurchasePaymentResponse {
	return PurchasePaymentResponse{
		PaymentID:          p.PaymentID,
		PurchaseID:         p.PurchaseID,
		PaidAmount:         p.PaidAmount,
		PaymentMethod:      p.PaymentMethod,
		PaymentDate:        p.PaymentDate,
		FinancialAccountID: p.FinancialAccountID,
		Notes:              p.Notes,
		CreatedAt:          p.CreatedAt,
		CreatedBy:          p.CreatedBy,
	}
}

// ToListPurchasePaymentResponse converts payment records to response DTOs
func ToListPurchasePaymentResponse(payments []domain.PurchaseDebtTracker) []PurchasePaymentResponse {
	res := make([]PurchasePaymentResponse, len(payments))
	for i, p := range payments {
		res[i] = ToPurchasePaymentResponse(&p)
	}
	return res
}

// PurchaseDebtResponse defines a purchase's current debt position.
type PurchaseDebtResponse struct {
	PurchaseID        string          `json:"purchaseID"`
	SupplierID        string          `json:"supplierID"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	PaidAmount        decimal.Decimal `json:"paidAmount"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	IsPaid            bool            `json:"isPaid"`
	PurchaseDate      time.Time       `json:"purchaseDate"`
}

// ToPurchaseDebtResponse converts a domain purchase to its debt response DTO
func ToPurchaseDebtResponse(p *domain.Purchase) PurchaseDebtResponse {
	return PurchaseDebtResponse{
		PurchaseID:        p.PurchaseID,
		SupplierID:        p.SupplierID,
		TotalAmount:       p.TotalAmount,
		PaidAmount:        p.PaidAmount,
		OutstandingAmount: p.OutstandingAmount,
		IsPaid:            p.IsPaid,
		PurchaseDate:      p.PurchaseDate,
	}
}

// RecordPaymentResponse bundles the payment record with the purchase's updated position.
type RecordPaymentResponse struct {
	Payment  PurchasePaymentResponse `json:"payment"`
	Purchase PurchaseDebtResponse    `json:"purchase"`
}
