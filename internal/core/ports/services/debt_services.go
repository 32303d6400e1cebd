package services

import (
	"context"

	"github.com/finstock/finstock_backend/internal/core/domain"
	"github.com/finstock/finstock_backend/internal/dto"
)

// DebtReaderSvc defines read operations for purchase debt
type DebtReaderSvc interface {
	// GetPurchaseDebt retrieves a purchase with its current debt position.
	GetPurchaseDebt(ctx context.Context, purchaseID string) (*domain.Purchase, error)

	// ListPaymentsByPurchase retrieves all payments recorded against a purchase.
	ListPaymentsByPurchase(ctx context.Context, purchaseID string) ([]domain.PurchaseDebtTracker, error)

	// ListUnpaidPurchases retrieves purchases that still carry an outstanding amount.
	ListUnpaidPurchases(ctx context.Context, limit int, offset int) ([]domain.Purchase, error)
}

// DebtWriterSvc defines write operations for purchase debt
type DebtWriterSvc interface {
	// RecordPurchasePayment records a payment against a purchase, updating the
	// purchase's paid/outstanding position and, when a financial account is
	// given, mirroring the payment in the transaction ledger atomically.
	RecordPurchasePayment(ctx context.Context, req dto.RecordPurchasePaymentRequest, userID string) (*domain.Purchase, *domain.PurchaseDebtTracker, error)
}

// DebtSvcFacade combines all debt-related service interfaces
type DebtSvcFacade interface {
	DebtReaderSvc
	DebtWriterSvc
}
