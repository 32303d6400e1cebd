package repositories

import (
	"context"

	"github.com/finstock/finstock_backend/internal/core/domain"
)

// DebtReader defines read operations for purchase debt data
type DebtReader interface {
	// FindPurchaseByID retrieves a purchase with its debt-tracking columns.
	FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)

	// FindPaymentByID retrieves a recorded purchase payment.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.PurchaseDebtTracker, error)

	// ListPaymentsByPurchase retrieves all payments recorded against a purchase, oldest first.
	ListPaymentsByPurchase(ctx context.Context, purchaseID string) ([]domain.PurchaseDebtTracker, error)

	// ListUnpaidPurchases retrieves purchases that still carry an outstanding amount.
	ListUnpaidPurchases(ctx context.Context, limit int, offset int) ([]domain.Purchase, error)
}

// DebtWriter defines write operations for purchase debt data
type DebtWriter interface {
	// RecordPurchasePayment atomically inserts a payment row, updates the purchase's
	// paid/outstanding columns under lock, and, when ledgerTxn is non-nil, writes the
	// ledger transaction and applies its balance effects in the same database
	// transaction. The overpayment check is re-evaluated under the row lock unless
	// allowOverpayment is set.
	RecordPurchasePayment(ctx context.Context, payment domain.PurchaseDebtTracker, ledgerTxn *domain.Transaction, allowOverpayment bool) (*domain.Purchase, error)
}

// DebtRepositoryFacade combines all debt-related repository interfaces
type DebtRepositoryFacade interface {
	DebtReader
	DebtWriter
}
