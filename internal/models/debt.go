package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a debt payment was made.
type PaymentMethod string

const (
	PayCash         PaymentMethod = "CASH"
	PayBankTransfer PaymentMethod = "BANK_TRANSFER"
	PayMobileMoney  PaymentMethod = "MOBILE_MONEY"
	PayCheque       PaymentMethod = "CHEQUE"
	PayOther        PaymentMethod = "OTHER"
)

// PurchasePayment is one recorded payment against a supplier purchase.
type PurchasePayment struct {
	PaymentID          string          `db:"payment_id"` // Primary key (UUID)
	PurchaseID         string          `db:"purchase_id"`
	PaidAmount         decimal.Decimal `db:"paid_amount"`
	PaymentMethod      PaymentMethod   `db:"payment_method"`
	PaymentDate        time.Time       `db:"payment_date"`
	FinancialAccountID *string         `db:"financial_account_id"`
	Notes              string          `db:"notes"`
	AuditFields
}

// Purchase mirrors the supplier purchase table maintained by the purchasing
// collaborator; this service only touches its payment-tracking columns.
type Purchase struct {
	PurchaseID        string          `db:"purchase_id"`
	SupplierID        string          `db:"supplier_id"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	PaidAmount        decimal.Decimal `db:"paid_amount"`
	OutstandingAmount decimal.Decimal `db:"outstanding_amount"`
	IsPaid            bool            `db:"is_paid"`
	PurchaseDate      time.Time       `db:"purchase_date"`
}

// Sale mirrors the sales table maintained by the sales collaborator; this
// service reads it for reporting and adjusts its refund/outstanding columns
// when notes are applied.
type Sale struct {
	SaleID            string          `db:"sale_id"`
	CustomerID        string          `db:"customer_id"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	PaidAmount        decimal.Decimal `db:"paid_amount"`
	OutstandingAmount decimal.Decimal `db:"outstanding_amount"`
	RefundedAmount    decimal.Decimal `db:"refunded_amount"`
	Profit            decimal.Decimal `db:"profit"`
	IsCompleted       bool            `db:"is_completed"`
	SaleDate          time.Time       `db:"sale_date"`
}
