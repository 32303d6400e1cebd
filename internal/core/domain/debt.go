package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a purchase payment was settled.
type PaymentMethod string

const (
	PayCash         PaymentMethod = "CASH"
	PayBankTransfer PaymentMethod = "BANK_TRANSFER"
	PayMobileMoney  PaymentMethod = "MOBILE_MONEY"
	PayCheque       PaymentMethod = "CHEQUE"
	PayOther        PaymentMethod = "OTHER"
)

// PurchaseDebtTracker is one payment applied against a purchase's outstanding
// amount. Rows are append-only; the purchase's outstanding amount is always
// total minus the sum of its payments.
type PurchaseDebtTracker struct {
	PaymentID          string          `json:"paymentID"` // Primary key (UUID)
	PurchaseID         string          `json:"purchaseID"`
	PaidAmount         decimal.Decimal `json:"paidAmount"`
	PaymentMethod      PaymentMethod   `json:"paymentMethod"`
	PaymentDate        time.Time       `json:"paymentDate"`
	FinancialAccountID *string         `json:"financialAccountID"` // Optional ledger link
	Notes              string          `json:"notes"`
	AuditFields
}

// Purchase is the supplier-side document this core mutates the outstanding
// amount of. It is owned by the purchasing service; only the debt fields are
// written here.
type Purchase struct {
	PurchaseID        string          `json:"purchaseID"`
	SupplierID        string          `json:"supplierID"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	PaidAmount        decimal.Decimal `json:"paidAmount"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	IsPaid            bool            `json:"isPaid"`
	PurchaseDate      time.Time       `json:"purchaseDate"`
}

// Sale is the customer-side document read for reporting and adjusted by credit
// notes. Owned by the sales service.
type Sale struct {
	SaleID            string          `json:"saleID"`
	CustomerID        string          `json:"customerID"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	PaidAmount        decimal.Decimal `json:"paidAmount"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	RefundedAmount    decimal.Decimal `json:"refundedAmount"`
	Profit            decimal.Decimal `json:"profit"`
	IsCompleted       bool            `json:"isCompleted"`
	SaleDate          time.Time       `json:"saleDate"`
}
