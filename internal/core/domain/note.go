package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// NoteStatus is the lifecycle state of a credit or debit note.
type NoteStatus string

const (
	NotePending   NoteStatus = "PENDING"
	NoteApplied   NoteStatus = "APPLIED"
	NoteCancelled NoteStatus = "CANCELLED"
	NoteRefunded  NoteStatus = "REFUNDED"
)

// NoteEpsilon is the currency tolerance used when checking that item totals
// sum to a note's subtotal.
var NoteEpsilon = decimal.NewFromFloat(0.01)

// CreditNote retroactively adjusts what a customer owes, in their favor.
// Applying it reduces the referenced sale's outstanding amount (or records a
// refund) and optionally posts a REFUND transaction against a linked account.
type CreditNote struct {
	CreditNoteID       string           `json:"creditNoteID"` // Primary key (UUID)
	SaleID             *string          `json:"saleID"`
	CustomerID         string           `json:"customerID"`
	SubTotal           decimal.Decimal  `json:"subTotal"`
	TaxAmount          decimal.Decimal  `json:"taxAmount"`
	TotalAmount        decimal.Decimal  `json:"totalAmount"`
	Reason             string           `json:"reason"`
	Status             NoteStatus       `json:"status"`
	IsApplied          bool             `json:"isApplied"`
	FinancialAccountID *string          `json:"financialAccountID"`
	ApplicationMessage string           `json:"applicationMessage"`
	AppliedAt          *time.Time       `json:"appliedAt"`
	Items              []CreditNoteItem `json:"items"`
	AuditFields
}

// CreditNoteItem is one line of a credit note.
type CreditNoteItem struct {
	ItemID             string          `json:"itemID"`
	CreditNoteID       string          `json:"creditNoteID"`
	ProductVariationID *string         `json:"productVariationID"`
	Description        string          `json:"description"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
	LineTotal          decimal.Decimal `json:"lineTotal"`
}

// DebitNote is the symmetric document: it increases a supplier's payable
// (against a purchase) or a customer's receivable (against a sale). Target
// carries exactly one of those references, or none.
type DebitNote struct {
	DebitNoteID        string          `json:"debitNoteID"`
	Target             EntityRef       `json:"target"`  // RefPurchase or RefSale
	PartyID            string          `json:"partyID"` // Supplier or customer id
	SubTotal           decimal.Decimal `json:"subTotal"`
	TaxAmount          decimal.Decimal `json:"taxAmount"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	Reason             string          `json:"reason"`
	Status             NoteStatus      `json:"status"`
	IsApplied          bool            `json:"isApplied"`
	FinancialAccountID *string         `json:"financialAccountID"`
	ApplicationMessage string          `json:"applicationMessage"`
	AppliedAt          *time.Time      `json:"appliedAt"`
	Items              []DebitNoteItem `json:"items"`
	AuditFields
}

// DebitNoteItem is one line of a debit note.
type DebitNoteItem struct {
	ItemID             string          `json:"itemID"`
	DebitNoteID        string          `json:"debitNoteID"`
	ProductVariationID *string         `json:"productVariationID"`
	Description        string          `json:"description"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
	LineTotal          decimal.Decimal `json:"lineTotal"`
}

// ValidateNoteTotals checks that the item totals sum to the subtotal and that
// subtotal plus tax equals the total, both within NoteEpsilon.
func ValidateNoteTotals(itemTotals []decimal.Decimal, subTotal, tax, total decimal.Decimal) error {
	sum := decimal.Zero
	for _, t := range itemTotals {
		sum = sum.Add(t)
	}
	if sum.Sub(subTotal).Abs().GreaterThan(NoteEpsilon) {
		return fmt.Errorf("item totals sum to %s but subtotal is %s", sum, subTotal)
	}
	if subTotal.Add(tax).Sub(total).Abs().GreaterThan(NoteEpsilon) {
		return fmt.Errorf("subtotal %s plus tax %s does not equal total %s", subTotal, tax, total)
	}
	return nil
}
