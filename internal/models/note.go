package models

import (
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

// CreditNote reduces what a customer owes, optionally tied to a sale.
type CreditNote struct {
	CreditNoteID       string          `db:"credit_note_id"` // Primary key (UUID)
	SaleID             *string         `db:"sale_id"`
	CustomerID         string          `db:"customer_id"`
	SubTotal           decimal.Decimal `db:"sub_total"`
	TaxAmount          decimal.Decimal `db:"tax_amount"`
	TotalAmount        decimal.Decimal `db:"total_amount"`
	Reason             string          `db:"reason"`
	Status             NoteStatus      `db:"status"`
	IsApplied          bool            `db:"is_applied"`
	FinancialAccountID *string         `db:"financial_account_id"`
	ApplicationMessage string          `db:"application_message"`
	AppliedAt          *time.Time      `db:"applied_at"`
	AuditFields
}

// CreditNoteItem is one line of a credit note.
type CreditNoteItem struct {
	ItemID             string          `db:"item_id"`
	CreditNoteID       string          `db:"credit_note_id"`
	ProductVariationID *string         `db:"product_variation_id"`
	Description        string          `db:"description"`
	Quantity           decimal.Decimal `db:"quantity"`
	UnitPrice          decimal.Decimal `db:"unit_price"`
	LineTotal          decimal.Decimal `db:"line_total"`
}

// DebitNote increases what a counterparty owes. Its target is a tagged
// reference: exactly one of sale or purchase, or neither.
type DebitNote struct {
	DebitNoteID        string          `db:"debit_note_id"` // Primary key (UUID)
	TargetKind         string          `db:"target_kind"`
	TargetID           *string         `db:"target_id"`
	PartyID            string          `db:"party_id"`
	SubTotal           decimal.Decimal `db:"sub_total"`
	TaxAmount          decimal.Decimal `db:"tax_amount"`
	TotalAmount        decimal.Decimal `db:"total_amount"`
	Reason             string          `db:"reason"`
	Status             NoteStatus      `db:"status"`
	IsApplied          bool            `db:"is_applied"`
	FinancialAccountID *string         `db:"financial_account_id"`
	ApplicationMessage string          `db:"application_message"`
	AppliedAt          *time.Time      `db:"applied_at"`
	AuditFields
}

// DebitNoteItem is one line of a debit note.
type DebitNoteItem struct {
	ItemID             string          `db:"item_id"`
	DebitNoteID        string          `db:"debit_note_id"`
	ProductVariationID *string         `db:"product_variation_id"`
	Description        string          `db:"description"`
	Quantity           decimal.Decimal `db:"quantity"`
	UnitPrice          decimal.Decimal `db:"unit_price"`
	LineTotal          decimal.Decimal `db:"line_total"`
}
