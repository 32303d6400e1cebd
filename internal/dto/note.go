package dto

import (
	"time"

	"github.com/finstock/finstock_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NoteItemRequest is one line of a credit or debit note being created.
type NoteItemRequest struct {
	ProductVariationID *string         `json:"productVariationID"`
	Description        string          `json:"description" binding:"required"`
	Quantity           decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice          decimal.Decimal `json:"unitPrice" binding:"required,dp2"`
	LineTotal          decimal.Decimal `json:"lineTotal" binding:"required,dp2"`
}

// CreateCreditNoteRequest defines the data needed to issue a credit note.
// With applyImmediately set the note is applied in the same request; a
// financial account then turns the application into a cash refund.
type CreateCreditNoteRequest struct {
	SaleID             *string           `json:"saleID"`
	CustomerID         string            `json:"customerID" binding:"required"`
	Items              []NoteItemRequest `json:"items" binding:"required,min=1,dive"`
	SubTotal           decimal.Decimal   `json:"subTotal" binding:"required,dp2"`
	TaxAmount          decimal.Decimal   `json:"taxAmount"`
	TotalAmount        decimal.Decimal   `json:"totalAmount" binding:"required,dp2"`
	Reason             string            `json:"reason" binding:"required"`
	ApplyImmediately   bool              `json:"applyImmediately"`
	FinancialAccountID *string           `json:"financialAccountID"`
}

// CreateDebitNoteRequest defines the data needed to issue a debit note. The
// target is a tagged reference: kind NONE with no ID, or SALE/PURCHASE with one.
type CreateDebitNoteRequest struct {
	TargetKind         domain.EntityRefKind `json:"targetKind" binding:"omitempty,oneof=NONE SALE PURCHASE"`
	TargetID           *string              `json:"targetID"`
	PartyID            string               `json:"partyID" binding:"required"`
	Items              []NoteItemRequest    `json:"items" binding:"required,min=1,dive"`
	SubTotal           decimal.Decimal      `json:"subTotal" binding:"required,dp2"`
	TaxAmount          decimal.Decimal      `json:"taxAmount"`
	TotalAmount        decimal.Decimal      `json:"totalAmount" binding:"required,dp2"`
	Reason             string               `json:"reason" binding:"required"`
	ApplyImmediately   bool                 `json:"applyImmediately"`
	FinancialAccountID *string              `json:"financialAccountID"`
}

// ApplyNoteRequest defines the data for applying a pending note. A financial
// account makes the application a cash refund mirrored in the ledger.
type ApplyNoteRequest struct {
	FinancialAccountID *string `json:"financialAccountID"`
	Message            string  `json:"message"`
}

// NoteItemResponse is one line of a note in responses.
type NoteItemResponse struct {
	ItemID             string          `json:"itemID"`
	ProductVariationID *string         `json:"productVariationID"`
	Description        string          `json:"description"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
	LineTotal          decimal.Decimal `json:"lineTotal"`
}

// CreditNoteResponse defines the data returned for a credit note.
type CreditNoteResponse struct {
	CreditNoteID       string             `json:"creditNoteID"`
	SaleID             *string            `json:"saleID"`
	CustomerID         string             `json:"customerID"`
	SubTotal           decimal.Decimal    `json:"subTotal"`
	TaxAmount          decimal.Decimal    `json:"taxAmount"`
	TotalAmount        decimal.Decimal    `json:"totalAmount"`
	Reason             string             `json:"reason"`
	Status             domain.NoteStatus  `json:"status"`
	IsApplied          bool               `json:"isApplied"`
	FinancialAccountID *string            `json:"financialAccountID"`
	ApplicationMessage string             `json:"applicationMessage"`
	AppliedAt          *time.Time         `json:"appliedAt"`
	Items              []NoteItemResponse `json:"items"`
	CreatedAt          time.Time          `json:"createdAt"`
	CreatedBy          string             `json:"createdBy"`
}

// ToCreditNoteResponse converts a domain credit note to its response DTO
func ToCreditNoteResponse(n *domain.CreditNote) CreditNoteResponse {
	items := make([]NoteItemResponse, len(n.Items))
	for i, it := range n.Items {
		items[i] = NoteItemResponse{
			ItemID:             it.ItemID,
			ProductVariationID: it.ProductVariationID,
			Description:        it.Description,
			Quantity:           it.Quantity,
			UnitPrice:          it.UnitPrice,
			LineTotal:          it.LineTotal,
		}
	}
	return CreditNoteResponse{
		CreditNoteID:       n.CreditNoteID,
		SaleID:             n.SaleID,
		CustomerID:         n.CustomerID,
		SubTotal:           n.SubTotal,
		TaxAmount:          n.TaxAmount,
		TotalAmount:        n.TotalAmount,
		Reason:             n.Reason,
		Status:             n.Status,
		IsApplied:          n.IsApplied,
		FinancialAccountID: n.FinancialAccountID,
		ApplicationMessage: n.ApplicationMessage,
		AppliedAt:          n.AppliedAt,
		Items:              items,
		CreatedAt:          n.CreatedAt,
		CreatedBy:          n.CreatedBy,
	}
}

// ToListCreditNoteResponse converts domain credit notes to response DTOs
func ToListCreditNoteResponse(notes []domain.CreditNote) []CreditNoteResponse {
	res := make([]CreditNoteResponse, len(notes))
	for i, n := range notes {
		res[i] = ToCreditNoteResponse(&n)
	}
	return res
}

// DebitNoteResponse defines the data returned for a debit note.
type DebitNoteResponse struct {
	DebitNoteID        string               `json:"debitNoteID"`
	TargetKind         domain.EntityRefKind `json:"targetKind"`
	TargetID           *string              `json:"targetID"`
	PartyID            string               `json:"partyID"`
	SubTotal           decimal.Decimal      `json:"subTotal"`
	TaxAmount          decimal.Decimal      `json:"taxAmount"`
	TotalAmount        decimal.Decimal      `json:"totalAmount"`
	Reason             string               `json:"reason"`
	Status             domain.NoteStatus    `json:"status"`
	IsApplied          bool                 `json:"isApplied"`
	FinancialAccountID *string              `json:"financialAccountID"`
	ApplicationMessage string               `json:"applicationMessage"`
	AppliedAt          *time.Time           `json:"appliedAt"`
	Items              []NoteItemResponse   `json:"items"`
	CreatedAt          time.Time            `json:"createdAt"`
	CreatedBy          string               `json:"createdBy"`
}

// ToDebitNoteResponse converts a domain debit note to its response DTO
func ToDebitNoteResponse(n *domain.DebitNote) DebitNoteResponse {
	items := make([]NoteItemResponse, len(n.Items))
	for i, it := range n.Items {
		items[i] = NoteItemResponse{
			ItemID:             it.ItemID,
			ProductVariationID: it.ProductVariationID,
			Description:        it.Description,
			Quantity:           it.Quantity,
			UnitPrice:          it.UnitPrice,
			LineTotal:          it.LineTotal,
		}
	}
	var targetID *string
	if n.Target.IsSet() {
		id := n.Target.ID
		targetID = &id
	}
	return DebitNoteResponse{
		DebitNoteID:        n.DebitNoteID,
		TargetKind:         n.Target.Kind,
		TargetID:           targetID,
		PartyID:            n.PartyID,
		SubTotal:           n.SubTotal,
		TaxAmount:          n.TaxAmount,
		TotalAmount:        n.TotalAmount,
		Reason:             n.Reason,
		Status:             n.Status,
		IsApplied:          n.IsApplied,
		FinancialAccountID: n.FinancialAccountID,
		ApplicationMessage: n.ApplicationMessage,
		AppliedAt:          n.AppliedAt,
		Items:              items,
		CreatedAt:          n.CreatedAt,
		CreatedBy:          n.CreatedBy,
	}
}

// ToListDebitNoteResponse converts domain debit notes to response DTOs
func ToListDebitNoteResponse(notes []domain.DebitNote) []DebitNoteResponse {
	res := make([]DebitNoteResponse, len(notes))
	for i, n := range notes {
		res[i] = ToDebitNoteResponse(&n)
	}
	return res
}

// ListNotesParams defines query parameters for listing notes.
type ListNotesParams struct {
	Status *domain.NoteStatus `form:"status"`
	Limit  int                `form:"limit,default=20"`
	Offset int                `form:"offset,default=0"`
}
