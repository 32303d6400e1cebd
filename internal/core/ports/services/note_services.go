package services

import (
	"context"

	"github.com/finstock/finstock_backend/internal/core/domain"
	"github.com/finstock/finstock_backend/internal/dto"
)

// NoteReaderSvc defines read operations for credit and debit notes
type NoteReaderSvc interface {
	// GetCreditNoteByID retrieves a credit note with its items.
	GetCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.CreditNote, error)

	// GetDebitNoteByID retrieves a debit note with its items.
	GetDebitNoteByID(ctx context.Context, debitNoteID string) (*domain.DebitNote, error)

	// ListCreditNotes retrieves credit notes, optionally filtered by status.
	ListCreditNotes(ctx context.Context, status *domain.NoteStatus, limit int, offset int) ([]domain.CreditNote, error)

	// ListDebitNotes retrieves debit notes, optionally filtered by status.
	ListDebitNotes(ctx context.Context, status *domain.NoteStatus, limit int, offset int) ([]domain.DebitNote, error)
}

// NoteWriterSvc defines write operations for credit and debit notes
type NoteWriterSvc interface {
	// CreateCreditNote persists a new pending credit note after totals validation.
	CreateCreditNote(ctx context.Context, req dto.CreateCreditNoteRequest, userID string) (*domain.CreditNote, error)

	// CreateDebitNote persists a new pending debit note after totals and
	// target-reference validation.
	CreateDebitNote(ctx context.Context, req dto.CreateDebitNoteRequest, userID string) (*domain.DebitNote, error)

	// ApplyCreditNote applies a pending credit note: reduces the linked sale's
	// outstanding amount and, when a cash refund is requested, records the
	// refund in the transaction ledger atomically.
	ApplyCreditNote(ctx context.Context, creditNoteID string, req dto.ApplyNoteRequest, userID string) (*domain.CreditNote, error)

	// ApplyDebitNote applies a pending debit note against its target entity.
	ApplyDebitNote(ctx context.Context, debitNoteID string, req dto.ApplyNoteRequest, userID string) (*domain.DebitNote, error)

	// CancelCreditNote cancels a pending credit note. Applied notes cannot be cancelled.
	CancelCreditNote(ctx context.Context, creditNoteID string, userID string) error

	// CancelDebitNote cancels a pending debit note. Applied notes cannot be cancelled.
	CancelDebitNote(ctx context.Context, debitNoteID string, userID string) error
}

// NoteSvcFacade combines all note-related service interfaces
type NoteSvcFacade interface {
	NoteReaderSvc
	NoteWriterSvc
}
