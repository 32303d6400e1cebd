package repositories

import (
	"context"
	"time"

	"github.com/finstock/finstock_backend/internal/core/domain"
)

// NoteReader defines read operations for credit and debit notes
type NoteReader interface {
	// FindCreditNoteByID retrieves a credit note with its items.
	FindCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.CreditNote, error)

	// FindDebitNoteByID retrieves a debit note with its items.
	FindDebitNoteByID(ctx context.Context, debitNoteID string) (*domain.DebitNote, error)

	// ListCreditNotes retrieves credit notes, newest first, optionally filtered by status.
	ListCreditNotes(ctx context.Context, status *domain.NoteStatus, limit int, offset int) ([]domain.CreditNote, error)

	// ListDebitNotes retrieves debit notes, newest first, optionally filtered by status.
	ListDebitNotes(ctx context.Context, status *domain.NoteStatus, limit int, offset int) ([]domain.DebitNote, error)
}

// NoteWriter defines write operations for credit and debit notes
type NoteWriter interface {
	// SaveCreditNote persists a new credit note and its items.
	SaveCreditNote(ctx context.Context, note domain.CreditNote) error

	// SaveDebitNote persists a new debit note and its items.
	SaveDebitNote(ctx context.Context, note domain.DebitNote) error

	// ApplyCreditNote marks a pending note applied under lock, adjusts the linked
	// sale's refunded/outstanding columns, and, when ledgerTxn is non-nil, writes the
	// refund ledger transaction in the same database transaction. A note that is not
	// pending yields a conflict error carrying the current status.
	ApplyCreditNote(ctx context.Context, creditNoteID string, message string, ledgerTxn *domain.Transaction, userID string, now time.Time) (*domain.CreditNote, error)

	// ApplyDebitNote mirrors ApplyCreditNote for debit notes, adjusting the target
	// sale or purchase outstanding columns according to the note's entity reference.
	ApplyDebitNote(ctx context.Context, debitNoteID string, message string, ledgerTxn *domain.Transaction, userID string, now time.Time) (*domain.DebitNote, error)

	// CancelCreditNote flips a pending note to cancelled; applied notes cannot be cancelled.
	CancelCreditNote(ctx context.Context, creditNoteID string, userID string, now time.Time) error

	// CancelDebitNote flips a pending note to cancelled; applied notes cannot be cancelled.
	CancelDebitNote(ctx context.Context, debitNoteID string, userID string, now time.Time) error
}

// NoteRepositoryFacade combines all note-related repository interfaces
type NoteRepositoryFacade interface {
	NoteReader
	NoteWriter
}
