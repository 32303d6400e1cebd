package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finstock/finstock_backend/internal/apperrors"
	"github.com/finstock/finstock_backend/internal/core/domain"
	portsrepo "github.com/finstock/finstock_backend/internal/core/ports/repositories"
	portssvc "github.com/finstock/finstock_backend/internal/core/ports/services"
	"github.com/finstock/finstock_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// noteServiceImpl implements the NoteSvcFacade interface
type noteServiceImpl struct {
	BaseService
	noteRepo     portsrepo.NoteRepositoryFacade
	accountRepo  portsrepo.AccountReader
	currencyCode string
	now          func() time.Time
}

// NewNoteServiceImpl creates a new note service
func NewNoteServiceImpl(noteRepo portsrepo.NoteRepositoryFacade, accountRepo portsrepo.AccountReader, currencyCode string) portssvc.NoteSvcFacade {
	return &noteServiceImpl{
		noteRepo:     noteRepo,
		accountRepo:  accountRepo,
		currencyCode: currencyCode,
		now:          time.Now,
	}
}

var _ portssvc.NoteSvcFacade = (*noteServiceImpl)(nil)

func itemTotals(items []dto.NoteItemRequest) []decimal.Decimal {
	totals := make([]decimal.Decimal, len(items))
	for i, it := range items {
		totals[i] = it.LineTotal
	}
	return totals
}

func (s *noteServiceImpl) CreateCreditNote(ctx context.Context, req dto.CreateCreditNoteRequest, userID string) (*domain.CreditNote, error) {
	if err := domain.ValidateNoteTotals(itemTotals(req.Items), req.SubTotal, req.TaxAmount, req.TotalAmount); err != nil {
		return nil, err
	}
	if req.FinancialAccountID != nil && !req.ApplyImmediately {
		return nil, fmt.Errorf("%w: financial account requires applyImmediately", apperrors.ErrValidation)
	}

	now := s.now()
	noteID := uuid.NewString()

	items := make([]domain.CreditNoteItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = domain.CreditNoteItem{
			ItemID:             uuid.NewString(),
			CreditNoteID:       noteID,
			ProductVariationID: it.ProductVariationID,
			Description:        it.Description,
			Quantity:           it.Quantity,
			UnitPrice:          it.UnitPrice,
			LineTotal:          it.LineTotal,
		}
	}

	note := domain.CreditNote{
		CreditNoteID: noteID,
		SaleID:       req.SaleID,
		CustomerID:   req.CustomerID,
		SubTotal:     req.SubTotal,
		TaxAmount:    req.TaxAmount,
		TotalAmount:  req.TotalAmount,
		Reason:       req.Reason,
		Status:       domain.NotePending,
		Items:        items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.noteRepo.SaveCreditNote(ctx, note); err != nil {
		s.LogError(ctx, err, "Failed to save credit note", slog.String("credit_note_id", noteID))
		return nil, err
	}

	s.LogInfo(ctx, "Credit note created",
		slog.String("credit_note_id", noteID),
		slog.String("total", note.TotalAmount.String()))

	if req.ApplyImmediately {
		return s.ApplyCreditNote(ctx, noteID, dto.ApplyNoteRequest{FinancialAccountID: req.FinancialAccountID}, userID)
	}
	return &note, nil
}

func (s *noteServiceImpl) CreateDebitNote(ctx context.Context, req dto.CreateDebitNoteRequest, userID string) (*domain.DebitNote, error) {
	if err := domain.ValidateNoteTotals(itemTotals(req.Items), req.SubTotal, req.TaxAmount, req.TotalAmount); err != nil {
		return nil, err
	}
	if req.FinancialAccountID != nil && !req.ApplyImmediately {
		return nil, fmt.Errorf("%w: financial account requires applyImmediately", apperrors.ErrValidation)
	}

	target := domain.NoRef()
	if req.TargetKind != "" && req.TargetKind != domain.RefNone {
		if req.TargetID == nil {
			return nil, fmt.Errorf("%w: target kind %s requires a target ID", apperrors.ErrValidation, req.TargetKind)
		}
		target = domain.EntityRef{Kind: req.TargetKind, ID: *req.TargetID}
	} else if req.TargetID != nil {
		return nil, fmt.Errorf("%w: target ID given without a target kind", apperrors.ErrValidation)
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if target.Kind == domain.RefCapitalMovement {
		return nil, fmt.Errorf("%w: debit notes target sales or purchases only", apperrors.ErrValidation)
	}

	now := s.now()
	noteID := uuid.NewString()

	items := make([]domain.DebitNoteItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = domain.DebitNoteItem{
			ItemID:             uuid.NewString(),
			DebitNoteID:        noteID,
			ProductVariationID: it.ProductVariationID,
			Description:        it.Description,
			Quantity:           it.Quantity,
			UnitPrice:          it.UnitPrice,
			LineTotal:          it.LineTotal,
		}
	}

	note := domain.DebitNote{
		DebitNoteID: noteID,
		Target:      target,
		PartyID:     req.PartyID,
		SubTotal:    req.SubTotal,
		TaxAmount:   req.TaxAmount,
		TotalAmount: req.TotalAmount,
		Reason:      req.Reason,
		Status:      domain.NotePending,
		Items:       items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.noteRepo.SaveDebitNote(ctx, note); err != nil {
		s.LogError(ctx, err, "Failed to save debit note", slog.String("debit_note_id", noteID))
		return nil, err
	}

	s.LogInfo(ctx, "Debit note created",
		slog.String("debit_note_id", noteID),
		slog.String("target_kind", string(target.Kind)),
		slog.String("total", note.TotalAmount.String()))

	if req.ApplyImmediately {
		return s.ApplyDebitNote(ctx, noteID, dto.ApplyNoteRequest{FinancialAccountID: req.FinancialAccountID}, userID)
	}
	return &note, nil
}

func (s *noteServiceImpl) GetCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.CreditNote, error) {
	return s.noteRepo.FindCreditNoteByID(ctx, creditNoteID)
}

func (s *noteServiceImpl) GetDebitNoteByID(ctx context.Context, debitNoteID string) (*domain.DebitNote, error) {
	return s.noteRepo.FindDebitNoteByID(ctx, debitNoteID)
}

func (s *noteServiceImpl) ListCreditNotes(ctx context.Context, status *domain.NoteStatus, limit int, offset int) ([]domain.CreditNote, error) {
	return s.noteRepo.ListCreditNotes(ctx, status, limit, offset)
}

func (s *noteServiceImpl) ListDebitNotes(ctx context.Context, status *domain.NoteStatus, limit int, offset int) ([]domain.DebitNote, error) {
	return s.noteRepo.ListDebitNotes(ctx, status, limit, offset)
}

// buildRefundTransaction creates the ledger leg of a cash-refunding note
// application. The money leaves the chosen account.
func (s *noteServiceImpl) buildRefundTransaction(ctx context.Context, accountID string, amount decimal.Decimal, description string, userID string, now time.Time) (*domain.Transaction, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountID)
	}

	return &domain.Transaction{
		TransactionID: uuid.NewString(),
		FromAccountID: &accountID,
		Amount:        amount,
		Type:          domain.Refund,
		Status:        domain.Completed,
		MovementDate:  now,
		CurrencyCode:  s.currencyCode,
		Description:   description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}, nil
}

func (s *noteServiceImpl) ApplyCreditNote(ctx context.Context, creditNoteID string, req dto.ApplyNoteRequest, userID string) (*domain.CreditNote, error) {
	note, err := s.noteRepo.FindCreditNoteByID(ctx, creditNoteID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var ledgerTxn *domain.Transaction
	if req.FinancialAccountID != nil {
		ledgerTxn, err = s.buildRefundTransaction(ctx, *req.FinancialAccountID, note.TotalAmount,
			fmt.Sprintf("Refund for credit note %s", creditNoteID), userID, now)
		if err != nil {
			return nil, err
		}
	}

	applied, err := s.noteRepo.ApplyCreditNote(ctx, creditNoteID, req.Message, ledgerTxn, userID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to apply credit note", slog.String("credit_note_id", creditNoteID))
		return nil, err
	}

	s.LogInfo(ctx, "Credit note applied",
		slog.String("credit_note_id", creditNoteID),
		slog.Bool("cash_refund", ledgerTxn != nil))
	return applied, nil
}

func (s *noteServiceImpl) ApplyDebitNote(ctx context.Context, debitNoteID string, req dto.ApplyNoteRequest, userID string) (*domain.DebitNote, error) {
	note, err := s.noteRepo.FindDebitNoteByID(ctx, debitNoteID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var ledgerTxn *domain.Transaction
	if req.FinancialAccountID != nil {
		ledgerTxn, err = s.buildRefundTransaction(ctx, *req.FinancialAccountID, note.TotalAmount,
			fmt.Sprintf("Refund for debit note %s", debitNoteID), userID, now)
		if err != nil {
			return nil, err
		}
	}

	applied, err := s.noteRepo.ApplyDebitNote(ctx, debitNoteID, req.Message, ledgerTxn, userID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to apply debit note", slog.String("debit_note_id", debitNoteID))
		return nil, err
	}

	s.LogInfo(ctx, "Debit note applied",
		slog.String("debit_note_id", debitNoteID),
		slog.Bool("cash_refund", ledgerTxn != nil))
	return applied, nil
}

func (s *noteServiceImpl) CancelCreditNote(ctx context.Context, creditNoteID string, userID string) error {
	if err := s.noteRepo.CancelCreditNote(ctx, creditNoteID, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to cancel credit note", slog.String("credit_note_id", creditNoteID))
		return err
	}
	s.LogInfo(ctx, "Credit note cancelled", slog.String("credit_note_id", creditNoteID))
	return nil
}

func (s *noteServiceImpl) CancelDebitNote(ctx context.Context, debitNoteID string, userID string) error {
	if err := s.noteRepo.CancelDebitNote(ctx, debitNoteID, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to cancel debit note", slog.String("debit_note_id", debitNoteID))
		return err
	}
	s.LogInfo(ctx, "Debit note cancelled", slog.String("debit_note_id", debitNoteID))
	return nil
}
