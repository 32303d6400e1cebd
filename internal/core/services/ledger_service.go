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
)

// ledgerServiceImpl implements the LedgerSvcFacade interface
type ledgerServiceImpl struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountRepositoryFacade
	now             func() time.Time
}

// NewLedgerServiceImpl creates a new ledger service
func NewLedgerServiceImpl(transactionRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerServiceImpl{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		now:             time.Now,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerServiceImpl)(nil)

// validateReferencedAccounts checks that every account a transaction touches
// exists and is active.
func (s *ledgerServiceImpl) validateReferencedAccounts(ctx context.Context, txn domain.Transaction) error {
	ids := []string{}
	if txn.FromAccountID != nil {
		ids = append(ids, *txn.FromAccountID)
	}
	if txn.ToAccountID != nil {
		ids = append(ids, *txn.ToAccountID)
	}
	if len(ids) == 0 {
		return nil
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}
	return nil
}

func (s *ledgerServiceImpl) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	now := s.now()

	status := req.Status
	if status == "" {
		status = domain.Completed
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Type:          req.Type,
		Status:        status,
		MovementDate:  req.MovementDate,
		CurrencyCode:  req.CurrencyCode,
		Fees:          req.Fees,
		ExchangeRate:  req.ExchangeRate,
		Description:   req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// Validate covers the amount sign and the effect table, which is the
	// authority on which sides each type needs.
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}
	if err := s.validateReferencedAccounts(ctx, txn); err != nil {
		return nil, err
	}

	applyEffects := txn.Status == domain.Completed
	if err := s.transactionRepo.SaveTransaction(ctx, txn, applyEffects); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("status", string(txn.Status)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

func (s *ledgerServiceImpl) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.transactionRepo.FindTransactionByID(ctx, transactionID)
}

func (s *ledgerServiceImpl) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, nil, err
	}
	return s.transactionRepo.ListTransactionsByAccount(ctx, accountID, limit, nextToken)
}

func (s *ledgerServiceImpl) UpdateTransactionStatus(ctx context.Context, transactionID string, newStatus domain.TransactionStatus, userID string) (*domain.Transaction, error) {
	// A reversal must apply the inverse balance effect; route it through the
	// dedicated path so the effect and its cause are recorded consistently.
	if newStatus == domain.Reversed {
		return s.ReverseTransaction(ctx, transactionID, userID)
	}

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if !txn.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%w: transaction %s cannot move from %s to %s",
			apperrors.ErrConflict, transactionID, txn.Status, newStatus)
	}

	var effects []domain.BalanceEffect
	if newStatus == domain.Completed {
		effects, err = txn.Effects()
		if err != nil {
			return nil, err
		}
	}

	// Effects are keyed by the transaction ID itself: a retried completion
	// finds the recorded cause and never applies twice.
	err = s.transactionRepo.UpdateStatusWithEffects(ctx, transactionID, txn.Status, newStatus, effects, transactionID, userID, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to update transaction status",
			slog.String("transaction_id", transactionID),
			slog.String("new_status", string(newStatus)))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction status updated",
		slog.String("transaction_id", transactionID),
		slog.String("from", string(txn.Status)),
		slog.String("to", string(newStatus)))
	return s.transactionRepo.FindTransactionByID(ctx, transactionID)
}

func (s *ledgerServiceImpl) ReverseTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if !txn.Status.CanTransitionTo(domain.Reversed) {
		return nil, fmt.Errorf("%w: only completed transactions can be reversed, transaction %s is %s",
			apperrors.ErrConflict, transactionID, txn.Status)
	}

	inverse, err := txn.InverseEffects()
	if err != nil {
		return nil, err
	}

	// The reversal cause is distinct from the original application so both
	// legs can coexist in the adjustment history.
	causeID := transactionID + ":reversal"
	err = s.transactionRepo.UpdateStatusWithEffects(ctx, transactionID, domain.Completed, domain.Reversed, inverse, causeID, userID, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to reverse transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction reversed", slog.String("transaction_id", transactionID))
	return s.transactionRepo.FindTransactionByID(ctx, transactionID)
}
