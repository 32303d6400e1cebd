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

// capitalServiceImpl implements the CapitalSvcFacade interface
type capitalServiceImpl struct {
	BaseService
	capitalRepo  portsrepo.CapitalRepositoryFacade
	accountRepo  portsrepo.AccountReader
	currencyCode string
	now          func() time.Time
}

// NewCapitalServiceImpl creates a new capital movement service
func NewCapitalServiceImpl(capitalRepo portsrepo.CapitalRepositoryFacade, accountRepo portsrepo.AccountReader, currencyCode string) portssvc.CapitalSvcFacade {
	return &capitalServiceImpl{
		capitalRepo:  capitalRepo,
		accountRepo:  accountRepo,
		currencyCode: currencyCode,
		now:          time.Now,
	}
}

var _ portssvc.CapitalSvcFacade = (*capitalServiceImpl)(nil)

func (s *capitalServiceImpl) CreateCapitalMovement(ctx context.Context, req dto.CreateCapitalMovementRequest, userID string) (*domain.CapitalMovement, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: capital movement amount must be positive", apperrors.ErrValidation)
	}

	now := s.now()
	movement := domain.CapitalMovement{
		MovementID:         uuid.NewString(),
		OwnerID:            req.OwnerID,
		Type:               req.Type,
		Amount:             req.Amount,
		TransactionDate:    req.TransactionDate,
		FinancialAccountID: req.FinancialAccountID,
		Notes:              req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	var ledgerTxn *domain.Transaction
	if req.FinancialAccountID != nil {
		account, err := s.accountRepo.FindAccountByID(ctx, *req.FinancialAccountID)
		if err != nil {
			return nil, err
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, account.AccountID)
		}

		// Contributions put money into the account; withdrawals take it out.
		txn := domain.Transaction{
			TransactionID: uuid.NewString(),
			Amount:        req.Amount,
			Status:        domain.Completed,
			MovementDate:  req.TransactionDate,
			CurrencyCode:  s.currencyCode,
			Description:   fmt.Sprintf("Capital movement %s (%s)", movement.MovementID, movement.Type),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if movement.Type.IsContribution() {
			txn.Type = domain.Deposit
			txn.ToAccountID = req.FinancialAccountID
		} else {
			txn.Type = domain.Withdrawal
			txn.FromAccountID = req.FinancialAccountID
		}
		ledgerTxn = &txn
	}

	if err := s.capitalRepo.SaveCapitalMovement(ctx, movement, ledgerTxn); err != nil {
		s.LogError(ctx, err, "Failed to save capital movement", slog.String("movement_id", movement.MovementID))
		return nil, err
	}

	s.LogInfo(ctx, "Capital movement recorded",
		slog.String("movement_id", movement.MovementID),
		slog.String("type", string(movement.Type)),
		slog.String("amount", movement.Amount.String()),
		slog.Bool("ledgered", ledgerTxn != nil))
	return &movement, nil
}

func (s *capitalServiceImpl) GetCapitalMovementByID(ctx context.Context, movementID string) (*domain.CapitalMovement, error) {
	return s.capitalRepo.FindCapitalMovementByID(ctx, movementID)
}

func (s *capitalServiceImpl) ListCapitalMovementsByOwner(ctx context.Context, ownerID string, limit int, offset int) ([]domain.CapitalMovement, error) {
	return s.capitalRepo.ListCapitalMovementsByOwner(ctx, ownerID, limit, offset)
}
