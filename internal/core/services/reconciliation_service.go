package services

import (
	"context"
	"errors"
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

// reconciliationServiceImpl implements the ReconciliationSvcFacade interface
type reconciliationServiceImpl struct {
	BaseService
	reconRepo   portsrepo.ReconciliationRepositoryFacade
	accountRepo portsrepo.AccountReader
	now         func() time.Time
}

// NewReconciliationServiceImpl creates a new daily cash reconciliation service
func NewReconciliationServiceImpl(reconRepo portsrepo.ReconciliationRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.ReconciliationSvcFacade {
	return &reconciliationServiceImpl{
		reconRepo:   reconRepo,
		accountRepo: accountRepo,
		now:         time.Now,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationServiceImpl)(nil)

func (s *reconciliationServiceImpl) OpenDay(ctx context.Context, req dto.OpenDayRequest, userID string) (*domain.DailyCashReconciliation, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, req.FinancialAccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, account.AccountID)
	}

	now := s.now()
	if req.BusinessDate.IsZero() {
		req.BusinessDate = now
	}
	businessDate := domain.NormalizeBusinessDate(req.BusinessDate)

	recon := domain.DailyCashReconciliation{
		ReconciliationID:     uuid.NewString(),
		FinancialAccountID:   account.AccountID,
		BusinessDateUTC:      businessDate,
		OpenedAtUTC:          now.UTC(),
		OpeningSystemBalance: account.Balance,
		Notes:                req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.CountedBalance != nil {
		recon.OpeningCountedBalance = req.CountedBalance
		variance := req.CountedBalance.Sub(account.Balance)
		recon.OpeningVariance = &variance
	}

	if err := s.reconRepo.OpenReconciliation(ctx, recon); err != nil {
		s.LogError(ctx, err, "Failed to open reconciliation",
			slog.String("account_id", account.AccountID),
			slog.String("business_date", businessDate.Format("2006-01-02")))
		return nil, err
	}

	s.LogInfo(ctx, "Reconciliation opened",
		slog.String("reconciliation_id", recon.ReconciliationID),
		slog.String("account_id", account.AccountID),
		slog.String("business_date", businessDate.Format("2006-01-02")))
	return &recon, nil
}

func (s *reconciliationServiceImpl) CloseDay(ctx context.Context, reconciliationID string, req dto.CloseDayRequest, userID string) (*domain.DailyCashReconciliation, error) {
	recon, err := s.reconRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		return nil, err
	}
	if recon.IsClosed() {
		return nil, fmt.Errorf("%w: reconciliation %s is already closed", apperrors.ErrConflict, reconciliationID)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, recon.FinancialAccountID)
	if err != nil {
		return nil, err
	}

	closingSystem := account.Balance
	closingVariance := req.CountedBalance.Sub(closingSystem)

	err = s.reconRepo.CloseReconciliation(ctx, reconciliationID, closingSystem, req.CountedBalance, closingVariance, req.Notes, userID, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to close reconciliation", slog.String("reconciliation_id", reconciliationID))
		return nil, err
	}

	s.LogInfo(ctx, "Reconciliation closed",
		slog.String("reconciliation_id", reconciliationID),
		slog.String("variance", closingVariance.String()))
	return s.reconRepo.FindReconciliationByID(ctx, reconciliationID)
}

func (s *reconciliationServiceImpl) GetReconciliationByID(ctx context.Context, reconciliationID string) (*domain.DailyCashReconciliation, error) {
	return s.reconRepo.FindReconciliationByID(ctx, reconciliationID)
}

// GetDayState reports the session for an account on a business date. A day that
// was never opened is not an error; it returns nil.
func (s *reconciliationServiceImpl) GetDayState(ctx context.Context, accountID string, businessDate time.Time) (*domain.DailyCashReconciliation, error) {
	recon, err := s.reconRepo.FindByAccountAndDate(ctx, accountID, domain.NormalizeBusinessDate(businessDate))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return recon, nil
}

func (s *reconciliationServiceImpl) ListReconciliationsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.DailyCashReconciliation, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.reconRepo.ListByAccount(ctx, accountID, limit, offset)
}
