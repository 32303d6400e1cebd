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

// debtServiceImpl implements the DebtSvcFacade interface
type debtServiceImpl struct {
	BaseService
	debtRepo         portsrepo.DebtRepositoryFacade
	accountRepo      portsrepo.AccountReader
	allowOverpayment bool
	currencyCode     string
	now              func() time.Time
}

// NewDebtServiceImpl creates a new debt service. allowOverpayment relaxes the
// check that a payment may not push the paid total past the purchase total.
func NewDebtServiceImpl(debtRepo portsrepo.DebtRepositoryFacade, accountRepo portsrepo.AccountReader, allowOverpayment bool, currencyCode string) portssvc.DebtSvcFacade {
	return &debtServiceImpl{
		debtRepo:         debtRepo,
		accountRepo:      accountRepo,
		allowOverpayment: allowOverpayment,
		currencyCode:     currencyCode,
		now:              time.Now,
	}
}

var _ portssvc.DebtSvcFacade = (*debtServiceImpl)(nil)

func (s *debtServiceImpl) RecordPurchasePayment(ctx context.Context, req dto.RecordPurchasePaymentRequest, userID string) (*domain.Purchase, *domain.PurchaseDebtTracker, error) {
	if !req.PaidAmount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	purchase, err := s.debtRepo.FindPurchaseByID(ctx, req.PurchaseID)
	if err != nil {
		return nil, nil, err
	}

	// Fast-fail outside the lock; the repository re-checks under it.
	if !s.allowOverpayment && req.PaidAmount.GreaterThan(purchase.OutstandingAmount) {
		return nil, nil, fmt.Errorf("%w: payment of %s exceeds outstanding amount %s",
			apperrors.ErrValidation, req.PaidAmount.String(), purchase.OutstandingAmount.String())
	}

	now := s.now()
	payment := domain.PurchaseDebtTracker{
		PaymentID:          uuid.NewString(),
		PurchaseID:         req.PurchaseID,
		PaidAmount:         req.PaidAmount,
		PaymentMethod:      req.PaymentMethod,
		PaymentDate:        req.PaymentDate,
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
			return nil, nil, err
		}
		if !account.IsActive {
			return nil, nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, account.AccountID)
		}

		ledgerTxn = &domain.Transaction{
			TransactionID: uuid.NewString(),
			FromAccountID: req.FinancialAccountID,
			Amount:        req.PaidAmount,
			Type:          domain.Payment,
			Status:        domain.Completed,
			MovementDate:  req.PaymentDate,
			CurrencyCode:  s.currencyCode,
			Description:   fmt.Sprintf("Payment against purchase %s", req.PurchaseID),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	updated, err := s.debtRepo.RecordPurchasePayment(ctx, payment, ledgerTxn, s.allowOverpayment)
	if err != nil {
		s.LogError(ctx, err, "Failed to record purchase payment",
			slog.String("purchase_id", req.PurchaseID),
			slog.String("amount", req.PaidAmount.String()))
		return nil, nil, err
	}

	s.LogInfo(ctx, "Purchase payment recorded",
		slog.String("purchase_id", req.PurchaseID),
		slog.String("payment_id", payment.PaymentID),
		slog.String("amount", req.PaidAmount.String()),
		slog.Bool("fully_paid", updated.IsPaid))
	return updated, &payment, nil
}

func (s *debtServiceImpl) GetPurchaseDebt(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	return s.debtRepo.FindPurchaseByID(ctx, purchaseID)
}

func (s *debtServiceImpl) ListPaymentsByPurchase(ctx context.Context, purchaseID string) ([]domain.PurchaseDebtTracker, error) {
	if _, err := s.debtRepo.FindPurchaseByID(ctx, purchaseID); err != nil {
		return nil, err
	}
	return s.debtRepo.ListPaymentsByPurchase(ctx, purchaseID)
}

func (s *debtServiceImpl) ListUnpaidPurchases(ctx context.Context, limit int, offset int) ([]domain.Purchase, error) {
	return s.debtRepo.ListUnpaidPurchases(ctx, limit, offset)
}
