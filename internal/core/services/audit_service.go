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

// auditServiceImpl implements the AuditSvcFacade interface
type auditServiceImpl struct {
	BaseService
	auditRepo portsrepo.AuditRepositoryFacade
	now       func() time.Time
}

// NewAuditServiceImpl creates a new inventory audit service
func NewAuditServiceImpl(auditRepo portsrepo.AuditRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditServiceImpl{
		auditRepo: auditRepo,
		now:       time.Now,
	}
}

var _ portssvc.AuditSvcFacade = (*auditServiceImpl)(nil)

func (s *auditServiceImpl) RecordStockCorrection(ctx context.Context, req dto.RecordStockCorrectionRequest, userID string) (*domain.ProductAuditTrail, error) {
	if !domain.ValidReconciliationReason(req.Reason) {
		return nil, fmt.Errorf("%w: unknown reconciliation reason %s", apperrors.ErrValidation, req.Reason)
	}
	if req.QuantityAfter.IsNegative() {
		return nil, fmt.Errorf("%w: corrected quantity cannot be negative", apperrors.ErrValidation)
	}

	ref := domain.NoRef()
	if req.RefKind != "" && req.RefKind != domain.RefNone {
		if req.RefID == nil {
			return nil, fmt.Errorf("%w: reference kind %s requires a reference ID", apperrors.ErrValidation, req.RefKind)
		}
		ref = domain.EntityRef{Kind: req.RefKind, ID: *req.RefID}
	} else if req.RefID != nil {
		return nil, fmt.Errorf("%w: reference ID given without a reference kind", apperrors.ErrValidation)
	}
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	audit := domain.ProductAuditTrail{
		AuditID:            uuid.NewString(),
		ProductVariationID: req.ProductVariationID,
		ProductStorageID:   req.ProductStorageID,
		QuantityBefore:     req.QuantityBefore,
		QuantityAfter:      req.QuantityAfter,
		Reason:             req.Reason,
		Ref:                ref,
		Notes:              req.Notes,
		CreatedAt:          s.now(),
		CreatedBy:          userID,
	}

	recorded, err := s.auditRepo.RecordReconciliation(ctx, audit)
	if err != nil {
		s.LogError(ctx, err, "Failed to record stock correction",
			slog.String("product_storage_id", req.ProductStorageID),
			slog.String("reason", string(req.Reason)))
		return nil, err
	}

	s.LogInfo(ctx, "Stock correction recorded",
		slog.String("audit_id", recorded.AuditID),
		slog.String("product_storage_id", req.ProductStorageID),
		slog.String("quantity_before", req.QuantityBefore.String()),
		slog.String("quantity_after", req.QuantityAfter.String()))
	return recorded, nil
}

func (s *auditServiceImpl) GetAuditByID(ctx context.Context, auditID string) (*domain.ProductAuditTrail, error) {
	return s.auditRepo.FindAuditByID(ctx, auditID)
}

func (s *auditServiceImpl) ListAuditsByStorage(ctx context.Context, productStorageID string, limit int, offset int) ([]domain.ProductAuditTrail, error) {
	return s.auditRepo.ListAuditsByStorage(ctx, productStorageID, limit, offset)
}

func (s *auditServiceImpl) ListAuditsByVariation(ctx context.Context, productVariationID string, limit int, offset int) ([]domain.ProductAuditTrail, error) {
	return s.auditRepo.ListAuditsByVariation(ctx, productVariationID, limit, offset)
}
