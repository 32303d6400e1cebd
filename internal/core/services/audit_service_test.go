package services_test

import (
	"context"
	"testing"

	"github.com/finstock/finstock_backend/internal/apperrors"
	"github.com/finstock/finstock_backend/internal/core/domain"
	portssvc "github.com/finstock/finstock_backend/internal/core/ports/services"
	"github.com/finstock/finstock_backend/internal/core/services"
	"github.com/finstock/finstock_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type AuditServiceTestSuite struct {
	suite.Suite
	mockAuditRepo *MockAuditRepository
	service       portssvc.AuditSvcFacade
	variationID   string
	storageID     string
	userID        string
}

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.service = services.NewAuditServiceImpl(suite.mockAuditRepo)

	suite.variationID = uuid.NewString()
	suite.storageID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AuditServiceTestSuite) correctionRequest() dto.RecordStockCorrectionRequest {
	return dto.RecordStockCorrectionRequest{
		ProductVariationID: suite.variationID,
		ProductStorageID:   suite.storageID,
		QuantityBefore:     decimal.NewFromInt(10),
		QuantityAfter:      decimal.NewFromInt(8),
		Reason:             domain.ReasonDamage,
		Notes:              "Two units crushed in transit",
	}
}

func (suite *AuditServiceTestSuite) TestRecordStockCorrection_Success() {
	ctx := context.Background()
	req := suite.correctionRequest()

	suite.mockAuditRepo.On("RecordReconciliation", ctx, mock.MatchedBy(func(a domain.ProductAuditTrail) bool {
		return a.ProductStorageID == suite.storageID &&
			a.QuantityBefore.Equal(decimal.NewFromInt(10)) &&
			a.QuantityAfter.Equal(decimal.NewFromInt(8)) &&
			a.Reason == domain.ReasonDamage &&
			!a.Ref.IsSet() &&
			a.CreatedBy == suite.userID
	})).Return(&domain.ProductAuditTrail{
		AuditID:          uuid.NewString(),
		ProductStorageID: suite.storageID,
		Reason:           domain.ReasonDamage,
	}, nil).Once()

	audit, err := suite.service.RecordStockCorrection(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(audit)
	suite.NotEmpty(audit.AuditID)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestRecordStockCorrection_WithFinancialCause() {
	ctx := context.Background()
	saleID := uuid.NewString()
	req := suite.correctionRequest()
	req.Reason = domain.ReasonReturn
	req.RefKind = domain.RefSale
	req.RefID = &saleID
	req.QuantityAfter = decimal.NewFromInt(12)

	suite.mockAuditRepo.On("RecordReconciliation", ctx, mock.MatchedBy(func(a domain.ProductAuditTrail) bool {
		return a.Ref.Kind == domain.RefSale && a.Ref.ID == saleID
	})).Return(&domain.ProductAuditTrail{AuditID: uuid.NewString()}, nil).Once()

	_, err := suite.service.RecordStockCorrection(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestRecordStockCorrection_UnknownReason() {
	ctx := context.Background()
	req := suite.correctionRequest()
	req.Reason = "SHRINKAGE"

	_, err := suite.service.RecordStockCorrection(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "RecordReconciliation", mock.Anything, mock.Anything)
}

func (suite *AuditServiceTestSuite) TestRecordStockCorrection_NegativeQuantity() {
	ctx := context.Background()
	req := suite.correctionRequest()
	req.QuantityAfter = decimal.NewFromInt(-1)

	_, err := suite.service.RecordStockCorrection(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AuditServiceTestSuite) TestRecordStockCorrection_ZeroVarianceRecorded() {
	ctx := context.Background()
	req := suite.correctionRequest()
	req.Reason = domain.ReasonCorrection
	req.QuantityAfter = req.QuantityBefore

	// A count that confirms the system quantity is still a reconciliation
	// outcome worth an audit row.
	suite.mockAuditRepo.On("RecordReconciliation", ctx, mock.MatchedBy(func(a domain.ProductAuditTrail) bool {
		return a.QuantityBefore.Equal(a.QuantityAfter)
	})).Return(&domain.ProductAuditTrail{AuditID: uuid.NewString()}, nil).Once()

	_, err := suite.service.RecordStockCorrection(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestRecordStockCorrection_RefKindWithoutID() {
	ctx := context.Background()
	req := suite.correctionRequest()
	req.RefKind = domain.RefPurchase

	_, err := suite.service.RecordStockCorrection(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "RecordReconciliation", mock.Anything, mock.Anything)
}

func (suite *AuditServiceTestSuite) TestRecordStockCorrection_RefIDWithoutKind() {
	ctx := context.Background()
	refID := uuid.NewString()
	req := suite.correctionRequest()
	req.RefID = &refID

	_, err := suite.service.RecordStockCorrection(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AuditServiceTestSuite) TestRecordStockCorrection_StaleSnapshotConflict() {
	ctx := context.Background()
	req := suite.correctionRequest()

	// The repository verifies the quantity-before snapshot under lock.
	suite.mockAuditRepo.On("RecordReconciliation", ctx, mock.AnythingOfType("domain.ProductAuditTrail")).
		Return(nil, apperrors.ErrConflict).Once()

	_, err := suite.service.RecordStockCorrection(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *AuditServiceTestSuite) TestListAuditsByStorage_Delegates() {
	ctx := context.Background()
	audits := []domain.ProductAuditTrail{{AuditID: uuid.NewString(), ProductStorageID: suite.storageID}}

	suite.mockAuditRepo.On("ListAuditsByStorage", ctx, suite.storageID, 20, 0).Return(audits, nil).Once()

	got, err := suite.service.ListAuditsByStorage(ctx, suite.storageID, 20, 0)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func TestAuditService(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}
