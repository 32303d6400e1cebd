package services

import (
	"context"
	"time"

	"github.com/finstock/finstock_backend/internal/core/domain"
	"github.com/finstock/finstock_backend/internal/dto"
)

// ReconciliationReaderSvc defines read operations for daily cash reconciliations
type ReconciliationReaderSvc interface {
	// GetReconciliationByID retrieves a reconciliation session.
	GetReconciliationByID(ctx context.Context, reconciliationID string) (*domain.DailyCashReconciliation, error)

	// GetDayState reports the session for an account on a business date, or nil
	// when the day was never opened.
	GetDayState(ctx context.Context, accountID string, businessDate time.Time) (*domain.DailyCashReconciliation, error)

	// ListReconciliationsByAccount retrieves sessions for an account, newest first.
	ListReconciliationsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.DailyCashReconciliation, error)
}

// ReconciliationWriterSvc defines write operations for daily cash reconciliations
type ReconciliationWriterSvc interface {
	// OpenDay opens a reconciliation session for an account on a business date,
	// snapshotting the live system balance. Opening twice is a conflict.
	OpenDay(ctx context.Context, req dto.OpenDayRequest, userID string) (*domain.DailyCashReconciliation, error)

	// CloseDay closes an open session, snapshotting the closing system balance
	// and recording the counted balance and variance. Closing twice is a conflict.
	CloseDay(ctx context.Context, reconciliationID string, req dto.CloseDayRequest, userID string) (*domain.DailyCashReconciliation, error)
}

// ReconciliationSvcFacade combines all reconciliation service interfaces
type ReconciliationSvcFacade interface {
	ReconciliationReaderSvc
	ReconciliationWriterSvc
}
