package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finstock/finstock_backend/internal/apperrors"
	"github.com/finstock/finstock_backend/internal/core/domain"
	portsrepo "github.com/finstock/finstock_backend/internal/core/ports/repositories"
	"github.com/finstock/finstock_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const reconciliationColumns = `reconciliation_id, financial_account_id, business_date, opened_at, opening_system_balance, opening_counted_balance, opening_variance, closed_at, closing_system_balance, closing_counted_balance, closing_variance, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxReconciliationRepository struct {
	BaseRepository
}

// newPgxReconciliationRepository creates a new repository for daily cash reconciliations.
func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryFacade {
	return &PgxReconciliationRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

func toDomainReconciliation(m models.DailyCashReconciliation) domain.DailyCashReconciliation {
	return domain.DailyCashReconciliation{
		ReconciliationID:      m.ReconciliationID,
		FinancialAccountID:    m.FinancialAccountID,
		BusinessDateUTC:       m.BusinessDate,
		OpenedAtUTC:           m.OpenedAt,
		OpeningSystemBalance:  m.OpeningSystemBalance,
		OpeningCountedBalance: m.OpeningCountedBalance,
		OpeningVariance:       m.OpeningVariance,
		ClosedAtUTC:           m.ClosedAt,
		ClosingSystemBalance:  m.ClosingSystemBalance,
		ClosingCountedBalance: m.ClosingCountedBalance,
		ClosingVariance:       m.ClosingVariance,
		Notes:                 m.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanReconciliationRow(row pgx.Row) (models.DailyCashReconciliation, error) {
	var m models.DailyCashReconciliation
	err := row.Scan(
		&m.ReconciliationID,
		&m.FinancialAccountID,
		&m.BusinessDate,
		&m.OpenedAt,
		&m.OpeningSystemBalance,
		&m.OpeningCountedBalance,
		&m.OpeningVariance,
		&m.ClosedAt,
		&m.ClosingSystemBalance,
		&m.ClosingCountedBalance,
		&m.ClosingVariance,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// OpenReconciliation inserts a new open session. The unique index on
// (financial_account_id, business_date) turns a double open into a conflict.
func (r *PgxReconciliationRepository) OpenReconciliation(ctx context.Context, recon domain.DailyCashReconciliation) error {
	query := `
		INSERT INTO daily_cash_reconciliations (` + reconciliationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		recon.ReconciliationID,
		recon.FinancialAccountID,
		recon.BusinessDateUTC,
		recon.OpenedAtUTC,
		recon.OpeningSystemBalance,
		recon.OpeningCountedBalance,
		recon.OpeningVariance,
		recon.ClosedAtUTC,
		recon.ClosingSystemBalance,
		recon.ClosingCountedBalance,
		recon.ClosingVariance,
		recon.Notes,
		recon.CreatedAt,
		recon.CreatedBy,
		recon.LastUpdatedAt,
		recon.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account %s already has a reconciliation for %s",
				apperrors.ErrConflict, recon.FinancialAccountID, recon.BusinessDateUTC.Format("2006-01-02"))
		}
		return fmt.Errorf("failed to open reconciliation %s: %w", recon.ReconciliationID, err)
	}
	return nil
}

// CloseReconciliation fills the closing columns of an open session. The
// closed_at IS NULL predicate makes the close a one-way latch.
func (r *PgxReconciliationRepository) CloseReconciliation(ctx context.Context, reconciliationID string, closingSystem, closingCounted, closingVariance decimal.Decimal, notes string, userID string, now time.Time) error {
	query := `
		UPDATE daily_cash_reconciliations
		SET closed_at = $2, closing_system_balance = $3, closing_counted_balance = $4,
		    closing_variance = $5, notes = $6, last_updated_at = $2, last_updated_by = $7
		WHERE reconciliation_id = $1 AND closed_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, reconciliationID, now, closingSystem, closingCounted, closingVariance, notes, userID)
	if err != nil {
		return fmt.Errorf("failed to close reconciliation %s: %w", reconciliationID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Either the session doesn't exist or it was already closed.
		if _, findErr := r.FindReconciliationByID(ctx, reconciliationID); errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check reconciliation %s after close attempt: %w", reconciliationID, findErr)
		}
		return fmt.Errorf("%w: reconciliation %s is already closed", apperrors.ErrConflict, reconciliationID)
	}
	return nil
}

// FindReconciliationByID retrieves a session by its identifier.
func (r *PgxReconciliationRepository) FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.DailyCashReconciliation, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM daily_cash_reconciliations WHERE reconciliation_id = $1;`

	m, err := scanReconciliationRow(r.Pool.QueryRow(ctx, query, reconciliationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reconciliation by ID %s: %w", reconciliationID, err)
	}

	d := toDomainReconciliation(m)
	return &d, nil
}

// FindByAccountAndDate retrieves the session for an account on a business date.
func (r *PgxReconciliationRepository) FindByAccountAndDate(ctx context.Context, accountID string, businessDate time.Time) (*domain.DailyCashReconciliation, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM daily_cash_reconciliations WHERE financial_account_id = $1 AND business_date = $2;`

	m, err := scanReconciliationRow(r.Pool.QueryRow(ctx, query, accountID, businessDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reconciliation for account %s on %s: %w", accountID, businessDate.Format("2006-01-02"), err)
	}

	d := toDomainReconciliation(m)
	return &d, nil
}

// ListByAccount retrieves sessions for an account, newest business date first.
func (r *PgxReconciliationRepository) ListByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.DailyCashReconciliation, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + reconciliationColumns + `
		FROM daily_cash_reconciliations
		WHERE financial_account_id = $1
		ORDER BY business_date DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query reconciliations for account %s: %w", accountID, err)
	}
	defer rows.Close()

	recons := []domain.DailyCashReconciliation{}
	for rows.Next() {
		m, err := scanReconciliationRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reconciliation row: %w", err)
		}
		recons = append(recons, toDomainReconciliation(m))
	}
	return recons, rows.Err()
}
