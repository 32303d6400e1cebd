package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finstock/finstock_backend/internal/apperrors"
	"github.com/finstock/finstock_backend/internal/core/domain"
	portsrepo "github.com/finstock/finstock_backend/internal/core/ports/repositories"
	"github.com/finstock/finstock_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const capitalColumns = `movement_id, owner_id, movement_type, amount, transaction_date, financial_account_id, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxCapitalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountBalanceSupport
}

// newPgxCapitalRepository creates a new repository for owner capital movements.
func newPgxCapitalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountBalanceSupport) portsrepo.CapitalRepositoryFacade {
	return &PgxCapitalRepository{BaseRepository{Pool: pool}, accountRepo}
}

var _ portsrepo.CapitalRepositoryFacade = (*PgxCapitalRepository)(nil)

func toDomainCapitalMovement(m models.CapitalMovement) domain.CapitalMovement {
	return domain.CapitalMovement{
		MovementID:         m.MovementID,
		OwnerID:            m.OwnerID,
		Type:               domain.CapitalMovementType(m.MovementType),
		Amount:             m.Amount,
		TransactionDate:    m.TransactionDate,
		FinancialAccountID: m.FinancialAccountID,
		Notes:              m.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanCapitalRow(row pgx.Row) (models.CapitalMovement, error) {
	var m models.CapitalMovement
	err := row.Scan(
		&m.MovementID,
		&m.OwnerID,
		&m.MovementType,
		&m.Amount,
		&m.TransactionDate,
		&m.FinancialAccountID,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCapitalMovement persists a movement and, when ledgerTxn is non-nil,
// mirrors it in the transaction ledger atomically.
func (r *PgxCapitalRepository) SaveCapitalMovement(ctx context.Context, movement domain.CapitalMovement, ledgerTxn *domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO capital_movements (`+capitalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		movement.MovementID,
		movement.OwnerID,
		string(movement.Type),
		movement.Amount,
		movement.TransactionDate,
		movement.FinancialAccountID,
		movement.Notes,
		movement.CreatedAt,
		movement.CreatedBy,
		movement.LastUpdatedAt,
		movement.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: capital movement %s already exists", apperrors.ErrDuplicate, movement.MovementID)
		}
		return fmt.Errorf("failed to insert capital movement %s: %w", movement.MovementID, err)
	}

	if ledgerTxn != nil {
		if err := insertTransactionTx(ctx, tx, toModelTransaction(*ledgerTxn)); err != nil {
			return err
		}
		effects, err := ledgerTxn.Effects()
		if err != nil {
			return err
		}
		if _, err := r.accountRepo.ApplyBalanceEffectsInTx(ctx, tx, effects, ledgerTxn.TransactionID, ledgerTxn.CreatedBy, ledgerTxn.CreatedAt); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// FindCapitalMovementByID retrieves a capital movement by its identifier.
func (r *PgxCapitalRepository) FindCapitalMovementByID(ctx context.Context, movementID string) (*domain.CapitalMovement, error) {
	query := `SELECT ` + capitalColumns + ` FROM capital_movements WHERE movement_id = $1;`

	m, err := scanCapitalRow(r.Pool.QueryRow(ctx, query, movementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find capital movement by ID %s: %w", movementID, err)
	}

	d := toDomainCapitalMovement(m)
	return &d, nil
}

// ListCapitalMovementsByOwner retrieves an owner's movements, newest first.
func (r *PgxCapitalRepository) ListCapitalMovementsByOwner(ctx context.Context, ownerID string, limit int, offset int) ([]domain.CapitalMovement, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + capitalColumns + `
		FROM capital_movements
		WHERE owner_id = $1
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query capital movements for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	movements := []domain.CapitalMovement{}
	for rows.Next() {
		m, err := scanCapitalRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan capital movement row: %w", err)
		}
		movements = append(movements, toDomainCapitalMovement(m))
	}
	return movements, rows.Err()
}
