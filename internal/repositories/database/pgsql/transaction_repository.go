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
	"github.com/finstock/finstock_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, from_account_id, to_account_id, amount, transaction_type, status, movement_date, currency_code, fees, exchange_rate, description, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountBalanceSupport
}

// newPgxTransactionRepository creates a new repository for ledger transactions.
// It needs balance support from the account repository because completed
// transactions mutate account balances in the same database transaction.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountBalanceSupport) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}, accountRepo}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		FromAccountID: d.FromAccountID,
		ToAccountID:   d.ToAccountID,
		Amount:        d.Amount,
		Type:          models.TransactionType(d.Type),
		Status:        models.TransactionStatus(d.Status),
		MovementDate:  d.MovementDate,
		CurrencyCode:  d.CurrencyCode,
		Fees:          d.Fees,
		ExchangeRate:  d.ExchangeRate,
		Description:   d.Description,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		FromAccountID: m.FromAccountID,
		ToAccountID:   m.ToAccountID,
		Amount:        m.Amount,
		Type:          domain.TransactionType(m.Type),
		Status:        domain.TransactionStatus(m.Status),
		MovementDate:  m.MovementDate,
		CurrencyCode:  m.CurrencyCode,
		Fees:          m.Fees,
		ExchangeRate:  m.ExchangeRate,
		Description:   m.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanTransactionRow(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.FromAccountID,
		&m.ToAccountID,
		&m.Amount,
		&m.Type,
		&m.Status,
		&m.MovementDate,
		&m.CurrencyCode,
		&m.Fees,
		&m.ExchangeRate,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func insertTransactionTx(ctx context.Context, tx pgx.Tx, m models.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.FromAccountID,
		m.ToAccountID,
		m.Amount,
		m.Type,
		m.Status,
		m.MovementDate,
		m.CurrencyCode,
		m.Fees,
		m.ExchangeRate,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// SaveTransaction persists a new transaction. When applyEffects is true the
// transaction's balance effects are applied atomically, keyed by the
// transaction ID so a retried save never double-applies.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, applyEffects bool) error {
	m := toModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := insertTransactionTx(ctx, tx, m); err != nil {
		return err
	}

	if applyEffects {
		effects, err := txn.Effects()
		if err != nil {
			return err
		}
		if _, err := r.accountRepo.ApplyBalanceEffectsInTx(ctx, tx, effects, txn.TransactionID, txn.CreatedBy, txn.CreatedAt); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransactionRow(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	d := toDomainTransaction(m)
	return &d, nil
}

// UpdateStatusWithEffects flips a transaction's status and applies balance effects
// atomically. The expected-status predicate makes the flip a latch: a zero row
// count means someone else already moved the transaction on, which surfaces as a
// conflict rather than a double application.
func (r *PgxTransactionRepository) UpdateStatusWithEffects(ctx context.Context, transactionID string, fromStatus, toStatus domain.TransactionStatus, effects []domain.BalanceEffect, causeID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	cmdTag, err := tx.Exec(ctx, `
		UPDATE transactions
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1 AND status = $2;
	`, transactionID, string(fromStatus), string(toStatus), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of transaction %s: %w", transactionID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Distinguish a missing transaction from a status race.
		if _, findErr := r.FindTransactionByID(ctx, transactionID); errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check transaction %s after status update: %w", transactionID, findErr)
		}
		return fmt.Errorf("%w: transaction %s is not in status %s", apperrors.ErrConflict, transactionID, fromStatus)
	}

	if len(effects) > 0 {
		if _, err := r.accountRepo.ApplyBalanceEffectsInTx(ctx, tx, effects, causeID, userID, now); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// ListTransactionsByAccount retrieves transactions touching an account, newest
// first, using a (movement_date, created_at) cursor token.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []any{accountID}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE (from_account_id = $1 OR to_account_id = $1)
	`
	if nextToken != nil && *nextToken != "" {
		movementDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (movement_date, created_at) < ($2, $3)`
		args = append(args, movementDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY movement_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1) // Fetch one extra row to know whether another page exists

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransactionRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, toDomainTransaction(m))
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	var newNextToken *string
	if len(transactions) > limit {
		transactions = transactions[:limit]
		last := transactions[len(transactions)-1]
		token := pagination.EncodeToken(last.MovementDate, last.CreatedAt)
		newNextToken = &token
	}

	return transactions, newNextToken, nil
}
