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
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, name, account_type, balance, is_active, is_default, description, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for financial account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements the facade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// Helper to convert domain.FinancialAccount to models.FinancialAccount for DB storage
func toModelAccount(d domain.FinancialAccount) models.FinancialAccount {
	return models.FinancialAccount{
		AccountID:   d.AccountID,
		Name:        d.Name,
		AccountType: models.AccountType(d.AccountType),
		Balance:     d.Balance,
		IsActive:    d.IsActive,
		IsDefault:   d.IsDefault,
		Description: d.Description,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.FinancialAccount from DB to domain.FinancialAccount
func toDomainAccount(m models.FinancialAccount) domain.FinancialAccount {
	return domain.FinancialAccount{
		AccountID:   m.AccountID,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		Balance:     m.Balance,
		IsActive:    m.IsActive,
		IsDefault:   m.IsDefault,
		Description: m.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanAccountRow(row pgx.Row) (models.FinancialAccount, error) {
	var m models.FinancialAccount
	err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.AccountType,
		&m.Balance,
		&m.IsActive,
		&m.IsDefault,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new financial account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.FinancialAccount) error {
	m := toModelAccount(account)

	query := `
		INSERT INTO financial_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.AccountType,
		m.Balance,
		m.IsActive,
		m.IsDefault,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, m.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM financial_accounts WHERE account_id = $1;`

	m, err := scanAccountRow(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	d := toDomainAccount(m)
	return &d, nil
}

// FindDefaultAccount retrieves the active account flagged as default.
func (r *PgxAccountRepository) FindDefaultAccount(ctx context.Context) (*domain.FinancialAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM financial_accounts WHERE is_default = TRUE AND is_active = TRUE;`

	m, err := scanAccountRow(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find default account: %w", err)
	}

	d := toDomainAccount(m)
	return &d, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.FinancialAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.FinancialAccount{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM financial_accounts WHERE account_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.FinancialAccount)
	for rows.Next() {
		m, err := scanAccountRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during batch fetch: %w", err)
		}
		accountsMap[m.AccountID] = toDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during batch fetch: %w", err)
	}

	// Not all requested IDs are necessarily present; the caller checks coverage.
	return accountsMap, nil
}

// ListAccounts retrieves a paginated list of accounts, optionally filtered by type.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, accountType *domain.AccountType, includeInactive bool, limit int, offset int) ([]domain.FinancialAccount, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + accountColumns + ` FROM financial_accounts WHERE ($1::text IS NULL OR account_type = $1)`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY name LIMIT $2 OFFSET $3;`

	var typeArg *string
	if accountType != nil {
		s := string(*accountType)
		typeArg = &s
	}

	rows, err := r.Pool.Query(ctx, query, typeArg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.FinancialAccount{}
	for rows.Next() {
		m, err := scanAccountRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, toDomainAccount(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", rows.Err())
	}

	return accounts, nil
}

// ListBalanceAdjustments retrieves the balance mutation history for an account, newest first.
func (r *PgxAccountRepository) ListBalanceAdjustments(ctx context.Context, accountID string, limit int, offset int) ([]domain.BalanceAdjustment, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT adjustment_id, account_id, cause_id, delta, resulting_balance, created_at, created_by
		FROM balance_adjustments
		WHERE account_id = $1
		ORDER BY created_at DESC, adjustment_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance adjustments for account %s: %w", accountID, err)
	}
	defer rows.Close()

	adjustments := []domain.BalanceAdjustment{}
	for rows.Next() {
		var a domain.BalanceAdjustment
		err := rows.Scan(&a.AdjustmentID, &a.AccountID, &a.CauseID, &a.Delta, &a.ResultingBalance, &a.CreatedAt, &a.CreatedBy)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance adjustment row: %w", err)
		}
		adjustments = append(adjustments, a)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating balance adjustment rows: %w", rows.Err())
	}

	return adjustments, nil
}

// UpdateAccount updates an existing account's descriptive fields.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.FinancialAccount) error {
	m := toModelAccount(account)

	query := `
		UPDATE financial_accounts
		SET name = $2, description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1;
	`
	// Account type, balance and the default flag are never updated through this path.

	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update account %s: %w", m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// DeactivateAccount marks an account as inactive. A deactivated default account
// loses its default flag so a new default can be chosen.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE financial_accounts
		SET is_active = FALSE, is_default = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate account %s: %w", accountID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Either the account doesn't exist or it was already inactive.
		_, findErr := r.FindAccountByID(ctx, accountID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check account status after deactivation attempt for %s: %w", accountID, findErr)
		}
		return apperrors.ErrValidation
	}

	return nil
}

// SetDefaultAccount atomically clears the previous default and flags the given account.
func (r *PgxAccountRepository) SetDefaultAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	_, err = tx.Exec(ctx, `
		UPDATE financial_accounts
		SET is_default = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE is_default = TRUE AND account_id <> $3;
	`, now, userID, accountID)
	if err != nil {
		return fmt.Errorf("failed to clear previous default account: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `
		UPDATE financial_accounts
		SET is_default = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND is_active = TRUE;
	`, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to set default account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindAccountByID(ctx, accountID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check account status while setting default %s: %w", accountID, findErr)
		}
		// Exists but inactive; an inactive account cannot be the default.
		return apperrors.ErrValidation
	}

	return r.Commit(ctx, tx)
}

// AdjustBalance applies a signed delta to one account exactly once per causeID.
// A causeID that was already recorded for the account returns the stored
// adjustment without touching the balance, which is what makes retries safe.
func (r *PgxAccountRepository) AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal, causeID string, userID string, now time.Time) (*domain.BalanceAdjustment, bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if prior, err := r.findAdjustmentByCause(ctx, tx, accountID, causeID); err != nil {
		return nil, false, err
	} else if prior != nil {
		return prior, false, nil
	}

	accounts, err := r.FindAccountsByIDsForUpdate(ctx, tx, []string{accountID})
	if err != nil {
		return nil, false, err
	}
	acc, ok := accounts[accountID]
	if !ok {
		return nil, false, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	if !acc.IsActive {
		return nil, false, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountID)
	}

	adjustment := domain.BalanceAdjustment{
		AdjustmentID:     uuid.New().String(),
		AccountID:        accountID,
		CauseID:          causeID,
		Delta:            delta,
		ResultingBalance: acc.Balance.Add(delta),
		CreatedAt:        now,
		CreatedBy:        userID,
	}

	_, err = tx.Exec(ctx, `
		UPDATE financial_accounts
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`, accountID, adjustment.ResultingBalance, now, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to adjust balance of account %s: %w", accountID, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO balance_adjustments (adjustment_id, account_id, cause_id, delta, resulting_balance, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, adjustment.AdjustmentID, adjustment.AccountID, adjustment.CauseID, adjustment.Delta, adjustment.ResultingBalance, adjustment.CreatedAt, adjustment.CreatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// A concurrent writer recorded the same cause first; this transaction
			// is poisoned, so re-read the winner outside it.
			_ = r.Rollback(ctx, tx)
			prior, findErr := r.findAdjustmentByCause(ctx, r.Pool, accountID, causeID)
			if findErr != nil {
				return nil, false, findErr
			}
			if prior != nil {
				return prior, false, nil
			}
			return nil, false, fmt.Errorf("%w: balance adjustment for cause %s applied concurrently", apperrors.ErrConflict, causeID)
		}
		return nil, false, fmt.Errorf("failed to record balance adjustment for cause %s: %w", causeID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, false, err
	}
	return &adjustment, true, nil
}

// rowQuerier is satisfied by both pgx.Tx and *pgxpool.Pool.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *PgxAccountRepository) findAdjustmentByCause(ctx context.Context, q rowQuerier, accountID, causeID string) (*domain.BalanceAdjustment, error) {
	var a domain.BalanceAdjustment
	err := q.QueryRow(ctx, `
		SELECT adjustment_id, account_id, cause_id, delta, resulting_balance, created_at, created_by
		FROM balance_adjustments
		WHERE account_id = $1 AND cause_id = $2;
	`, accountID, causeID).Scan(&a.AdjustmentID, &a.AccountID, &a.CauseID, &a.Delta, &a.ResultingBalance, &a.CreatedAt, &a.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up balance adjustment for cause %s: %w", causeID, err)
	}
	return &a, nil
}

// FindAccountsByIDsForUpdate retrieves multiple accounts by IDs and locks the rows for update.
// Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.FinancialAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.FinancialAccount{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM financial_accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`

	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.FinancialAccount)
	for rows.Next() {
		m, err := scanAccountRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accountsMap[m.AccountID] = toDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	return accountsMap, nil
}

// ApplyBalanceEffectsInTx applies balance deltas and records one balance_adjustments
// row per effect keyed by causeID. The unique (account_id, cause_id) index makes the
// whole application idempotent: a causeID that was already recorded leaves every
// balance untouched and returns false.
func (r *PgxAccountRepository) ApplyBalanceEffectsInTx(ctx context.Context, tx pgx.Tx, effects []domain.BalanceEffect, causeID string, userID string, now time.Time) (bool, error) {
	if len(effects) == 0 {
		return true, nil
	}

	var alreadyApplied bool
	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM balance_adjustments WHERE cause_id = $1);`, causeID).Scan(&alreadyApplied)
	if err != nil {
		return false, fmt.Errorf("failed to check balance adjustment history for cause %s: %w", causeID, err)
	}
	if alreadyApplied {
		return false, nil
	}

	accountIDs := make([]string, 0, len(effects))
	for _, eff := range effects {
		accountIDs = append(accountIDs, eff.AccountID)
	}

	accounts, err := r.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return false, err
	}

	batch := &pgx.Batch{}
	for _, eff := range effects {
		acc, ok := accounts[eff.AccountID]
		if !ok {
			return false, fmt.Errorf("%w: account %s referenced by balance effect", apperrors.ErrNotFound, eff.AccountID)
		}
		if !acc.IsActive {
			return false, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, eff.AccountID)
		}
		newBalance := acc.Balance.Add(eff.Delta)

		batch.Queue(`
			UPDATE financial_accounts
			SET balance = $2, last_updated_at = $3, last_updated_by = $4
			WHERE account_id = $1;
		`, eff.AccountID, newBalance, now, userID)

		batch.Queue(`
			INSERT INTO balance_adjustments (adjustment_id, account_id, cause_id, delta, resulting_balance, created_at, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
		`, uuid.New().String(), eff.AccountID, causeID, eff.Delta, newBalance, now, userID)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				// Concurrent application of the same cause; the other writer won and
				// this transaction is already poisoned, so surface a conflict.
				return false, fmt.Errorf("%w: balance effects for cause %s applied concurrently", apperrors.ErrConflict, causeID)
			}
			return false, fmt.Errorf("failed to apply balance effects for cause %s: %w", causeID, err)
		}
	}

	return true, nil
}
