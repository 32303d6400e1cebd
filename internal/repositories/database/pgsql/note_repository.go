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

const creditNoteColumns = `credit_note_id, sale_id, customer_id, sub_total, tax_amount, total_amount, reason, status, is_applied, financial_account_id, application_message, applied_at, created_at, created_by, last_updated_at, last_updated_by`
const debitNoteColumns = `debit_note_id, target_kind, target_id, party_id, sub_total, tax_amount, total_amount, reason, status, is_applied, financial_account_id, application_message, applied_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxNoteRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountBalanceSupport
}

// newPgxNoteRepository creates a new repository for credit and debit notes.
func newPgxNoteRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountBalanceSupport) portsrepo.NoteRepositoryFacade {
	return &PgxNoteRepository{BaseRepository{Pool: pool}, accountRepo}
}

var _ portsrepo.NoteRepositoryFacade = (*PgxNoteRepository)(nil)

func toDomainCreditNote(m models.CreditNote, items []models.CreditNoteItem) domain.CreditNote {
	domainItems := make([]domain.CreditNoteItem, len(items))
	for i, it := range items {
		domainItems[i] = domain.CreditNoteItem{
			ItemID:             it.ItemID,
			CreditNoteID:       it.CreditNoteID,
			ProductVariationID: it.ProductVariationID,
			Description:        it.Description,
			Quantity:           it.Quantity,
			UnitPrice:          it.UnitPrice,
			LineTotal:          it.LineTotal,
		}
	}
	return domain.CreditNote{
		CreditNoteID:       m.CreditNoteID,
		SaleID:             m.SaleID,
		CustomerID:         m.CustomerID,
		SubTotal:           m.SubTotal,
		TaxAmount:          m.TaxAmount,
		TotalAmount:        m.TotalAmount,
		Reason:             m.Reason,
		Status:             domain.NoteStatus(m.Status),
		IsApplied:          m.IsApplied,
		FinancialAccountID: m.FinancialAccountID,
		ApplicationMessage: m.ApplicationMessage,
		AppliedAt:          m.AppliedAt,
		Items:              domainItems,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainDebitNote(m models.DebitNote, items []models.DebitNoteItem) domain.DebitNote {
	domainItems := make([]domain.DebitNoteItem, len(items))
	for i, it := range items {
		domainItems[i] = domain.DebitNoteItem{
			ItemID:             it.ItemID,
			DebitNoteID:        it.DebitNoteID,
			ProductVariationID: it.ProductVariationID,
			Description:        it.Description,
			Quantity:           it.Quantity,
			UnitPrice:          it.UnitPrice,
			LineTotal:          it.LineTotal,
		}
	}
	target := domain.NoRef()
	if m.TargetID != nil {
		target = domain.EntityRef{Kind: domain.EntityRefKind(m.TargetKind), ID: *m.TargetID}
	}
	return domain.DebitNote{
		DebitNoteID:        m.DebitNoteID,
		Target:             target,
		PartyID:            m.PartyID,
		SubTotal:           m.SubTotal,
		TaxAmount:          m.TaxAmount,
		TotalAmount:        m.TotalAmount,
		Reason:             m.Reason,
		Status:             domain.NoteStatus(m.Status),
		IsApplied:          m.IsApplied,
		FinancialAccountID: m.FinancialAccountID,
		ApplicationMessage: m.ApplicationMessage,
		AppliedAt:          m.AppliedAt,
		Items:              domainItems,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanCreditNoteRow(row pgx.Row) (models.CreditNote, error) {
	var m models.CreditNote
	err := row.Scan(
		&m.CreditNoteID,
		&m.SaleID,
		&m.CustomerID,
		&m.SubTotal,
		&m.TaxAmount,
		&m.TotalAmount,
		&m.Reason,
		&m.Status,
		&m.IsApplied,
		&m.FinancialAccountID,
		&m.ApplicationMessage,
		&m.AppliedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanDebitNoteRow(row pgx.Row) (models.DebitNote, error) {
	var m models.DebitNote
	err := row.Scan(
		&m.DebitNoteID,
		&m.TargetKind,
		&m.TargetID,
		&m.PartyID,
		&m.SubTotal,
		&m.TaxAmount,
		&m.TotalAmount,
		&m.Reason,
		&m.Status,
		&m.IsApplied,
		&m.FinancialAccountID,
		&m.ApplicationMessage,
		&m.AppliedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxNoteRepository) findCreditNoteItems(ctx context.Context, creditNoteID string) ([]models.CreditNoteItem, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT item_id, credit_note_id, product_variation_id, description, quantity, unit_price, line_total
		FROM credit_note_items
		WHERE credit_note_id = $1
		ORDER BY item_id;
	`, creditNoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query credit note items for %s: %w", creditNoteID, err)
	}
	defer rows.Close()

	items := []models.CreditNoteItem{}
	for rows.Next() {
		var it models.CreditNoteItem
		if err := rows.Scan(&it.ItemID, &it.CreditNoteID, &it.ProductVariationID, &it.Description, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("failed to scan credit note item row: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PgxNoteRepository) findDebitNoteItems(ctx context.Context, debitNoteID string) ([]models.DebitNoteItem, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT item_id, debit_note_id, product_variation_id, description, quantity, unit_price, line_total
		FROM debit_note_items
		WHERE debit_note_id = $1
		ORDER BY item_id;
	`, debitNoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query debit note items for %s: %w", debitNoteID, err)
	}
	defer rows.Close()

	items := []models.DebitNoteItem{}
	for rows.Next() {
		var it models.DebitNoteItem
		if err := rows.Scan(&it.ItemID, &it.DebitNoteID, &it.ProductVariationID, &it.Description, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("failed to scan debit note item row: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// SaveCreditNote persists a new credit note and its items in one transaction.
func (r *PgxNoteRepository) SaveCreditNote(ctx context.Context, note domain.CreditNote) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO credit_notes (`+creditNoteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`,
		note.CreditNoteID,
		note.SaleID,
		note.CustomerID,
		note.SubTotal,
		note.TaxAmount,
		note.TotalAmount,
		note.Reason,
		string(note.Status),
		note.IsApplied,
		note.FinancialAccountID,
		note.ApplicationMessage,
		note.AppliedAt,
		note.CreatedAt,
		note.CreatedBy,
		note.LastUpdatedAt,
		note.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: credit note %s already exists", apperrors.ErrDuplicate, note.CreditNoteID)
		}
		return fmt.Errorf("failed to insert credit note %s: %w", note.CreditNoteID, err)
	}

	batch := &pgx.Batch{}
	for _, it := range note.Items {
		batch.Queue(`
			INSERT INTO credit_note_items (item_id, credit_note_id, product_variation_id, description, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
		`, it.ItemID, note.CreditNoteID, it.ProductVariationID, it.Description, it.Quantity, it.UnitPrice, it.LineTotal)
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert credit note item for %s: %w", note.CreditNoteID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close credit note item batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// SaveDebitNote persists a new debit note and its items in one transaction.
func (r *PgxNoteRepository) SaveDebitNote(ctx context.Context, note domain.DebitNote) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	var targetID *string
	if note.Target.IsSet() {
		id := note.Target.ID
		targetID = &id
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO debit_notes (`+debitNoteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`,
		note.DebitNoteID,
		string(note.Target.Kind),
		targetID,
		note.PartyID,
		note.SubTotal,
		note.TaxAmount,
		note.TotalAmount,
		note.Reason,
		string(note.Status),
		note.IsApplied,
		note.FinancialAccountID,
		note.ApplicationMessage,
		note.AppliedAt,
		note.CreatedAt,
		note.CreatedBy,
		note.LastUpdatedAt,
		note.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: debit note %s already exists", apperrors.ErrDuplicate, note.DebitNoteID)
		}
		return fmt.Errorf("failed to insert debit note %s: %w", note.DebitNoteID, err)
	}

	batch := &pgx.Batch{}
	for _, it := range note.Items {
		batch.Queue(`
			INSERT INTO debit_note_items (item_id, debit_note_id, product_variation_id, description, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
		`, it.ItemID, note.DebitNoteID, it.ProductVariationID, it.Description, it.Quantity, it.UnitPrice, it.LineTotal)
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert debit note item for %s: %w", note.DebitNoteID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close debit note item batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// FindCreditNoteByID retrieves a credit note with its items.
func (r *PgxNoteRepository) FindCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.CreditNote, error) {
	query := `SELECT ` + creditNoteColumns + ` FROM credit_notes WHERE credit_note_id = $1;`

	m, err := scanCreditNoteRow(r.Pool.QueryRow(ctx, query, creditNoteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credit note by ID %s: %w", creditNoteID, err)
	}

	items, err := r.findCreditNoteItems(ctx, creditNoteID)
	if err != nil {
		return nil, err
	}

	d := toDomainCreditNote(m, items)
	return &d, nil
}

// FindDebitNoteByID retrieves a debit note with its items.
func (r *PgxNoteRepository) FindDebitNoteByID(ctx context.Context, debitNoteID string) (*domain.DebitNote, error) {
	query := `SELECT ` + debitNoteColumns + ` FROM debit_notes WHERE debit_note_id = $1;`

	m, err := scanDebitNoteRow(r.Pool.QueryRow(ctx, query, debitNoteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find debit note by ID %s: %w", debitNoteID, err)
	}

	items, err := r.findDebitNoteItems(ctx, debitNoteID)
	if err != nil {
		return nil, err
	}

	d := toDomainDebitNote(m, items)
	return &d, nil
}

// ListCreditNotes retrieves credit notes, newest first. Items are not loaded.
func (r *PgxNoteRepository) ListCreditNotes(ctx context.Context, status *domain.NoteStatus, limit int, offset int) ([]domain.CreditNote, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + creditNoteColumns + `
		FROM credit_notes
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	rows, err := r.Pool.Query(ctx, query, statusArg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query credit notes: %w", err)
	}
	defer rows.Close()

	notes := []domain.CreditNote{}
	for rows.Next() {
		m, err := scanCreditNoteRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit note row: %w", err)
		}
		notes = append(notes, toDomainCreditNote(m, nil))
	}
	return notes, rows.Err()
}

// ListDebitNotes retrieves debit notes, newest first. Items are not loaded.
func (r *PgxNoteRepository) ListDebitNotes(ctx context.Context, status *domain.NoteStatus, limit int, offset int) ([]domain.DebitNote, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + debitNoteColumns + `
		FROM debit_notes
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	rows, err := r.Pool.Query(ctx, query, statusArg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query debit notes: %w", err)
	}
	defer rows.Close()

	notes := []domain.DebitNote{}
	for rows.Next() {
		m, err := scanDebitNoteRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debit note row: %w", err)
		}
		notes = append(notes, toDomainDebitNote(m, nil))
	}
	return notes, rows.Err()
}

// lockNoteStatus locks a note row and returns its current status. The table and
// key column are chosen by the caller, which keeps the pending-only check in one
// place for both note kinds.
func lockNoteStatus(ctx context.Context, tx pgx.Tx, table, keyColumn, noteID string) (domain.NoteStatus, error) {
	var status string
	query := fmt.Sprintf(`SELECT status FROM %s WHERE %s = $1 FOR UPDATE;`, table, keyColumn)
	err := tx.QueryRow(ctx, query, noteID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to lock note %s: %w", noteID, err)
	}
	return domain.NoteStatus(status), nil
}

func pendingOnly(status domain.NoteStatus, noteID string) error {
	switch status {
	case domain.NotePending:
		return nil
	case domain.NoteApplied, domain.NoteRefunded:
		return fmt.Errorf("%w: note %s is already applied", apperrors.ErrConflict, noteID)
	default:
		return fmt.Errorf("%w: note %s is in status %s and cannot be applied", apperrors.ErrConflict, noteID, status)
	}
}

// ApplyCreditNote marks a pending credit note applied, reduces the linked sale's
// receivable and optionally mirrors a cash refund in the ledger, all atomically.
func (r *PgxNoteRepository) ApplyCreditNote(ctx context.Context, creditNoteID string, message string, ledgerTxn *domain.Transaction, userID string, now time.Time) (*domain.CreditNote, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	status, err := lockNoteStatus(ctx, tx, "credit_notes", "credit_note_id", creditNoteID)
	if err != nil {
		return nil, err
	}
	if err := pendingOnly(status, creditNoteID); err != nil {
		return nil, err
	}

	m, err := scanCreditNoteRow(tx.QueryRow(ctx, `SELECT `+creditNoteColumns+` FROM credit_notes WHERE credit_note_id = $1;`, creditNoteID))
	if err != nil {
		return nil, fmt.Errorf("failed to reload credit note %s: %w", creditNoteID, err)
	}

	if m.SaleID != nil {
		if err := adjustSaleForCreditNote(ctx, tx, *m.SaleID, m.TotalAmount); err != nil {
			return nil, err
		}
	}

	newStatus := domain.NoteApplied
	var accountID *string
	if ledgerTxn != nil {
		newStatus = domain.NoteRefunded
		accountID = ledgerTxn.FromAccountID
	}

	_, err = tx.Exec(ctx, `
		UPDATE credit_notes
		SET status = $2, is_applied = TRUE, financial_account_id = $3, application_message = $4,
		    applied_at = $5, last_updated_at = $5, last_updated_by = $6
		WHERE credit_note_id = $1;
	`, creditNoteID, string(newStatus), accountID, message, now, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark credit note %s applied: %w", creditNoteID, err)
	}

	if ledgerTxn != nil {
		if err := insertTransactionTx(ctx, tx, toModelTransaction(*ledgerTxn)); err != nil {
			return nil, err
		}
		effects, err := ledgerTxn.Effects()
		if err != nil {
			return nil, err
		}
		if _, err := r.accountRepo.ApplyBalanceEffectsInTx(ctx, tx, effects, ledgerTxn.TransactionID, userID, now); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return r.FindCreditNoteByID(ctx, creditNoteID)
}

// ApplyDebitNote marks a pending debit note applied and raises the target's
// receivable or payable according to the note's entity reference.
func (r *PgxNoteRepository) ApplyDebitNote(ctx context.Context, debitNoteID string, message string, ledgerTxn *domain.Transaction, userID string, now time.Time) (*domain.DebitNote, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	status, err := lockNoteStatus(ctx, tx, "debit_notes", "debit_note_id", debitNoteID)
	if err != nil {
		return nil, err
	}
	if err := pendingOnly(status, debitNoteID); err != nil {
		return nil, err
	}

	m, err := scanDebitNoteRow(tx.QueryRow(ctx, `SELECT `+debitNoteColumns+` FROM debit_notes WHERE debit_note_id = $1;`, debitNoteID))
	if err != nil {
		return nil, fmt.Errorf("failed to reload debit note %s: %w", debitNoteID, err)
	}

	if m.TargetID != nil {
		switch domain.EntityRefKind(m.TargetKind) {
		case domain.RefSale:
			if err := adjustSaleForDebitNote(ctx, tx, *m.TargetID, m.TotalAmount); err != nil {
				return nil, err
			}
		case domain.RefPurchase:
			if err := adjustPurchaseForDebitNote(ctx, tx, *m.TargetID, m.TotalAmount); err != nil {
				return nil, err
			}
		}
	}

	newStatus := domain.NoteApplied
	var accountID *string
	if ledgerTxn != nil {
		newStatus = domain.NoteRefunded
		accountID = ledgerTxn.FromAccountID
	}

	_, err = tx.Exec(ctx, `
		UPDATE debit_notes
		SET status = $2, is_applied = TRUE, financial_account_id = $3, application_message = $4,
		    applied_at = $5, last_updated_at = $5, last_updated_by = $6
		WHERE debit_note_id = $1;
	`, debitNoteID, string(newStatus), accountID, message, now, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark debit note %s applied: %w", debitNoteID, err)
	}

	if ledgerTxn != nil {
		if err := insertTransactionTx(ctx, tx, toModelTransaction(*ledgerTxn)); err != nil {
			return nil, err
		}
		effects, err := ledgerTxn.Effects()
		if err != nil {
			return nil, err
		}
		if _, err := r.accountRepo.ApplyBalanceEffectsInTx(ctx, tx, effects, ledgerTxn.TransactionID, userID, now); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return r.FindDebitNoteByID(ctx, debitNoteID)
}

// CancelCreditNote flips a pending credit note to cancelled.
func (r *PgxNoteRepository) CancelCreditNote(ctx context.Context, creditNoteID string, userID string, now time.Time) error {
	return r.cancelNote(ctx, "credit_notes", "credit_note_id", creditNoteID, userID, now)
}

// CancelDebitNote flips a pending debit note to cancelled.
func (r *PgxNoteRepository) CancelDebitNote(ctx context.Context, debitNoteID string, userID string, now time.Time) error {
	return r.cancelNote(ctx, "debit_notes", "debit_note_id", debitNoteID, userID, now)
}

func (r *PgxNoteRepository) cancelNote(ctx context.Context, table, keyColumn, noteID string, userID string, now time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE %s = $1 AND status = $5;
	`, table, keyColumn)

	cmdTag, err := r.Pool.Exec(ctx, query, noteID, string(domain.NoteCancelled), now, userID, string(domain.NotePending))
	if err != nil {
		return fmt.Errorf("failed to cancel note %s: %w", noteID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		var status string
		checkQuery := fmt.Sprintf(`SELECT status FROM %s WHERE %s = $1;`, table, keyColumn)
		if findErr := r.Pool.QueryRow(ctx, checkQuery, noteID).Scan(&status); findErr != nil {
			if errors.Is(findErr, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("failed to check note %s after cancel attempt: %w", noteID, findErr)
		}
		return fmt.Errorf("%w: note %s is in status %s and cannot be cancelled", apperrors.ErrConflict, noteID, status)
	}
	return nil
}

// adjustSaleForCreditNote records a credit against a sale: the refunded amount
// grows and the customer's outstanding shrinks, floored at zero.
func adjustSaleForCreditNote(ctx context.Context, tx pgx.Tx, saleID string, amount decimal.Decimal) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE sales
		SET refunded_amount = refunded_amount + $2,
		    outstanding_amount = GREATEST(outstanding_amount - $2, 0)
		WHERE sale_id = $1;
	`, saleID, amount)
	if err != nil {
		return fmt.Errorf("failed to adjust sale %s for credit note: %w", saleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sale %s referenced by credit note", apperrors.ErrNotFound, saleID)
	}
	return nil
}

// adjustSaleForDebitNote raises what the customer owes on a sale.
func adjustSaleForDebitNote(ctx context.Context, tx pgx.Tx, saleID string, amount decimal.Decimal) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE sales
		SET total_amount = total_amount + $2,
		    outstanding_amount = outstanding_amount + $2,
		    is_completed = FALSE
		WHERE sale_id = $1;
	`, saleID, amount)
	if err != nil {
		return fmt.Errorf("failed to adjust sale %s for debit note: %w", saleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sale %s referenced by debit note", apperrors.ErrNotFound, saleID)
	}
	return nil
}

// adjustPurchaseForDebitNote raises what the business owes on a purchase.
func adjustPurchaseForDebitNote(ctx context.Context, tx pgx.Tx, purchaseID string, amount decimal.Decimal) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE purchases
		SET total_amount = total_amount + $2,
		    outstanding_amount = outstanding_amount + $2,
		    is_paid = FALSE
		WHERE purchase_id = $1;
	`, purchaseID, amount)
	if err != nil {
		return fmt.Errorf("failed to adjust purchase %s for debit note: %w", purchaseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: purchase %s referenced by debit note", apperrors.ErrNotFound, purchaseID)
	}
	return nil
}
