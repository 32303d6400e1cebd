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
	"github.com/jackc/pgx/v5/pgxpool"
)

const purchaseColumns = `purchase_id, supplier_id, total_amount, paid_amount, outstanding_amount, is_paid, purchase_date`
const paymentColumns = `payment_id, purchase_id, paid_amount, payment_method, payment_date, financial_account_id, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxDebtRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountBalanceSupport
}

// newPgxDebtRepository creates a new repository for purchase debt tracking.
func newPgxDebtRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountBalanceSupport) portsrepo.DebtRepositoryFacade {
	return &PgxDebtRepository{BaseRepository{Pool: pool}, accountRepo}
}

var _ portsrepo.DebtRepositoryFacade = (*PgxDebtRepository)(nil)

func toDomainPurchase(m models.Purchase) domain.Purchase {
	return domain.Purchase{
		PurchaseID:        m.PurchaseID,
		SupplierID:        m.SupplierID,
		TotalAmount:       m.TotalAmount,
		PaidAmount:        m.PaidAmount,
		OutstandingAmount: m.OutstandingAmount,
		IsPaid:            m.IsPaid,
		PurchaseDate:      m.PurchaseDate,
	}
}

func toDomainPayment(m models.PurchasePayment) domain.PurchaseDebtTracker {
	return domain.PurchaseDebtTracker{
		PaymentID:          m.PaymentID,
		PurchaseID:         m.PurchaseID,
		PaidAmount:         m.PaidAmount,
		PaymentMethod:      domain.PaymentMethod(m.PaymentMethod),
		PaymentDate:        m.PaymentDate,
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

func scanPurchaseRow(row pgx.Row) (models.Purchase, error) {
	var m models.Purchase
	err := row.Scan(
		&m.PurchaseID,
		&m.SupplierID,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.OutstandingAmount,
		&m.IsPaid,
		&m.PurchaseDate,
	)
	return m, err
}

func scanPaymentRow(row pgx.Row) (models.PurchasePayment, error) {
	var m models.PurchasePayment
	err := row.Scan(
		&m.PaymentID,
		&m.PurchaseID,
		&m.PaidAmount,
		&m.PaymentMethod,
		&m.PaymentDate,
		&m.FinancialAccountID,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindPurchaseByID retrieves a purchase with its debt-tracking columns.
func (r *PgxDebtRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE purchase_id = $1;`

	m, err := scanPurchaseRow(r.Pool.QueryRow(ctx, query, purchaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase by ID %s: %w", purchaseID, err)
	}

	d := toDomainPurchase(m)
	return &d, nil
}

// FindPaymentByID retrieves a recorded purchase payment.
func (r *PgxDebtRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.PurchaseDebtTracker, error) {
	query := `SELECT ` + paymentColumns + ` FROM purchase_payments WHERE payment_id = $1;`

	m, err := scanPaymentRow(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}

	d := toDomainPayment(m)
	return &d, nil
}

// ListPaymentsByPurchase retrieves all payments for a purchase, oldest first.
func (r *PgxDebtRepository) ListPaymentsByPurchase(ctx context.Context, purchaseID string) ([]domain.PurchaseDebtTracker, error) {
	query := `SELECT ` + paymentColumns + ` FROM purchase_payments WHERE purchase_id = $1 ORDER BY payment_date, created_at;`

	rows, err := r.Pool.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for purchase %s: %w", purchaseID, err)
	}
	defer rows.Close()

	payments := []domain.PurchaseDebtTracker{}
	for rows.Next() {
		m, err := scanPaymentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, toDomainPayment(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", rows.Err())
	}

	return payments, nil
}

// ListUnpaidPurchases retrieves purchases that still carry an outstanding amount.
func (r *PgxDebtRepository) ListUnpaidPurchases(ctx context.Context, limit int, offset int) ([]domain.Purchase, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + purchaseColumns + `
		FROM purchases
		WHERE is_paid = FALSE AND outstanding_amount > 0
		ORDER BY purchase_date
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query unpaid purchases: %w", err)
	}
	defer rows.Close()

	purchases := []domain.Purchase{}
	for rows.Next() {
		m, err := scanPurchaseRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase row: %w", err)
		}
		purchases = append(purchases, toDomainPurchase(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating purchase rows: %w", rows.Err())
	}

	return purchases, nil
}

// RecordPurchasePayment atomically inserts the payment row, moves the purchase's
// paid/outstanding position under a row lock, and mirrors the payment in the
// ledger when requested. The overpayment check runs inside the lock so two
// concurrent payments cannot jointly exceed the purchase total.
func (r *PgxDebtRepository) RecordPurchasePayment(ctx context.Context, payment domain.PurchaseDebtTracker, ledgerTxn *domain.Transaction, allowOverpayment bool) (*domain.Purchase, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	lockQuery := `SELECT ` + purchaseColumns + ` FROM purchases WHERE purchase_id = $1 FOR UPDATE;`
	m, err := scanPurchaseRow(tx.QueryRow(ctx, lockQuery, payment.PurchaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: purchase %s", apperrors.ErrNotFound, payment.PurchaseID)
		}
		return nil, fmt.Errorf("failed to lock purchase %s: %w", payment.PurchaseID, err)
	}

	newPaid := m.PaidAmount.Add(payment.PaidAmount)
	if !allowOverpayment && newPaid.GreaterThan(m.TotalAmount) {
		return nil, fmt.Errorf("%w: payment of %s exceeds outstanding amount %s on purchase %s",
			apperrors.ErrValidation, payment.PaidAmount.String(), m.OutstandingAmount.String(), payment.PurchaseID)
	}

	// An allowed overpayment leaves outstanding negative: credit held with
	// the supplier.
	newOutstanding := m.TotalAmount.Sub(newPaid)
	isPaid := !newOutstanding.IsPositive()

	_, err = tx.Exec(ctx, `
		INSERT INTO purchase_payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		payment.PaymentID,
		payment.PurchaseID,
		payment.PaidAmount,
		string(payment.PaymentMethod),
		payment.PaymentDate,
		payment.FinancialAccountID,
		payment.Notes,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment %s: %w", payment.PaymentID, err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE purchases
		SET paid_amount = $2, outstanding_amount = $3, is_paid = $4
		WHERE purchase_id = $1;
	`, payment.PurchaseID, newPaid, newOutstanding, isPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to update debt position of purchase %s: %w", payment.PurchaseID, err)
	}

	if ledgerTxn != nil {
		if err := insertTransactionTx(ctx, tx, toModelTransaction(*ledgerTxn)); err != nil {
			return nil, err
		}
		effects, err := ledgerTxn.Effects()
		if err != nil {
			return nil, err
		}
		if _, err := r.accountRepo.ApplyBalanceEffectsInTx(ctx, tx, effects, ledgerTxn.TransactionID, ledgerTxn.CreatedBy, ledgerTxn.CreatedAt); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	m.PaidAmount = newPaid
	m.OutstandingAmount = newOutstanding
	m.IsPaid = isPaid
	d := toDomainPurchase(m)
	return &d, nil
}
