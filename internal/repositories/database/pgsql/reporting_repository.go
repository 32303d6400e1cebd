package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finstock/finstock_backend/internal/core/domain"
	portsrepo "github.com/finstock/finstock_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for reporting aggregates.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetAccountBalanceTotal sums live balances of active accounts, optionally of one type.
func (r *PgxReportingRepository) GetAccountBalanceTotal(ctx context.Context, accountType *domain.AccountType) (decimal.Decimal, error) {
	var typeArg *string
	if accountType != nil {
		s := string(*accountType)
		typeArg = &s
	}

	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(balance), 0)
		FROM financial_accounts
		WHERE is_active = TRUE AND ($1::text IS NULL OR account_type = $1);
	`, typeArg).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum account balances: %w", err)
	}
	return total, nil
}

// GetSalesAggregate aggregates sales within the period.
func (r *PgxReportingRepository) GetSalesAggregate(ctx context.Context, from, to time.Time) (domain.SalesAggregate, error) {
	var agg domain.SalesAggregate
	err := r.Pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(total_amount) FILTER (WHERE is_completed), 0),
			COALESCE(SUM(refunded_amount), 0),
			COALESCE(SUM(outstanding_amount) FILTER (WHERE is_completed AND refunded_amount = 0), 0),
			COALESCE(SUM(profit), 0),
			COALESCE(SUM(paid_amount), 0)
		FROM sales
		WHERE sale_date >= $1 AND sale_date < $2;
	`, from, to).Scan(&agg.TotalCompleted, &agg.TotalRefunds, &agg.TotalOutstanding, &agg.TotalProfit, &agg.TotalCollected)
	if err != nil {
		return domain.SalesAggregate{}, fmt.Errorf("failed to aggregate sales: %w", err)
	}
	return agg, nil
}

// GetPurchaseAggregate aggregates purchase debt and payments within the period.
// Outstanding comes from the purchases opened in the period; paid comes from the
// payments actually made in the period, which is what cash flow needs.
func (r *PgxReportingRepository) GetPurchaseAggregate(ctx context.Context, from, to time.Time) (domain.PurchaseAggregate, error) {
	var agg domain.PurchaseAggregate
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(outstanding_amount), 0)
		FROM purchases
		WHERE purchase_date >= $1 AND purchase_date < $2;
	`, from, to).Scan(&agg.TotalOutstanding)
	if err != nil {
		return domain.PurchaseAggregate{}, fmt.Errorf("failed to aggregate purchase debt: %w", err)
	}

	err = r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(paid_amount), 0)
		FROM purchase_payments
		WHERE payment_date >= $1 AND payment_date < $2;
	`, from, to).Scan(&agg.TotalPaid)
	if err != nil {
		return domain.PurchaseAggregate{}, fmt.Errorf("failed to aggregate purchase payments: %w", err)
	}
	return agg, nil
}

// GetExpendituresByCategory groups expenditure totals by category within the period.
func (r *PgxReportingRepository) GetExpendituresByCategory(ctx context.Context, from, to time.Time) ([]domain.ExpenseByCategory, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT category, COALESCE(SUM(amount), 0)
		FROM expenditures
		WHERE expenditure_date >= $1 AND expenditure_date < $2
		GROUP BY category
		ORDER BY category;
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenditures: %w", err)
	}
	defer rows.Close()

	expenses := []domain.ExpenseByCategory{}
	for rows.Next() {
		var e domain.ExpenseByCategory
		if err := rows.Scan(&e.Category, &e.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan expenditure row: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// GetCapitalAggregate splits owner capital flows into contributions and withdrawals.
func (r *PgxReportingRepository) GetCapitalAggregate(ctx context.Context, from, to time.Time) (domain.CapitalAggregate, error) {
	var agg domain.CapitalAggregate
	err := r.Pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE movement_type IN ('INITIAL_CAPITAL', 'ADDITIONAL_INVESTMENT')), 0),
			COALESCE(SUM(amount) FILTER (WHERE movement_type IN ('WITHDRAWAL', 'PROFIT_DISTRIBUTION')), 0)
		FROM capital_movements
		WHERE transaction_date >= $1 AND transaction_date < $2;
	`, from, to).Scan(&agg.Contributions, &agg.Withdrawals)
	if err != nil {
		return domain.CapitalAggregate{}, fmt.Errorf("failed to aggregate capital movements: %w", err)
	}
	return agg, nil
}

// GetFixedAssetAggregate returns net book value as of the period end and
// acquisitions made inside the period.
func (r *PgxReportingRepository) GetFixedAssetAggregate(ctx context.Context, from, to time.Time) (domain.FixedAssetAggregate, error) {
	var agg domain.FixedAssetAggregate
	err := r.Pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(current_value) FILTER (WHERE purchase_date < $2), 0),
			COALESCE(SUM(purchase_cost) FILTER (WHERE purchase_date >= $1 AND purchase_date < $2), 0)
		FROM fixed_assets
		WHERE is_disposed = FALSE;
	`, from, to).Scan(&agg.NetValue, &agg.Purchased)
	if err != nil {
		return domain.FixedAssetAggregate{}, fmt.Errorf("failed to aggregate fixed assets: %w", err)
	}
	return agg, nil
}

// GetInventoryValue prices current stock quantities at cost.
func (r *PgxReportingRepository) GetInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(ps.quantity * pv.cost_price), 0)
		FROM product_storages ps
		JOIN product_variations pv ON pv.product_variation_id = ps.product_variation_id;
	`).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to value inventory: %w", err)
	}
	return total, nil
}

// GetTaxLiability sums unpaid tax records as of the given date.
func (r *PgxReportingRepository) GetTaxLiability(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM tax_records
		WHERE is_paid = FALSE AND period_end < $1;
	`, asOf).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum tax liability: %w", err)
	}
	return total, nil
}

// GetCashMovementAggregate splits completed ledger flows in the period by
// whether they touched a CASH-type account. Flows that never touch cash are
// reported in the unlinked buckets so totals still reconcile.
func (r *PgxReportingRepository) GetCashMovementAggregate(ctx context.Context, from, to time.Time) (domain.CashMovementAggregate, error) {
	var agg domain.CashMovementAggregate
	err := r.Pool.QueryRow(ctx, `
		WITH completed AS (
			SELECT t.*,
				COALESCE(fa_from.account_type = 'CASH', FALSE) AS from_cash,
				COALESCE(fa_to.account_type = 'CASH', FALSE) AS to_cash
			FROM transactions t
			LEFT JOIN financial_accounts fa_from ON fa_from.account_id = t.from_account_id
			LEFT JOIN financial_accounts fa_to ON fa_to.account_id = t.to_account_id
			WHERE t.status = 'COMPLETED' AND t.movement_date >= $1 AND t.movement_date < $2
		)
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'TRANSFER' AND to_cash), 0),
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'TRANSFER' AND from_cash), 0),
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'REFUND'), 0),
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'DEPOSIT' AND NOT to_cash), 0),
			COALESCE(SUM(amount) FILTER (WHERE transaction_type IN ('WITHDRAWAL', 'PAYMENT') AND NOT from_cash), 0)
		FROM completed;
	`, from, to).Scan(&agg.TransfersIn, &agg.TransfersOut, &agg.NoteRefunds, &agg.UnlinkedInflows, &agg.UnlinkedOutflows)
	if err != nil {
		return domain.CashMovementAggregate{}, fmt.Errorf("failed to aggregate cash movements: %w", err)
	}
	return agg, nil
}

// GetCountedClosingBalanceOn finds the counted closing balance of a closed
// reconciliation for exactly the given business date. A count from any other
// day is no anchor for this boundary.
func (r *PgxReportingRepository) GetCountedClosingBalanceOn(ctx context.Context, accountID string, businessDate time.Time) (*decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT closing_counted_balance
		FROM daily_cash_reconciliations
		WHERE financial_account_id = $1 AND closed_at IS NOT NULL AND business_date = $2;
	`, accountID, businessDate).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find closing reconciliation balance for account %s: %w", accountID, err)
	}
	return &balance, nil
}
