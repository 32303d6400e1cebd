package repositories

import (
	"context"
	"time"

	"github.com/finstock/finstock_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines aggregate reads used to derive financial statements.
// All sums coalesce to zero when no rows match.
type ReportingRepository interface {
	// GetAccountBalanceTotal sums live balances of active accounts, optionally of one type.
	GetAccountBalanceTotal(ctx context.Context, accountType *domain.AccountType) (decimal.Decimal, error)

	// GetSalesAggregate aggregates completed sales within the period.
	GetSalesAggregate(ctx context.Context, from, to time.Time) (domain.SalesAggregate, error)

	// GetPurchaseAggregate aggregates purchases within the period.
	GetPurchaseAggregate(ctx context.Context, from, to time.Time) (domain.PurchaseAggregate, error)

	// GetExpendituresByCategory groups expenditure totals by category within the period.
	GetExpendituresByCategory(ctx context.Context, from, to time.Time) ([]domain.ExpenseByCategory, error)

	// GetCapitalAggregate splits owner capital flows into contributions and withdrawals.
	GetCapitalAggregate(ctx context.Context, from, to time.Time) (domain.CapitalAggregate, error)

	// GetFixedAssetAggregate returns net book value as of the period end and
	// acquisitions made inside the period.
	GetFixedAssetAggregate(ctx context.Context, from, to time.Time) (domain.FixedAssetAggregate, error)

	// GetInventoryValue prices current stock quantities at cost.
	GetInventoryValue(ctx context.Context) (decimal.Decimal, error)

	// GetTaxLiability sums unpaid tax records as of the given date.
	GetTaxLiability(ctx context.Context, asOf time.Time) (decimal.Decimal, error)

	// GetCashMovementAggregate splits ledger flows in the period by whether they
	// touched a cash-type account.
	GetCashMovementAggregate(ctx context.Context, from, to time.Time) (domain.CashMovementAggregate, error)

	// GetCountedClosingBalanceOn finds the counted closing balance of a closed
	// reconciliation for exactly the given business date, when one exists.
	GetCountedClosingBalanceOn(ctx context.Context, accountID string, businessDate time.Time) (*decimal.Decimal, error)
}
