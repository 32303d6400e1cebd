package services

import (
	"context"
	"time"

	"github.com/finstock/finstock_backend/internal/core/domain"
)

// ReportingSvc derives financial statements from ledgered and collaborator data.
// Statements are computed on demand and never persisted.
type ReportingSvc interface {
	// GetBalanceSheet derives the balance sheet as of a point in time.
	GetBalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error)

	// GetCashFlow derives the cash flow statement for a period.
	GetCashFlow(ctx context.Context, from, to time.Time) (*domain.CashFlow, error)

	// GetIncomeStatement derives the income statement for a period.
	GetIncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatement, error)
}
