package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/finstock/finstock_backend/internal/apperrors"
	"github.com/finstock/finstock_backend/internal/core/domain"
	portsrepo "github.com/finstock/finstock_backend/internal/core/ports/repositories"
	portssvc "github.com/finstock/finstock_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingServiceImpl implements the ReportingSvc interface
type reportingServiceImpl struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountReader
}

// NewReportingServiceImpl creates a new reporting service
func NewReportingServiceImpl(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountReader) portssvc.ReportingSvc {
	return &reportingServiceImpl{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
	}
}

var _ portssvc.ReportingSvc = (*reportingServiceImpl)(nil)

// earliestPeriodStart stands in for "since the beginning" when an as-of
// statement needs lifetime aggregates.
var earliestPeriodStart = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

func (s *reportingServiceImpl) GetBalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error) {
	cash, err := s.reportingRepo.GetAccountBalanceTotal(ctx, nil)
	if err != nil {
		return nil, err
	}
	sales, err := s.reportingRepo.GetSalesAggregate(ctx, earliestPeriodStart, asOf)
	if err != nil {
		return nil, err
	}
	purchases, err := s.reportingRepo.GetPurchaseAggregate(ctx, earliestPeriodStart, asOf)
	if err != nil {
		return nil, err
	}
	inventory, err := s.reportingRepo.GetInventoryValue(ctx)
	if err != nil {
		return nil, err
	}
	fixedAssets, err := s.reportingRepo.GetFixedAssetAggregate(ctx, earliestPeriodStart, asOf)
	if err != nil {
		return nil, err
	}
	taxLiability, err := s.reportingRepo.GetTaxLiability(ctx, asOf)
	if err != nil {
		return nil, err
	}
	capital, err := s.reportingRepo.GetCapitalAggregate(ctx, earliestPeriodStart, asOf)
	if err != nil {
		return nil, err
	}
	expenses, err := s.reportingRepo.GetExpendituresByCategory(ctx, earliestPeriodStart, asOf)
	if err != nil {
		return nil, err
	}

	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.Amount)
	}

	sheet := &domain.BalanceSheet{
		AsOfUTC:              asOf.UTC(),
		CashAndBankBalances:  cash,
		AccountsReceivable:   sales.TotalOutstanding,
		InventoryValue:       inventory,
		FixedAssetsNetValue:  fixedAssets.NetValue,
		AccountsPayable:      purchases.TotalOutstanding,
		TaxLiability:         taxLiability,
		CapitalContributions: capital.Contributions,
		CapitalWithdrawals:   capital.Withdrawals,
		RetainedEarnings:     sales.TotalProfit.Sub(totalExpenses),
	}
	sheet.TotalAssets = sheet.CashAndBankBalances.
		Add(sheet.AccountsReceivable).
		Add(sheet.InventoryValue).
		Add(sheet.FixedAssetsNetValue)
	sheet.TotalLiabilities = sheet.AccountsPayable.Add(sheet.TaxLiability)
	sheet.TotalEquity = sheet.CapitalContributions.
		Sub(sheet.CapitalWithdrawals).
		Add(sheet.RetainedEarnings)
	sheet.AccountingDifference = sheet.TotalAssets.
		Sub(sheet.TotalLiabilities).
		Sub(sheet.TotalEquity)

	s.LogDebug(ctx, "Balance sheet derived",
		slog.String("as_of", asOf.Format(time.RFC3339)),
		slog.String("accounting_difference", sheet.AccountingDifference.String()))
	return sheet, nil
}

func (s *reportingServiceImpl) GetCashFlow(ctx context.Context, from, to time.Time) (*domain.CashFlow, error) {
	sales, err := s.reportingRepo.GetSalesAggregate(ctx, from, to)
	if err != nil {
		return nil, err
	}
	purchases, err := s.reportingRepo.GetPurchaseAggregate(ctx, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := s.reportingRepo.GetExpendituresByCategory(ctx, from, to)
	if err != nil {
		return nil, err
	}
	capital, err := s.reportingRepo.GetCapitalAggregate(ctx, from, to)
	if err != nil {
		return nil, err
	}
	fixedAssets, err := s.reportingRepo.GetFixedAssetAggregate(ctx, from, to)
	if err != nil {
		return nil, err
	}
	movements, err := s.reportingRepo.GetCashMovementAggregate(ctx, from, to)
	if err != nil {
		return nil, err
	}

	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.Amount)
	}

	flow := &domain.CashFlow{
		PeriodStartUTC:       from.UTC(),
		PeriodEndUTC:         to.UTC(),
		SalesCollections:     sales.TotalCollected,
		TransfersIn:          movements.TransfersIn,
		CapitalContributions: capital.Contributions,
		PurchasePayments:     purchases.TotalPaid,
		Expenditures:         totalExpenses,
		FixedAssetPurchases:  fixedAssets.Purchased,
		CapitalWithdrawals:   capital.Withdrawals,
		TransfersOut:         movements.TransfersOut,
		NoteRefunds:          movements.NoteRefunds,
		UnlinkedInflows:      movements.UnlinkedInflows,
		UnlinkedOutflows:     movements.UnlinkedOutflows,
	}
	flow.TotalInflows = flow.SalesCollections.
		Add(flow.TransfersIn).
		Add(flow.CapitalContributions)
	flow.TotalOutflows = flow.PurchasePayments.
		Add(flow.Expenditures).
		Add(flow.FixedAssetPurchases).
		Add(flow.CapitalWithdrawals).
		Add(flow.TransfersOut).
		Add(flow.NoteRefunds)
	flow.NetCashFlow = flow.TotalInflows.Sub(flow.TotalOutflows)

	opening, closing, approximate, err := s.resolveBoundaryBalances(ctx, from, to, flow.NetCashFlow)
	if err != nil {
		return nil, err
	}
	flow.OpeningCashBalance = opening
	flow.ClosingCashBalance = closing
	flow.BalancesAreApproximate = approximate

	s.LogDebug(ctx, "Cash flow derived",
		slog.String("period_start", from.Format(time.RFC3339)),
		slog.String("period_end", to.Format(time.RFC3339)),
		slog.String("net_cash_flow", flow.NetCashFlow.String()),
		slog.Bool("approximate", approximate))
	return flow, nil
}

// resolveBoundaryBalances anchors the period's cash balances on closed
// reconciliations of the default account. The closing anchor is the count for
// exactly the period's final business day; the opening anchor is the count for
// the day before the period starts. Balances are exact only when both anchors
// exist. A missing closing anchor falls back to the live total of all active
// accounts, a missing opening anchor to closing minus net flow, and either
// fallback flags the report approximate.
func (s *reportingServiceImpl) resolveBoundaryBalances(ctx context.Context, from, to time.Time, netFlow decimal.Decimal) (opening, closing decimal.Decimal, approximate bool, err error) {
	var openingCounted, closingCounted *decimal.Decimal

	defaultAccount, err := s.accountRepo.FindDefaultAccount(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, decimal.Zero, false, err
	}
	if defaultAccount != nil {
		closingDay := domain.NormalizeBusinessDate(to)
		openingDay := domain.NormalizeBusinessDate(from).AddDate(0, 0, -1)
		closingCounted, err = s.reportingRepo.GetCountedClosingBalanceOn(ctx, defaultAccount.AccountID, closingDay)
		if err != nil {
			return decimal.Zero, decimal.Zero, false, err
		}
		openingCounted, err = s.reportingRepo.GetCountedClosingBalanceOn(ctx, defaultAccount.AccountID, openingDay)
		if err != nil {
			return decimal.Zero, decimal.Zero, false, err
		}
	}

	if closingCounted != nil {
		closing = *closingCounted
	} else {
		closing, err = s.reportingRepo.GetAccountBalanceTotal(ctx, nil)
		if err != nil {
			return decimal.Zero, decimal.Zero, false, err
		}
		approximate = true
	}
	if openingCounted != nil {
		opening = *openingCounted
	} else {
		opening = closing.Sub(netFlow)
		approximate = true
	}
	return opening, closing, approximate, nil
}

func (s *reportingServiceImpl) GetIncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatement, error) {
	sales, err := s.reportingRepo.GetSalesAggregate(ctx, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := s.reportingRepo.GetExpendituresByCategory(ctx, from, to)
	if err != nil {
		return nil, err
	}

	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.Amount)
	}

	netSales := sales.TotalCompleted.Sub(sales.TotalRefunds)
	statement := &domain.IncomeStatement{
		PeriodStartUTC:          from.UTC(),
		PeriodEndUTC:            to.UTC(),
		NetSalesRevenue:         netSales,
		GrossProfit:             sales.TotalProfit,
		CostOfGoodsSoldEstimate: netSales.Sub(sales.TotalProfit),
		OperatingExpenses:       expenses,
		TotalOperatingExpenses:  totalExpenses,
		NetIncome:               sales.TotalProfit.Sub(totalExpenses),
	}

	s.LogDebug(ctx, "Income statement derived",
		slog.String("period_start", from.Format(time.RFC3339)),
		slog.String("period_end", to.Format(time.RFC3339)),
		slog.String("net_income", statement.NetIncome.String()))
	return statement, nil
}
