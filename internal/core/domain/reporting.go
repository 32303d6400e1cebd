package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSheet is a point-in-time derived statement. AccountingDifference is a
// diagnostic (Assets - Liabilities - Equity); it is reported, never asserted to
// be zero.
type BalanceSheet struct {
	AsOfUTC              time.Time       `json:"asOfUTC"`
	CashAndBankBalances  decimal.Decimal `json:"cashAndBankBalances"`
	AccountsReceivable   decimal.Decimal `json:"accountsReceivable"`
	InventoryValue       decimal.Decimal `json:"inventoryValue"`
	FixedAssetsNetValue  decimal.Decimal `json:"fixedAssetsNetValue"`
	TotalAssets          decimal.Decimal `json:"totalAssets"`
	AccountsPayable      decimal.Decimal `json:"accountsPayable"`
	TaxLiability         decimal.Decimal `json:"taxLiability"`
	TotalLiabilities     decimal.Decimal `json:"totalLiabilities"`
	CapitalContributions decimal.Decimal `json:"capitalContributions"`
	CapitalWithdrawals   decimal.Decimal `json:"capitalWithdrawals"`
	RetainedEarnings     decimal.Decimal `json:"retainedEarnings"`
	TotalEquity          decimal.Decimal `json:"totalEquity"`
	AccountingDifference decimal.Decimal `json:"accountingDifference"`
}

// CashFlow is a derived statement for a period. Opening/closing balances are
// exact only when a daily cash reconciliation exists at the period boundary;
// otherwise BalancesAreApproximate is set and the live balance is used.
type CashFlow struct {
	PeriodStartUTC         time.Time       `json:"periodStartUTC"`
	PeriodEndUTC           time.Time       `json:"periodEndUTC"`
	OpeningCashBalance     decimal.Decimal `json:"openingCashBalance"`
	ClosingCashBalance     decimal.Decimal `json:"closingCashBalance"`
	BalancesAreApproximate bool            `json:"balancesAreApproximate"`

	SalesCollections     decimal.Decimal `json:"salesCollections"`
	TransfersIn          decimal.Decimal `json:"transfersIn"`
	CapitalContributions decimal.Decimal `json:"capitalContributions"`
	TotalInflows         decimal.Decimal `json:"totalInflows"`

	PurchasePayments    decimal.Decimal `json:"purchasePayments"`
	Expenditures        decimal.Decimal `json:"expenditures"`
	FixedAssetPurchases decimal.Decimal `json:"fixedAssetPurchases"`
	CapitalWithdrawals  decimal.Decimal `json:"capitalWithdrawals"`
	TransfersOut        decimal.Decimal `json:"transfersOut"`
	NoteRefunds         decimal.Decimal `json:"noteRefunds"`
	TotalOutflows       decimal.Decimal `json:"totalOutflows"`

	// Amounts not attributable to a CASH-type account, reported separately so
	// the grand total still reconciles.
	UnlinkedInflows  decimal.Decimal `json:"unlinkedInflows"`
	UnlinkedOutflows decimal.Decimal `json:"unlinkedOutflows"`

	NetCashFlow decimal.Decimal `json:"netCashFlow"`
}

// ExpenseByCategory is one operating-expense bucket in an income statement.
type ExpenseByCategory struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// IncomeStatement is a derived statement for a period. Cost of goods sold is an
// estimate (net revenue minus gross profit), not a ledgered cost stream.
type IncomeStatement struct {
	PeriodStartUTC          time.Time           `json:"periodStartUTC"`
	PeriodEndUTC            time.Time           `json:"periodEndUTC"`
	NetSalesRevenue         decimal.Decimal     `json:"netSalesRevenue"`
	GrossProfit             decimal.Decimal     `json:"grossProfit"`
	CostOfGoodsSoldEstimate decimal.Decimal     `json:"costOfGoodsSoldEstimate"`
	OperatingExpenses       []ExpenseByCategory `json:"operatingExpenses"`
	TotalOperatingExpenses  decimal.Decimal     `json:"totalOperatingExpenses"`
	NetIncome               decimal.Decimal     `json:"netIncome"`
}

// SalesAggregate is the sales-side input read by the reporting aggregator.
type SalesAggregate struct {
	TotalCompleted   decimal.Decimal
	TotalRefunds     decimal.Decimal
	TotalOutstanding decimal.Decimal
	TotalProfit      decimal.Decimal
	TotalCollected   decimal.Decimal
}

// PurchaseAggregate is the purchase-side input read by the reporting aggregator.
type PurchaseAggregate struct {
	TotalOutstanding decimal.Decimal
	TotalPaid        decimal.Decimal
}

// CapitalAggregate sums owner capital flows.
type CapitalAggregate struct {
	Contributions decimal.Decimal
	Withdrawals   decimal.Decimal
}

// FixedAssetAggregate is the fixed-asset input read by the reporting aggregator.
type FixedAssetAggregate struct {
	NetValue  decimal.Decimal
	Purchased decimal.Decimal // Acquisitions within the queried period
}

// CashMovementAggregate splits ledger-visible flows by whether they touched a
// CASH-type account.
type CashMovementAggregate struct {
	TransfersIn      decimal.Decimal
	TransfersOut     decimal.Decimal
	NoteRefunds      decimal.Decimal
	UnlinkedInflows  decimal.Decimal
	UnlinkedOutflows decimal.Decimal
}
