package services_test

import (
	"context"
	"time"

	"github.com/finstock/finstock_backend/internal/core/domain"
	portsrepo "github.com/finstock/finstock_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of the AccountRepositoryFacade
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialAccount), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.FinancialAccount, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.FinancialAccount), args.Error(1)
}

func (m *MockAccountRepository) FindDefaultAccount(ctx context.Context) (*domain.FinancialAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialAccount), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, accountType *domain.AccountType, includeInactive bool, limit int, offset int) ([]domain.FinancialAccount, error) {
	args := m.Called(ctx, accountType, includeInactive, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialAccount), args.Error(1)
}

func (m *MockAccountRepository) ListBalanceAdjustments(ctx context.Context, accountID string, limit int, offset int) ([]domain.BalanceAdjustment, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceAdjustment), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.FinancialAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.FinancialAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SetDefaultAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal, causeID string, userID string, now time.Time) (*domain.BalanceAdjustment, bool, error) {
	args := m.Called(ctx, accountID, delta, causeID, userID, now)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.BalanceAdjustment), args.Bool(1), args.Error(2)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.FinancialAccount, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.FinancialAccount), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceEffectsInTx(ctx context.Context, tx pgx.Tx, effects []domain.BalanceEffect, causeID string, userID string, now time.Time) (bool, error) {
	args := m.Called(ctx, tx, effects, causeID, userID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of the TransactionRepositoryFacade
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, applyEffects bool) error {
	args := m.Called(ctx, txn, applyEffects)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateStatusWithEffects(ctx context.Context, transactionID string, fromStatus, toStatus domain.TransactionStatus, effects []domain.BalanceEffect, causeID string, userID string, now time.Time) error {
	args := m.Called(ctx, transactionID, fromStatus, toStatus, effects, causeID, userID, now)
	return args.Error(0)
}

// MockDebtRepository is a mock implementation of the DebtRepositoryFacade
type MockDebtRepository struct {
	mock.Mock
}

var _ portsrepo.DebtRepositoryFacade = (*MockDebtRepository)(nil)

func (m *MockDebtRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockDebtRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.PurchaseDebtTracker, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseDebtTracker), args.Error(1)
}

func (m *MockDebtRepository) ListPaymentsByPurchase(ctx context.Context, purchaseID string) ([]domain.PurchaseDebtTracker, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseDebtTracker), args.Error(1)
}

func (m *MockDebtRepository) ListUnpaidPurchases(ctx context.Context, limit int, offset int) ([]domain.Purchase, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Purchase), args.Error(1)
}

func (m *MockDebtRepository) RecordPurchasePayment(ctx context.Context, payment domain.PurchaseDebtTracker, ledgerTxn *domain.Transaction, allowOverpayment bool) (*domain.Purchase, error) {
	args := m.Called(ctx, payment, ledgerTxn, allowOverpayment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

// MockNoteRepository is a mock implementation of the NoteRepositoryFacade
type MockNoteRepository struct {
	mock.Mock
}

var _ portsrepo.NoteRepositoryFacade = (*MockNoteRepository)(nil)

func (m *MockNoteRepository) FindCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.CreditNote, error) {
	args := m.Called(ctx, creditNoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditNote), args.Error(1)
}

func (m *MockNoteRepository) FindDebitNoteByID(ctx context.Context, debitNoteID string) (*domain.DebitNote, error) {
	args := m.Called(ctx, debitNoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebitNote), args.Error(1)
}

func (m *MockNoteRepository) ListCreditNotes(ctx context.Context, status *domain.NoteStatus, limit int, offset int) ([]domain.CreditNote, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditNote), args.Error(1)
}

func (m *MockNoteRepository) ListDebitNotes(ctx context.Context, status *domain.NoteStatus, limit int, offset int) ([]domain.DebitNote, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DebitNote), args.Error(1)
}

func (m *MockNoteRepository) SaveCreditNote(ctx context.Context, note domain.CreditNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) SaveDebitNote(ctx context.Context, note domain.DebitNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) ApplyCreditNote(ctx context.Context, creditNoteID string, message string, ledgerTxn *domain.Transaction, userID string, now time.Time) (*domain.CreditNote, error) {
	args := m.Called(ctx, creditNoteID, message, ledgerTxn, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditNote), args.Error(1)
}

func (m *MockNoteRepository) ApplyDebitNote(ctx context.Context, debitNoteID string, message string, ledgerTxn *domain.Transaction, userID string, now time.Time) (*domain.DebitNote, error) {
	args := m.Called(ctx, debitNoteID, message, ledgerTxn, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebitNote), args.Error(1)
}

func (m *MockNoteRepository) CancelCreditNote(ctx context.Context, creditNoteID string, userID string, now time.Time) error {
	args := m.Called(ctx, creditNoteID, userID, now)
	return args.Error(0)
}

func (m *MockNoteRepository) CancelDebitNote(ctx context.Context, debitNoteID string, userID string, now time.Time) error {
	args := m.Called(ctx, debitNoteID, userID, now)
	return args.Error(0)
}

// MockReconciliationRepository is a mock implementation of the ReconciliationRepositoryFacade
type MockReconciliationRepository struct {
	mock.Mock
}

var _ portsrepo.ReconciliationRepositoryFacade = (*MockReconciliationRepository)(nil)

func (m *MockReconciliationRepository) FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.DailyCashReconciliation, error) {
	args := m.Called(ctx, reconciliationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyCashReconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) FindByAccountAndDate(ctx context.Context, accountID string, businessDate time.Time) (*domain.DailyCashReconciliation, error) {
	args := m.Called(ctx, accountID, businessDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyCashReconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) ListByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.DailyCashReconciliation, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyCashReconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) OpenReconciliation(ctx context.Context, recon domain.DailyCashReconciliation) error {
	args := m.Called(ctx, recon)
	return args.Error(0)
}

func (m *MockReconciliationRepository) CloseReconciliation(ctx context.Context, reconciliationID string, closingSystem, closingCounted, closingVariance decimal.Decimal, notes string, userID string, now time.Time) error {
	args := m.Called(ctx, reconciliationID, closingSystem, closingCounted, closingVariance, notes, userID, now)
	return args.Error(0)
}

// MockAuditRepository is a mock implementation of the AuditRepositoryFacade
type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepositoryFacade = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) FindAuditByID(ctx context.Context, auditID string) (*domain.ProductAuditTrail, error) {
	args := m.Called(ctx, auditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductAuditTrail), args.Error(1)
}

func (m *MockAuditRepository) ListAuditsByStorage(ctx context.Context, productStorageID string, limit int, offset int) ([]domain.ProductAuditTrail, error) {
	args := m.Called(ctx, productStorageID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductAuditTrail), args.Error(1)
}

func (m *MockAuditRepository) ListAuditsByVariation(ctx context.Context, productVariationID string, limit int, offset int) ([]domain.ProductAuditTrail, error) {
	args := m.Called(ctx, productVariationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductAuditTrail), args.Error(1)
}

func (m *MockAuditRepository) RecordReconciliation(ctx context.Context, audit domain.ProductAuditTrail) (*domain.ProductAuditTrail, error) {
	args := m.Called(ctx, audit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductAuditTrail), args.Error(1)
}

// MockCapitalRepository is a mock implementation of the CapitalRepositoryFacade
type MockCapitalRepository struct {
	mock.Mock
}

var _ portsrepo.CapitalRepositoryFacade = (*MockCapitalRepository)(nil)

func (m *MockCapitalRepository) FindCapitalMovementByID(ctx context.Context, movementID string) (*domain.CapitalMovement, error) {
	args := m.Called(ctx, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CapitalMovement), args.Error(1)
}

func (m *MockCapitalRepository) ListCapitalMovementsByOwner(ctx context.Context, ownerID string, limit int, offset int) ([]domain.CapitalMovement, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CapitalMovement), args.Error(1)
}

func (m *MockCapitalRepository) SaveCapitalMovement(ctx context.Context, movement domain.CapitalMovement, ledgerTxn *domain.Transaction) error {
	args := m.Called(ctx, movement, ledgerTxn)
	return args.Error(0)
}

// MockReportingRepository is a mock implementation of the ReportingRepository
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAccountBalanceTotal(ctx context.Context, accountType *domain.AccountType) (decimal.Decimal, error) {
	args := m.Called(ctx, accountType)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) GetSalesAggregate(ctx context.Context, from, to time.Time) (domain.SalesAggregate, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(domain.SalesAggregate), args.Error(1)
}

func (m *MockReportingRepository) GetPurchaseAggregate(ctx context.Context, from, to time.Time) (domain.PurchaseAggregate, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(domain.PurchaseAggregate), args.Error(1)
}

func (m *MockReportingRepository) GetExpendituresByCategory(ctx context.Context, from, to time.Time) ([]domain.ExpenseByCategory, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseByCategory), args.Error(1)
}

func (m *MockReportingRepository) GetCapitalAggregate(ctx context.Context, from, to time.Time) (domain.CapitalAggregate, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(domain.CapitalAggregate), args.Error(1)
}

func (m *MockReportingRepository) GetFixedAssetAggregate(ctx context.Context, from, to time.Time) (domain.FixedAssetAggregate, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(domain.FixedAssetAggregate), args.Error(1)
}

func (m *MockReportingRepository) GetInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) GetTaxLiability(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) GetCashMovementAggregate(ctx context.Context, from, to time.Time) (domain.CashMovementAggregate, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(domain.CashMovementAggregate), args.Error(1)
}

func (m *MockReportingRepository) GetCountedClosingBalanceOn(ctx context.Context, accountID string, businessDate time.Time) (*decimal.Decimal, error) {
	args := m.Called(ctx, accountID, businessDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*decimal.Decimal), args.Error(1)
}
