package pgsql

import (
	portsrepo "github.com/finstock/finstock_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all PostgreSQL repositories over one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	balanceSupport := accountRepo.(*PgxAccountRepository)
	transactionRepo := newPgxTransactionRepository(dbPool, balanceSupport)
	debtRepo := newPgxDebtRepository(dbPool, balanceSupport)
	noteRepo := newPgxNoteRepository(dbPool, balanceSupport)
	reconciliationRepo := newPgxReconciliationRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)
	capitalRepo := newPgxCapitalRepository(dbPool, balanceSupport)
	reportingRepo := newPgxReportingRepository(dbPool)

	return &portsrepo.RepositoryProvider{
		AccountRepo:        accountRepo,
		TransactionRepo:    transactionRepo,
		DebtRepo:           debtRepo,
		NoteRepo:           noteRepo,
		ReconciliationRepo: reconciliationRepo,
		AuditRepo:          auditRepo,
		CapitalRepo:        capitalRepo,
		ReportingRepo:      reportingRepo,
	}
}
