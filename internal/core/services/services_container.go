package services

import (
	portsrepo "github.com/finstock/finstock_backend/internal/core/ports/repositories"
	portssvc "github.com/finstock/finstock_backend/internal/core/ports/services"
	"github.com/finstock/finstock_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account service first since most other services read accounts through it
	container.Account = NewAccountServiceImpl(repos.AccountRepo)

	container.Ledger = NewLedgerServiceImpl(repos.TransactionRepo, repos.AccountRepo)
	container.Debt = NewDebtServiceImpl(repos.DebtRepo, repos.AccountRepo, cfg.AllowOverpayment, cfg.DefaultCurrency)
	container.Note = NewNoteServiceImpl(repos.NoteRepo, repos.AccountRepo, cfg.DefaultCurrency)
	container.Reconciliation = NewReconciliationServiceImpl(repos.ReconciliationRepo, repos.AccountRepo)
	container.Audit = NewAuditServiceImpl(repos.AuditRepo)
	container.Capital = NewCapitalServiceImpl(repos.CapitalRepo, repos.AccountRepo, cfg.DefaultCurrency)
	container.Reporting = NewReportingServiceImpl(repos.ReportingRepo, repos.AccountRepo)

	return container
}
