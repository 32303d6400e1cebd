package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo        AccountRepositoryFacade
	TransactionRepo    TransactionRepositoryFacade
	DebtRepo           DebtRepositoryFacade
	NoteRepo           NoteRepositoryFacade
	ReconciliationRepo ReconciliationRepositoryFacade
	AuditRepo          AuditRepositoryFacade
	CapitalRepo        CapitalRepositoryFacade
	ReportingRepo      ReportingRepository
}
