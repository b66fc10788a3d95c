package repositories

// RepositoryProvider holds instances of all repository implementations,
// wired once at startup and handed to the service container.
type RepositoryProvider struct {
	UserRepo        UserRepository
	AccountRepo     AccountRepository
	TransactionRepo TransactionRepository
	BudgetRepo      BudgetRepository
	ReportingRepo   ReportingRepository
}
