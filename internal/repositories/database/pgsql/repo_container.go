package pgsql

import (
	portsrepo "github.com/fintrackr/personal_finance_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	budgetRepo := newPgxBudgetRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:        userRepo,
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
		BudgetRepo:      budgetRepo,
		ReportingRepo:   reportingRepo,
	}
}
