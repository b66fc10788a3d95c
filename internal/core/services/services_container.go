package services

import (
	portsrepo "github.com/fintrackr/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/fintrackr/personal_finance_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, encryptor FieldEncryptor, publisher AlertEventPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Account = NewAccountService(repos.AccountRepo, encryptor)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.ReportingRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	// The ledger engine sits on top of the account and budget services.
	container.Transaction = NewTransactionService(repos.TransactionRepo, container.Account, container.Budget, publisher)

	return container
}

// Compile-time checks that the implementations satisfy their facades.
var (
	_ portssvc.UserSvcFacade        = (*UserService)(nil)
	_ portssvc.AccountSvcFacade     = (*AccountService)(nil)
	_ portssvc.BudgetSvcFacade      = (*BudgetService)(nil)
	_ portssvc.TransactionSvcFacade = (*TransactionService)(nil)
	_ portssvc.ReportingSvcFacade   = (*ReportingService)(nil)
)
