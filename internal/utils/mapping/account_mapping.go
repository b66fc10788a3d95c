package mapping

import (
	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	"github.com/fintrackr/personal_finance_app/internal/models"
)

// ToModelBankAccount converts a domain BankAccount to a model BankAccount
func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		AccountID:     d.AccountID,
		UserID:        d.UserID,
		AccountName:   d.AccountName,
		BankName:      d.BankName,
		AccountNumber: d.AccountNumber,
		AccountType:   models.BankAccountType(d.AccountType),
		Balance:       d.Balance,
		CurrencyCode:  d.CurrencyCode,
		IsActive:      d.IsActive,
		LastSyncedAt:  d.LastSyncedAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankAccount converts a model BankAccount to a domain BankAccount
func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		AccountID:     m.AccountID,
		UserID:        m.UserID,
		AccountName:   m.AccountName,
		BankName:      m.BankName,
		AccountNumber: m.AccountNumber,
		AccountType:   domain.BankAccountType(m.AccountType),
		Balance:       m.Balance,
		CurrencyCode:  m.CurrencyCode,
		IsActive:      m.IsActive,
		LastSyncedAt:  m.LastSyncedAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBankAccountSlice converts a slice of model BankAccounts to a slice of domain BankAccounts
func ToDomainBankAccountSlice(ms []models.BankAccount) []domain.BankAccount {
	ds := make([]domain.BankAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBankAccount(m)
	}
	return ds
}
