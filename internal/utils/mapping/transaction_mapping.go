package mapping

import (
	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	"github.com/fintrackr/personal_finance_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	var freq *string
	if d.RecurringFrequency != nil {
		f := string(*d.RecurringFrequency)
		freq = &f
	}
	return models.Transaction{
		TransactionID:      d.TransactionID,
		UserID:             d.UserID,
		AccountID:          d.AccountID,
		Type:               models.TransactionType(d.Type),
		Category:           string(d.Category),
		Amount:             d.Amount,
		Date:               d.Date,
		Description:        d.Description,
		IsRecurring:        d.IsRecurring,
		RecurringFrequency: freq,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	var freq *domain.RecurringFrequency
	if m.RecurringFrequency != nil {
		f := domain.RecurringFrequency(*m.RecurringFrequency)
		freq = &f
	}
	return domain.Transaction{
		TransactionID:      m.TransactionID,
		UserID:             m.UserID,
		AccountID:          m.AccountID,
		Type:               domain.TransactionType(m.Type),
		Category:           domain.Category(m.Category),
		Amount:             m.Amount,
		Date:               m.Date,
		Description:        m.Description,
		IsRecurring:        m.IsRecurring,
		RecurringFrequency: freq,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
