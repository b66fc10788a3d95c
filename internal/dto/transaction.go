package dto

import (
	"time"

	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to create a transaction.
// Category membership in the closed per-type set is enforced by the service.
type CreateTransactionRequest struct {
	AccountID          string                     `json:"bankAccount" binding:"required"`
	Type               domain.TransactionType     `json:"type" binding:"required,oneof=income expense"`
	Category           domain.Category            `json:"category" binding:"required,txcategory"`
	Amount             decimal.Decimal            `json:"amount" binding:"required"`
	Date               *time.Time                 `json:"date"` // Defaults to now
	Description        string                     `json:"description"`
	IsRecurring        bool                       `json:"isRecurring"`
	RecurringFrequency *domain.RecurringFrequency `json:"recurringFrequency" binding:"omitempty,oneof=daily weekly monthly yearly"`
}

// UpdateTransactionRequest defines the fields allowed for updating a
// transaction. The account and owner references are immutable.
type UpdateTransactionRequest struct {
	Type               *domain.TransactionType    `json:"type" binding:"omitempty,oneof=income expense"`
	Category           *domain.Category           `json:"category" binding:"omitempty,txcategory"`
	Amount             *decimal.Decimal           `json:"amount"`
	Date               *time.Time                 `json:"date"`
	Description        *string                    `json:"description"`
	IsRecurring        *bool                      `json:"isRecurring"`
	RecurringFrequency *domain.RecurringFrequency `json:"recurringFrequency" binding:"omitempty,oneof=daily weekly monthly yearly"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Type      *domain.TransactionType `form:"type" binding:"omitempty,oneof=income expense"`
	Category  *domain.Category        `form:"category" binding:"omitempty,txcategory"`
	StartDate *time.Time              `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time              `form:"endDate" time_format:"2006-01-02"`
	Limit     int                     `form:"limit,default=50"`
	Page      int                     `form:"page,default=1"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID      string                     `json:"transactionID"`
	AccountID          string                     `json:"bankAccount"`
	Type               domain.TransactionType     `json:"type"`
	Category           domain.Category            `json:"category"`
	Amount             decimal.Decimal            `json:"amount"`
	Date               time.Time                  `json:"date"`
	Description        string                     `json:"description,omitempty"`
	IsRecurring        bool                       `json:"isRecurring"`
	RecurringFrequency *domain.RecurringFrequency `json:"recurringFrequency,omitempty"`
	CreatedAt          time.Time                  `json:"createdAt"`
	LastUpdatedAt      time.Time                  `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:      t.TransactionID,
		AccountID:          t.AccountID,
		Type:               t.Type,
		Category:           t.Category,
		Amount:             t.Amount,
		Date:               t.Date,
		Description:        t.Description,
		IsRecurring:        t.IsRecurring,
		RecurringFrequency: t.RecurringFrequency,
		CreatedAt:          t.CreatedAt,
		LastUpdatedAt:      t.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(transactions []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		res[i] = ToTransactionResponse(&transactions[i])
	}
	return res
}

// ListTransactionsResponse wraps a page of transactions with paging metadata.
type ListTransactionsResponse struct {
	Count        int                   `json:"count"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Pages        int64                 `json:"pages"`
	Transactions []TransactionResponse `json:"transactions"`
}
