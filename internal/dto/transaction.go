package dto

import (
	"time"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to create a transaction.
// Recurrence fields are only meaningful when isRecurring is set; the service
// rejects a recurring request without a valid frequency.
type CreateTransactionRequest struct {
	AccountID           string                     `json:"accountID" binding:"required"`
	CategoryID          string                     `json:"categoryID"`
	Amount              decimal.Decimal            `json:"amount" binding:"required"`
	Type                domain.TransactionType     `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Date                time.Time                  `json:"date" binding:"required"`
	Note                string                     `json:"note"`
	IsRecurring         bool                       `json:"isRecurring"`
	RecurrenceFrequency domain.RecurrenceFrequency `json:"recurrenceFrequency" binding:"omitempty,recurrencefreq"`
	RecurrenceDay       int                        `json:"recurrenceDay" binding:"omitempty,min=1,max=31"`
	CreditID            string                     `json:"creditID"` // Optional repayment link
}

// UpdateTransactionRequest is the patch applied to an existing transaction.
// Every field is optional; only present fields are applied.
type UpdateTransactionRequest struct {
	AccountID           *string                     `json:"accountID"`
	CategoryID          *string                     `json:"categoryID"`
	Amount              *decimal.Decimal            `json:"amount"`
	Type                *domain.TransactionType     `json:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Date                *time.Time                  `json:"date"`
	Note                *string                     `json:"note"`
	IsActive            *bool                       `json:"isActive"`
	RecurrenceFrequency *domain.RecurrenceFrequency `json:"recurrenceFrequency" binding:"omitempty,recurrencefreq"`
	RecurrenceDay       *int                        `json:"recurrenceDay" binding:"omitempty,min=1,max=31"`
}

// CreateTransferRequest moves an amount between two of the caller's accounts.
type CreateTransferRequest struct {
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	ToAccountID   string          `json:"toAccountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Date          time.Time       `json:"date" binding:"required"`
	Note          string          `json:"note"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID       string                     `json:"transactionID"`
	AccountID           string                     `json:"accountID"`
	CategoryID          string                     `json:"categoryID,omitempty"`
	Amount              decimal.Decimal            `json:"amount"`
	Type                domain.TransactionType     `json:"type"`
	Date                time.Time                  `json:"date"`
	Note                string                     `json:"note,omitempty"`
	IsRecurring         bool                       `json:"isRecurring"`
	RecurrenceFrequency domain.RecurrenceFrequency `json:"recurrenceFrequency,omitempty"`
	RecurrenceDay       int                        `json:"recurrenceDay,omitempty"`
	IsActive            bool                       `json:"isActive"`
	Archived            bool                       `json:"archived"`
	LastProcessedDate   *time.Time                 `json:"lastProcessedDate,omitempty"`
	CreditID            string                     `json:"creditID,omitempty"`
	TransferID          string                     `json:"transferID,omitempty"`
	CreatedAt           time.Time                  `json:"createdAt"`
	LastUpdatedAt       time.Time                  `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:       t.TransactionID,
		AccountID:           t.AccountID,
		CategoryID:          t.CategoryID,
		Amount:              t.Amount,
		Type:                t.Type,
		Date:                t.Date,
		Note:                t.Note,
		IsRecurring:         t.IsRecurring,
		RecurrenceFrequency: t.RecurrenceFrequency,
		RecurrenceDay:       t.RecurrenceDay,
		IsActive:            t.IsActive,
		Archived:            t.Archived,
		LastProcessedDate:   t.LastProcessedDate,
		CreditID:            t.CreditID,
		TransferID:          t.TransferID,
		CreatedAt:           t.CreatedAt,
		LastUpdatedAt:       t.LastUpdatedAt,
	}
}

// TransferResponse returns both legs of a created transfer.
type TransferResponse struct {
	TransferID string              `json:"transferID"`
	Out        TransactionResponse `json:"out"`
	In         TransactionResponse `json:"in"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	AccountID string `form:"accountID"`
	Limit     int    `form:"limit,default=50"`
	Offset    int    `form:"offset,default=0"`
}

// ListTransactionsResponse wraps the list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToListTransactionsResponse converts domain transactions to the list DTO.
func ToListTransactionsResponse(txns []domain.Transaction) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: res}
}
