package dto

import (
	"time"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name                string             `json:"name" binding:"required"`
	AccountType         domain.AccountType `json:"accountType" binding:"required,oneof=ONE_OFF MANDATORY"`
	InitialBalance      decimal.Decimal    `json:"initialBalance"` // Opening balance, defaults to zero
	ExcludeFromForecast bool               `json:"excludeFromForecast"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name                *string             `json:"name"`
	AccountType         *domain.AccountType `json:"accountType" binding:"omitempty,oneof=ONE_OFF MANDATORY"`
	ExcludeFromForecast *bool               `json:"excludeFromForecast"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID           string             `json:"accountID"`
	Name                string             `json:"name"`
	AccountType         domain.AccountType `json:"accountType"`
	InitialBalance      decimal.Decimal    `json:"initialBalance"`
	ExcludeFromForecast bool               `json:"excludeFromForecast"`
	CreatedAt           time.Time          `json:"createdAt"`
	LastUpdatedAt       time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:           acc.AccountID,
		Name:                acc.Name,
		AccountType:         acc.AccountType,
		InitialBalance:      acc.InitialBalance,
		ExcludeFromForecast: acc.ExcludeFromForecast,
		CreatedAt:           acc.CreatedAt,
		LastUpdatedAt:       acc.LastUpdatedAt,
	}
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToListAccountsResponse converts a slice of domain accounts to the list DTO.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: res}
}
