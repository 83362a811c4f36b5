package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType distinguishes ad-hoc accounts from recurring-obligation ones.
type AccountType string

const (
	OneOff    AccountType = "ONE_OFF"
	Mandatory AccountType = "MANDATORY"
)

// Account represents a financial account within the core domain.
// InitialBalance is the running balance: opening value plus the signed sum of
// every applied transaction dated on or before today. It is maintained
// incrementally by the ledger, never recomputed per read.
type Account struct {
	AccountID           string          `json:"accountID"`           // Primary Key (UUID)
	UserID              string          `json:"userID"`              // FK -> users.user_id, owner
	Name                string          `json:"name"`                // User-defined name
	AccountType         AccountType     `json:"accountType"`         // ONE_OFF or MANDATORY
	InitialBalance      decimal.Decimal `json:"initialBalance"`      // Running balance (signed)
	ExcludeFromForecast bool            `json:"excludeFromForecast"` // Skipped by forecast views
	AuditFields
}
