package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction adds to or subtracts from an account.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// Transaction represents a single dated monetary event against one account.
// A row flagged IsRecurring is a template: it represents a repeating obligation
// and is rolled forward by the recurring processor rather than archived.
type Transaction struct {
	TransactionID       string              `json:"transactionID"` // Primary Key (UUID)
	AccountID           string              `json:"accountID"`     // FK -> accounts.account_id (Not Null)
	UserID              string              `json:"userID"`        // FK -> users.user_id, owner
	CategoryID          string              `json:"categoryID"`    // Free-form category reference
	Amount              decimal.Decimal     `json:"amount"`        // Positive value
	Type                TransactionType     `json:"type"`          // INCOME or EXPENSE
	Date                time.Time           `json:"date"`          // Effective date of the event
	Note                string              `json:"note"`          // Nullable
	IsRecurring         bool                `json:"isRecurring"`
	RecurrenceFrequency RecurrenceFrequency `json:"recurrenceFrequency,omitempty"` // Set when IsRecurring
	RecurrenceDay       int                 `json:"recurrenceDay,omitempty"`       // Preferred day-of-month for MONTHLY
	IsActive            bool                `json:"isActive"`
	Archived            bool                `json:"archived"`
	LastProcessedDate   *time.Time          `json:"lastProcessedDate,omitempty"` // Last due date realized by the processor
	CreditID            string              `json:"creditID,omitempty"`          // Nullable FK -> credits.credit_id (repayment link)
	TransferID          string              `json:"transferID,omitempty"`        // Pairs the two legs of a transfer
	AuditFields
}

// SignedAmount returns the amount with the ledger sign convention applied:
// income adds, expense subtracts.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// EffectOn returns the balance effect the transaction has as of the given
// instant. Future-dated transactions have no effect until they become due.
func (t Transaction) EffectOn(now time.Time) decimal.Decimal {
	if t.Date.After(now) {
		return decimal.Zero
	}
	return t.SignedAmount()
}

// IsRepayment reports whether the transaction is linked to a credit.
func (t Transaction) IsRepayment() bool {
	return t.CreditID != ""
}

// TemplateState is the processing state encoded by a template's Date and
// LastProcessedDate pair.
type TemplateState string

const (
	// TemplateScheduled means the current due date has not been realized.
	TemplateScheduled TemplateState = "SCHEDULED"
	// TemplateDone means the current due date was already posted; a run
	// only rolls the template forward.
	TemplateDone TemplateState = "DONE"
)

// State derives the template's processing state. No in-flight marker is
// persisted; a copy left behind by a crashed run is caught by the processor's
// duplicate lookup instead.
func (t Transaction) State() TemplateState {
	if t.LastProcessedDate != nil && !t.LastProcessedDate.Before(t.Date) {
		return TemplateDone
	}
	return TemplateScheduled
}
