package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Credit represents a loan tracked against one of the user's accounts.
// Outstanding is a mutable scalar of record: it is decremented by linked
// repayment transactions and incremented when such transactions are deleted,
// but it can also be edited directly and is never re-derived from history.
type Credit struct {
	CreditID    string              `json:"creditID"`  // Primary Key (UUID)
	UserID      string              `json:"userID"`    // FK -> users.user_id, owner
	AccountID   string              `json:"accountID"` // FK -> accounts.account_id (repayments drawn from here)
	Title       string              `json:"title"`
	Principal   decimal.Decimal     `json:"principal"`
	Outstanding decimal.Decimal     `json:"outstanding"` // Decreases toward zero
	StartDate   time.Time           `json:"startDate"`
	DueDate     time.Time           `json:"dueDate"`
	Frequency   RecurrenceFrequency `json:"frequency"` // Expected repayment cadence
	IsClosed    bool                `json:"isClosed"`
	AuditFields
}

// ApplyAdjustment moves the outstanding balance by the signed amount:
// negative when a repayment is applied, positive when one is reversed.
// Applying closes the credit once outstanding reaches zero or below; a
// reversal that leaves it positive reopens the credit. The result is not
// capped at the principal, so reversing repayments on a fully repaid credit
// can push outstanding past it.
func (c *Credit) ApplyAdjustment(amount decimal.Decimal) {
	c.Outstanding = c.Outstanding.Add(amount)
	if amount.IsNegative() {
		if c.Outstanding.LessThanOrEqual(decimal.Zero) {
			c.IsClosed = true
		}
		return
	}
	if c.Outstanding.GreaterThan(decimal.Zero) {
		c.IsClosed = false
	}
}
