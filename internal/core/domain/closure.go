package domain

import "time"

// MonthYearLayout is the format used for MonthClosure.MonthYear keys.
const MonthYearLayout = "2006-01"

// MonthClosure records a period whose transactions have been archived.
// One row per (user, monthYear); the date range bounds exactly the
// transactions the closure covers. Periods are non-overlapping and
// monotonically increasing per user.
type MonthClosure struct {
	ClosureID string    `json:"closureID"` // Primary Key (UUID)
	UserID    string    `json:"userID"`    // FK -> users.user_id
	MonthYear string    `json:"monthYear"` // e.g. "2025-07"
	StartDate time.Time `json:"startDate"` // Earliest archived transaction date
	EndDate   time.Time `json:"endDate"`   // Latest archived transaction date
	AuditFields
}
