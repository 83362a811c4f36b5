package domain

import "time"

// RecurrenceFrequency defines how often a recurring template repeats.
type RecurrenceFrequency string

const (
	Daily   RecurrenceFrequency = "DAILY"
	Weekly  RecurrenceFrequency = "WEEKLY"
	Monthly RecurrenceFrequency = "MONTHLY"
	Yearly  RecurrenceFrequency = "YEARLY"
)

// Valid reports whether f is one of the supported frequencies.
func (f RecurrenceFrequency) Valid() bool {
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// NextOccurrence computes the due date that follows 'from' for the given
// frequency. For MONTHLY the target day is preferredDay when set (1-31),
// otherwise the day of 'from'; either way it is capped at the target month's
// last day, so a day-31 template lands on Feb 28/29 or Apr 30. YEARLY applies
// the same cap (Feb 29 templates land on Feb 28 in non-leap years).
func NextOccurrence(from time.Time, freq RecurrenceFrequency, preferredDay int) time.Time {
	switch freq {
	case Daily:
		return from.AddDate(0, 0, 1)
	case Weekly:
		return from.AddDate(0, 0, 7)
	case Monthly:
		day := from.Day()
		if preferredDay >= 1 && preferredDay <= 31 {
			day = preferredDay
		}
		year, month := from.Year(), from.Month()+1
		if month > time.December {
			month = time.January
			year++
		}
		return clampToMonth(year, month, day, from)
	case Yearly:
		return clampToMonth(from.Year()+1, from.Month(), from.Day(), from)
	default:
		// Unknown frequency: leave the date untouched so the caller can
		// surface a validation error instead of silently drifting.
		return from
	}
}

// clampToMonth builds a date in year/month with the requested day capped at
// that month's last valid day, preserving the time-of-day of 'ref'.
func clampToMonth(year int, month time.Month, day int, ref time.Time) time.Time {
	last := daysIn(year, month)
	if day > last {
		day = last
	}
	return time.Date(year, month, day, ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), ref.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
