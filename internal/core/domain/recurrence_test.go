package domain_test

import (
	"testing"
	"time"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name         string
		from         time.Time
		freq         domain.RecurrenceFrequency
		preferredDay int
		want         time.Time
	}{
		{
			name: "daily adds one day",
			from: date(2025, time.March, 14),
			freq: domain.Daily,
			want: date(2025, time.March, 15),
		},
		{
			name: "weekly adds seven days",
			from: date(2025, time.March, 28),
			freq: domain.Weekly,
			want: date(2025, time.April, 4),
		},
		{
			name: "monthly keeps the day when it fits",
			from: date(2025, time.March, 15),
			freq: domain.Monthly,
			want: date(2025, time.April, 15),
		},
		{
			name: "monthly day 31 clamps to a 30-day month",
			from: date(2025, time.March, 31),
			freq: domain.Monthly,
			want: date(2025, time.April, 30),
		},
		{
			name: "monthly jan 31 clamps to feb 28 in a non-leap year",
			from: date(2025, time.January, 31),
			freq: domain.Monthly,
			want: date(2025, time.February, 28),
		},
		{
			name: "monthly jan 31 clamps to feb 29 in a leap year",
			from: date(2024, time.January, 31),
			freq: domain.Monthly,
			want: date(2024, time.February, 29),
		},
		{
			name:         "monthly recovers the preferred day after a short month",
			from:         date(2025, time.February, 28),
			freq:         domain.Monthly,
			preferredDay: 31,
			want:         date(2025, time.March, 31),
		},
		{
			name: "monthly december rolls the year",
			from: date(2025, time.December, 10),
			freq: domain.Monthly,
			want: date(2026, time.January, 10),
		},
		{
			name: "yearly adds one year",
			from: date(2025, time.June, 1),
			freq: domain.Yearly,
			want: date(2026, time.June, 1),
		},
		{
			name: "yearly feb 29 clamps to feb 28 in a non-leap year",
			from: date(2024, time.February, 29),
			freq: domain.Yearly,
			want: date(2025, time.February, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.NextOccurrence(tt.from, tt.freq, tt.preferredDay)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestNextOccurrence_UnknownFrequencyIsIdentity(t *testing.T) {
	from := date(2025, time.March, 14)
	assert.True(t, from.Equal(domain.NextOccurrence(from, "FORTNIGHTLY", 0)))
}

func TestRecurrenceFrequency_Valid(t *testing.T) {
	assert.True(t, domain.Monthly.Valid())
	assert.True(t, domain.Daily.Valid())
	assert.False(t, domain.RecurrenceFrequency("HOURLY").Valid())
	assert.False(t, domain.RecurrenceFrequency("").Valid())
}
