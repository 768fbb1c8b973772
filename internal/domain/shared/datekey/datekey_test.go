package datekey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeIgnoresTimeOfDay(t *testing.T) {
	tests := []struct {
		name string
		a    time.Time
		b    time.Time
	}{
		{
			name: "midnight vs just before midnight",
			a:    time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 5, 1, 23, 59, 59, 999_000_000, time.UTC),
		},
		{
			name: "morning vs noon",
			a:    time.Date(2025, 5, 1, 8, 15, 0, 0, time.UTC),
			b:    time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "same wall clock in a fixed zone",
			a:    time.Date(2025, 5, 1, 9, 0, 0, 0, time.FixedZone("X", 3*3600)),
			b:    time.Date(2025, 5, 1, 21, 30, 0, 0, time.FixedZone("X", 3*3600)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Normalize(tt.a), Normalize(tt.b))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	src := time.Date(2025, 6, 10, 17, 45, 12, 0, time.UTC)
	day := Normalize(src)
	assert.Equal(t, day, Normalize(day.Time()))
}

func TestAddDaysCrossesBoundaries(t *testing.T) {
	tests := []struct {
		name string
		from CalendarDay
		n    int
		want CalendarDay
	}{
		{"next day", FromDate(2025, time.May, 1), 1, FromDate(2025, time.May, 2)},
		{"month rollover", FromDate(2025, time.May, 31), 1, FromDate(2025, time.June, 1)},
		{"year rollover", FromDate(2025, time.December, 31), 1, FromDate(2026, time.January, 1)},
		{"leap february", FromDate(2024, time.February, 28), 1, FromDate(2024, time.February, 29)},
		{"backwards", FromDate(2025, time.March, 1), -1, FromDate(2025, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.AddDays(tt.n))
		})
	}
}

func TestOrderingAndDistance(t *testing.T) {
	a := FromDate(2025, time.May, 1)
	b := FromDate(2025, time.May, 4)

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))

	assert.Equal(t, 3, a.DaysUntil(b))
	assert.Equal(t, -3, b.DaysUntil(a))
	assert.Equal(t, 0, a.DaysUntil(a))
}

func TestZeroValue(t *testing.T) {
	var zero CalendarDay
	require.True(t, zero.IsZero())
	assert.False(t, FromDate(2025, time.May, 1).IsZero())
}

func TestString(t *testing.T) {
	assert.Equal(t, "2025-05-01", FromDate(2025, time.May, 1).String())
}
