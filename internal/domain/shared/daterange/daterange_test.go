package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinehollow/internal/domain/shared/datekey"
)

func TestNewPinsEndpointsToNoonUTC(t *testing.T) {
	arrival := time.Date(2025, 5, 1, 23, 30, 0, 0, time.UTC)
	departure := time.Date(2025, 5, 4, 0, 15, 0, 0, time.UTC)

	r, err := New(arrival, departure)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC), r.Arrival)
	assert.Equal(t, time.Date(2025, 5, 4, 12, 0, 0, 0, time.UTC), r.Departure)
}

func TestNewRejectsInvalidRanges(t *testing.T) {
	day := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		arrival   time.Time
		departure time.Time
	}{
		{"zero arrival", time.Time{}, day},
		{"zero departure", day, time.Time{}},
		{"departure before arrival", day.AddDate(0, 0, 3), day},
		{"same calendar day", day, day.Add(5 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.arrival, tt.departure)
			assert.ErrorIs(t, err, ErrInvalidRange)
		})
	}
}

func TestNights(t *testing.T) {
	r, err := New(
		time.Date(2025, 5, 1, 22, 0, 0, 0, time.UTC),
		time.Date(2025, 5, 4, 2, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Nights())
}

func TestOverlaps(t *testing.T) {
	mk := func(a, d int) StayRange {
		r, err := New(
			time.Date(2025, 5, a, 12, 0, 0, 0, time.UTC),
			time.Date(2025, 5, d, 12, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		return r
	}

	tests := []struct {
		name string
		a    StayRange
		b    StayRange
		want bool
	}{
		{"disjoint", mk(1, 3), mk(5, 7), false},
		{"back to back shares turnover day", mk(1, 3), mk(3, 5), false},
		{"partial overlap", mk(1, 4), mk(3, 6), true},
		{"contained", mk(1, 10), mk(3, 5), true},
		{"identical", mk(2, 4), mk(2, 4), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestContainsDayIsHalfOpen(t *testing.T) {
	r, err := New(
		time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 13, 12, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	assert.True(t, r.ContainsDay(datekey.FromDate(2025, time.June, 10)))
	assert.True(t, r.ContainsDay(datekey.FromDate(2025, time.June, 12)))
	assert.False(t, r.ContainsDay(datekey.FromDate(2025, time.June, 13)))
	assert.False(t, r.ContainsDay(datekey.FromDate(2025, time.June, 9)))
}
