package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinehollow/internal/domain/reservation"
	"pinehollow/internal/domain/shared/daterange"
	"pinehollow/internal/infra/storage/memory"
)

func seedStay(t *testing.T, repo *memory.ReservationRepository, id string, arrival, departure time.Time, status reservation.Status) {
	t.Helper()
	stay, err := daterange.New(arrival, departure)
	require.NoError(t, err)
	err = repo.Save(context.Background(), &reservation.Reservation{
		ID:     reservation.ReservationID(id),
		Stay:   stay,
		Status: status,
	})
	require.NoError(t, err)
}

func newCalendarHandler(repo *memory.ReservationRepository) *GetCalendarHandler {
	return &GetCalendarHandler{
		Reservations:  repo,
		MinStayNights: 1,
		Now:           func() time.Time { return time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC) },
	}
}

func TestGetCalendarBlockedDays(t *testing.T) {
	repo := memory.NewReservationRepository()
	seedStay(t, repo, "a",
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC),
		reservation.StatusConfirmed)
	seedStay(t, repo, "b",
		time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC),
		reservation.StatusCancelled)

	view, err := newCalendarHandler(repo).Handle(context.Background(), GetCalendarQuery{})
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-06-10", "2025-06-11", "2025-06-12"}, view.BlockedDays,
		"departure day stays open and cancelled stays do not block")
	assert.Equal(t, 1, view.MinStayNights)
	assert.Nil(t, view.Range)
}

func TestGetCalendarWindow(t *testing.T) {
	repo := memory.NewReservationRepository()
	seedStay(t, repo, "a",
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC),
		reservation.StatusConfirmed)
	seedStay(t, repo, "b",
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC),
		reservation.StatusPending)

	view, err := newCalendarHandler(repo).Handle(context.Background(), GetCalendarQuery{
		From: time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-06-11", "2025-06-12", "2025-07-01"}, view.BlockedDays)
}

func TestGetCalendarRangeCheck(t *testing.T) {
	repo := memory.NewReservationRepository()
	seedStay(t, repo, "a",
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC),
		reservation.StatusConfirmed)
	h := newCalendarHandler(repo)

	tests := []struct {
		name       string
		from, to   time.Time
		selectable bool
	}{
		{
			name:       "open range",
			from:       time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
			to:         time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
			selectable: true,
		},
		{
			// Clicking a blocked day never completes a range, even as a
			// departure, so a link carrying these dates will not preselect.
			name:       "departure lands on blocked day",
			from:       time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
			to:         time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			selectable: false,
		},
		{
			name:       "arrival blocked",
			from:       time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
			to:         time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
			selectable: false,
		},
		{
			name:       "spans blocked days",
			from:       time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
			to:         time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
			selectable: false,
		},
		{
			name:       "in the past",
			from:       time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			to:         time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC),
			selectable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := h.Handle(context.Background(), GetCalendarQuery{
				From:       tt.from,
				To:         tt.to,
				CheckRange: true,
			})
			require.NoError(t, err)
			require.NotNil(t, view.Range)
			assert.Equal(t, tt.selectable, view.Range.Selectable)
			assert.Equal(t, tt.from.Format("2006-01-02"), view.Range.From)
		})
	}
}
