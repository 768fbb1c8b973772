package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinehollow/internal/domain/availability"
	"pinehollow/internal/domain/reservation"
	"pinehollow/internal/domain/shared/datekey"
	"pinehollow/internal/domain/shared/daterange"
)

func may(day int) datekey.CalendarDay {
	return datekey.FromDate(2025, time.May, day)
}

func rulesWithBlocked(t *testing.T, minNights int, stays ...[2]int) availability.Rules {
	t.Helper()
	records := make([]*reservation.Reservation, 0, len(stays))
	for i, s := range stays {
		stay, err := daterange.New(
			time.Date(2025, 5, s[0], 12, 0, 0, 0, time.UTC),
			time.Date(2025, 5, s[1], 12, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		records = append(records, &reservation.Reservation{
			ID:     reservation.ReservationID(string(rune('a' + i))),
			Stay:   stay,
			Status: reservation.StatusConfirmed,
		})
	}
	return availability.Rules{
		Blocked:       availability.BuildBlockedSet(records),
		MinStayNights: minNights,
		Today:         may(1),
	}
}

func TestClickTransitionTable(t *testing.T) {
	tests := []struct {
		name          string
		rules         availability.Rules
		start         State
		click         datekey.CalendarDay
		wantState     State
		wantChanged   bool
		wantCommitted bool
	}{
		{
			name:      "empty plus blocked day is a no-op",
			rules:     rulesWithBlocked(t, 1, [2]int{5, 8}),
			start:     State{},
			click:     may(6),
			wantState: State{},
		},
		{
			name:        "empty plus valid day sets arrival",
			rules:       rulesWithBlocked(t, 1),
			start:       State{},
			click:       may(5),
			wantState:   State{Arrival: may(5)},
			wantChanged: true,
		},
		{
			name:      "past day is a no-op",
			rules:     rulesWithBlocked(t, 1),
			start:     State{},
			click:     datekey.FromDate(2025, time.April, 20),
			wantState: State{},
		},
		{
			name:        "clicking arrival again toggles off",
			rules:       rulesWithBlocked(t, 1),
			start:       State{Arrival: may(5)},
			click:       may(5),
			wantState:   State{},
			wantChanged: true,
		},
		{
			name:      "blocked day while arrival set is a no-op",
			rules:     rulesWithBlocked(t, 1, [2]int{10, 12}),
			start:     State{Arrival: may(5)},
			click:     may(10),
			wantState: State{Arrival: may(5)},
		},
		{
			name:        "earlier day replaces arrival and clears departure intent",
			rules:       rulesWithBlocked(t, 1),
			start:       State{Arrival: may(10)},
			click:       may(3),
			wantState:   State{Arrival: may(3)},
			wantChanged: true,
		},
		{
			name:          "valid departure commits the range",
			rules:         rulesWithBlocked(t, 1),
			start:         State{Arrival: may(1)},
			click:         may(2),
			wantState:     State{Arrival: may(1), Departure: may(2)},
			wantChanged:   true,
			wantCommitted: true,
		},
		{
			name:      "departure below minimum stay is a no-op",
			rules:     rulesWithBlocked(t, 2),
			start:     State{Arrival: may(1)},
			click:     may(2),
			wantState: State{Arrival: may(1)},
		},
		{
			name:          "departure meeting minimum stay commits",
			rules:         rulesWithBlocked(t, 2),
			start:         State{Arrival: may(1)},
			click:         may(3),
			wantState:     State{Arrival: may(1), Departure: may(3)},
			wantChanged:   true,
			wantCommitted: true,
		},
		{
			name:      "interior blocked day rejects departure",
			rules:     rulesWithBlocked(t, 1, [2]int{3, 4}),
			start:     State{Arrival: may(1)},
			click:     may(5),
			wantState: State{Arrival: may(1)},
		},
		{
			name:          "departure before interior block commits",
			rules:         rulesWithBlocked(t, 1, [2]int{3, 4}),
			start:         State{Arrival: may(1)},
			click:         may(2),
			wantState:     State{Arrival: may(1), Departure: may(2)},
			wantChanged:   true,
			wantCommitted: true,
		},
		{
			name:        "click after committed range starts a new cycle",
			rules:       rulesWithBlocked(t, 1),
			start:       State{Arrival: may(1), Departure: may(3)},
			click:       may(10),
			wantState:   State{Arrival: may(10)},
			wantChanged: true,
		},
		{
			name:        "blocked click after committed range resets to empty",
			rules:       rulesWithBlocked(t, 1, [2]int{10, 12}),
			start:       State{Arrival: may(1), Departure: may(3)},
			click:       may(10),
			wantState:   State{},
			wantChanged: true,
		},
		{
			name:        "commit clears hover preview",
			rules:       rulesWithBlocked(t, 1),
			start:       State{Arrival: may(1), Hover: may(4)},
			click:       may(2),
			wantState:   State{Arrival: may(1), Departure: may(2)},
			wantChanged: true, wantCommitted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, res := Transition(tt.start, DayClicked{Day: tt.click}, tt.rules)
			assert.Equal(t, tt.wantState, got)
			assert.Equal(t, tt.wantChanged, res.Changed)
			assert.Equal(t, tt.wantCommitted, res.Committed)
		})
	}
}

func TestSameDayTwiceReturnsToEmpty(t *testing.T) {
	rules := rulesWithBlocked(t, 1)

	st, res := Transition(State{}, DayClicked{Day: may(5)}, rules)
	require.True(t, res.Changed)
	require.Equal(t, PhaseArrivalSet, st.Phase())

	st, res = Transition(st, DayClicked{Day: may(5)}, rules)
	assert.True(t, res.Changed)
	assert.Equal(t, PhaseEmpty, st.Phase())
}

func TestHoverIsAdvisoryOnly(t *testing.T) {
	rules := rulesWithBlocked(t, 2, [2]int{3, 4})

	// Hover has no effect before an arrival is chosen.
	st, res := Transition(State{}, HoverEntered{Day: may(5)}, rules)
	assert.Equal(t, State{}, st)
	assert.False(t, res.Changed)

	st = State{Arrival: may(1)}

	// Hover sticks even on days a click would reject: blocked, too short,
	// past an interior block. Preview never validates.
	for _, day := range []datekey.CalendarDay{may(2), may(3), may(10)} {
		next, res := Transition(st, HoverEntered{Day: day}, rules)
		assert.True(t, res.Changed)
		assert.Equal(t, day, next.Hover)
		assert.Equal(t, st.Arrival, next.Arrival, "hover must not touch arrival")
	}

	hovered, _ := Transition(st, HoverEntered{Day: may(6)}, rules)
	cleared, res := Transition(hovered, HoverLeft{}, rules)
	assert.True(t, res.Changed)
	assert.True(t, cleared.Hover.IsZero())

	// Leaving with nothing hovered is a no-op.
	_, res = Transition(cleared, HoverLeft{}, rules)
	assert.False(t, res.Changed)
}

func TestPhase(t *testing.T) {
	assert.Equal(t, PhaseEmpty, State{}.Phase())
	assert.Equal(t, PhaseArrivalSet, State{Arrival: may(1)}.Phase())
	assert.Equal(t, PhaseRangeSet, State{Arrival: may(1), Departure: may(2)}.Phase())
}
