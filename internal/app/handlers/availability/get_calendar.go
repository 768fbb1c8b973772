package availability

import (
	"context"
	"time"

	"pinehollow/internal/app/queries"
	domainavailability "pinehollow/internal/domain/availability"
	"pinehollow/internal/domain/reservation"
	"pinehollow/internal/domain/shared/datekey"
)

const getCalendarKey = "availability.calendar"

type GetCalendarQuery struct {
	From time.Time
	To   time.Time
	// CheckRange asks the handler to also judge [From, To) as a candidate
	// selection, used when a booking link carries preselected dates.
	CheckRange bool
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

type RangeCheck struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Selectable bool   `json:"selectable"`
}

type CalendarView struct {
	BlockedDays   []string    `json:"blocked_days"`
	MinStayNights int         `json:"min_stay_nights"`
	Range         *RangeCheck `json:"range,omitempty"`
}

type GetCalendarHandler struct {
	Reservations  reservation.Repository
	MinStayNights int
	Now           func() time.Time
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (CalendarView, error) {
	records, err := h.Reservations.List(ctx, reservation.ListFilter{})
	if err != nil {
		return CalendarView{}, err
	}
	set := domainavailability.BuildBlockedSet(records)

	view := CalendarView{BlockedDays: []string{}, MinStayNights: h.MinStayNights}
	for _, day := range set.Days() {
		if !q.From.IsZero() && day.Before(datekey.Normalize(q.From)) {
			continue
		}
		if !q.To.IsZero() && !day.Before(datekey.Normalize(q.To)) {
			continue
		}
		view.BlockedDays = append(view.BlockedDays, day.String())
	}

	if q.CheckRange && !q.From.IsZero() && !q.To.IsZero() {
		rules := domainavailability.Rules{
			Blocked:       set,
			MinStayNights: h.MinStayNights,
			Today:         datekey.Normalize(h.now()),
		}
		arrival := datekey.Normalize(q.From)
		departure := datekey.Normalize(q.To)
		selectable := rules.IsSelectable(arrival, datekey.CalendarDay{}) &&
			rules.IsSelectable(departure, arrival) &&
			arrival.Before(departure)
		view.Range = &RangeCheck{From: arrival.String(), To: departure.String(), Selectable: selectable}
	}

	return view, nil
}

func (h *GetCalendarHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

var _ queries.Handler[GetCalendarQuery, CalendarView] = (*GetCalendarHandler)(nil)
