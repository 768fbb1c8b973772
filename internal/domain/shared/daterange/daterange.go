package daterange

import (
	"errors"
	"time"

	"pinehollow/internal/domain/shared/datekey"
)

var ErrInvalidRange = errors.New("daterange: departure must be after arrival")

// StayRange represents a half-open interval [arrival, departure): the
// departure day itself stays free for the next guest's arrival.
type StayRange struct {
	Arrival   time.Time
	Departure time.Time
}

// New builds a StayRange with both endpoints pinned to noon UTC on their
// calendar date, so a stored stay never drifts across a day boundary when
// read back in another timezone.
func New(arrival, departure time.Time) (StayRange, error) {
	r := StayRange{Arrival: atNoonUTC(arrival), Departure: atNoonUTC(departure)}
	if err := r.Validate(); err != nil {
		return StayRange{}, err
	}
	return r, nil
}

func (r StayRange) Validate() error {
	if r.Arrival.IsZero() || r.Departure.IsZero() {
		return ErrInvalidRange
	}
	if !datekey.Normalize(r.Arrival).Before(datekey.Normalize(r.Departure)) {
		return ErrInvalidRange
	}
	return nil
}

// Nights is the number of calendar nights the stay spans.
func (r StayRange) Nights() int {
	return datekey.Normalize(r.Arrival).DaysUntil(datekey.Normalize(r.Departure))
}

// Overlaps reports whether two stays share at least one night.
func (r StayRange) Overlaps(other StayRange) bool {
	a1, d1 := datekey.Normalize(r.Arrival), datekey.Normalize(r.Departure)
	a2, d2 := datekey.Normalize(other.Arrival), datekey.Normalize(other.Departure)
	return a1.Before(d2) && a2.Before(d1)
}

// ContainsDay reports whether the given calendar day falls inside the
// half-open stay interval.
func (r StayRange) ContainsDay(day datekey.CalendarDay) bool {
	arrival := datekey.Normalize(r.Arrival)
	departure := datekey.Normalize(r.Departure)
	return !day.Before(arrival) && day.Before(departure)
}

func atNoonUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}
