package availability

import (
	"sort"

	"pinehollow/internal/domain/reservation"
	"pinehollow/internal/domain/shared/datekey"
)

// MaxNightsPerStay caps how many days a single record may contribute, so a
// malformed record with a runaway departure cannot stall a rebuild. The
// contribution is truncated, never treated as fatal. The reservation intake
// enforces the same bound, so any record that exceeds it is corrupt data,
// not an accepted booking.
const MaxNightsPerStay = 100

// BlockedDateSet is the set of calendar days covered by at least one
// non-cancelled reservation's half-open [arrival, departure) interval.
// It is derived, never persisted; rebuild it from records on every change.
type BlockedDateSet struct {
	days map[datekey.CalendarDay]struct{}
}

// BuildBlockedSet expands reservations into their blocked days. Cancelled
// records contribute nothing; the departure day itself stays open so
// back-to-back stays can share a turnover day.
func BuildBlockedSet(records []*reservation.Reservation) BlockedDateSet {
	days := make(map[datekey.CalendarDay]struct{})
	for _, rec := range records {
		if rec == nil || !rec.Blocks() {
			continue
		}
		day := datekey.Normalize(rec.Stay.Arrival)
		end := datekey.Normalize(rec.Stay.Departure)
		for i := 0; day.Before(end) && i < MaxNightsPerStay; i++ {
			days[day] = struct{}{}
			day = day.Next()
		}
	}
	return BlockedDateSet{days: days}
}

// IsBlocked reports set membership in constant time.
func (s BlockedDateSet) IsBlocked(day datekey.CalendarDay) bool {
	_, ok := s.days[day]
	return ok
}

func (s BlockedDateSet) Len() int {
	return len(s.days)
}

// Days returns the blocked days in chronological order.
func (s BlockedDateSet) Days() []datekey.CalendarDay {
	out := make([]datekey.CalendarDay, 0, len(s.days))
	for day := range s.days {
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
