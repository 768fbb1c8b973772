package availability

import "pinehollow/internal/domain/shared/datekey"

// Rules carries the constraints a selection is checked against. Today is
// passed in rather than read from the clock so checks stay deterministic.
type Rules struct {
	Blocked       BlockedDateSet
	MinStayNights int
	Today         datekey.CalendarDay
}

// IsSelectable reports whether clicking day is meaningful given the
// current arrival (zero when none is chosen yet). "Selectable" means the
// click will do something: start a selection, move the arrival earlier,
// deselect the arrival, or complete a valid range.
func (r Rules) IsSelectable(day, arrival datekey.CalendarDay) bool {
	if day.Before(r.Today) {
		return false
	}
	// Re-clicking the chosen arrival toggles it off, even though the day
	// would otherwise fail the blocked check below.
	if !arrival.IsZero() && day == arrival {
		return true
	}
	if r.Blocked.IsBlocked(day) {
		return false
	}
	if arrival.IsZero() {
		return true
	}
	// An earlier day replaces the arrival rather than closing the range.
	if day.Before(arrival) {
		return true
	}
	if !r.MeetsMinStay(arrival, day) {
		return false
	}
	return !HasBlockedBetween(arrival, day, r.Blocked)
}

// MeetsMinStay checks the departure candidate against the minimum stay.
// Hover previews skip this check; only the final clicked candidate is held
// to it.
func (r Rules) MeetsMinStay(arrival, departure datekey.CalendarDay) bool {
	if r.MinStayNights <= 0 {
		return arrival.Before(departure)
	}
	return arrival.DaysUntil(departure) >= r.MinStayNights
}

// HasBlockedBetween reports whether any day strictly between start and end
// is blocked. Both endpoints are excluded: the arrival is already held and
// the departure day of an existing stay is a legal turnover day.
func HasBlockedBetween(start, end datekey.CalendarDay, set BlockedDateSet) bool {
	for day := start.Next(); day.Before(end); day = day.Next() {
		if set.IsBlocked(day) {
			return true
		}
	}
	return false
}
