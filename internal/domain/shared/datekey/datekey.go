package datekey

import "time"

// CalendarDay identifies one calendar date, independent of time-of-day
// and timezone offset of the source timestamp. It is comparable and
// usable as a map key.
type CalendarDay struct {
	Year  int
	Month time.Month
	Day   int
}

// Normalize discards the time-of-day component of t. Two timestamps with
// the same wall-clock date produce equal CalendarDay values.
func Normalize(t time.Time) CalendarDay {
	y, m, d := t.Date()
	return CalendarDay{Year: y, Month: m, Day: d}
}

// FromDate builds a CalendarDay directly from its components.
func FromDate(year int, month time.Month, day int) CalendarDay {
	return Normalize(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Today returns the current local calendar date.
func Today() CalendarDay {
	return Normalize(time.Now())
}

// Time materializes the day at midnight UTC, useful for arithmetic.
func (d CalendarDay) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the day n days after d (n may be negative).
func (d CalendarDay) AddDays(n int) CalendarDay {
	return Normalize(d.Time().AddDate(0, 0, n))
}

// Next returns the following calendar day.
func (d CalendarDay) Next() CalendarDay {
	return d.AddDays(1)
}

// Before reports whether d is strictly earlier than other.
func (d CalendarDay) Before(other CalendarDay) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is strictly later than other.
func (d CalendarDay) After(other CalendarDay) bool {
	return other.Before(d)
}

// DaysUntil returns the number of days from d to other; negative when
// other is earlier.
func (d CalendarDay) DaysUntil(other CalendarDay) int {
	return int(other.Time().Sub(d.Time()).Hours() / 24)
}

// IsZero reports whether d is the empty value, used for "no day chosen".
func (d CalendarDay) IsZero() bool {
	return d == CalendarDay{}
}

func (d CalendarDay) String() string {
	return d.Time().Format("2006-01-02")
}
