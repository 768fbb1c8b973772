package session

import (
	"log/slog"
	"sync"
	"time"

	"pinehollow/internal/domain/availability"
	"pinehollow/internal/domain/selection"
	"pinehollow/internal/domain/shared/datekey"
)

const maxBufferedNotices = 8

// BookingSession owns one visitor's view of availability: the current
// BlockedDateSet and the in-progress selection. All mutation goes through
// its methods; rendering consumers only read snapshots. The mutex exists
// because refreshes arrive from the coordinator goroutine while clicks
// arrive from HTTP handlers.
type BookingSession struct {
	mu            sync.Mutex
	blocked       availability.BlockedDateSet
	sel           selection.State
	blockedSeq    uint64
	notices       []string
	minStayNights int
	now           func() time.Time
	logger        *slog.Logger
}

func New(minStayNights int, logger *slog.Logger) *BookingSession {
	return &BookingSession{
		minStayNights: minStayNights,
		now:           time.Now,
		logger:        logger,
	}
}

// WithClock overrides the session clock, used by tests.
func (s *BookingSession) WithClock(now func() time.Time) *BookingSession {
	s.now = now
	return s
}

func (s *BookingSession) rules() availability.Rules {
	return availability.Rules{
		Blocked:       s.blocked,
		MinStayNights: s.minStayNights,
		Today:         datekey.Normalize(s.now()),
	}
}

// ClickDay feeds one click through the selection machine against the
// current blocked set. Invalid clicks leave the selection untouched.
func (s *BookingSession) ClickDay(day datekey.CalendarDay) selection.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, res := selection.Transition(s.sel, selection.DayClicked{Day: day}, s.rules())
	s.sel = next
	return res
}

func (s *BookingSession) HoverEnter(day datekey.CalendarDay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel, _ = selection.Transition(s.sel, selection.HoverEntered{Day: day}, s.rules())
}

func (s *BookingSession) HoverLeave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel, _ = selection.Transition(s.sel, selection.HoverLeft{}, s.rules())
}

// Preselect seeds a completed range from externally supplied dates (a
// booking link carries from/to parameters). Both clicks run through the
// machine, so an unavailable or too-short range simply does not stick.
func (s *BookingSession) Preselect(from, to time.Time) bool {
	arrival := datekey.Normalize(from)
	departure := datekey.Normalize(to)
	if s.ClickDay(arrival); s.Selection().Arrival != arrival {
		return false
	}
	res := s.ClickDay(departure)
	return res.Committed
}

// ResetSelection clears the selection, used after a successful submission
// or an explicit cancel. A failed submission keeps the selection so the
// visitor does not lose their chosen range.
func (s *BookingSession) ResetSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = selection.State{}
}

// Selection returns a copy of the current selection state.
func (s *BookingSession) Selection() selection.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// Blocked returns the current blocked set. The set is immutable once
// applied; refreshes swap in a freshly built one.
func (s *BookingSession) Blocked() availability.BlockedDateSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blocked
}

// ApplyBlockedSet installs a rebuilt set, keyed by the sequence number of
// the refresh that produced it. A result from an older refresh that lost
// the race against a newer one is dropped (last write wins). Applying a
// set re-validates the in-progress selection: if any selected or interior
// day became blocked, the selection resets and the visitor is told.
func (s *BookingSession) ApplyBlockedSet(set availability.BlockedDateSet, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != 0 && seq <= s.blockedSeq {
		return false
	}
	s.blocked = set
	s.blockedSeq = seq
	s.revalidateLocked()
	return true
}

// Notify surfaces a user-visible message; it is buffered until the next
// DrainNotices call.
func (s *BookingSession) Notify(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifyLocked(message)
}

// DrainNotices returns buffered notices and clears the buffer.
func (s *BookingSession) DrainNotices() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notices
	s.notices = nil
	return out
}

func (s *BookingSession) revalidateLocked() {
	if s.sel.Arrival.IsZero() {
		return
	}
	if !s.selectionStillOpenLocked() {
		s.sel = selection.State{}
		s.notifyLocked("The dates you were choosing were just booked by someone else. Please pick new dates.")
	}
}

func (s *BookingSession) selectionStillOpenLocked() bool {
	end := s.sel.Departure
	if end.IsZero() {
		end = s.sel.Arrival.Next()
	}
	for day := s.sel.Arrival; day.Before(end); day = day.Next() {
		if s.blocked.IsBlocked(day) {
			return false
		}
	}
	return true
}

func (s *BookingSession) notifyLocked(message string) {
	if len(s.notices) >= maxBufferedNotices {
		s.notices = s.notices[1:]
	}
	s.notices = append(s.notices, message)
	if s.logger != nil {
		s.logger.Info("session notice", "message", message)
	}
}

var _ Sink = (*BookingSession)(nil)
