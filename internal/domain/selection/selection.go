package selection

import (
	"pinehollow/internal/domain/availability"
	"pinehollow/internal/domain/shared/datekey"
)

// State is the transient two-endpoint selection: an arrival, an optional
// departure, and an advisory hover day used only for rendering the
// in-progress range. The zero value is the empty selection.
type State struct {
	Arrival   datekey.CalendarDay
	Departure datekey.CalendarDay
	Hover     datekey.CalendarDay
}

// Phase names the three positions of the selection cycle.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseArrivalSet
	PhaseRangeSet
)

func (s State) Phase() Phase {
	switch {
	case s.Arrival.IsZero():
		return PhaseEmpty
	case s.Departure.IsZero():
		return PhaseArrivalSet
	default:
		return PhaseRangeSet
	}
}

// Event is a user interaction fed to Transition.
type Event interface {
	isSelectionEvent()
}

type DayClicked struct {
	Day datekey.CalendarDay
}

type HoverEntered struct {
	Day datekey.CalendarDay
}

type HoverLeft struct{}

func (DayClicked) isSelectionEvent()   {}
func (HoverEntered) isSelectionEvent() {}
func (HoverLeft) isSelectionEvent()    {}

// Result reports what a transition did. Committed is set exactly when the
// click completed a range; the caller hands State.Arrival/Departure to the
// booking submission at that point.
type Result struct {
	Changed   bool
	Committed bool
}

// Transition applies one event to the selection under the given rules and
// returns the next state. Invalid interactions are silent no-ops: the
// machine never fails, it just declines to move.
func Transition(s State, ev Event, rules availability.Rules) (State, Result) {
	switch e := ev.(type) {
	case DayClicked:
		return clickDay(s, e.Day, rules)
	case HoverEntered:
		// Advisory only: no validity checks, no effect outside ArrivalSet.
		if s.Phase() != PhaseArrivalSet || s.Hover == e.Day {
			return s, Result{}
		}
		s.Hover = e.Day
		return s, Result{Changed: true}
	case HoverLeft:
		if s.Hover.IsZero() {
			return s, Result{}
		}
		s.Hover = datekey.CalendarDay{}
		return s, Result{Changed: true}
	default:
		return s, Result{}
	}
}

func clickDay(s State, day datekey.CalendarDay, rules availability.Rules) (State, Result) {
	// A completed range is terminal for its cycle: the next click starts a
	// fresh one, discarding the prior endpoints.
	restarted := false
	if s.Phase() == PhaseRangeSet {
		s = State{}
		restarted = true
	}

	switch s.Phase() {
	case PhaseEmpty:
		if !rules.IsSelectable(day, datekey.CalendarDay{}) {
			return s, Result{Changed: restarted}
		}
		return State{Arrival: day}, Result{Changed: true}

	default: // PhaseArrivalSet
		if day == s.Arrival {
			return State{}, Result{Changed: true}
		}
		if !rules.IsSelectable(day, s.Arrival) {
			return s, Result{}
		}
		if day.Before(s.Arrival) {
			return State{Arrival: day}, Result{Changed: true}
		}
		return State{Arrival: s.Arrival, Departure: day}, Result{Changed: true, Committed: true}
	}
}
