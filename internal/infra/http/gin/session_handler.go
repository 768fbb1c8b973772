package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"pinehollow/internal/app/session"
	"pinehollow/internal/domain/selection"
	"pinehollow/internal/domain/shared/datekey"
)

const dayLayout = "2006-01-02"

// SessionHandler exposes the interactive date-selection machine. Each
// visitor gets a server-side booking session; clicks and hovers feed the
// selection, refreshes keep its blocked set current.
type SessionHandler struct {
	Sessions *session.Manager
}

type sessionView struct {
	SessionID string   `json:"session_id"`
	Phase     string   `json:"phase"`
	Arrival   string   `json:"arrival,omitempty"`
	Departure string   `json:"departure,omitempty"`
	Hover     string   `json:"hover,omitempty"`
	Committed bool     `json:"committed,omitempty"`
	Notices   []string `json:"notices,omitempty"`
}

func (h SessionHandler) Create(c *gin.Context) {
	id, sess := h.Sessions.Create()

	// Booking links may carry preselected dates; an invalid pair just
	// leaves the selection empty rather than failing session creation.
	if fromRaw, toRaw := c.Query("from"), c.Query("to"); fromRaw != "" && toRaw != "" {
		from, errFrom := time.Parse(time.RFC3339, fromRaw)
		to, errTo := time.Parse(time.RFC3339, toRaw)
		if errFrom == nil && errTo == nil {
			sess.Preselect(from, to)
		}
	}

	c.JSON(http.StatusCreated, viewOf(id, sess, selection.Result{}))
}

func (h SessionHandler) Get(c *gin.Context) {
	id := c.Param("id")
	sess, ok := h.Sessions.Get(id)
	if !ok {
		errJSON(c, http.StatusNotFound, "session not found")
		return
	}
	c.JSON(http.StatusOK, viewOf(id, sess, selection.Result{}))
}

type dayRequest struct {
	Day string `json:"day" binding:"required"`
}

func (h SessionHandler) Click(c *gin.Context) {
	id := c.Param("id")
	sess, ok := h.Sessions.Get(id)
	if !ok {
		errJSON(c, http.StatusNotFound, "session not found")
		return
	}
	day, ok := bindDay(c)
	if !ok {
		return
	}
	res := sess.ClickDay(day)
	c.JSON(http.StatusOK, viewOf(id, sess, res))
}

func (h SessionHandler) Hover(c *gin.Context) {
	id := c.Param("id")
	sess, ok := h.Sessions.Get(id)
	if !ok {
		errJSON(c, http.StatusNotFound, "session not found")
		return
	}
	day, ok := bindDay(c)
	if !ok {
		return
	}
	sess.HoverEnter(day)
	c.JSON(http.StatusOK, viewOf(id, sess, selection.Result{}))
}

func (h SessionHandler) Unhover(c *gin.Context) {
	id := c.Param("id")
	sess, ok := h.Sessions.Get(id)
	if !ok {
		errJSON(c, http.StatusNotFound, "session not found")
		return
	}
	sess.HoverLeave()
	c.JSON(http.StatusOK, viewOf(id, sess, selection.Result{}))
}

func (h SessionHandler) Reset(c *gin.Context) {
	id := c.Param("id")
	sess, ok := h.Sessions.Get(id)
	if !ok {
		errJSON(c, http.StatusNotFound, "session not found")
		return
	}
	sess.ResetSelection()
	c.JSON(http.StatusOK, viewOf(id, sess, selection.Result{}))
}

func (h SessionHandler) Close(c *gin.Context) {
	h.Sessions.Close(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func bindDay(c *gin.Context) (datekey.CalendarDay, bool) {
	var req dayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errJSON(c, http.StatusBadRequest, err.Error())
		return datekey.CalendarDay{}, false
	}
	t, err := time.Parse(dayLayout, req.Day)
	if err != nil {
		errJSON(c, http.StatusBadRequest, "day must be formatted as YYYY-MM-DD")
		return datekey.CalendarDay{}, false
	}
	return datekey.Normalize(t), true
}

func viewOf(id string, sess *session.BookingSession, res selection.Result) sessionView {
	state := sess.Selection()
	view := sessionView{
		SessionID: id,
		Committed: res.Committed,
		Notices:   sess.DrainNotices(),
	}
	switch state.Phase() {
	case selection.PhaseEmpty:
		view.Phase = "empty"
	case selection.PhaseArrivalSet:
		view.Phase = "arrival_set"
	case selection.PhaseRangeSet:
		view.Phase = "range_set"
	}
	if !state.Arrival.IsZero() {
		view.Arrival = state.Arrival.String()
	}
	if !state.Departure.IsZero() {
		view.Departure = state.Departure.String()
	}
	if !state.Hover.IsZero() {
		view.Hover = state.Hover.String()
	}
	return view
}

var _ SessionHTTP = SessionHandler{}
