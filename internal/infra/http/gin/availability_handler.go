package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	availabilityapp "pinehollow/internal/app/handlers/availability"
	"pinehollow/internal/app/queries"
)

type AvailabilityHandler struct {
	Queries queries.Bus
}

// Calendar returns blocked days, optionally windowed by from/to. When both
// bounds are present and check=true, the response also judges [from, to)
// as a candidate stay, which booking links with preselected dates use.
func (h AvailabilityHandler) Calendar(c *gin.Context) {
	from, _ := time.Parse(time.RFC3339, c.Query("from"))
	to, _ := time.Parse(time.RFC3339, c.Query("to"))
	query := availabilityapp.GetCalendarQuery{
		From:       from,
		To:         to,
		CheckRange: c.Query("check") == "true",
	}
	result, err := queries.Ask[availabilityapp.GetCalendarQuery, availabilityapp.CalendarView](c.Request.Context(), h.Queries, query)
	if err != nil {
		errJSON(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ AvailabilityHTTP = AvailabilityHandler{}
