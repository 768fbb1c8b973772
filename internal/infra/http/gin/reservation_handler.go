package ginserver

import (
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pinehollow/internal/app/commands"
	reservationsapp "pinehollow/internal/app/handlers/reservations"
	"pinehollow/internal/app/queries"
	"pinehollow/internal/domain/reservation"
	"pinehollow/internal/domain/shared/daterange"
)

type ReservationHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type createReservationRequest struct {
	Arrival         time.Time `json:"arrival" binding:"required"`
	Departure       time.Time `json:"departure" binding:"required"`
	Guests          int       `json:"guests" binding:"required"`
	Pets            int       `json:"pets"`
	Name            string    `json:"name" binding:"required"`
	Email           string    `json:"email" binding:"required"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	SpecialRequests string    `json:"special_requests"`
}

func (h ReservationHandler) Create(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	cmd := reservationsapp.RequestReservationCommand{
		CommandID:       commandID(c),
		Arrival:         req.Arrival,
		Departure:       req.Departure,
		Guests:          req.Guests,
		Pets:            req.Pets,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         req.Address,
		SpecialRequests: req.SpecialRequests,
	}
	result, err := commands.Dispatch[reservationsapp.RequestReservationCommand, *reservationsapp.RequestReservationResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		errJSON(c, statusForError(err), err.Error())
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h ReservationHandler) List(c *gin.Context) {
	query := reservationsapp.ListReservationsQuery{Status: c.Query("status")}
	result, err := queries.Ask[reservationsapp.ListReservationsQuery, []reservationsapp.ReservationView](c.Request.Context(), h.Queries, query)
	if err != nil {
		errJSON(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": result})
}

func (h ReservationHandler) Confirm(c *gin.Context) {
	h.updateStatus(c, reservation.StatusConfirmed)
}

func (h ReservationHandler) Cancel(c *gin.Context) {
	h.updateStatus(c, reservation.StatusCancelled)
}

type updateStatusRequest struct {
	Reason string `json:"reason"`
}

func (h ReservationHandler) updateStatus(c *gin.Context, status reservation.Status) {
	var req updateStatusRequest
	_ = c.ShouldBindJSON(&req)
	cmd := reservationsapp.UpdateStatusCommand{
		ReservationID: c.Param("id"),
		NewStatus:     status,
		Reason:        req.Reason,
	}
	result, err := commands.Dispatch[reservationsapp.UpdateStatusCommand, *reservationsapp.UpdateStatusResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		errJSON(c, statusForError(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

func commandID(c *gin.Context) string {
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		return key
	}
	return uuid.NewString()
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, reservation.ErrReservationNotFound):
		return http.StatusNotFound
	case errors.Is(err, reservationsapp.ErrDatesUnavailable),
		errors.Is(err, reservation.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, daterange.ErrInvalidRange),
		errors.Is(err, reservationsapp.ErrArrivalInPast),
		errors.Is(err, reservationsapp.ErrStayTooShort),
		errors.Is(err, reservationsapp.ErrStayTooLong),
		errors.Is(err, reservationsapp.ErrUnsupportedStatus),
		errors.Is(err, reservation.ErrInvalidGuests),
		errors.Is(err, reservation.ErrInvalidPets),
		errors.Is(err, reservation.ErrContactRequired),
		errors.Is(err, reservation.ErrInvalidEmail):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

var _ ReservationHTTP = ReservationHandler{}
