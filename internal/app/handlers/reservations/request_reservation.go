package reservations

import (
	"context"
	"errors"
	"time"

	"pinehollow/internal/app/commands"
	"pinehollow/internal/app/outbox"
	"pinehollow/internal/domain/availability"
	"pinehollow/internal/domain/reservation"
	"pinehollow/internal/domain/shared/datekey"
	"pinehollow/internal/domain/shared/daterange"
	"pinehollow/internal/domain/shared/money"
)

const requestReservationKey = "reservation.request"

var (
	ErrArrivalInPast    = errors.New("reservations: arrival date is in the past")
	ErrStayTooShort     = errors.New("reservations: stay is shorter than the minimum")
	ErrStayTooLong      = errors.New("reservations: stay exceeds the maximum length")
	ErrDatesUnavailable = errors.New("reservations: requested dates are no longer available")
)

type RequestReservationCommand struct {
	CommandID       string
	Arrival         time.Time
	Departure       time.Time
	Guests          int
	Pets            int
	Name            string
	Email           string
	Phone           string
	Address         string
	SpecialRequests string
}

func (c RequestReservationCommand) Key() string { return requestReservationKey }

type RequestReservationResult struct {
	ReservationID string `json:"reservation_id"`
	Status        string `json:"status"`
	Nights        int    `json:"nights"`
	TotalAmount   int64  `json:"total_amount"`
	Currency      string `json:"currency"`
}

type RequestReservationHandler struct {
	Reservations  reservation.Repository
	Outbox        outbox.Outbox
	Encoder       outbox.EventEncoder
	NightlyRate   money.Money
	MinStayNights int
	Now           func() time.Time
}

func (h *RequestReservationHandler) Handle(ctx context.Context, cmd RequestReservationCommand) (*RequestReservationResult, error) {
	now := h.now()

	// The command ID doubles as the idempotency key: a retried request
	// returns the stored outcome instead of re-running the availability
	// check against the days its own first attempt already blocked.
	if cmd.CommandID != "" {
		existing, err := h.Reservations.ByID(ctx, reservation.ReservationID(cmd.CommandID))
		switch {
		case err == nil:
			return resultOf(existing), nil
		case !errors.Is(err, reservation.ErrReservationNotFound):
			return nil, err
		}
	}

	stay, err := daterange.New(cmd.Arrival, cmd.Departure)
	if err != nil {
		return nil, err
	}
	if datekey.Normalize(stay.Arrival).Before(datekey.Normalize(now)) {
		return nil, ErrArrivalInPast
	}
	// BuildBlockedSet truncates a record's contribution at MaxNightsPerStay,
	// so a stay accepted beyond the bound would leave its tail unblocked and
	// open to a second booking. Never admit such a record.
	if stay.Nights() > availability.MaxNightsPerStay {
		return nil, ErrStayTooLong
	}

	existing, err := h.Reservations.List(ctx, reservation.ListFilter{})
	if err != nil {
		return nil, err
	}
	rules := availability.Rules{
		Blocked:       availability.BuildBlockedSet(existing),
		MinStayNights: h.MinStayNights,
		Today:         datekey.Normalize(now),
	}
	arrival := datekey.Normalize(stay.Arrival)
	departure := datekey.Normalize(stay.Departure)
	if !rules.MeetsMinStay(arrival, departure) {
		return nil, ErrStayTooShort
	}
	for day := arrival; day.Before(departure); day = day.Next() {
		if rules.Blocked.IsBlocked(day) {
			return nil, ErrDatesUnavailable
		}
	}

	rec, err := reservation.NewReservation(reservation.CreateParams{
		ID:              reservation.ReservationID(cmd.CommandID),
		Stay:            stay,
		Guests:          cmd.Guests,
		Pets:            cmd.Pets,
		Contact:         reservation.Contact{Name: cmd.Name, Email: cmd.Email, Phone: cmd.Phone},
		Address:         cmd.Address,
		SpecialRequests: cmd.SpecialRequests,
		NightlyRate:     h.NightlyRate,
		CreatedAt:       now,
	})
	if err != nil {
		return nil, err
	}

	if err := h.Reservations.Save(ctx, rec); err != nil {
		return nil, err
	}

	pending := rec.PendingEvents()
	rec.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, pending); err != nil {
		return nil, err
	}

	return resultOf(rec), nil
}

func resultOf(rec *reservation.Reservation) *RequestReservationResult {
	return &RequestReservationResult{
		ReservationID: string(rec.ID),
		Status:        string(rec.Status),
		Nights:        rec.Stay.Nights(),
		TotalAmount:   rec.Total.Amount,
		Currency:      rec.Total.Currency,
	}
}

func (h *RequestReservationHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

var _ commands.Handler[RequestReservationCommand, *RequestReservationResult] = (*RequestReservationHandler)(nil)
