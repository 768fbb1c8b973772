package reservations

import (
	"context"
	"errors"
	"time"

	"pinehollow/internal/app/commands"
	"pinehollow/internal/app/outbox"
	"pinehollow/internal/domain/reservation"
)

const updateStatusKey = "reservation.update_status"

var ErrUnsupportedStatus = errors.New("reservations: status must be confirmed or cancelled")

type UpdateStatusCommand struct {
	ReservationID string
	NewStatus     reservation.Status
	Reason        string
}

func (c UpdateStatusCommand) Key() string { return updateStatusKey }

type UpdateStatusResult struct {
	ReservationID string `json:"reservation_id"`
	Status        string `json:"status"`
}

type UpdateStatusHandler struct {
	Reservations reservation.Repository
	Outbox       outbox.Outbox
	Encoder      outbox.EventEncoder
	Now          func() time.Time
}

func (h *UpdateStatusHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) (*UpdateStatusResult, error) {
	rec, err := h.Reservations.ByID(ctx, reservation.ReservationID(cmd.ReservationID))
	if err != nil {
		return nil, err
	}

	now := h.now()
	switch cmd.NewStatus {
	case reservation.StatusConfirmed:
		err = rec.Confirm(now)
	case reservation.StatusCancelled:
		err = rec.Cancel(cmd.Reason, now)
	default:
		return nil, ErrUnsupportedStatus
	}
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

	return &UpdateStatusResult{ReservationID: string(rec.ID), Status: string(rec.Status)}, nil
}

func (h *UpdateStatusHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

var _ commands.Handler[UpdateStatusCommand, *UpdateStatusResult] = (*UpdateStatusHandler)(nil)
