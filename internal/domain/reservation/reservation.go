package reservation

import (
	"context"
	"errors"
	"strings"
	"time"

	"pinehollow/internal/domain/shared/daterange"
	"pinehollow/internal/domain/shared/events"
	"pinehollow/internal/domain/shared/money"
)

var (
	ErrInvalidGuests       = errors.New("reservation: guests count must be positive")
	ErrInvalidPets         = errors.New("reservation: pets count must not be negative")
	ErrContactRequired     = errors.New("reservation: contact name and email required")
	ErrInvalidEmail        = errors.New("reservation: malformed email address")
	ErrInvalidState        = errors.New("reservation: invalid status transition")
	ErrReservationNotFound = errors.New("reservation: not found")
)

type ReservationID string

// Status is stored as a plain string so records written by older versions
// with statuses this code does not know keep round-tripping untouched.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

type Contact struct {
	Name  string
	Email string
	Phone string
}

type Reservation struct {
	ID              ReservationID
	Stay            daterange.StayRange
	Status          Status
	Guests          int
	Pets            int
	Contact         Contact
	Address         string
	SpecialRequests string
	NightlyRate     money.Money
	Total           money.Money
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int64
	events.EventRecorder
}

type ListFilter struct {
	Status Status
}

type Repository interface {
	ByID(ctx context.Context, id ReservationID) (*Reservation, error)
	Save(ctx context.Context, r *Reservation) error
	List(ctx context.Context, filter ListFilter) ([]*Reservation, error)
}

type CreateParams struct {
	ID              ReservationID
	Stay            daterange.StayRange
	Guests          int
	Pets            int
	Contact         Contact
	Address         string
	SpecialRequests string
	NightlyRate     money.Money
	CreatedAt       time.Time
}

func NewReservation(params CreateParams) (*Reservation, error) {
	if params.Guests <= 0 {
		return nil, ErrInvalidGuests
	}
	if params.Pets < 0 {
		return nil, ErrInvalidPets
	}
	if params.Contact.Name == "" || params.Contact.Email == "" {
		return nil, ErrContactRequired
	}
	if !looksLikeEmail(params.Contact.Email) {
		return nil, ErrInvalidEmail
	}
	if err := params.Stay.Validate(); err != nil {
		return nil, err
	}
	now := params.CreatedAt.UTC()
	r := &Reservation{
		ID:              params.ID,
		Stay:            params.Stay,
		Status:          StatusPending,
		Guests:          params.Guests,
		Pets:            params.Pets,
		Contact:         params.Contact,
		Address:         params.Address,
		SpecialRequests: params.SpecialRequests,
		NightlyRate:     params.NightlyRate,
		Total:           params.NightlyRate.Multiply(int64(params.Stay.Nights())),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	r.Record(ReservationRequested{ReservationID: r.ID, Stay: r.Stay, Guests: r.Guests, Total: r.Total, At: now})
	return r, nil
}

func (r *Reservation) Confirm(now time.Time) error {
	if r.Status != StatusPending {
		return ErrInvalidState
	}
	r.Status = StatusConfirmed
	r.UpdatedAt = now.UTC()
	r.Record(ReservationConfirmed{ReservationID: r.ID, Stay: r.Stay, At: r.UpdatedAt})
	return nil
}

func (r *Reservation) Cancel(reason string, now time.Time) error {
	if r.Status == StatusCancelled {
		return ErrInvalidState
	}
	r.Status = StatusCancelled
	r.UpdatedAt = now.UTC()
	r.Record(ReservationCancelled{ReservationID: r.ID, Stay: r.Stay, Reason: reason, At: r.UpdatedAt})
	return nil
}

// Blocks reports whether this record keeps its stay dates unavailable.
// Unrecognized statuses block: only an explicit cancellation frees dates.
func (r *Reservation) Blocks() bool {
	return r.Status != StatusCancelled
}

func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return !strings.ContainsAny(s, " \t")
}
