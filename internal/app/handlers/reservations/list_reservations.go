package reservations

import (
	"context"
	"time"

	"pinehollow/internal/app/queries"
	"pinehollow/internal/domain/reservation"
)

const listReservationsKey = "reservation.list"

type ListReservationsQuery struct {
	Status string
}

func (q ListReservationsQuery) Key() string { return listReservationsKey }

type ReservationView struct {
	ID              string    `json:"id"`
	Arrival         time.Time `json:"arrival"`
	Departure       time.Time `json:"departure"`
	Status          string    `json:"status"`
	Guests          int       `json:"guests"`
	Pets            int       `json:"pets"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	SpecialRequests string    `json:"special_requests"`
	Nights          int       `json:"nights"`
	TotalAmount     int64     `json:"total_amount"`
	Currency        string    `json:"currency"`
	CreatedAt       time.Time `json:"created_at"`
}

type ListReservationsHandler struct {
	Reservations reservation.Repository
}

func (h *ListReservationsHandler) Handle(ctx context.Context, q ListReservationsQuery) ([]ReservationView, error) {
	records, err := h.Reservations.List(ctx, reservation.ListFilter{Status: reservation.Status(q.Status)})
	if err != nil {
		return nil, err
	}
	views := make([]ReservationView, 0, len(records))
	for _, rec := range records {
		views = append(views, ReservationView{
			ID:              string(rec.ID),
			Arrival:         rec.Stay.Arrival,
			Departure:       rec.Stay.Departure,
			Status:          string(rec.Status),
			Guests:          rec.Guests,
			Pets:            rec.Pets,
			Name:            rec.Contact.Name,
			Email:           rec.Contact.Email,
			Phone:           rec.Contact.Phone,
			Address:         rec.Address,
			SpecialRequests: rec.SpecialRequests,
			Nights:          rec.Stay.Nights(),
			TotalAmount:     rec.Total.Amount,
			Currency:        rec.Total.Currency,
			CreatedAt:       rec.CreatedAt,
		})
	}
	return views, nil
}

var _ queries.Handler[ListReservationsQuery, []ReservationView] = (*ListReservationsHandler)(nil)
