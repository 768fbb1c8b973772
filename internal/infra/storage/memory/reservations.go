package memory

import (
	"context"
	"sort"
	"sync"

	"pinehollow/internal/domain/reservation"
)

// ReservationRepository is an in-memory implementation used in dev mode
// and tests.
type ReservationRepository struct {
	mu    sync.RWMutex
	items map[reservation.ReservationID]*reservation.Reservation
}

// NewReservationRepository builds an empty repository.
func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{
		items: make(map[reservation.ReservationID]*reservation.Reservation),
	}
}

// ByID returns a reservation or reservation.ErrReservationNotFound.
func (r *ReservationRepository) ByID(ctx context.Context, id reservation.ReservationID) (*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.items[id]
	if !ok {
		return nil, reservation.ErrReservationNotFound
	}
	return rec, nil
}

// Save stores the current reservation state.
func (r *ReservationRepository) Save(ctx context.Context, rec *reservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.Version++
	r.items[rec.ID] = rec
	return nil
}

// List returns reservations, newest arrival first, optionally filtered by status.
func (r *ReservationRepository) List(ctx context.Context, filter reservation.ListFilter) ([]*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*reservation.Reservation, 0, len(r.items))
	for _, rec := range r.items {
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Stay.Arrival.After(out[j].Stay.Arrival)
	})
	return out, nil
}

var _ reservation.Repository = (*ReservationRepository)(nil)
