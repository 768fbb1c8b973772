package session

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"pinehollow/internal/domain/availability"
	"pinehollow/internal/domain/reservation"
)

const defaultRetryInterval = 15 * time.Second

// Sink receives rebuilt blocked sets and user-visible notices. Both a
// single BookingSession and the Manager fan-out satisfy it.
type Sink interface {
	ApplyBlockedSet(set availability.BlockedDateSet, seq uint64) bool
	Notify(message string)
}

// Coordinator keeps the blocked set current. External change notifications
// funnel into OnExternalChange; while the store is unreachable, Run polls
// until a refresh succeeds again. A failed refresh never clears the
// previous set; stale availability beats falsely re-opened dates.
type Coordinator struct {
	store         reservation.Repository
	sink          Sink
	retryInterval time.Duration
	logger        *slog.Logger

	seq         atomic.Uint64
	unreachable atomic.Bool
	kick        chan struct{}
}

func NewCoordinator(store reservation.Repository, sink Sink, retryInterval time.Duration, logger *slog.Logger) *Coordinator {
	if retryInterval <= 0 {
		retryInterval = defaultRetryInterval
	}
	return &Coordinator{
		store:         store,
		sink:          sink,
		retryInterval: retryInterval,
		logger:        logger,
		kick:          make(chan struct{}, 1),
	}
}

// OnExternalChange is the single entry point for "a reservation changed
// somewhere": Kafka messages, a successful local submission, or a manual
// resync all land here. The refresh runs on the caller's goroutine; the
// result is applied last-write-wins, so overlapping refreshes are safe.
func (c *Coordinator) OnExternalChange(ctx context.Context) {
	if err := c.refresh(ctx); err != nil {
		c.markUnreachable(err)
	}
}

// Run blocks until ctx is done, retrying refreshes on an interval while
// the store is unreachable. Start it once alongside the consumer.
func (c *Coordinator) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.retryInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.kick:
		case <-ticker.C:
			if !c.unreachable.Load() {
				continue
			}
		}
		if err := c.refresh(ctx); err != nil {
			c.markUnreachable(err)
		}
	}
}

// Resync schedules an immediate refresh on the Run goroutine.
func (c *Coordinator) Resync() {
	select {
	case c.kick <- struct{}{}:
	default:
	}
}

// Unreachable reports whether the last refresh attempt failed.
func (c *Coordinator) Unreachable() bool {
	return c.unreachable.Load()
}

func (c *Coordinator) refresh(ctx context.Context) error {
	seq := c.seq.Add(1)
	records, err := c.store.List(ctx, reservation.ListFilter{})
	if err != nil {
		return err
	}
	set := availability.BuildBlockedSet(records)
	applied := c.sink.ApplyBlockedSet(set, seq)
	if c.unreachable.CompareAndSwap(true, false) && c.logger != nil {
		c.logger.Info("reservation store reachable again")
	}
	if c.logger != nil {
		c.logger.Debug("blocked set refreshed", "blocked_days", set.Len(), "seq", seq, "applied", applied)
	}
	return nil
}

func (c *Coordinator) markUnreachable(err error) {
	first := c.unreachable.CompareAndSwap(false, true)
	if c.logger != nil {
		c.logger.Warn("availability refresh failed, keeping previous blocked set", "error", err)
	}
	if first {
		c.sink.Notify("We can't reach the reservation service right now. Shown availability may be out of date.")
	}
}
