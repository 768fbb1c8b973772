package memory

import (
	"context"
	"sync"

	appoutbox "pinehollow/internal/app/outbox"
)

// Outbox keeps event records in memory. In dev mode a drain callback takes
// the place of the Kafka publisher; tests inspect Records directly.
type Outbox struct {
	mu      sync.Mutex
	records []appoutbox.EventRecord

	// OnAdd, when set, is invoked after each record is stored. The dev
	// wiring uses it to fan events straight into the refresh coordinator.
	OnAdd func(record appoutbox.EventRecord)
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	o.records = append(o.records, record)
	onAdd := o.OnAdd
	o.mu.Unlock()
	if onAdd != nil {
		onAdd(record)
	}
	return nil
}

// Records returns a copy of everything added so far.
func (o *Outbox) Records() []appoutbox.EventRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]appoutbox.EventRecord, len(o.records))
	copy(out, o.records)
	return out
}

var _ appoutbox.Outbox = (*Outbox)(nil)
