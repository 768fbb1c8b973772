package outbox

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinehollow/internal/domain/shared/events"
)

type stubEvent struct {
	Detail string `json:"detail"`
	at     time.Time
}

func (e stubEvent) EventName() string     { return "reservation.requested" }
func (e stubEvent) AggregateID() string   { return "res-1" }
func (e stubEvent) OccurredAt() time.Time { return e.at }

type collectingOutbox struct {
	records []EventRecord
	err     error
}

func (o *collectingOutbox) Add(ctx context.Context, record EventRecord) error {
	if o.err != nil {
		return o.err
	}
	o.records = append(o.records, record)
	return nil
}

func TestJSONEventEncoder(t *testing.T) {
	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	enc := JSONEventEncoder{IDGenerator: func() string { return "fixed-id" }}

	rec, err := enc.Encode(stubEvent{Detail: "three nights", at: at})
	require.NoError(t, err)

	assert.Equal(t, "fixed-id", rec.ID)
	assert.Equal(t, "reservation.requested", rec.Name)
	assert.Equal(t, "res-1", rec.Aggregate)
	assert.Equal(t, at, rec.OccurredAt)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Payload, &payload))
	assert.Equal(t, "three nights", payload["detail"])
}

func TestRecordDomainEvents(t *testing.T) {
	at := time.Now()

	t.Run("stores every pending event", func(t *testing.T) {
		box := &collectingOutbox{}
		evs := []events.DomainEvent{stubEvent{at: at}, stubEvent{at: at}}
		require.NoError(t, RecordDomainEvents(context.Background(), box, nil, evs))
		assert.Len(t, box.records, 2)
		assert.NotEmpty(t, box.records[0].ID, "default encoder assigns ids")
	})

	t.Run("nil outbox and empty batch are no-ops", func(t *testing.T) {
		assert.NoError(t, RecordDomainEvents(context.Background(), nil, nil, []events.DomainEvent{stubEvent{at: at}}))
		assert.NoError(t, RecordDomainEvents(context.Background(), &collectingOutbox{}, nil, nil))
	})
}
