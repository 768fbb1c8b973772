package kafka

import (
	"context"
	"log/slog"

	"github.com/IBM/sarama"
)

// Refresher is the piece of the refresh coordinator this handler needs.
type Refresher interface {
	OnExternalChange(ctx context.Context)
}

// RefreshHandler turns reservation change messages into availability
// refreshes. The payload is not inspected: any event on the reservation
// topics means the blocked set may be stale, so the coordinator re-lists
// and rebuilds.
type RefreshHandler struct {
	Coordinator Refresher
	Logger      *slog.Logger
}

func (h RefreshHandler) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	if h.Logger != nil {
		h.Logger.Debug("reservation change received", "topic", msg.Topic, "key", string(msg.Key), "offset", msg.Offset)
	}
	if h.Coordinator != nil {
		h.Coordinator.OnExternalChange(ctx)
	}
	return nil
}

var _ MessageHandler = RefreshHandler{}
