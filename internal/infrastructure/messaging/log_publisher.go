package messaging

import (
	"context"
	"log/slog"

	"github.com/yadav-krish/ticket-booking-prediction/pkg/events"
)

// LogPublisher implements port.EventPublisher by logging events. It is used
// when no Kafka brokers are configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a new logging event publisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	for _, evt := range evts {
		p.logger.InfoContext(ctx, "domain event",
			slog.String("event_type", evt.EventType()),
			slog.String("aggregate_id", evt.AggregateID().String()),
			slog.String("payload", string(evt.Payload())),
		)
	}
	return nil
}
