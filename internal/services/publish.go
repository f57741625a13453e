package services

import (
	"context"

	"ledgerly/internal/events"
	"ledgerly/internal/logger"
)

// publish sends ev and logs failures; a broker outage never fails the request.
func publish(ctx context.Context, p events.Publisher, ev events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(context.WithoutCancel(ctx), ev); err != nil {
		logger.Get().Warnw("failed to publish event",
			"error", err,
			"type", ev.Type,
			"resource_id", ev.ResourceID,
		)
	}
}
