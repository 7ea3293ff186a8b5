package service

import (
	"context"
	"log/slog"

	"github.com/ejay-detera/orgspace/common/logger"
	"github.com/ejay-detera/orgspace/internal/queue"
)

// EventPublisher is satisfied by queue.Producer.
type EventPublisher interface {
	Publish(ctx context.Context, event queue.Event) error
}

// publish never fails the caller; the write it describes is already committed.
func publish(ctx context.Context, p EventPublisher, event queue.Event) {
	if p == nil {
		return
	}
	event.TraceID = logger.TraceID(ctx)
	if err := p.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish event", "error", err, "event_type", event.Type)
	}
}
