package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

type Producer interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Publish(ctx context.Context, event Event) error {
	attempt := event.Attempt
	if attempt <= 0 {
		attempt = 1
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: eventValues(event, attempt),
	}).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	p.logger.InfoContext(ctx, "published event", "event_type", event.Type, "user_id", event.UserID, "attempt", attempt)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}

type discardProducer struct {
	logger *slog.Logger
}

// NewDiscardProducer returns a Producer that only logs. Used when no Redis is configured.
func NewDiscardProducer(logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &discardProducer{logger: logger}
}

func (p *discardProducer) Publish(ctx context.Context, event Event) error {
	p.logger.DebugContext(ctx, "event dropped, no stream configured", "event_type", event.Type)
	return nil
}

func (p *discardProducer) Close() error {
	return nil
}
