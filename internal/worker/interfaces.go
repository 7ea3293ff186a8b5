package worker

import (
	"context"
	"time"

	"github.com/ejay-detera/orgspace/internal/queue"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// Claimer takes over messages another consumer read but never acknowledged.
type Claimer interface {
	Claim(ctx context.Context, minIdle time.Duration, cursor string, count int64) ([]queue.Message, string, error)
}

// Notifier delivers the side effects of domain events.
type Notifier interface {
	UserRegistered(ctx context.Context, event queue.Event) error
	OrganizationCreated(ctx context.Context, event queue.Event) error
}

// SessionPurger removes expired sessions.
type SessionPurger interface {
	DeleteExpired(ctx context.Context) (int64, error)
}
