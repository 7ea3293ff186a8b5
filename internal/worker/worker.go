package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ejay-detera/orgspace/common/logger"
	"github.com/ejay-detera/orgspace/internal/queue"
)

type Config struct {
	MaxAttempts  int
	ErrorBackoff time.Duration
}

type Worker struct {
	consumer Consumer
	notifier Notifier
	cfg      Config

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(consumer Consumer, notifier Notifier, cfg Config) *Worker {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = time.Second
	}
	return &Worker{
		consumer:  consumer,
		notifier:  notifier,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "orgspace.worker"})
	slog.InfoContext(ctx, "worker started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				select {
				case <-ctx.Done():
				case <-w.stopCh:
				case <-time.After(w.cfg.ErrorBackoff):
				}
			}
		}
	}
}

func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		w.Handle(ctx, msg)
	}

	return nil
}

// Handle processes msg and routes failures to a retry or the DLQ.
// Exported so the reclaimer shares the same failure policy.
func (w *Worker) Handle(ctx context.Context, msg queue.Message) {
	ctx = messageContext(ctx, msg)
	if err := w.processMessageSafe(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "message processing failed", "error", err)
		w.handleFailedMessage(ctx, msg, err)
	}
}

func (w *Worker) processMessageSafe(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing", "panic", r)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.ProcessMessage(ctx, msg)
}

// ProcessMessage dispatches msg to the notifier and acknowledges it on success.
func (w *Worker) ProcessMessage(ctx context.Context, msg queue.Message) error {
	sc := logger.StartSpanFromTraceID(ctx, msg.Event.TraceID, "worker.process "+string(msg.Event.Type))
	defer sc.End()
	ctx = sc.Context()

	slog.InfoContext(ctx, "processing message", "attempt", msg.Event.Attempt)

	var err error
	switch msg.Event.Type {
	case queue.EventUserRegistered:
		err = w.notifier.UserRegistered(ctx, msg.Event)
	case queue.EventOrganizationCreated:
		err = w.notifier.OrganizationCreated(ctx, msg.Event)
	default:
		slog.WarnContext(ctx, "unhandled event type, acknowledging")
	}
	if err != nil {
		sc.RecordError(err)
		return fmt.Errorf("notifying %s: %w", msg.Event.Type, err)
	}

	if err := w.consumer.Ack(ctx, msg); err != nil {
		// redelivery is harmless; notifiers are idempotent
		slog.WarnContext(ctx, "failed to ACK message", "error", err)
	}
	return nil
}

func (w *Worker) handleFailedMessage(ctx context.Context, msg queue.Message, err error) {
	if msg.Event.Attempt >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "max attempts reached, sending to DLQ", "attempts", msg.Event.Attempt)
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return
	}

	slog.WarnContext(ctx, "requeuing failed message", "attempt", msg.Event.Attempt)
	if requeueErr := w.consumer.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
}

func messageContext(ctx context.Context, msg queue.Message) context.Context {
	msgID := msg.ID
	eventType := string(msg.Event.Type)
	userID := msg.Event.UserID
	return logger.WithLogFields(ctx, logger.LogFields{
		MessageID:      &msgID,
		EventType:      &eventType,
		UserID:         &userID,
		OrganizationID: msg.Event.OrganizationID,
	})
}
