package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ejay-detera/orgspace/common/logger"
	"github.com/ejay-detera/orgspace/internal/queue"
)

type ReclaimerConfig struct {
	MinIdle   time.Duration
	Interval  time.Duration
	BatchSize int64
}

// Reclaimer periodically claims messages left pending by a consumer that died
// between reading and acknowledging them.
type Reclaimer struct {
	claimer Claimer
	cfg     ReclaimerConfig
	handle  func(ctx context.Context, msg queue.Message)

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewReclaimer(claimer Claimer, cfg ReclaimerConfig, handle func(ctx context.Context, msg queue.Message)) *Reclaimer {
	return &Reclaimer{
		claimer:   claimer,
		cfg:       cfg,
		handle:    handle,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Run starts the reclaimer loop. Blocks until Stop() is called or ctx ends.
func (r *Reclaimer) Run(ctx context.Context) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "orgspace.worker.reclaimer",
	})

	defer close(r.stoppedCh)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "reclaimer started",
		"interval", r.cfg.Interval,
		"min_idle", r.cfg.MinIdle)

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			slog.InfoContext(ctx, "reclaimer stopping")
			return
		case <-ticker.C:
			if _, err := r.ReclaimOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "reclaim cycle error", "error", err)
			}
		}
	}
}

func (r *Reclaimer) Stop() {
	close(r.stopCh)
	<-r.stoppedCh
}

// ReclaimOnce walks the pending list once and returns how many messages it handled.
func (r *Reclaimer) ReclaimOnce(ctx context.Context) (int, error) {
	cursor := "0-0"
	handled := 0
	for {
		messages, next, err := r.claimer.Claim(ctx, r.cfg.MinIdle, cursor, r.cfg.BatchSize)
		if err != nil {
			return handled, fmt.Errorf("claiming stale messages: %w", err)
		}

		if len(messages) > 0 {
			slog.InfoContext(ctx, "reclaimed stale pending messages", "count", len(messages))
		}
		for _, msg := range messages {
			r.handle(ctx, msg)
			handled++
		}

		if next == "" || next == "0-0" {
			return handled, nil
		}
		cursor = next
	}
}
