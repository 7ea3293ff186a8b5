package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/ejay-detera/orgspace/common/logger"
)

// SessionSweeper deletes expired sessions on a fixed interval.
type SessionSweeper struct {
	sessions SessionPurger
	interval time.Duration

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewSessionSweeper(sessions SessionPurger, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{
		sessions:  sessions,
		interval:  interval,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (s *SessionSweeper) Run(ctx context.Context) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "orgspace.worker.session_sweeper"})
	defer close(s.stoppedCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

func (s *SessionSweeper) Stop() {
	close(s.stopCh)
	<-s.stoppedCh
}

func (s *SessionSweeper) SweepOnce(ctx context.Context) int64 {
	n, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete expired sessions", "error", err)
		return 0
	}
	if n > 0 {
		slog.InfoContext(ctx, "deleted expired sessions", "count", n)
	}
	return n
}
