package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ejay-detera/orgspace/common/logger"
	"github.com/ejay-detera/orgspace/internal/queue"
	"github.com/ejay-detera/orgspace/internal/store"
)

// LogNotifier records the notices an outbound mailer would send. It re-reads
// the rows each event refers to so stale events are dropped quietly.
type LogNotifier struct {
	users store.UserStore
	orgs  store.OrganizationStore
}

func NewLogNotifier(users store.UserStore, orgs store.OrganizationStore) *LogNotifier {
	return &LogNotifier{users: users, orgs: orgs}
}

func (n *LogNotifier) UserRegistered(ctx context.Context, event queue.Event) error {
	user, err := n.users.GetByID(ctx, event.UserID)
	if errors.Is(err, store.ErrNotFound) {
		slog.InfoContext(ctx, "registered user no longer exists, skipping welcome notice")
		return nil
	}
	if err != nil {
		return fmt.Errorf("getting user: %w", err)
	}

	if user.EmailVerifiedAt != nil {
		slog.InfoContext(ctx, "email already verified, skipping verification notice")
		return nil
	}

	slog.InfoContext(ctx, "verification notice queued",
		"email", logger.MaskEmail(user.Email),
		"username", user.Username)
	return nil
}

func (n *LogNotifier) OrganizationCreated(ctx context.Context, event queue.Event) error {
	if event.OrganizationID == nil {
		return fmt.Errorf("organization.created without organization_id")
	}

	org, err := n.orgs.GetByID(ctx, *event.OrganizationID)
	if errors.Is(err, store.ErrNotFound) {
		slog.InfoContext(ctx, "organization no longer exists, skipping notice")
		return nil
	}
	if err != nil {
		return fmt.Errorf("getting organization: %w", err)
	}

	slog.InfoContext(ctx, "organization welcome notice queued",
		"organization", org.Name,
		"organization_code", org.Code,
		"president_id", event.UserID)
	return nil
}
