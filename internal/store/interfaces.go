package store

import (
	"context"
	"time"

	"github.com/ejay-detera/orgspace/internal/model"
)

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	// ListUsernamesWithPrefix returns every username that starts with prefix.
	ListUsernamesWithPrefix(ctx context.Context, prefix string) ([]string, error)
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}

// SessionStore defines the contract for session data access
type SessionStore interface {
	Create(ctx context.Context, session *model.Session) error
	GetValidByToken(ctx context.Context, token string) (*model.Session, error) // checks expiry
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// OrganizationStore defines the contract for organization data access
type OrganizationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	GetByName(ctx context.Context, name string) (*model.Organization, error)
	Create(ctx context.Context, org *model.Organization) error
	ListForUser(ctx context.Context, userID int64) ([]model.OrganizationSummary, error)
}

// CommitteeStore defines the contract for committee data access
type CommitteeStore interface {
	Create(ctx context.Context, committee *model.Committee) error
	ListByOrganization(ctx context.Context, orgID int64) ([]model.Committee, error)
}

// MembershipStore defines the contract for organization membership data access
type MembershipStore interface {
	Create(ctx context.Context, membership *model.Membership) error
	ListByOrganization(ctx context.Context, orgID int64) ([]model.Membership, error)
}
