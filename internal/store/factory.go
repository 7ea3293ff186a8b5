package store

import (
	"github.com/ejay-detera/orgspace/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.queries)
}

func (s *Stores) Sessions() SessionStore {
	return newSessionStore(s.queries)
}

func (s *Stores) Organizations() OrganizationStore {
	return newOrganizationStore(s.queries)
}

func (s *Stores) Committees() CommitteeStore {
	return newCommitteeStore(s.queries)
}

func (s *Stores) Memberships() MembershipStore {
	return newMembershipStore(s.queries)
}
