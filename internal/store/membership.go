package store

import (
	"context"

	"github.com/ejay-detera/orgspace/core/db/sqlc"
	"github.com/ejay-detera/orgspace/internal/model"
)

type membershipStore struct {
	queries *sqlc.Queries
}

func newMembershipStore(queries *sqlc.Queries) MembershipStore {
	return &membershipStore{queries: queries}
}

func (s *membershipStore) Create(ctx context.Context, m *model.Membership) error {
	row, err := s.queries.CreateOrganizationMember(ctx, sqlc.CreateOrganizationMemberParams{
		ID:             m.ID,
		UserID:         m.UserID,
		OrganizationID: m.OrganizationID,
		Role:           string(m.Role),
		Status:         string(m.Status),
	})
	if err != nil {
		return translate(err)
	}
	*m = *toMembershipModel(row)
	return nil
}

func (s *membershipStore) ListByOrganization(ctx context.Context, orgID int64) ([]model.Membership, error) {
	rows, err := s.queries.ListOrganizationMembers(ctx, orgID)
	if err != nil {
		return nil, translate(err)
	}
	result := make([]model.Membership, len(rows))
	for i, row := range rows {
		result[i] = *toMembershipModel(row)
	}
	return result, nil
}

func toMembershipModel(row sqlc.OrganizationMember) *model.Membership {
	return &model.Membership{
		ID:             row.ID,
		UserID:         row.UserID,
		OrganizationID: row.OrganizationID,
		Role:           model.MemberRole(row.Role),
		Status:         model.MemberStatus(row.Status),
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
