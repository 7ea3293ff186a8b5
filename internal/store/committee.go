package store

import (
	"context"

	"github.com/ejay-detera/orgspace/core/db/sqlc"
	"github.com/ejay-detera/orgspace/internal/model"
)

type committeeStore struct {
	queries *sqlc.Queries
}

func newCommitteeStore(queries *sqlc.Queries) CommitteeStore {
	return &committeeStore{queries: queries}
}

func (s *committeeStore) Create(ctx context.Context, committee *model.Committee) error {
	row, err := s.queries.CreateCommittee(ctx, sqlc.CreateCommitteeParams{
		ID:             committee.ID,
		OrganizationID: committee.OrganizationID,
		Name:           committee.Name,
		Description:    committee.Description,
		IsPublic:       committee.IsPublic,
		CreatedBy:      committee.CreatedBy,
	})
	if err != nil {
		return translate(err)
	}
	*committee = *toCommitteeModel(row)
	return nil
}

func (s *committeeStore) ListByOrganization(ctx context.Context, orgID int64) ([]model.Committee, error) {
	rows, err := s.queries.ListCommitteesByOrganization(ctx, orgID)
	if err != nil {
		return nil, translate(err)
	}
	result := make([]model.Committee, len(rows))
	for i, row := range rows {
		result[i] = *toCommitteeModel(row)
	}
	return result, nil
}

func toCommitteeModel(row sqlc.Committee) *model.Committee {
	return &model.Committee{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		Name:           row.Name,
		Description:    row.Description,
		IsPublic:       row.IsPublic,
		CreatedBy:      row.CreatedBy,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
