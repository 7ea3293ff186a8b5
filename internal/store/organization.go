package store

import (
	"context"

	"github.com/ejay-detera/orgspace/core/db/sqlc"
	"github.com/ejay-detera/orgspace/internal/model"
)

type organizationStore struct {
	queries *sqlc.Queries
}

func newOrganizationStore(queries *sqlc.Queries) OrganizationStore {
	return &organizationStore{queries: queries}
}

func (s *organizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	row, err := s.queries.GetOrganization(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return toOrganizationModel(row), nil
}

func (s *organizationStore) GetByName(ctx context.Context, name string) (*model.Organization, error) {
	row, err := s.queries.GetOrganizationByName(ctx, name)
	if err != nil {
		return nil, translate(err)
	}
	return toOrganizationModel(row), nil
}

func (s *organizationStore) Create(ctx context.Context, org *model.Organization) error {
	row, err := s.queries.CreateOrganization(ctx, sqlc.CreateOrganizationParams{
		ID:               org.ID,
		Name:             org.Name,
		Description:      org.Description,
		Type:             org.Type,
		Status:           string(org.Status),
		OrganizationCode: org.Code,
		Image:            org.Image,
		CreatedBy:        org.CreatedBy,
	})
	if err != nil {
		return translate(err)
	}
	*org = *toOrganizationModel(row)
	return nil
}

func (s *organizationStore) ListForUser(ctx context.Context, userID int64) ([]model.OrganizationSummary, error) {
	rows, err := s.queries.ListOrganizationsForUser(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	result := make([]model.OrganizationSummary, len(rows))
	for i, row := range rows {
		result[i] = model.OrganizationSummary{
			ID:               row.ID,
			Name:             row.Name,
			Type:             row.Type,
			Status:           model.OrganizationStatus(row.Status),
			Code:             row.OrganizationCode,
			Image:            row.Image,
			Role:             model.MemberRole(row.Role),
			MembershipStatus: model.MemberStatus(row.MembershipStatus),
			JoinedAt:         row.JoinedAt.Time,
		}
	}
	return result, nil
}

func toOrganizationModel(row sqlc.Organization) *model.Organization {
	return &model.Organization{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Type:        row.Type,
		Status:      model.OrganizationStatus(row.Status),
		Code:        row.OrganizationCode,
		Image:       row.Image,
		CreatedBy:   row.CreatedBy,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}
