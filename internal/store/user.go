package store

import (
	"context"
	"strings"
	"time"

	"github.com/ejay-detera/orgspace/core/db/sqlc"
	"github.com/ejay-detera/orgspace/internal/model"
	"github.com/jackc/pgx/v5/pgtype"
)

type userStore struct {
	queries *sqlc.Queries
}

func newUserStore(queries *sqlc.Queries) UserStore {
	return &userStore{queries: queries}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, translate(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	row, err := s.queries.CreateUser(ctx, sqlc.CreateUserParams{
		ID:         user.ID,
		FirstName:  user.FirstName,
		MiddleName: user.MiddleName,
		LastName:   user.LastName,
		Username:   user.Username,
		Email:      user.Email,
		Password:   user.PasswordHash,
		Birthdate:  pgtype.Date{Time: user.Birthdate, Valid: true},
		IsAdmin:    user.IsAdmin,
	})
	if err != nil {
		return translate(err)
	}
	*user = *toUserModel(row)
	return nil
}

func (s *userStore) ListUsernamesWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	names, err := s.queries.ListUsernamesLike(ctx, escapeLike(prefix)+"%")
	if err != nil {
		return nil, translate(err)
	}
	return names, nil
}

func (s *userStore) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	return translate(s.queries.UpdateUserLastLogin(ctx, sqlc.UpdateUserLastLoginParams{
		ID:        id,
		LastLogin: pgtype.Timestamptz{Time: at, Valid: true},
	}))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func toUserModel(row sqlc.User) *model.User {
	return &model.User{
		ID:              row.ID,
		FirstName:       row.FirstName,
		MiddleName:      row.MiddleName,
		LastName:        row.LastName,
		Username:        row.Username,
		Email:           row.Email,
		PasswordHash:    row.Password,
		Birthdate:       row.Birthdate.Time,
		IsAdmin:         row.IsAdmin,
		CommitteeID:     row.CommitteeID,
		LastLogin:       timePtr(row.LastLogin),
		EmailVerifiedAt: timePtr(row.EmailVerifiedAt),
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}
}

func timePtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}
