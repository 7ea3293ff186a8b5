package store

import (
	"context"

	"github.com/ejay-detera/orgspace/core/db/sqlc"
	"github.com/ejay-detera/orgspace/internal/model"
	"github.com/jackc/pgx/v5/pgtype"
)

type sessionStore struct {
	queries *sqlc.Queries
}

func newSessionStore(queries *sqlc.Queries) SessionStore {
	return &sessionStore{queries: queries}
}

func (s *sessionStore) Create(ctx context.Context, session *model.Session) error {
	row, err := s.queries.CreateSession(ctx, sqlc.CreateSessionParams{
		ID:        session.ID,
		UserID:    session.UserID,
		Token:     session.Token,
		IpAddress: session.IPAddress,
		UserAgent: session.UserAgent,
		ExpiresAt: pgtype.Timestamptz{Time: session.ExpiresAt, Valid: true},
	})
	if err != nil {
		return translate(err)
	}
	*session = *toSessionModel(row)
	return nil
}

func (s *sessionStore) GetValidByToken(ctx context.Context, token string) (*model.Session, error) {
	row, err := s.queries.GetValidSessionByToken(ctx, token)
	if err != nil {
		return nil, translate(err)
	}
	return toSessionModel(row), nil
}

func (s *sessionStore) DeleteByToken(ctx context.Context, token string) error {
	return translate(s.queries.DeleteSessionByToken(ctx, token))
}

func (s *sessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	n, err := s.queries.DeleteExpiredSessions(ctx)
	return n, translate(err)
}

func toSessionModel(row sqlc.Session) *model.Session {
	return &model.Session{
		ID:        row.ID,
		UserID:    row.UserID,
		Token:     row.Token,
		IPAddress: row.IpAddress,
		UserAgent: row.UserAgent,
		ExpiresAt: row.ExpiresAt.Time,
		CreatedAt: row.CreatedAt.Time,
	}
}
