package db

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/ejay-detera/orgspace/core/db/sqlc"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the full DDL for the OrgSpace database. sqlc generates the
// queries package from it and integration tests apply it to a scratch database.
//
//go:embed schema.sql
var Schema string

// DB wraps a pgxpool.Pool and provides transaction support.
type DB struct {
	pool *pgxpool.Pool
}

type Config struct {
	DSN string

	MaxConns int32

	MinConns int32
}

// New creates a new DB instance with the given configuration.
func New(ctx context.Context, cfg Config) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	poolCfg.MaxConns = 10
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	poolCfg.MinConns = 2
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{pool: pool}, nil
}

func (db *DB) Close() {
	db.pool.Close()
}

// Queries returns a new Queries instance for non-transactional operations.
func (db *DB) Queries() *sqlc.Queries {
	return sqlc.New(db.pool)
}

// ApplySchema executes Schema against the pool. Only used by the seeder and
// integration tests; production schemas are managed out of band.
func (db *DB) ApplySchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}

// WithTx executes fn within a single database transaction. Any error returned
// by fn, or a panic, rolls the transaction back; otherwise it is committed.
//
// Usage:
//
//	err := db.WithTx(ctx, func(q *sqlc.Queries) error {
//	    org, err := q.CreateOrganization(ctx, ...)
//	    if err != nil { return err }
//
//	    _, err = q.CreateCommittee(ctx, ...)
//	    return err
//	})
func (db *DB) WithTx(ctx context.Context, fn func(q *sqlc.Queries) error) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	// no-op once committed
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(sqlc.New(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
