package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrConflict matches any *ConflictError via errors.Is.
var ErrConflict = errors.New("conflict")

const uniqueViolation = "23505"

// Unique constraints the services react to.
const (
	ConstraintUserEmail        = "users_email_key"
	ConstraintUserUsername     = "users_username_key"
	ConstraintOrganizationName = "organizations_name_key"
	ConstraintOrganizationCode = "organizations_organization_code_key"
)

// ConflictError reports a unique constraint violation.
type ConflictError struct {
	Constraint string
	Err        error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("unique constraint %q violated", e.Constraint)
}

func (e *ConflictError) Unwrap() error { return e.Err }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// IsConflictOn reports whether err is a unique violation of the named constraint.
func IsConflictOn(err error, constraint string) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict) && conflict.Constraint == constraint
}

// translate maps driver errors onto the store's error vocabulary.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &ConflictError{Constraint: pgErr.ConstraintName, Err: err}
	}
	return err
}
