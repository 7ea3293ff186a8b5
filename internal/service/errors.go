package service

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ejay-detera/orgspace/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrProvisioningFailed = errors.New("organization provisioning failed")
)

// User-facing messages.
const (
	MsgInvalidCredentials  = "These credentials do not match our records."
	MsgProvisioningFailed  = "Failed to create organization. Please try again."
	MsgOrganizationCreated = "Organization created successfully!"
)

// ValidationError carries field-keyed messages back to the caller.
type ValidationError struct {
	Errors validation.Errors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	if len(fields) == 0 {
		return "The given data was invalid."
	}
	sort.Strings(fields)

	first := e.Errors.First(fields[0])
	total := 0
	for _, msgs := range e.Errors {
		total += len(msgs)
	}
	switch rest := total - 1; {
	case rest == 1:
		return first + " (and 1 more error)"
	case rest > 1:
		return fmt.Sprintf("%s (and %d more errors)", first, rest)
	}
	return first
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Errors: validation.Errors{field: {message}}}
}

// ThrottledError is returned while a login key is locked out.
type ThrottledError struct {
	Seconds int
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("Too many login attempts. Please try again in %d seconds.", e.Seconds)
}
