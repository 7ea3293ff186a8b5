package model

import (
	"strings"
	"time"
)

type User struct {
	ID              int64      `json:"id"`
	FirstName       string     `json:"first_name"`
	MiddleName      *string    `json:"middle_name,omitempty"`
	LastName        string     `json:"last_name"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"`
	Birthdate       time.Time  `json:"birthdate"`
	IsAdmin         bool       `json:"is_admin"`
	CommitteeID     *int64     `json:"committee_id,omitempty"`
	LastLogin       *time.Time `json:"last_login,omitempty"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Name joins the non-empty name parts with single spaces.
func (u *User) Name() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.FirstName, deref(u.MiddleName), u.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
