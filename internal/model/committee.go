package model

import "time"

const (
	ExecutiveCommitteeName        = "Executive Committee"
	ExecutiveCommitteeDescription = "The highest governing body of the organization."
)

type Committee struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organization_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	IsPublic       bool      `json:"is_public"`
	CreatedBy      *int64    `json:"created_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
