package model

import "time"

type OrganizationStatus string

const (
	OrganizationStatusActive OrganizationStatus = "active"
)

type Organization struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Type        string             `json:"type"`
	Status      OrganizationStatus `json:"status"`
	Code        string             `json:"organization_code"`
	Image       *string            `json:"image,omitempty"`
	CreatedBy   int64              `json:"created_by"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// OrganizationSummary is an organization as seen through one member's membership.
type OrganizationSummary struct {
	ID               int64              `json:"id"`
	Name             string             `json:"name"`
	Type             string             `json:"type"`
	Status           OrganizationStatus `json:"status"`
	Code             string             `json:"organization_code"`
	Image            *string            `json:"image,omitempty"`
	Role             MemberRole         `json:"role"`
	MembershipStatus MemberStatus       `json:"membership_status"`
	JoinedAt         time.Time          `json:"joined_at"`
}
