package model

import "time"

type MemberRole string

const (
	MemberRolePresident MemberRole = "President"
	MemberRoleMember    MemberRole = "Member"
)

func (r MemberRole) IsValid() bool {
	switch r {
	case MemberRolePresident, MemberRoleMember:
		return true
	}
	return false
}

type MemberStatus string

const (
	MemberStatusActive  MemberStatus = "active"
	MemberStatusPending MemberStatus = "pending"
)

func (s MemberStatus) IsValid() bool {
	switch s {
	case MemberStatusActive, MemberStatusPending:
		return true
	}
	return false
}

type Membership struct {
	ID             int64        `json:"id"`
	UserID         int64        `json:"user_id"`
	OrganizationID int64        `json:"organization_id"`
	Role           MemberRole   `json:"role"`
	Status         MemberStatus `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
