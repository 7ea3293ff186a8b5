package dto

import (
	"time"

	"github.com/ejay-detera/orgspace/internal/model"
	"github.com/ejay-detera/orgspace/internal/service"
)

type CreateOrganizationRequest struct {
	Name        string `json:"name" form:"name" jsonschema:"title=Organization name,maxLength=255"`
	Description string `json:"description" form:"description" jsonschema:"title=Description"`
	Type        string `json:"type" form:"type" jsonschema:"title=Type,maxLength=255"`
	Image       string `json:"image,omitempty" form:"image" jsonschema:"title=Image URL,maxLength=2048"`
}

func (r CreateOrganizationRequest) ToInput() service.CreateOrganizationInput {
	return service.CreateOrganizationInput{
		Name:        r.Name,
		Description: r.Description,
		Type:        r.Type,
		Image:       r.Image,
	}
}

func (r CreateOrganizationRequest) Old() map[string]string {
	return map[string]string{
		"name":        r.Name,
		"description": r.Description,
		"type":        r.Type,
		"image":       r.Image,
	}
}

type OrganizationResponse struct {
	ID          int64     `json:"id,string"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Code        string    `json:"organization_code"`
	Image       *string   `json:"image,omitempty"`
	CreatedBy   int64     `json:"created_by,string"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToOrganizationResponse(o *model.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:          o.ID,
		Name:        o.Name,
		Description: o.Description,
		Type:        o.Type,
		Status:      string(o.Status),
		Code:        o.Code,
		Image:       o.Image,
		CreatedBy:   o.CreatedBy,
		CreatedAt:   o.CreatedAt,
	}
}

type CommitteeResponse struct {
	ID          int64  `json:"id,string"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

type MembershipResponse struct {
	UserID int64  `json:"user_id,string"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

type ProvisionResponse struct {
	Message      string                `json:"message"`
	Organization *OrganizationResponse `json:"organization"`
	Committee    CommitteeResponse     `json:"committee"`
	Membership   MembershipResponse    `json:"membership"`
}

func ToProvisionResponse(r *service.ProvisionResult) *ProvisionResponse {
	return &ProvisionResponse{
		Message:      service.MsgOrganizationCreated,
		Organization: ToOrganizationResponse(r.Organization),
		Committee: CommitteeResponse{
			ID:          r.Committee.ID,
			Name:        r.Committee.Name,
			Description: r.Committee.Description,
			IsPublic:    r.Committee.IsPublic,
		},
		Membership: MembershipResponse{
			UserID: r.Membership.UserID,
			Role:   string(r.Membership.Role),
			Status: string(r.Membership.Status),
		},
	}
}

type OrganizationSummaryResponse struct {
	ID               int64     `json:"id,string"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	Status           string    `json:"status"`
	Code             string    `json:"organization_code"`
	Image            *string   `json:"image,omitempty"`
	Role             string    `json:"role"`
	MembershipStatus string    `json:"membership_status"`
	JoinedAt         time.Time `json:"joined_at"`
}

func ToOrganizationSummaryResponses(list []model.OrganizationSummary) []OrganizationSummaryResponse {
	out := make([]OrganizationSummaryResponse, 0, len(list))
	for _, o := range list {
		out = append(out, OrganizationSummaryResponse{
			ID:               o.ID,
			Name:             o.Name,
			Type:             o.Type,
			Status:           string(o.Status),
			Code:             o.Code,
			Image:            o.Image,
			Role:             string(o.Role),
			MembershipStatus: string(o.MembershipStatus),
			JoinedAt:         o.JoinedAt,
		})
	}
	return out
}
