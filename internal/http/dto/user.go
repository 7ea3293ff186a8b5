package dto

import (
	"time"

	"github.com/ejay-detera/orgspace/internal/model"
	"github.com/ejay-detera/orgspace/internal/validation"
)

type UserResponse struct {
	ID         int64      `json:"id,string"`
	Name       string     `json:"name"`
	FirstName  string     `json:"first_name"`
	MiddleName *string    `json:"middle_name,omitempty"`
	LastName   string     `json:"last_name"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	Birthdate  string     `json:"birthdate"`
	IsAdmin    bool       `json:"is_admin"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func ToUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Name:       u.Name(),
		FirstName:  u.FirstName,
		MiddleName: u.MiddleName,
		LastName:   u.LastName,
		Username:   u.Username,
		Email:      u.Email,
		Birthdate:  u.Birthdate.Format(validation.DateLayout),
		IsAdmin:    u.IsAdmin,
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
	}
}

type AuthResponse struct {
	User     *UserResponse `json:"user"`
	Redirect string        `json:"redirect"`
}

type DashboardResponse struct {
	User          *UserResponse                 `json:"user"`
	Organizations []OrganizationSummaryResponse `json:"organizations"`
}
