package dto

import (
	"github.com/ejay-detera/orgspace/internal/service"
)

type RegisterRequest struct {
	FirstName            string `json:"first_name" form:"first_name" jsonschema:"title=First name,maxLength=255"`
	MiddleName           string `json:"middle_name,omitempty" form:"middle_name" jsonschema:"title=Middle name,maxLength=255"`
	LastName             string `json:"last_name" form:"last_name" jsonschema:"title=Last name,maxLength=255"`
	Email                string `json:"email" form:"email" jsonschema:"title=Email,format=email,maxLength=255"`
	Birthdate            string `json:"birthdate" form:"birthdate" jsonschema:"title=Birthdate,format=date"`
	Password             string `json:"password" form:"password" jsonschema:"title=Password,minLength=8,description=At least one uppercase letter and one lowercase letter and one number"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation" jsonschema:"title=Confirm password"`
}

func (r RegisterRequest) ToInput(ip, userAgent string) service.RegisterInput {
	return service.RegisterInput{
		FirstName:            r.FirstName,
		MiddleName:           r.MiddleName,
		LastName:             r.LastName,
		Email:                r.Email,
		Birthdate:            r.Birthdate,
		Password:             r.Password,
		PasswordConfirmation: r.PasswordConfirmation,
		IP:                   ip,
		UserAgent:            userAgent,
	}
}

// Old returns the submitted values worth echoing back into the form.
func (r RegisterRequest) Old() map[string]string {
	return map[string]string{
		"first_name":  r.FirstName,
		"middle_name": r.MiddleName,
		"last_name":   r.LastName,
		"email":       r.Email,
		"birthdate":   r.Birthdate,
	}
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" jsonschema:"title=Email,format=email"`
	Password string `json:"password" form:"password" jsonschema:"title=Password"`
}

func (r LoginRequest) ToInput(ip, userAgent string) service.LoginInput {
	return service.LoginInput{
		Email:     r.Email,
		Password:  r.Password,
		IP:        ip,
		UserAgent: userAgent,
	}
}

func (r LoginRequest) Old() map[string]string {
	return map[string]string{"email": r.Email}
}
