// Package validation turns struct tags into field-keyed error messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	DateLayout = "2006-01-02"

	MsgPasswordPolicy   = "Password must be at least 8 characters and include at least one uppercase letter, one lowercase letter, and one number."
	MsgBirthdateFuture  = "Birthdate cannot be in the future."
	MsgEmailTaken       = "The email has already been taken."
	MsgNameTaken        = "The name has already been taken."
	MsgUsernameConflict = "We could not reserve a username for you. Please try again."
)

// Errors maps a field name to its messages, in the order they were added.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// First returns the first message for field, or "".
func (e Errors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e Errors) Empty() bool {
	return len(e) == 0
}

// Validator wraps a validator.Validate configured with the OrgSpace rules.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New builds a Validator. now anchors date rules; pass time.Now outside tests.
func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	v := &Validator{validate: validator.New(validator.WithRequiredStructEnabled()), now: now}

	v.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// Registration cannot fail for well-formed tags.
	_ = v.validate.RegisterValidation("password_policy", func(fl validator.FieldLevel) bool {
		return PasswordPolicy(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("not_future", func(fl validator.FieldLevel) bool {
		now := v.now()
		d, err := time.ParseInLocation(DateLayout, fl.Field().String(), now.Location())
		if err != nil {
			return false
		}
		return !d.After(Today(now))
	})

	return v
}

// Struct validates s and returns nil when every rule passes.
func (v *Validator) Struct(s any) Errors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{"_": {err.Error()}}
	}

	out := Errors{}
	for _, fe := range fieldErrs {
		field, msg := message(fe)
		out.Add(field, msg)
	}
	return out
}

// PasswordPolicy requires 8+ characters with an ASCII lowercase letter, an ASCII
// uppercase letter and an ASCII digit. Other characters count toward the length only.
func PasswordPolicy(pw string) bool {
	if utf8.RuneCountInString(pw) < 8 {
		return false
	}
	var lower, upper, digit bool
	for _, r := range pw {
		switch {
		case 'a' <= r && r <= 'z':
			lower = true
		case 'A' <= r && r <= 'Z':
			upper = true
		case '0' <= r && r <= '9':
			digit = true
		}
	}
	return lower && upper && digit
}

// Today truncates t to midnight in its own location.
func Today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func message(fe validator.FieldError) (string, string) {
	field := fe.Field()
	attr := strings.ReplaceAll(field, "_", " ")

	switch fe.Tag() {
	case "required":
		return field, fmt.Sprintf("The %s field is required.", attr)
	case "email":
		return field, fmt.Sprintf("The %s field must be a valid email address.", attr)
	case "max":
		return field, fmt.Sprintf("The %s field must not be greater than %s characters.", attr, fe.Param())
	case "min":
		return field, fmt.Sprintf("The %s field must be at least %s characters.", attr, fe.Param())
	case "datetime":
		return field, fmt.Sprintf("The %s field must be a valid date.", attr)
	case "not_future":
		return field, MsgBirthdateFuture
	case "password_policy":
		return field, MsgPasswordPolicy
	case "eqfield":
		target := strings.TrimSuffix(field, "_confirmation")
		return target, fmt.Sprintf("The %s field confirmation does not match.", strings.ReplaceAll(target, "_", " "))
	default:
		return field, fmt.Sprintf("The %s field is invalid.", attr)
	}
}
