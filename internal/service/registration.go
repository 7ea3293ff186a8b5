package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ejay-detera/orgspace/common/id"
	"github.com/ejay-detera/orgspace/common/logger"
	"github.com/ejay-detera/orgspace/internal/model"
	"github.com/ejay-detera/orgspace/internal/queue"
	"github.com/ejay-detera/orgspace/internal/store"
	"github.com/ejay-detera/orgspace/internal/validation"
)

const maxUsernameAttempts = 3

type RegisterInput struct {
	FirstName            string `json:"first_name" validate:"required,max=255"`
	MiddleName           string `json:"middle_name" validate:"omitempty,max=255"`
	LastName             string `json:"last_name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email,max=255"`
	Birthdate            string `json:"birthdate" validate:"required,datetime=2006-01-02,not_future"`
	Password             string `json:"password" validate:"required,password_policy"`
	PasswordConfirmation string `json:"password_confirmation" validate:"eqfield=Password"`
	IP                   string `json:"-"`
	UserAgent            string `json:"-"`
}

type RegisterResult struct {
	User    *model.User
	Session *model.Session
}

type RegistrationService interface {
	Register(ctx context.Context, in RegisterInput) (*RegisterResult, error)
}

// SessionStarter is the slice of AuthService registration needs.
type SessionStarter interface {
	StartSession(ctx context.Context, userID int64, ip, userAgent string) (*model.Session, error)
}

type registrationService struct {
	userStore  store.UserStore
	usernames  *UsernameAllocator
	sessions   SessionStarter
	publisher  EventPublisher
	validator  *validation.Validator
	bcryptCost int
}

func NewRegistrationService(
	userStore store.UserStore,
	sessions SessionStarter,
	publisher EventPublisher,
	validator *validation.Validator,
	bcryptCost int,
) RegistrationService {
	return &registrationService{
		userStore:  userStore,
		usernames:  NewUsernameAllocator(userStore),
		sessions:   sessions,
		publisher:  publisher,
		validator:  validator,
		bcryptCost: bcryptCost,
	}
}

func (s *registrationService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.MiddleName = strings.TrimSpace(in.MiddleName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	errs := s.validator.Struct(in)
	if in.Email != "" {
		taken, err := s.emailTaken(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			if errs == nil {
				errs = validation.Errors{}
			}
			errs.Add("email", validation.MsgEmailTaken)
		}
	}
	if !errs.Empty() {
		return nil, &ValidationError{Errors: errs}
	}

	// validated above
	birthdate, _ := time.Parse(validation.DateLayout, in.Birthdate)

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		FirstName:    in.FirstName,
		MiddleName:   optional(in.MiddleName),
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Birthdate:    birthdate,
	}
	if err := s.createWithUsername(ctx, user); err != nil {
		return nil, err
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &user.ID})
	slog.InfoContext(ctx, "user registered", "username", user.Username)

	publish(ctx, s.publisher, queue.Event{
		Type:     queue.EventUserRegistered,
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		Name:     user.Name(),
	})

	session, err := s.sessions.StartSession(ctx, user.ID, in.IP, in.UserAgent)
	if err != nil {
		return nil, err
	}

	return &RegisterResult{User: user, Session: session}, nil
}

func (s *registrationService) emailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.userStore.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("checking email availability: %w", err)
	}
}

// createWithUsername allocates a username and inserts the user, retrying when a
// concurrent registration claims the same username first.
func (s *registrationService) createWithUsername(ctx context.Context, user *model.User) error {
	fullName := strings.TrimSpace(user.FirstName + " " + user.LastName)

	for attempt := 1; attempt <= maxUsernameAttempts; attempt++ {
		username, err := s.usernames.Allocate(ctx, fullName, user.Email)
		if err != nil {
			return err
		}

		user.ID = id.New()
		user.Username = username

		err = s.userStore.Create(ctx, user)
		switch {
		case err == nil:
			return nil
		case store.IsConflictOn(err, store.ConstraintUserEmail):
			return fieldError("email", validation.MsgEmailTaken)
		case store.IsConflictOn(err, store.ConstraintUserUsername):
			slog.InfoContext(ctx, "username taken during registration, retrying",
				"username", username,
				"attempt", attempt)
		default:
			return fmt.Errorf("creating user: %w", err)
		}
	}

	return fieldError("username", validation.MsgUsernameConflict)
}
