package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ejay-detera/orgspace/common/id"
	"github.com/ejay-detera/orgspace/common/logger"
	"github.com/ejay-detera/orgspace/internal/model"
	"github.com/ejay-detera/orgspace/internal/store"
	"github.com/ejay-detera/orgspace/internal/throttle"
	"github.com/ejay-detera/orgspace/internal/validation"
)

const sessionTokenBytes = 32

type LoginInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

type AuthService interface {
	Login(ctx context.Context, in LoginInput) (*model.User, *model.Session, error)
	StartSession(ctx context.Context, userID int64, ip, userAgent string) (*model.Session, error)
	ValidateSession(ctx context.Context, token string) (*model.User, error)
	Logout(ctx context.Context, token string) error
	Dashboard(ctx context.Context, userID int64) ([]model.OrganizationSummary, error)
}

type authService struct {
	userStore    store.UserStore
	sessionStore store.SessionStore
	orgStore     store.OrganizationStore
	limiter      throttle.Limiter
	policy       throttle.Policy
	validator    *validation.Validator
	sessionTTL   time.Duration
	now          func() time.Time
}

func NewAuthService(
	userStore store.UserStore,
	sessionStore store.SessionStore,
	orgStore store.OrganizationStore,
	limiter throttle.Limiter,
	policy throttle.Policy,
	validator *validation.Validator,
	sessionTTL time.Duration,
	now func() time.Time,
) AuthService {
	if now == nil {
		now = time.Now
	}
	return &authService{
		userStore:    userStore,
		sessionStore: sessionStore,
		orgStore:     orgStore,
		limiter:      limiter,
		policy:       policy,
		validator:    validator,
		sessionTTL:   sessionTTL,
		now:          now,
	}
}

func (s *authService) Login(ctx context.Context, in LoginInput) (*model.User, *model.Session, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if errs := s.validator.Struct(in); errs != nil {
		return nil, nil, &ValidationError{Errors: errs}
	}

	key := throttle.Key(in.Email, in.IP)
	throttled, seconds, err := s.limiter.IsThrottled(ctx, key)
	if err != nil {
		return nil, nil, fmt.Errorf("checking login throttle: %w", err)
	}
	if throttled {
		slog.InfoContext(ctx, "login rejected while locked out",
			"email", logger.MaskEmail(in.Email),
			"ip", in.IP,
			"seconds", seconds)
		return nil, nil, &ThrottledError{Seconds: seconds}
	}

	user, err := s.userStore.GetByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, nil, fmt.Errorf("getting user by email: %w", err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, nil, s.recordFailure(ctx, key, in)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &user.ID})

	if err := s.limiter.Reset(ctx, key); err != nil {
		slog.WarnContext(ctx, "failed to reset login throttle", "error", err)
	}

	now := s.now()
	if err := s.userStore.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, nil, fmt.Errorf("updating last login: %w", err)
	}
	user.LastLogin = &now

	session, err := s.StartSession(ctx, user.ID, in.IP, in.UserAgent)
	if err != nil {
		return nil, nil, err
	}

	slog.InfoContext(ctx, "user logged in", "session_id", session.ID)
	return user, session, nil
}

func (s *authService) recordFailure(ctx context.Context, key string, in LoginInput) error {
	attempts, err := s.limiter.RecordFailure(ctx, key)
	if err != nil {
		return fmt.Errorf("recording login failure: %w", err)
	}

	if attempts >= s.policy.MaxAttempts {
		slog.WarnContext(ctx, "login locked out",
			"email", logger.MaskEmail(in.Email),
			"ip", in.IP,
			"attempts", attempts,
			"decay", s.policy.Decay)
	} else {
		slog.InfoContext(ctx, "login failed",
			"email", logger.MaskEmail(in.Email),
			"ip", in.IP,
			"attempts", attempts)
	}

	return ErrInvalidCredentials
}

func (s *authService) StartSession(ctx context.Context, userID int64, ip, userAgent string) (*model.Session, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	session := &model.Session{
		ID:        id.New(),
		UserID:    userID,
		Token:     token,
		IPAddress: optional(ip),
		UserAgent: optional(userAgent),
		ExpiresAt: s.now().Add(s.sessionTTL),
	}

	if err := s.sessionStore.Create(ctx, session); err != nil {
		slog.ErrorContext(ctx, "failed to create session",
			"error", err,
			"user_id", userID,
		)
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return session, nil
}

func (s *authService) ValidateSession(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrSessionExpired
	}

	session, err := s.sessionStore.GetValidByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}

	user, err := s.userStore.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return user, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessionStore.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (s *authService) Dashboard(ctx context.Context, userID int64) ([]model.OrganizationSummary, error) {
	orgs, err := s.orgStore.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing organizations for user: %w", err)
	}
	return orgs, nil
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
