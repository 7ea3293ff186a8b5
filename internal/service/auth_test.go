package service_test

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/ejay-detera/orgspace/internal/model"
	"github.com/ejay-detera/orgspace/internal/service"
	"github.com/ejay-detera/orgspace/internal/store"
	"github.com/ejay-detera/orgspace/internal/throttle"
	"github.com/ejay-detera/orgspace/internal/validation"
)

var _ = Describe("AuthService", func() {
	var (
		svc      service.AuthService
		users    *mockUserStore
		sessions *mockSessionStore
		orgs     *mockOrganizationStore
		limiter  *throttle.MemoryLimiter
		clock    time.Time
		ctx      context.Context
		user     *model.User
	)

	policy := throttle.Policy{MaxAttempts: 5, Decay: 60 * time.Second}

	BeforeEach(func() {
		ctx = context.Background()
		clock = time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
		now := func() time.Time { return clock }

		hash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())
		user = &model.User{ID: 10, Email: "test@example.com", Username: "testuser", PasswordHash: string(hash)}

		users = &mockUserStore{
			getByEmailFn: func(_ context.Context, email string) (*model.User, error) {
				if email == user.Email {
					u := *user
					return &u, nil
				}
				return nil, store.ErrNotFound
			},
		}
		sessions = &mockSessionStore{}
		orgs = &mockOrganizationStore{}
		limiter = throttle.NewMemoryLimiter(policy, now)
		svc = service.NewAuthService(users, sessions, orgs, limiter, policy, validation.New(now), 24*time.Hour, now)
	})

	login := func(email, password string) (*model.User, *model.Session, error) {
		return svc.Login(ctx, service.LoginInput{Email: email, Password: password, IP: "127.0.0.1", UserAgent: "ginkgo"})
	}

	Describe("Login", func() {
		It("starts a session and records the login time", func() {
			var touched time.Time
			users.touchLastLoginFn = func(_ context.Context, id int64, at time.Time) error {
				Expect(id).To(Equal(int64(10)))
				touched = at
				return nil
			}

			u, sess, err := login("Test@Example.com", "Password1")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.ID).To(Equal(int64(10)))
			Expect(touched).To(Equal(clock))
			Expect(u.LastLogin).To(HaveValue(Equal(clock)))

			Expect(sess.UserID).To(Equal(int64(10)))
			Expect(sess.ExpiresAt).To(Equal(clock.Add(24 * time.Hour)))
			Expect(*sess.IPAddress).To(Equal("127.0.0.1"))
			raw, err := base64.RawURLEncoding.DecodeString(sess.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(raw).To(HaveLen(32))
		})

		It("rejects a wrong password and counts the failure", func() {
			_, _, err := login("test@example.com", "Wrong1234")
			Expect(err).To(MatchError(service.ErrInvalidCredentials))

			n, _ := limiter.RecordFailure(ctx, throttle.Key("test@example.com", "127.0.0.1"))
			Expect(n).To(Equal(2))
		})

		It("rejects an unknown email with the same error", func() {
			_, _, err := login("nobody@example.com", "Password1")
			Expect(err).To(MatchError(service.ErrInvalidCredentials))
		})

		It("validates the input before touching the throttle", func() {
			_, _, err := login("", "")

			var verr *service.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Errors).To(HaveKey("email"))
			Expect(verr.Errors).To(HaveKey("password"))
			throttled, _, _ := limiter.IsThrottled(ctx, throttle.Key("", "127.0.0.1"))
			Expect(throttled).To(BeFalse())
		})

		It("locks out after five failures, even for the right password", func() {
			for i := 0; i < 5; i++ {
				_, _, err := login("test@example.com", "Wrong1234")
				Expect(err).To(MatchError(service.ErrInvalidCredentials))
			}

			clock = clock.Add(15 * time.Second)
			_, _, err := login("test@example.com", "Password1")

			var terr *service.ThrottledError
			Expect(errors.As(err, &terr)).To(BeTrue())
			Expect(terr.Seconds).To(Equal(45))
			Expect(terr.Error()).To(Equal("Too many login attempts. Please try again in 45 seconds."))
			Expect(sessions.created).To(BeEmpty())
		})

		It("allows login again once the cooldown passes and clears the counter", func() {
			for i := 0; i < 5; i++ {
				_, _, _ = login("test@example.com", "Wrong1234")
			}
			clock = clock.Add(61 * time.Second)

			_, _, err := login("test@example.com", "Password1")
			Expect(err).NotTo(HaveOccurred())

			throttled, _, _ := limiter.IsThrottled(ctx, throttle.Key("test@example.com", "127.0.0.1"))
			Expect(throttled).To(BeFalse())
		})

		It("keeps throttle keys per ip", func() {
			for i := 0; i < 5; i++ {
				_, _, _ = login("test@example.com", "Wrong1234")
			}

			_, _, err := svc.Login(ctx, service.LoginInput{Email: "test@example.com", Password: "Password1", IP: "10.0.0.2"})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("ValidateSession", func() {
		It("returns the session's user", func() {
			sessions.getValidByTokenFn = func(_ context.Context, token string) (*model.Session, error) {
				Expect(token).To(Equal("tok"))
				return &model.Session{ID: 1, UserID: 10}, nil
			}
			users.getByIDFn = func(_ context.Context, id int64) (*model.User, error) {
				return user, nil
			}

			u, err := svc.ValidateSession(ctx, "tok")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.ID).To(Equal(int64(10)))
		})

		It("reports an expired or unknown session", func() {
			_, err := svc.ValidateSession(ctx, "missing")
			Expect(err).To(MatchError(service.ErrSessionExpired))

			_, err = svc.ValidateSession(ctx, "")
			Expect(err).To(MatchError(service.ErrSessionExpired))
		})

		It("reports a session whose user is gone", func() {
			sessions.getValidByTokenFn = func(context.Context, string) (*model.Session, error) {
				return &model.Session{ID: 1, UserID: 99}, nil
			}

			_, err := svc.ValidateSession(ctx, "tok")
			Expect(err).To(MatchError(service.ErrUserNotFound))
		})
	})

	Describe("Logout", func() {
		It("deletes the session by token", func() {
			var deleted string
			sessions.deleteByTokenFn = func(_ context.Context, token string) error {
				deleted = token
				return nil
			}

			Expect(svc.Logout(ctx, "tok")).To(Succeed())
			Expect(deleted).To(Equal("tok"))
		})
	})

	Describe("Dashboard", func() {
		It("lists the user's organizations", func() {
			orgs.listForUserFn = func(_ context.Context, userID int64) ([]model.OrganizationSummary, error) {
				Expect(userID).To(Equal(int64(10)))
				return []model.OrganizationSummary{{ID: 1, Name: "Chess Club", Role: model.MemberRolePresident}}, nil
			}

			list, err := svc.Dashboard(ctx, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].Role).To(Equal(model.MemberRolePresident))
		})
	})
})
