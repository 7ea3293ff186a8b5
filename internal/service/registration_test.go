package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/ejay-detera/orgspace/internal/model"
	"github.com/ejay-detera/orgspace/internal/queue"
	"github.com/ejay-detera/orgspace/internal/service"
	"github.com/ejay-detera/orgspace/internal/store"
	"github.com/ejay-detera/orgspace/internal/validation"
)

var _ = Describe("RegistrationService", func() {
	var (
		svc       service.RegistrationService
		users     *mockUserStore
		starter   *mockSessionStarter
		publisher *recordingPublisher
		ctx       context.Context
		input     service.RegisterInput
	)

	now := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)

	BeforeEach(func() {
		ctx = context.Background()
		users = &mockUserStore{}
		starter = &mockSessionStarter{}
		publisher = &recordingPublisher{}
		v := validation.New(func() time.Time { return now })
		svc = service.NewRegistrationService(users, starter, publisher, v, bcrypt.MinCost)

		input = service.RegisterInput{
			FirstName:            "Test",
			LastName:             "User",
			Email:                "  Test@Example.com ",
			Birthdate:            "2000-01-01",
			Password:             "Password1",
			PasswordConfirmation: "Password1",
			IP:                   "127.0.0.1",
			UserAgent:            "ginkgo",
		}
	})

	It("creates the user with a derived username and starts a session", func() {
		var created *model.User
		users.createFn = func(_ context.Context, u *model.User) error {
			created = u
			return nil
		}
		starter.startFn = func(_ context.Context, userID int64, ip, ua string) (*model.Session, error) {
			Expect(userID).To(Equal(created.ID))
			Expect(ip).To(Equal("127.0.0.1"))
			Expect(ua).To(Equal("ginkgo"))
			return &model.Session{ID: 5, UserID: userID, Token: "tok"}, nil
		}

		res, err := svc.Register(ctx, input)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.User.Username).To(Equal("test.user"))
		Expect(res.User.Email).To(Equal("test@example.com"))
		Expect(res.User.ID).NotTo(BeZero())
		Expect(res.User.Birthdate).To(Equal(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)))
		Expect(res.User.MiddleName).To(BeNil())
		Expect(bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("Password1"))).To(Succeed())
		Expect(res.Session.Token).To(Equal("tok"))

		Expect(publisher.events).To(HaveLen(1))
		Expect(publisher.events[0].Type).To(Equal(queue.EventUserRegistered))
		Expect(publisher.events[0].Username).To(Equal("test.user"))
	})

	It("appends the first free numeric suffix", func() {
		users.listUsernamesFn = func(_ context.Context, prefix string) ([]string, error) {
			Expect(prefix).To(Equal("test.user"))
			return []string{"test.user", "test.user1", "test.user3", "test.username"}, nil
		}

		res, err := svc.Register(ctx, input)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.User.Username).To(Equal("test.user2"))
	})

	It("collects every validation failure without writing", func() {
		input.FirstName = ""
		input.Email = "not-an-email"
		input.Birthdate = "2026-06-02"
		input.Password = "weakpass"
		input.PasswordConfirmation = "different"

		_, err := svc.Register(ctx, input)

		var verr *service.ValidationError
		Expect(errors.As(err, &verr)).To(BeTrue())
		Expect(verr.Errors).To(HaveKey("first_name"))
		Expect(verr.Errors.First("email")).To(Equal("The email field must be a valid email address."))
		Expect(verr.Errors.First("birthdate")).To(Equal(validation.MsgBirthdateFuture))
		Expect(verr.Errors["password"]).To(ContainElements(
			validation.MsgPasswordPolicy,
			"The password field confirmation does not match.",
		))
		Expect(users.createCalls).To(BeZero())
		Expect(publisher.events).To(BeEmpty())
	})

	It("accepts a birthdate of today", func() {
		input.Birthdate = "2026-06-01"
		_, err := svc.Register(ctx, input)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects an email that is already registered", func() {
		users.getByEmailFn = func(_ context.Context, email string) (*model.User, error) {
			Expect(email).To(Equal("test@example.com"))
			return &model.User{ID: 1, Email: email}, nil
		}

		_, err := svc.Register(ctx, input)

		var verr *service.ValidationError
		Expect(errors.As(err, &verr)).To(BeTrue())
		Expect(verr.Errors.First("email")).To(Equal(validation.MsgEmailTaken))
		Expect(users.createCalls).To(BeZero())
	})

	It("reports a taken email together with the other field errors", func() {
		users.getByEmailFn = func(_ context.Context, email string) (*model.User, error) {
			return &model.User{ID: 1, Email: email}, nil
		}
		input.Password = "weakpass"
		input.PasswordConfirmation = "weakpass"

		_, err := svc.Register(ctx, input)

		var verr *service.ValidationError
		Expect(errors.As(err, &verr)).To(BeTrue())
		Expect(verr.Errors["email"]).To(Equal([]string{validation.MsgEmailTaken}))
		Expect(verr.Errors["password"]).To(Equal([]string{validation.MsgPasswordPolicy}))
		Expect(users.createCalls).To(BeZero())
	})

	It("maps an email unique violation on insert to the same field error", func() {
		users.createFn = func(context.Context, *model.User) error {
			return &store.ConflictError{Constraint: store.ConstraintUserEmail}
		}

		_, err := svc.Register(ctx, input)

		var verr *service.ValidationError
		Expect(errors.As(err, &verr)).To(BeTrue())
		Expect(verr.Errors.First("email")).To(Equal(validation.MsgEmailTaken))
	})

	It("retries when a concurrent registration takes the username", func() {
		taken := []string{}
		users.listUsernamesFn = func(context.Context, string) ([]string, error) {
			return taken, nil
		}
		users.createFn = func(_ context.Context, u *model.User) error {
			if u.Username == "test.user" {
				taken = append(taken, "test.user")
				return &store.ConflictError{Constraint: store.ConstraintUserUsername}
			}
			return nil
		}

		res, err := svc.Register(ctx, input)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.User.Username).To(Equal("test.user1"))
		Expect(users.createCalls).To(Equal(2))
	})

	It("gives up after repeated username collisions", func() {
		users.createFn = func(context.Context, *model.User) error {
			return &store.ConflictError{Constraint: store.ConstraintUserUsername}
		}

		_, err := svc.Register(ctx, input)

		var verr *service.ValidationError
		Expect(errors.As(err, &verr)).To(BeTrue())
		Expect(verr.Errors).To(HaveKey("username"))
		Expect(users.createCalls).To(Equal(3))
		Expect(publisher.events).To(BeEmpty())
	})

	It("does not fail when the event cannot be published", func() {
		publisher.err = errors.New("redis down")

		res, err := svc.Register(ctx, input)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.User).NotTo(BeNil())
	})

	It("wraps unexpected store errors", func() {
		users.createFn = func(context.Context, *model.User) error {
			return errors.New("connection reset")
		}

		_, err := svc.Register(ctx, input)
		Expect(err).To(MatchError(ContainSubstring("creating user: connection reset")))
	})
})
