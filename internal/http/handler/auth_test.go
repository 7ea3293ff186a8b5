package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ejay-detera/orgspace/internal/http/handler"
	"github.com/ejay-detera/orgspace/internal/model"
	"github.com/ejay-detera/orgspace/internal/service"
	"github.com/ejay-detera/orgspace/internal/validation"
)

var _ = Describe("AuthHandler", func() {
	var (
		authSvc *mockAuthService
		regSvc  *mockRegistrationService
		engine  *gin.Engine
		user    *model.User
	)

	BeforeEach(func() {
		authSvc = &mockAuthService{}
		regSvc = &mockRegistrationService{}
		user = &model.User{
			ID:        1001,
			FirstName: "Jane",
			LastName:  "Doe",
			Username:  "janedoe",
			Email:     "jane@example.com",
			Birthdate: time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC),
		}

		h := handler.NewAuthHandler(authSvc, regSvc, handler.CookieConfig{
			SessionName: sessionCookie,
			FlashName:   flashCookie,
			SessionTTL:  time.Hour,
		}, handler.NewFlashStore(flashCookie, false), "/dashboard")

		engine = gin.New()
		engine.GET("/login", h.ShowLogin)
		engine.POST("/login", h.Login)
		engine.GET("/register", h.ShowRegister)
		engine.POST("/register", h.Register)
		engine.POST("/logout", h.Logout)
	})

	Describe("Register", func() {
		It("sets the session cookie and redirects to the dashboard", func() {
			regSvc.registerFn = func(_ context.Context, in service.RegisterInput) (*service.RegisterResult, error) {
				Expect(in.Email).To(Equal("jane@example.com"))
				return &service.RegisterResult{User: user, Session: &model.Session{Token: "tok-1"}}, nil
			}

			w := serve(engine, formRequest(http.MethodPost, "/register", url.Values{
				"first_name": {"Jane"},
				"last_name":  {"Doe"},
				"email":      {"jane@example.com"},
			}))

			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/dashboard"))
			cookie := findCookie(w, sessionCookie)
			Expect(cookie).NotTo(BeNil())
			Expect(cookie.Value).To(Equal("tok-1"))
			Expect(cookie.HttpOnly).To(BeTrue())
		})

		It("answers 201 with the user for JSON callers", func() {
			regSvc.registerFn = func(context.Context, service.RegisterInput) (*service.RegisterResult, error) {
				return &service.RegisterResult{User: user, Session: &model.Session{Token: "tok-1"}}, nil
			}

			w := serve(engine, jsonRequest(http.MethodPost, "/register", `{"email":"jane@example.com"}`))

			Expect(w.Code).To(Equal(http.StatusCreated))
			var body map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
			Expect(body["redirect"]).To(Equal("/dashboard"))
			Expect(body["user"]).To(HaveKeyWithValue("username", "janedoe"))
		})

		It("answers 422 with field errors for JSON callers", func() {
			regSvc.registerFn = func(context.Context, service.RegisterInput) (*service.RegisterResult, error) {
				return nil, &service.ValidationError{Errors: validation.Errors{
					"email": {validation.MsgEmailTaken},
				}}
			}

			w := serve(engine, jsonRequest(http.MethodPost, "/register", `{"email":"jane@example.com"}`))

			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
			var body map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
			Expect(body["message"]).To(Equal(validation.MsgEmailTaken))
			Expect(body["errors"]).To(HaveKey("email"))
			Expect(findCookie(w, sessionCookie)).To(BeNil())
		})

		It("flashes errors and old input then redirects back for form posts", func() {
			regSvc.registerFn = func(context.Context, service.RegisterInput) (*service.RegisterResult, error) {
				return nil, &service.ValidationError{Errors: validation.Errors{
					"password": {validation.MsgPasswordPolicy},
				}}
			}

			w := serve(engine, formRequest(http.MethodPost, "/register", url.Values{
				"first_name": {"Jane"},
				"password":   {"weak"},
			}))

			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/register"))

			flash := findCookie(w, flashCookie)
			Expect(flash).NotTo(BeNil())

			req := httptest.NewRequest(http.MethodGet, "/register", nil)
			req.AddCookie(flash)
			page := serve(engine, req)

			Expect(page.Code).To(Equal(http.StatusOK))
			var body map[string]any
			Expect(json.Unmarshal(page.Body.Bytes(), &body)).To(Succeed())
			Expect(body["errors"]).To(HaveKey("password"))
			Expect(body["old"]).To(HaveKeyWithValue("first_name", "Jane"))
			Expect(body["old"]).NotTo(HaveKey("password"))
			Expect(body["form"]).NotTo(BeNil())
		})

		It("answers 500 on unexpected errors", func() {
			regSvc.registerFn = func(context.Context, service.RegisterInput) (*service.RegisterResult, error) {
				return nil, errors.New("db down")
			}

			w := serve(engine, jsonRequest(http.MethodPost, "/register", `{}`))
			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("Login", func() {
		It("passes the client address to the service and sets the cookie", func() {
			authSvc.loginFn = func(_ context.Context, in service.LoginInput) (*model.User, *model.Session, error) {
				Expect(in.IP).To(Equal("192.0.2.1"))
				return user, &model.Session{Token: "tok-2"}, nil
			}

			w := serve(engine, formRequest(http.MethodPost, "/login", url.Values{
				"email":    {"jane@example.com"},
				"password": {"Password1"},
			}))

			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/dashboard"))
			Expect(findCookie(w, sessionCookie).Value).To(Equal("tok-2"))
		})

		It("reports bad credentials on the email field", func() {
			w := serve(engine, jsonRequest(http.MethodPost, "/login", `{"email":"jane@example.com","password":"nope"}`))

			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
			var body struct {
				Message string              `json:"message"`
				Errors  map[string][]string `json:"errors"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Message).To(Equal(service.MsgInvalidCredentials))
			Expect(body.Errors["email"]).To(ConsistOf(service.MsgInvalidCredentials))
		})

		It("adds throttle_seconds as an integer when locked out", func() {
			authSvc.loginFn = func(context.Context, service.LoginInput) (*model.User, *model.Session, error) {
				return nil, nil, &service.ThrottledError{Seconds: 42}
			}

			w := serve(engine, jsonRequest(http.MethodPost, "/login", `{"email":"jane@example.com","password":"x"}`))

			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
			var body struct {
				Errors map[string]json.RawMessage `json:"errors"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
			Expect(string(body.Errors["throttle_seconds"])).To(Equal("42"))
			Expect(string(body.Errors["email"])).To(ContainSubstring("Too many login attempts. Please try again in 42 seconds."))
		})

		It("redirects back to a same-origin Referer", func() {
			req := formRequest(http.MethodPost, "/login", url.Values{"email": {"jane@example.com"}})
			req.Header.Set("Referer", "http://example.com/login?next=1")

			w := serve(engine, req)

			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/login?next=1"))
		})

		It("ignores a foreign Referer", func() {
			req := formRequest(http.MethodPost, "/login", url.Values{"email": {"jane@example.com"}})
			req.Header.Set("Referer", "https://evil.test/phish")

			w := serve(engine, req)

			Expect(w.Header().Get("Location")).To(Equal("/login"))
		})
	})

	Describe("Logout", func() {
		It("deletes the session, clears the cookie and redirects home", func() {
			var deleted string
			authSvc.logoutFn = func(_ context.Context, token string) error {
				deleted = token
				return nil
			}

			req := httptest.NewRequest(http.MethodPost, "/logout", nil)
			req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "tok-3"})
			w := serve(engine, req)

			Expect(deleted).To(Equal("tok-3"))
			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/"))
			Expect(findCookie(w, sessionCookie).MaxAge).To(BeNumerically("<", 0))
		})

		It("still clears the cookie when the delete fails", func() {
			authSvc.logoutFn = func(context.Context, string) error { return errors.New("db down") }

			req := httptest.NewRequest(http.MethodPost, "/logout", nil)
			req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "tok-3"})
			w := serve(engine, req)

			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(findCookie(w, sessionCookie)).NotTo(BeNil())
		})
	})

	Describe("ShowLogin", func() {
		It("returns the form schema with empty errors", func() {
			w := serve(engine, httptest.NewRequest(http.MethodGet, "/login", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			var body map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
			Expect(body["errors"]).To(BeEmpty())
			Expect(body["form"]).To(HaveKey("properties"))
		})
	})
})
