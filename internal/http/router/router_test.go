package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ejay-detera/orgspace/internal/http/handler"
	"github.com/ejay-detera/orgspace/internal/http/router"
	"github.com/ejay-detera/orgspace/internal/model"
	"github.com/ejay-detera/orgspace/internal/service"
	"github.com/ejay-detera/orgspace/internal/throttle"
)

type stubAuth struct {
	service.AuthService
}

func (stubAuth) ValidateSession(_ context.Context, token string) (*model.User, error) {
	if token == "live" {
		return &model.User{ID: 1, Username: "jdoe"}, nil
	}
	return nil, service.ErrSessionExpired
}

func (stubAuth) Dashboard(context.Context, int64) ([]model.OrganizationSummary, error) {
	return nil, nil
}

type stubServices struct{}

func (stubServices) Auth() service.AuthService { return stubAuth{} }
func (stubServices) Registration() service.RegistrationService { return nil }
func (stubServices) Organizations() service.OrganizationService { return nil }

var _ = Describe("SetupRoutes", func() {
	var engine *gin.Engine

	BeforeEach(func() {
		engine = gin.New()
		router.SetupRoutes(engine, stubServices{}, router.RouterConfig{
			AppName:       "OrgSpace",
			DashboardPath: "/dashboard",
			Cookies: handler.CookieConfig{
				SessionName: "orgspace_session",
				FlashName:   "orgspace_flash",
				SessionTTL:  time.Hour,
			},
		})
	})

	get := func(path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.AddCookie(&http.Cookie{Name: "orgspace_session", Value: token})
		}
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	It("serves the health check", func() {
		w := get("/health", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"status":"ok"}`))
	})

	It("reports whether the landing caller is signed in", func() {
		Expect(get("/", "").Body.String()).To(ContainSubstring(`"authenticated":false`))
		Expect(get("/", "live").Body.String()).To(ContainSubstring(`"authenticated":true`))
	})

	It("sends guests on protected pages to the login form", func() {
		for _, path := range []string{"/dashboard", "/organizations/create"} {
			w := get(path, "")
			Expect(w.Code).To(Equal(http.StatusFound), path)
			Expect(w.Header().Get("Location")).To(Equal("/login"), path)
		}
	})

	It("sends signed-in users away from the guest forms", func() {
		for _, path := range []string{"/login", "/register"} {
			w := get(path, "live")
			Expect(w.Code).To(Equal(http.StatusFound), path)
			Expect(w.Header().Get("Location")).To(Equal("/dashboard"), path)
		}
	})

	It("serves the dashboard to signed-in users", func() {
		w := get("/dashboard", "live")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"organizations":[]`))
	})
})

type throttledAuth struct {
	stubAuth
	limiter *throttle.MemoryLimiter
	ips     *[]string
}

func (a throttledAuth) Login(ctx context.Context, in service.LoginInput) (*model.User, *model.Session, error) {
	*a.ips = append(*a.ips, in.IP)
	key := throttle.Key(in.Email, in.IP)
	locked, seconds, err := a.limiter.IsThrottled(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	if locked {
		return nil, nil, &service.ThrottledError{Seconds: seconds}
	}
	if _, err := a.limiter.RecordFailure(ctx, key); err != nil {
		return nil, nil, err
	}
	return nil, nil, service.ErrInvalidCredentials
}

type throttledServices struct {
	stubServices
	auth throttledAuth
}

func (s throttledServices) Auth() service.AuthService { return s.auth }

var _ = Describe("NewEngine", func() {
	var ips []string

	build := func(trusted []string) *gin.Engine {
		engine, err := router.NewEngine(trusted)
		Expect(err).NotTo(HaveOccurred())

		ips = nil
		limiter := throttle.NewMemoryLimiter(throttle.Policy{MaxAttempts: 5, Decay: time.Minute}, time.Now)
		router.SetupRoutes(engine, throttledServices{
			auth: throttledAuth{limiter: limiter, ips: &ips},
		}, router.RouterConfig{
			DashboardPath: "/dashboard",
			Cookies: handler.CookieConfig{
				SessionName: "orgspace_session",
				FlashName:   "orgspace_flash",
				SessionTTL:  time.Hour,
			},
		})
		return engine
	}

	login := func(engine *gin.Engine, forwardedFor string) *httptest.ResponseRecorder {
		body := `{"email":"victim@example.com","password":"Wrong1234"}`
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Forwarded-For", forwardedFor)
		req.RemoteAddr = "203.0.113.9:40000"
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	It("ignores forwarding headers from untrusted peers", func() {
		engine := build(nil)

		var last *httptest.ResponseRecorder
		for i, spoofed := range []string{"10.9.9.0", "10.9.9.1", "10.9.9.2", "10.9.9.3", "10.9.9.4", "10.9.9.5"} {
			last = login(engine, spoofed)
			Expect(last.Code).To(Equal(http.StatusUnprocessableEntity), "attempt %d", i+1)
		}

		Expect(ips).To(HaveLen(6))
		for _, ip := range ips {
			Expect(ip).To(Equal("203.0.113.9"))
		}
		Expect(last.Body.String()).To(ContainSubstring(`"throttle_seconds"`))
	})

	It("honors forwarding headers from a configured proxy", func() {
		engine := build([]string{"203.0.113.0/24"})

		login(engine, "198.51.100.7")

		Expect(ips).To(Equal([]string{"198.51.100.7"}))
	})

	It("rejects malformed proxy entries", func() {
		_, err := router.NewEngine([]string{"not-an-ip"})
		Expect(err).To(HaveOccurred())
	})
})
