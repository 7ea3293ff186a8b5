package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ejay-detera/orgspace/internal/http/handler"
	"github.com/ejay-detera/orgspace/internal/http/middleware"
	"github.com/ejay-detera/orgspace/internal/model"
	"github.com/ejay-detera/orgspace/internal/service"
	"github.com/ejay-detera/orgspace/internal/validation"
)

var _ = Describe("OrganizationHandler", func() {
	var (
		authSvc *mockAuthService
		orgSvc  *mockOrganizationService
		engine  *gin.Engine
		user    *model.User
	)

	BeforeEach(func() {
		authSvc = &mockAuthService{}
		orgSvc = &mockOrganizationService{}
		user = &model.User{ID: 7, Username: "jdoe", Email: "jdoe@example.com"}
		sessionFor(authSvc, "tok", user)

		auth := middleware.NewAuth(authSvc, middleware.AuthConfig{
			CookieName:    sessionCookie,
			LoginPath:     "/login",
			DashboardPath: "/dashboard",
		})
		h := handler.NewOrganizationHandler(orgSvc, handler.NewFlashStore(flashCookie, false))
		dash := handler.NewDashboardHandler(authSvc)

		engine = gin.New()
		authed := engine.Group("/", auth.RequireAuth())
		authed.GET("/organizations/create", h.ShowCreate)
		authed.POST("/organizations", h.Create)
		authed.GET("/dashboard", dash.Show)
	})

	withSession := func(req *http.Request) *http.Request {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "tok"})
		return req
	}

	provisioned := func(in service.CreateOrganizationInput, actorID int64) *service.ProvisionResult {
		now := time.Now()
		return &service.ProvisionResult{
			Organization: &model.Organization{
				ID: 1, Name: in.Name, Description: in.Description, Type: in.Type,
				Status: model.OrganizationStatusActive, Code: "ABCDEFGHJK", CreatedBy: actorID,
				CreatedAt: now, UpdatedAt: now,
			},
			Committee: &model.Committee{
				ID: 2, OrganizationID: 1,
				Name: model.ExecutiveCommitteeName, Description: model.ExecutiveCommitteeDescription,
			},
			Membership: &model.Membership{
				ID: 3, UserID: actorID, OrganizationID: 1,
				Role: model.MemberRolePresident, Status: model.MemberStatusActive,
			},
		}
	}

	It("requires a session", func() {
		w := serve(engine, jsonRequest(http.MethodPost, "/organizations", `{"name":"Chess Club"}`))
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("creates as the signed-in user and answers 201 for JSON callers", func() {
		orgSvc.createFn = func(_ context.Context, in service.CreateOrganizationInput, actorID int64) (*service.ProvisionResult, error) {
			Expect(actorID).To(Equal(int64(7)))
			Expect(in.Name).To(Equal("Chess Club"))
			return provisioned(in, actorID), nil
		}

		w := serve(engine, withSession(jsonRequest(http.MethodPost, "/organizations",
			`{"name":"Chess Club","description":"Weekly games","type":"Academic"}`)))

		Expect(w.Code).To(Equal(http.StatusCreated))
		var body map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		Expect(body["message"]).To(Equal(service.MsgOrganizationCreated))
		Expect(body["committee"]).To(HaveKeyWithValue("name", "Executive Committee"))
		Expect(body["membership"]).To(HaveKeyWithValue("role", "President"))
	})

	It("flashes the status and redirects back for form posts", func() {
		orgSvc.createFn = func(_ context.Context, in service.CreateOrganizationInput, actorID int64) (*service.ProvisionResult, error) {
			return provisioned(in, actorID), nil
		}

		req := withSession(formRequest(http.MethodPost, "/organizations", url.Values{
			"name": {"Chess Club"}, "description": {"Weekly games"}, "type": {"Academic"},
		}))
		req.Header.Set("Referer", "http://example.com/dashboard")
		w := serve(engine, req)

		Expect(w.Code).To(Equal(http.StatusFound))
		Expect(w.Header().Get("Location")).To(Equal("/dashboard"))

		page := withSession(httptest.NewRequest(http.MethodGet, "/organizations/create", nil))
		page.AddCookie(findCookie(w, flashCookie))
		rendered := serve(engine, page)

		var body map[string]any
		Expect(json.Unmarshal(rendered.Body.Bytes(), &body)).To(Succeed())
		Expect(body["status"]).To(Equal(service.MsgOrganizationCreated))
	})

	It("answers 422 on validation errors", func() {
		orgSvc.createFn = func(context.Context, service.CreateOrganizationInput, int64) (*service.ProvisionResult, error) {
			return nil, &service.ValidationError{Errors: validation.Errors{"name": {validation.MsgNameTaken}}}
		}

		w := serve(engine, withSession(jsonRequest(http.MethodPost, "/organizations", `{"name":"Chess Club"}`)))

		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		Expect(w.Body.String()).To(ContainSubstring(validation.MsgNameTaken))
	})

	Context("when provisioning fails", func() {
		BeforeEach(func() {
			orgSvc.createFn = func(context.Context, service.CreateOrganizationInput, int64) (*service.ProvisionResult, error) {
				return nil, fmt.Errorf("%w: %w", service.ErrProvisioningFailed, errors.New("insert committee"))
			}
		})

		It("answers 500 with the generic message for JSON callers", func() {
			w := serve(engine, withSession(jsonRequest(http.MethodPost, "/organizations", `{"name":"Chess Club"}`)))

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(w.Body.String()).To(ContainSubstring(service.MsgProvisioningFailed))
			Expect(w.Body.String()).NotTo(ContainSubstring("insert committee"))
		})

		It("flashes the error and redirects back for form posts", func() {
			w := serve(engine, withSession(formRequest(http.MethodPost, "/organizations", url.Values{"name": {"Chess Club"}})))

			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/organizations/create"))
			Expect(findCookie(w, flashCookie)).NotTo(BeNil())
		})
	})

	Describe("Dashboard", func() {
		It("lists the user's organizations", func() {
			authSvc.dashboardFn = func(_ context.Context, userID int64) ([]model.OrganizationSummary, error) {
				Expect(userID).To(Equal(int64(7)))
				return []model.OrganizationSummary{{
					ID: 1, Name: "Chess Club", Role: model.MemberRolePresident, MembershipStatus: model.MemberStatusActive,
				}}, nil
			}

			w := serve(engine, withSession(httptest.NewRequest(http.MethodGet, "/dashboard", nil)))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("Chess Club"))
			Expect(w.Body.String()).To(ContainSubstring(`"username":"jdoe"`))
		})
	})
})
