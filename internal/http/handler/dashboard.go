package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ejay-detera/orgspace/internal/http/dto"
	"github.com/ejay-detera/orgspace/internal/http/middleware"
	"github.com/ejay-detera/orgspace/internal/service"
)

type DashboardHandler struct {
	authService service.AuthService
}

func NewDashboardHandler(authService service.AuthService) *DashboardHandler {
	return &DashboardHandler{authService: authService}
}

func (h *DashboardHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()

	user := middleware.GetUser(ctx)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	orgs, err := h.authService.Dashboard(ctx, user.ID)
	if err != nil {
		internalError(c, "failed to load dashboard", err)
		return
	}

	c.JSON(http.StatusOK, dto.DashboardResponse{
		User:          dto.ToUserResponse(user),
		Organizations: dto.ToOrganizationSummaryResponses(orgs),
	})
}

type HomeHandler struct {
	appName string
}

func NewHomeHandler(appName string) *HomeHandler {
	return &HomeHandler{appName: appName}
}

func (h *HomeHandler) Landing(c *gin.Context) {
	user := middleware.GetUser(c.Request.Context())
	resp := gin.H{
		"app":           h.appName,
		"authenticated": user != nil,
	}
	if user != nil {
		resp["user"] = dto.ToUserResponse(user)
	}
	c.JSON(http.StatusOK, resp)
}
