package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ejay-detera/orgspace/internal/http/handler"
	"github.com/ejay-detera/orgspace/internal/http/middleware"
	"github.com/ejay-detera/orgspace/internal/service"
)

type RouterConfig struct {
	AppName       string
	DashboardPath string
	Cookies       handler.CookieConfig
}

// Services is the slice of service.Services the routes need.
type Services interface {
	Auth() service.AuthService
	Registration() service.RegistrationService
	Organizations() service.OrganizationService
}

// NewEngine builds a bare gin engine that takes client IPs from forwarding
// headers only when the peer is one of trustedProxies.
func NewEngine(trustedProxies []string) (*gin.Engine, error) {
	engine := gin.New()
	engine.ForwardedByClientIP = len(trustedProxies) > 0
	if err := engine.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("setting trusted proxies: %w", err)
	}
	return engine, nil
}

func SetupRoutes(router *gin.Engine, services Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authService := services.Auth()
	flash := handler.NewFlashStore(cfg.Cookies.FlashName, cfg.Cookies.Secure)
	auth := middleware.NewAuth(authService, middleware.AuthConfig{
		CookieName:    cfg.Cookies.SessionName,
		SecureCookie:  cfg.Cookies.Secure,
		LoginPath:     "/login",
		DashboardPath: cfg.DashboardPath,
	})

	homeHandler := handler.NewHomeHandler(cfg.AppName)
	router.GET("/", auth.OptionalAuth(), homeHandler.Landing)

	authHandler := handler.NewAuthHandler(authService, services.Registration(), cfg.Cookies, flash, cfg.DashboardPath)
	AuthRouter(router.Group("/", auth.Guest()), authHandler)
	router.POST("/logout", authHandler.Logout)

	authed := router.Group("/", auth.RequireAuth())
	{
		dashboardHandler := handler.NewDashboardHandler(authService)
		authed.GET(cfg.DashboardPath, dashboardHandler.Show)

		orgHandler := handler.NewOrganizationHandler(services.Organizations(), flash)
		OrganizationRouter(authed.Group("/organizations"), orgHandler)
	}
}
