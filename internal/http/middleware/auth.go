package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ejay-detera/orgspace/common/logger"
	"github.com/ejay-detera/orgspace/internal/model"
	"github.com/ejay-detera/orgspace/internal/service"
)

type contextKey string

const userContextKey contextKey = "user"

// SessionValidator resolves a session token to its user.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*model.User, error)
}

type AuthConfig struct {
	CookieName    string
	SecureCookie  bool
	LoginPath     string
	DashboardPath string
}

type Auth struct {
	sessions SessionValidator
	cfg      AuthConfig
}

func NewAuth(sessions SessionValidator, cfg AuthConfig) *Auth {
	return &Auth{sessions: sessions, cfg: cfg}
}

// RequireAuth aborts unless the request carries a live session.
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.resolve(c)
		if err != nil {
			if !errors.Is(err, errNoSession) && !errors.Is(err, service.ErrSessionExpired) && !errors.Is(err, service.ErrUserNotFound) {
				slog.ErrorContext(c.Request.Context(), "failed to validate session", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to validate session"})
				return
			}
			if !errors.Is(err, errNoSession) {
				a.clearCookie(c)
			}
			if WantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
				return
			}
			c.Redirect(http.StatusFound, a.cfg.LoginPath)
			c.Abort()
			return
		}

		a.attach(c, user)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid session exists, but never aborts.
func (a *Auth) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := a.resolve(c); err == nil {
			a.attach(c, user)
		}
		c.Next()
	}
}

// Guest sends signed-in users to the dashboard.
func (a *Auth) Guest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := a.resolve(c); err == nil {
			c.Redirect(http.StatusFound, a.cfg.DashboardPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

var errNoSession = errors.New("no session cookie")

func (a *Auth) resolve(c *gin.Context) (*model.User, error) {
	token, err := c.Cookie(a.cfg.CookieName)
	if err != nil || token == "" {
		return nil, errNoSession
	}
	return a.sessions.ValidateSession(c.Request.Context(), token)
}

func (a *Auth) attach(c *gin.Context, user *model.User) {
	ctx := context.WithValue(c.Request.Context(), userContextKey, user)
	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &user.ID})
	c.Request = c.Request.WithContext(ctx)
}

func (a *Auth) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.cfg.CookieName, "", -1, "/", "", a.cfg.SecureCookie, true)
}
