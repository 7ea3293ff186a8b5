package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type CookieConfig struct {
	SessionName string
	FlashName   string
	SessionTTL  time.Duration
	Secure      bool
}

func (cfg CookieConfig) setSession(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.SessionName, token, int(cfg.SessionTTL.Seconds()), "/", "", cfg.Secure, true)
}

func (cfg CookieConfig) clearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.SessionName, "", -1, "/", "", cfg.Secure, true)
}

func (cfg CookieConfig) sessionToken(c *gin.Context) string {
	token, err := c.Cookie(cfg.SessionName)
	if err != nil {
		return ""
	}
	return token
}
