package handler

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashMaxAge = 60

// Flash is state carried across one redirect.
type Flash struct {
	Errors map[string]any    `json:"errors,omitempty"`
	Old    map[string]string `json:"old,omitempty"`
	Status string            `json:"status,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// FlashStore keeps a Flash in a short-lived cookie that is cleared when read.
type FlashStore struct {
	cookieName string
	secure     bool
}

func NewFlashStore(cookieName string, secure bool) *FlashStore {
	return &FlashStore{cookieName: cookieName, secure: secure}
}

func (s *FlashStore) Set(c *gin.Context, f Flash) {
	raw, err := json.Marshal(f)
	if err != nil {
		slog.WarnContext(c.Request.Context(), "failed to encode flash", "error", err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookieName, base64.RawURLEncoding.EncodeToString(raw), flashMaxAge, "/", "", s.secure, true)
}

// Pull returns the pending flash and clears it.
func (s *FlashStore) Pull(c *gin.Context) Flash {
	var f Flash
	value, err := c.Cookie(s.cookieName)
	if err != nil || value == "" {
		return f
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookieName, "", -1, "/", "", s.secure, true)

	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Flash{}
	}
	if err := json.Unmarshal(raw, &f); err != nil {
		return Flash{}
	}
	return f
}
