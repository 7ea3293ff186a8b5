package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// WantsJSON reports whether the caller expects a JSON answer rather than a redirect.
func WantsJSON(c *gin.Context) bool {
	if c.GetHeader("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
