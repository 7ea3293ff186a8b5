package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ejay-detera/orgspace/internal/http/dto"
	"github.com/ejay-detera/orgspace/internal/http/middleware"
	"github.com/ejay-detera/orgspace/internal/validation"
)

const (
	throttleSecondsKey       = "throttle_seconds"
	defaultValidationMessage = "The given data was invalid."
)

// backURL is the same-origin Referer path, or fallback.
func backURL(c *gin.Context, fallback string) string {
	ref := c.GetHeader("Referer")
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request.Host) || !strings.HasPrefix(u.Path, "/") {
		return fallback
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}

func errorsToAny(errs validation.Errors) map[string]any {
	out := make(map[string]any, len(errs))
	for field, msgs := range errs {
		out[field] = msgs
	}
	return out
}

// failValidation answers 422 for JSON callers and flashes then redirects back otherwise.
func failValidation(c *gin.Context, flash *FlashStore, errs map[string]any, old map[string]string, fallback string) {
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Message: firstMessage(errs),
			Errors:  errs,
		})
		return
	}

	flash.Set(c, Flash{Errors: errs, Old: old})
	c.Redirect(http.StatusFound, backURL(c, fallback))
}

func internalError(c *gin.Context, msg string, err error) {
	slog.ErrorContext(c.Request.Context(), msg, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}

// firstMessage prefers the email error, matching what login forms show first.
func firstMessage(errs map[string]any) string {
	pick := func(v any) string {
		if msgs, ok := v.([]string); ok && len(msgs) > 0 {
			return msgs[0]
		}
		return ""
	}
	if msg := pick(errs["email"]); msg != "" {
		return msg
	}
	for _, v := range errs {
		if msg := pick(v); msg != "" {
			return msg
		}
	}
	return defaultValidationMessage
}
