package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"

	"github.com/ejay-detera/orgspace/internal/http/dto"
	"github.com/ejay-detera/orgspace/internal/http/middleware"
	"github.com/ejay-detera/orgspace/internal/service"
)

type AuthHandler struct {
	authService         service.AuthService
	registrationService service.RegistrationService
	cookies             CookieConfig
	flash               *FlashStore
	dashboardPath       string

	loginForm    *jsonschema.Schema
	registerForm *jsonschema.Schema
}

func NewAuthHandler(
	authService service.AuthService,
	registrationService service.RegistrationService,
	cookies CookieConfig,
	flash *FlashStore,
	dashboardPath string,
) *AuthHandler {
	return &AuthHandler{
		authService:         authService,
		registrationService: registrationService,
		cookies:             cookies,
		flash:               flash,
		dashboardPath:       dashboardPath,
		loginForm:           dto.FormSchema(&dto.LoginRequest{}),
		registerForm:        dto.FormSchema(&dto.RegisterRequest{}),
	}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	showForm(c, h.flash, h.loginForm)
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	showForm(c, h.flash, h.registerForm)
}

func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c)
		return
	}

	result, err := h.registrationService.Register(ctx, req.ToInput(c.ClientIP(), c.Request.UserAgent()))
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			failValidation(c, h.flash, errorsToAny(verr.Errors), req.Old(), "/register")
			return
		}
		internalError(c, "registration failed", err)
		return
	}

	h.cookies.setSession(c, result.Session.Token)

	if middleware.WantsJSON(c) {
		c.JSON(http.StatusCreated, dto.AuthResponse{
			User:     dto.ToUserResponse(result.User),
			Redirect: h.dashboardPath,
		})
		return
	}
	c.Redirect(http.StatusFound, h.dashboardPath)
}

func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c)
		return
	}

	user, session, err := h.authService.Login(ctx, req.ToInput(c.ClientIP(), c.Request.UserAgent()))
	if err != nil {
		var (
			verr *service.ValidationError
			terr *service.ThrottledError
		)
		switch {
		case errors.As(err, &verr):
			failValidation(c, h.flash, errorsToAny(verr.Errors), req.Old(), "/login")
		case errors.As(err, &terr):
			failValidation(c, h.flash, map[string]any{
				"email":            []string{terr.Error()},
				throttleSecondsKey: terr.Seconds,
			}, req.Old(), "/login")
		case errors.Is(err, service.ErrInvalidCredentials):
			failValidation(c, h.flash, map[string]any{
				"email": []string{service.MsgInvalidCredentials},
			}, req.Old(), "/login")
		default:
			internalError(c, "login failed", err)
		}
		return
	}

	h.cookies.setSession(c, session.Token)

	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, dto.AuthResponse{
			User:     dto.ToUserResponse(user),
			Redirect: h.dashboardPath,
		})
		return
	}
	c.Redirect(http.StatusFound, h.dashboardPath)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.authService.Logout(ctx, h.cookies.sessionToken(c)); err != nil {
		slog.WarnContext(ctx, "failed to delete session", "error", err)
	}
	h.cookies.clearSession(c)

	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"message": "logged out", "redirect": "/"})
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func showForm(c *gin.Context, flash *FlashStore, form *jsonschema.Schema) {
	f := flash.Pull(c)
	resp := dto.FormResponse{
		Form:   form,
		Errors: f.Errors,
		Old:    f.Old,
		Status: f.Status,
		Error:  f.Error,
	}
	if resp.Errors == nil {
		resp.Errors = map[string]any{}
	}
	if resp.Old == nil {
		resp.Old = map[string]string{}
	}
	c.JSON(http.StatusOK, resp)
}
