package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"

	"github.com/ejay-detera/orgspace/internal/http/dto"
	"github.com/ejay-detera/orgspace/internal/http/middleware"
	"github.com/ejay-detera/orgspace/internal/service"
)

const organizationFormPath = "/organizations/create"

type OrganizationHandler struct {
	orgService service.OrganizationService
	flash      *FlashStore
	form       *jsonschema.Schema
}

func NewOrganizationHandler(orgService service.OrganizationService, flash *FlashStore) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
		flash:      flash,
		form:       dto.FormSchema(&dto.CreateOrganizationRequest{}),
	}
}

func (h *OrganizationHandler) ShowCreate(c *gin.Context) {
	showForm(c, h.flash, h.form)
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	user := middleware.GetUser(ctx)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c)
		return
	}

	result, err := h.orgService.Create(ctx, req.ToInput(), user.ID)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			failValidation(c, h.flash, errorsToAny(verr.Errors), req.Old(), organizationFormPath)
		case errors.Is(err, service.ErrProvisioningFailed):
			if middleware.WantsJSON(c) {
				c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: service.MsgProvisioningFailed})
				return
			}
			h.flash.Set(c, Flash{Error: service.MsgProvisioningFailed, Old: req.Old()})
			c.Redirect(http.StatusFound, backURL(c, organizationFormPath))
		default:
			internalError(c, "organization creation failed", err)
		}
		return
	}

	if middleware.WantsJSON(c) {
		c.JSON(http.StatusCreated, dto.ToProvisionResponse(result))
		return
	}
	h.flash.Set(c, Flash{Status: service.MsgOrganizationCreated})
	c.Redirect(http.StatusFound, backURL(c, organizationFormPath))
}
