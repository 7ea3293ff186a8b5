package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ejay-detera/orgspace/internal/http/handler"
)

func AuthRouter(rg *gin.RouterGroup, h *handler.AuthHandler) {
	rg.GET("/register", h.ShowRegister)
	rg.POST("/register", h.Register)
	rg.GET("/login", h.ShowLogin)
	rg.POST("/login", h.Login)
}

func OrganizationRouter(rg *gin.RouterGroup, h *handler.OrganizationHandler) {
	rg.GET("/create", h.ShowCreate)
	rg.POST("", h.Create)
}
