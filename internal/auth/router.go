package auth

import (
	"eventx/internal/shared/config"
	"eventx/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(router *gin.RouterGroup, controller Controller, cfg *config.Config) {
	auth := router.Group("/auth")
	{
		// Public routes (no authentication required)
		auth.POST("/nonce", controller.RequestNonce)
		auth.POST("/verify", controller.Verify)

		// Protected routes (authentication required)
		protected := auth.Group("")
		protected.Use(middleware.RequireSession(cfg))
		{
			protected.GET("/me", controller.GetMe)
		}
	}
}
