package organizer

import (
	"eventx/internal/shared/config"
	"eventx/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupOrganizerRoutes(router *gin.RouterGroup, controller Controller, cfg *config.Config) {
	organizer := router.Group("/organizer")
	{
		// Public dashboard of any organizer
		organizer.GET("/:address/events", controller.GetOrganizerEvents) // GET /api/v1/organizer/:address/events

		// Wallet session routes
		authed := organizer.Group("/events")
		authed.Use(middleware.RequireSession(cfg))
		{
			authed.GET("", controller.GetMyEvents)                // GET /api/v1/organizer/events
			authed.POST("/prepare", controller.PrepareEvent)      // POST /api/v1/organizer/events/prepare
			authed.POST("/confirm", controller.ConfirmEvent)      // POST /api/v1/organizer/events/confirm
			authed.PUT("/:id/image", controller.UpdateEventImage) // PUT /api/v1/organizer/events/:id/image
		}
	}
}
