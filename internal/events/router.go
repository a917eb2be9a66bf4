package events

import "github.com/gin-gonic/gin"

func SetupEventRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can browse on-chain events
	publicEvents := router.Group("/events")
	{
		publicEvents.GET("", controller.GetAllEvents)               // GET /api/v1/events - Browse all events
		publicEvents.GET("/upcoming", controller.GetUpcomingEvents) // GET /api/v1/events/upcoming - Browse upcoming events
		publicEvents.GET("/:id", controller.GetEvent)               // GET /api/v1/events/:id - Get event details
	}
}
