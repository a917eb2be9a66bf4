package tickets

import (
	"eventx/internal/shared/config"
	"eventx/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTicketRoutes(router *gin.RouterGroup, controller Controller, cfg *config.Config) {
	// Public routes - anyone holding an address or a QR code
	router.GET("/tickets/owner/:address", controller.GetTicketsByOwner) // GET /api/v1/tickets/owner/:address
	router.GET("/verify", controller.VerifyTicket)                      // GET /api/v1/verify?tokenId=&eventId=

	// Wallet session routes
	authed := router.Group("")
	authed.Use(middleware.RequireSession(cfg))
	{
		authed.GET("/me/tickets", controller.GetMyTickets)                // GET /api/v1/me/tickets
		authed.POST("/tickets/:tokenId/refund", controller.PrepareRefund) // POST /api/v1/tickets/:tokenId/refund
	}
}
