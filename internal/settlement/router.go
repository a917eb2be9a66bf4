package settlement

import "github.com/gin-gonic/gin"

// SetupSettlementRoutes mounts the settlement route on the unversioned /api group.
func SetupSettlementRoutes(router *gin.RouterGroup, controller Controller) {
	settle := router.Group("/settle")
	{
		settle.POST("/mint", controller.Mint) // POST /api/settle/mint
	}
}
