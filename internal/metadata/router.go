package metadata

import "github.com/gin-gonic/gin"

func SetupMetadataRoutes(router *gin.RouterGroup, controller Controller) {
	router.GET("/tickets/:tokenId/nft", controller.GetNFT) // GET /api/v1/tickets/:tokenId/nft
}
