package metadata

import (
	"net/http"
	"strconv"

	"eventx/internal/shared/utils/response"
	"eventx/pkg/logger"

	"github.com/gin-gonic/gin"
)

const viewerCSP = "sandbox; default-src 'none'; img-src data: https: http:; style-src 'unsafe-inline'"

type Controller interface {
	GetNFT(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// GetNFT godoc
// @Summary  View a ticket NFT image
// @Tags     tickets
// @Produce  html
// @Produce  json
// @Param    tokenId path int true "token id"
// @Param    format query string false "json for the classification only"
// @Success  200 {string} string "viewer page"
// @Success  302 {string} string "redirect to the token URI"
// @Failure  502 {string} string "error page"
// @Router   /tickets/{tokenId}/nft [get]
func (ctrl *controller) GetNFT(c *gin.Context) {
	asJSON := c.Query("format") == "json"

	tokenID, err := strconv.ParseUint(c.Param("tokenId"), 10, 64)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid token ID", nil, err.Error())
		return
	}

	rendering, err := ctrl.service.Resolve(c.Request.Context(), tokenID)
	if err != nil {
		logger.GetDefault().LogHTTPError(c, err, http.StatusBadGateway)
		if asJSON {
			response.RespondJSON(c, "error", http.StatusBadGateway, "Failed to read token URI", nil, err.Error())
			return
		}
		c.Data(http.StatusBadGateway, "text/html; charset=utf-8", RenderError())
		return
	}

	if asJSON {
		response.RespondJSON(c, "success", http.StatusOK, "NFT metadata resolved", rendering, nil)
		return
	}

	if rendering.Kind == KindRedirect {
		if target, ok := RedirectTarget(rendering.URI); ok {
			c.Redirect(http.StatusFound, target)
			return
		}
	}

	c.Header("Content-Security-Policy", viewerCSP)
	c.Data(http.StatusOK, "text/html; charset=utf-8", RenderHTML(rendering))
}
