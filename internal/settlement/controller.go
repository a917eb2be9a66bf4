package settlement

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const msgInvalidIdentifiers = "Invalid eventId or seatNumber"

type Controller interface {
	Mint(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// Mint godoc
// @Summary      Mint a ticket with the server signer
// @Tags         settlement
// @Accept       json
// @Produce      json
// @Param        request body MintRequest true "eventId, seatNumber, priceWei"
// @Success      200 {object} MintResponse
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /settle/mint [post]
func (ctrl *controller) Mint(c *gin.Context) {
	var req MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// an unreadable body has no usable identifiers either
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidIdentifiers})
		return
	}

	cmd, err := req.Parse()
	if err != nil {
		msg := msgInvalidIdentifiers
		if errors.Is(err, ErrInvalidPrice) {
			msg = "Invalid priceWei"
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
		return
	}

	res, err := ctrl.service.Mint(c.Request.Context(), cmd)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, ErrNotConfigured) {
			msg = "Server not configured for settlement"
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, res)
}
