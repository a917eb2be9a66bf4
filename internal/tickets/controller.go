package tickets

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"eventx/internal/session"
	"eventx/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	GetTicketsByOwner(c *gin.Context)
	GetMyTickets(c *gin.Context)
	VerifyTicket(c *gin.Context)
	PrepareRefund(c *gin.Context)
}

type controller struct {
	service      Service
	publicOrigin string
}

func NewController(service Service, publicOrigin string) Controller {
	return &controller{service: service, publicOrigin: strings.TrimRight(publicOrigin, "/")}
}

// GetTicketsByOwner godoc
// @Summary  List the tickets held by a wallet
// @Tags     tickets
// @Produce  json
// @Param    address path string true "wallet address"
// @Success  200 {object} response.Envelope{data=TicketList}
// @Router   /tickets/owner/{address} [get]
func (ctrl *controller) GetTicketsByOwner(c *gin.Context) {
	ctrl.list(c, c.Param("address"))
}

// GetMyTickets godoc
// @Summary   List the tickets of the connected wallet
// @Tags      tickets
// @Security  BearerAuth
// @Produce   json
// @Success   200 {object} response.Envelope{data=TicketList}
// @Router    /me/tickets [get]
func (ctrl *controller) GetMyTickets(c *gin.Context) {
	ctrl.list(c, session.FromGin(c).Account)
}

func (ctrl *controller) list(c *gin.Context, owner string) {
	list, err := ctrl.service.ListByOwner(c.Request.Context(), owner, ctrl.origin(c))
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	message := "Tickets retrieved successfully"
	if list.Failures > 0 {
		message = "Tickets retrieved with missing event details"
	}
	response.RespondJSON(c, "success", http.StatusOK, message, list, nil)
}

// VerifyTicket godoc
// @Summary  Verify a ticket QR code against the chain
// @Tags     tickets
// @Produce  json
// @Param    tokenId query int true "token id"
// @Param    eventId query int true "event id"
// @Success  200 {object} response.Envelope{data=Verification}
// @Router   /verify [get]
func (ctrl *controller) VerifyTicket(c *gin.Context) {
	tokenID, err1 := strconv.ParseUint(c.Query("tokenId"), 10, 64)
	eventID, err2 := strconv.ParseUint(c.Query("eventId"), 10, 64)
	if err1 != nil || err2 != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "tokenId and eventId must be non-negative integers", nil, nil)
		return
	}

	v, err := ctrl.service.Verify(c.Request.Context(), tokenID, eventID)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Ticket verified", v, nil)
}

// PrepareRefund godoc
// @Summary   Build an unsigned refund transaction
// @Tags      tickets
// @Security  BearerAuth
// @Produce   json
// @Param     tokenId path int true "token id"
// @Success   200 {object} response.Envelope{data=RefundTransaction}
// @Failure   409 {object} response.Envelope
// @Router    /tickets/{tokenId}/refund [post]
func (ctrl *controller) PrepareRefund(c *gin.Context) {
	tokenID, err := strconv.ParseUint(c.Param("tokenId"), 10, 64)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid token ID", nil, err.Error())
		return
	}

	tx, err := ctrl.service.PrepareRefund(c.Request.Context(), session.FromGin(c), tokenID)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Refund transaction prepared", tx, nil)
}

func (ctrl *controller) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidAddress), errors.Is(err, ErrWrongChain):
		status = http.StatusBadRequest
	case errors.Is(err, ErrNotConnected):
		status = http.StatusUnauthorized
	case errors.Is(err, ErrNotTicketOwner):
		status = http.StatusForbidden
	case errors.Is(err, ErrTicketNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrNotEligible):
		status = http.StatusConflict
	}
	response.RespondJSON(c, "error", status, err.Error(), nil, nil)
}

// origin is the configured public origin, else the scheme and host of the request.
func (ctrl *controller) origin(c *gin.Context) string {
	if ctrl.publicOrigin != "" {
		return ctrl.publicOrigin
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	return scheme + "://" + c.Request.Host
}
