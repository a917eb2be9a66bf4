package organizer

import (
	"errors"
	"net/http"
	"strconv"

	"eventx/internal/chain"
	"eventx/internal/session"
	"eventx/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	GetMyEvents(c *gin.Context)
	GetOrganizerEvents(c *gin.Context)
	PrepareEvent(c *gin.Context)
	ConfirmEvent(c *gin.Context)
	UpdateEventImage(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// GetMyEvents godoc
// @Summary   Events organized by the connected wallet
// @Tags      organizer
// @Security  BearerAuth
// @Produce   json
// @Success   200 {object} response.Envelope{data=Dashboard}
// @Router    /organizer/events [get]
func (ctrl *controller) GetMyEvents(c *gin.Context) {
	ctrl.dashboard(c, session.FromGin(c).Account)
}

// GetOrganizerEvents godoc
// @Summary  Events organized by an address
// @Tags     organizer
// @Produce  json
// @Param    address path string true "organizer address"
// @Success  200 {object} response.Envelope{data=Dashboard}
// @Router   /organizer/{address}/events [get]
func (ctrl *controller) GetOrganizerEvents(c *gin.Context) {
	ctrl.dashboard(c, c.Param("address"))
}

func (ctrl *controller) dashboard(c *gin.Context, organizer string) {
	dashboard, err := ctrl.service.Dashboard(c.Request.Context(), organizer)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Organizer events retrieved successfully", dashboard, nil)
}

// PrepareEvent godoc
// @Summary   Build an unsigned list transaction
// @Tags      organizer
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     body body CreateEventRequest true "event form"
// @Success   200 {object} response.Envelope{data=PreparedEvent}
// @Router    /organizer/events/prepare [post]
func (ctrl *controller) PrepareEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	prepared, err := ctrl.service.PrepareEvent(c.Request.Context(), session.FromGin(c), req)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Event transaction prepared", prepared, nil)
}

// ConfirmEvent godoc
// @Summary   Confirm a mined list transaction
// @Tags      organizer
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     body body ConfirmEventRequest true "transaction hash and image"
// @Success   201 {object} response.Envelope{data=ConfirmedEvent}
// @Router    /organizer/events/confirm [post]
func (ctrl *controller) ConfirmEvent(c *gin.Context) {
	var req ConfirmEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	confirmed, err := ctrl.service.ConfirmEvent(c.Request.Context(), session.FromGin(c), req)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Event created successfully", confirmed, nil)
}

// UpdateEventImage godoc
// @Summary   Set the image of an event
// @Tags      organizer
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     id path int true "event id"
// @Param     body body UpdateImageRequest true "image url"
// @Success   200 {object} response.Envelope
// @Router    /organizer/events/{id}/image [put]
func (ctrl *controller) UpdateEventImage(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	var req UpdateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	img, err := ctrl.service.UpdateImage(c.Request.Context(), session.FromGin(c), eventID, req.ImageURL)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Event image updated", img, nil)
}

func (ctrl *controller) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidAddress), errors.Is(err, ErrInvalidForm), errors.Is(err, ErrWrongChain):
		status = http.StatusBadRequest
	case errors.Is(err, ErrNotConnected):
		status = http.StatusUnauthorized
	case errors.Is(err, ErrNotOrganizer):
		status = http.StatusForbidden
	case errors.Is(err, chain.ErrEventNotFound), errors.Is(err, ErrCreatedNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrStaleImage):
		status = http.StatusConflict
	case errors.Is(err, chain.ErrTransactionReverted):
		status = http.StatusUnprocessableEntity
	}
	response.RespondJSON(c, "error", status, err.Error(), nil, nil)
}
