package events

import (
	"errors"
	"net/http"
	"strconv"

	"eventx/internal/chain"
	"eventx/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	GetEvent(c *gin.Context)
	GetAllEvents(c *gin.Context)
	GetUpcomingEvents(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// GetEvent godoc
// @Summary  Get one on-chain event
// @Tags     events
// @Produce  json
// @Param    id path int true "event id"
// @Success  200 {object} response.Envelope{data=EventView}
// @Failure  404 {object} response.Envelope
// @Router   /events/{id} [get]
func (ctrl *controller) GetEvent(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	event, err := ctrl.service.GetEventByID(c.Request.Context(), eventID)
	if err != nil {
		statusCode := http.StatusBadGateway
		if errors.Is(err, chain.ErrEventNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event retrieved successfully", event, nil)
}

// GetAllEvents godoc
// @Summary  Browse all on-chain events
// @Tags     events
// @Produce  json
// @Param    search query string false "title or location substring"
// @Param    organizer query string false "organizer address"
// @Param    status query string false "UPCOMING, AWAITING_RESOLUTION, ENDED or CANCELED"
// @Param    limit query int false "maximum events returned"
// @Success  200 {object} response.Envelope{data=EventList}
// @Router   /events [get]
func (ctrl *controller) GetAllEvents(c *gin.Context) {
	var query EventListQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	events, err := ctrl.service.GetAllEvents(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadGateway, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Events retrieved successfully", events, nil)
}

// GetUpcomingEvents godoc
// @Summary  Browse upcoming events
// @Tags     events
// @Produce  json
// @Param    limit query int false "maximum events returned" default(10)
// @Success  200 {object} response.Envelope{data=EventList}
// @Router   /events/upcoming [get]
func (ctrl *controller) GetUpcomingEvents(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 10
	}

	events, err := ctrl.service.GetUpcomingEvents(c.Request.Context(), limit)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadGateway, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Upcoming events retrieved successfully", events, nil)
}
