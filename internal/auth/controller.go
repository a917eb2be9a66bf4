package auth

import (
	"errors"
	"net/http"

	"eventx/internal/session"
	"eventx/internal/shared/utils/response"
	"eventx/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	RequestNonce(c *gin.Context)
	Verify(c *gin.Context)
	GetMe(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// RequestNonce godoc
// @Summary  Start a wallet sign-in
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body NonceRequest true "wallet address"
// @Success  200 {object} response.Envelope{data=Challenge}
// @Router   /auth/nonce [post]
func (ctrl *controller) RequestNonce(c *gin.Context) {
	var req NonceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	challenge, err := ctrl.service.IssueNonce(c.Request.Context(), req.Address, req.ChainID)
	if err != nil {
		logger.GetDefault().LogHTTPError(c, err, http.StatusInternalServerError)
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to start sign-in", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Sign the message with your wallet", challenge, nil)
}

// Verify godoc
// @Summary  Finish a wallet sign-in
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body VerifyRequest true "address and personal_sign signature"
// @Success  200 {object} response.Envelope{data=TokenResponse}
// @Failure  401 {object} response.Envelope
// @Router   /auth/verify [post]
func (ctrl *controller) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	token, err := ctrl.service.Verify(c.Request.Context(), req.Address, req.Signature, req.ChainID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNonceNotFound), errors.Is(err, ErrInvalidSignature), errors.Is(err, ErrSignerMismatch):
			logger.GetDefault().LogAuthFailure(c.Request.Context(), err.Error(), c.ClientIP())
			response.RespondJSON(c, "error", http.StatusUnauthorized, err.Error(), nil, nil)
		default:
			logger.GetDefault().LogHTTPError(c, err, http.StatusInternalServerError)
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to verify sign-in", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Login successful", token, nil)
}

// GetMe godoc
// @Summary  Current wallet session
// @Tags     auth
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} response.Envelope{data=session.Session}
// @Router   /auth/me [get]
func (ctrl *controller) GetMe(c *gin.Context) {
	response.RespondJSON(c, "success", http.StatusOK, "Session retrieved successfully", session.FromGin(c), nil)
}
