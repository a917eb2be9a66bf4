package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"eventx/internal/session"
	"eventx/internal/shared/config"
	"eventx/internal/shared/utils/response"
	"eventx/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var errMissingBearer = errors.New("authorization header format must be Bearer {token}")

// RequireSession rejects requests without a valid wallet session token.
func RequireSession(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "Authorization header is required", nil)
			return
		}

		s, err := parseSession(authHeader, cfg)
		if err != nil {
			logger.GetDefault().LogAuthFailure(c.Request.Context(), err.Error(), c.ClientIP())
			response.Abort(c, http.StatusUnauthorized, "invalid or expired token", nil)
			return
		}

		session.Attach(c, s)
		c.Next()
	}
}

// OptionalSession attaches a wallet session when a valid token is present.
// Any other request continues as disconnected.
func OptionalSession(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		if s, err := parseSession(authHeader, cfg); err == nil {
			session.Attach(c, s)
		}
		c.Next()
	}
}

func parseSession(authHeader string, cfg *config.Config) (session.Session, error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return session.Session{}, errMissingBearer
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return session.Session{}, jwt.ErrTokenUnverifiable
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return session.Session{}, jwt.ErrTokenInvalidClaims
	}
	if tokenType, ok := claims["type"]; !ok || tokenType != "access" {
		return session.Session{}, errors.New("invalid token type")
	}

	address, _ := claims["address"].(string)
	var chainID int64
	if v, ok := claims["chain_id"].(float64); ok {
		chainID = int64(v)
	}

	s := session.Connected(address, chainID)
	if !s.IsConnected() {
		return session.Session{}, errors.New("token has no address")
	}
	return s, nil
}

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags the request with an id (the client's X-Request-ID when
// usable, a fresh uuid otherwise), echoes it back and logs the request with
// the id and, once a session middleware ran, the wallet account.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		c.Next()

		log := logger.GetDefault().WithRequestID(id)
		if s := session.FromGin(c); s.IsConnected() {
			log = log.WithAccount(s.Account)
		}
		log.LogHTTPRequest(c, time.Since(start))
	}
}
