package ratelimit

import (
	"net/http"
	"strconv"
	"strings"

	"eventx/internal/shared/utils/response"
	"eventx/pkg/logger"

	"github.com/gin-gonic/gin"
)

// routeClasses is matched in order; the first fragment found in the route
// pattern decides the class.
var routeClasses = []struct {
	fragment string
	prefix   bool
	class    RateLimitType
}{
	{"/health", true, RateLimitTypeHealth},
	{"/ping", true, RateLimitTypeHealth},
	{"/status", true, RateLimitTypeHealth},
	{"/metrics", true, RateLimitTypeHealth},
	// every settlement call signs and pays for a transaction
	{"/settle/", false, RateLimitTypeSettlement},
	{"/auth/", false, RateLimitTypeAuth},
	{"/organizer", false, RateLimitTypeOrganizer},
	{"/events", false, RateLimitTypePublic},
	{"/tickets", false, RateLimitTypePublic},
	{"/verify", false, RateLimitTypePublic},
}

// Middleware enforces the per-IP window of the route's class. Redis errors
// let the request through.
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		clientIP := c.ClientIP()

		result, err := rateLimiter.IsAllowed(ctx, clientIP, getRateLimitType(c.FullPath()))
		if err != nil {
			logger.GetDefault().WithError(err).WarnContext(ctx, "rate limit check failed, allowing request")
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetTime, 10))

		if result.Allowed {
			c.Next()
			return
		}

		logger.GetDefault().LogRateLimitExceeded(ctx, clientIP, c.FullPath())
		h.Set("Retry-After", strconv.Itoa(int(rateLimiter.config.WindowDuration.Seconds())))
		response.Abort(c, http.StatusTooManyRequests, "Rate limit exceeded", gin.H{
			"limit":      result.Limit,
			"reset_time": result.ResetTime,
		})
	}
}

func getRateLimitType(path string) RateLimitType {
	for _, rc := range routeClasses {
		if rc.prefix && strings.HasPrefix(path, rc.fragment) {
			return rc.class
		}
		if !rc.prefix && strings.Contains(path, rc.fragment) {
			return rc.class
		}
	}
	return RateLimitTypeDefault
}
