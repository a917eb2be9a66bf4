package constants

import (
	"strconv"
	"strings"
	"time"
)

// Redis key layout for EventX.
// Pattern: eventx:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_SEMI_STATIC_SHORT = 1 * time.Hour   // organizer-supplied image URLs
	TTL_AUTH_NONCE        = 5 * time.Minute // wallet sign-in challenge
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "eventx"
)

// ================== IMAGES MODULE ==================

const (
	CACHE_KEY_EVENT_IMAGE = CACHE_PREFIX + ":images:event:" // + event-id
)

const (
	TTL_EVENT_IMAGE = TTL_SEMI_STATIC_SHORT
)

// ================== AUTH MODULE ==================

const (
	CACHE_KEY_AUTH_NONCE = CACHE_PREFIX + ":auth:nonce:" // + lowercase address
)

// ================== RATE LIMITING ==================

const (
	CACHE_KEY_RATE_LIMIT = CACHE_PREFIX + ":ratelimit:" // + ip:type
)

// ================== HELPER FUNCTIONS ==================

func BuildEventImageKey(eventID uint64) string {
	return CACHE_KEY_EVENT_IMAGE + strconv.FormatUint(eventID, 10)
}

func BuildAuthNonceKey(address string) string {
	return CACHE_KEY_AUTH_NONCE + strings.ToLower(address)
}

func BuildRateLimitKey(clientIP, limitType string) string {
	return CACHE_KEY_RATE_LIMIT + clientIP + ":" + limitType
}
