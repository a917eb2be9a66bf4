package ratelimit

import (
	"context"
	"fmt"
	"time"

	"eventx/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

type RateLimitType string

const (
	RateLimitTypeDefault    RateLimitType = "default"
	RateLimitTypePublic     RateLimitType = "public"
	RateLimitTypeAuth       RateLimitType = "auth"
	RateLimitTypeSettlement RateLimitType = "settlement"
	RateLimitTypeOrganizer  RateLimitType = "organizer"
	RateLimitTypeHealth     RateLimitType = "health"
)

type Config struct {
	Enabled            bool          `json:"enabled"`
	WindowDuration     time.Duration `json:"window_duration"`
	DefaultRequests    int           `json:"default_requests"`
	PublicRequests     int           `json:"public_requests"`
	AuthRequests       int           `json:"auth_requests"`
	SettlementRequests int           `json:"settlement_requests"`
	OrganizerRequests  int           `json:"organizer_requests"`
	HealthRequests     int           `json:"health_requests"`
	WhitelistedIPs     []string      `json:"whitelisted_ips"`
}

// Result represents rate limit check result
type Result struct {
	Allowed   bool  `json:"allowed"`
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	ResetTime int64 `json:"reset_time"`
}

// RateLimiter handles rate limiting using Redis
type RateLimiter struct {
	client redis.Scripter
	config *Config
	now    func() time.Time
}

func NewRateLimiter(client redis.Scripter, config *Config) *RateLimiter {
	return &RateLimiter{
		client: client,
		config: config,
		now:    time.Now,
	}
}

// Lua script for atomic sliding window rate limiting
const slidingWindowScript = `
local key = KEYS[1]
local window_start = tonumber(ARGV[1])
local now = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local window_seconds = tonumber(ARGV[4])

redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

local current_count = redis.call('ZCARD', key)

if current_count >= limit then
	redis.call('EXPIRE', key, window_seconds)
	return {current_count + 1, 0}
end

redis.call('ZADD', key, now, now .. '-' .. current_count)
redis.call('EXPIRE', key, window_seconds)

return {current_count + 1, limit - current_count - 1}
`

// IsAllowed checks whether clientIP may issue another request of limitType
func (r *RateLimiter) IsAllowed(ctx context.Context, clientIP string, limitType RateLimitType) (*Result, error) {
	limit := r.getLimit(limitType)

	if !r.config.Enabled || r.isWhitelisted(clientIP) {
		return &Result{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit,
			ResetTime: r.now().Add(r.config.WindowDuration).Unix(),
		}, nil
	}

	key := constants.BuildRateLimitKey(clientIP, string(limitType))
	return r.checkLimit(ctx, key, limit)
}

// performs the actual rate limit check using sliding window
func (r *RateLimiter) checkLimit(ctx context.Context, key string, limit int) (*Result, error) {
	now := r.now()
	windowStart := now.Add(-r.config.WindowDuration)

	result, err := r.client.Eval(ctx, slidingWindowScript, []string{key},
		windowStart.Unix(),
		now.Unix(),
		limit,
		int(r.config.WindowDuration.Seconds())).Result()
	if err != nil {
		return nil, fmt.Errorf("redis eval failed: %w", err)
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 2 {
		return nil, fmt.Errorf("unexpected redis response")
	}

	currentCount, ok1 := values[0].(int64)
	remaining, ok2 := values[1].(int64)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("unexpected redis response types")
	}

	return &Result{
		Allowed:   int(currentCount) <= limit,
		Limit:     limit,
		Remaining: int(remaining),
		ResetTime: now.Add(r.config.WindowDuration).Unix(),
	}, nil
}

func (r *RateLimiter) getLimit(limitType RateLimitType) int {
	switch limitType {
	case RateLimitTypePublic:
		return r.config.PublicRequests
	case RateLimitTypeAuth:
		return r.config.AuthRequests
	case RateLimitTypeSettlement:
		return r.config.SettlementRequests
	case RateLimitTypeOrganizer:
		return r.config.OrganizerRequests
	case RateLimitTypeHealth:
		return r.config.HealthRequests
	default:
		return r.config.DefaultRequests
	}
}

func (r *RateLimiter) isWhitelisted(ip string) bool {
	for _, whitelistedIP := range r.config.WhitelistedIPs {
		if ip == whitelistedIP {
			return true
		}
	}
	return false
}
