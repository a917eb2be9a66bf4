// Package session models the wallet connection a request acts on behalf of.
// Handlers receive it explicitly from the request context instead of reaching
// for ambient wallet state.
package session

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnected    Status = "connected"
)

// Session is the resolved wallet connection of a request.
type Session struct {
	Status  Status `json:"status"`
	Account string `json:"account"`
	ChainID int64  `json:"chain_id"`
}

// Connected builds a session for a verified account.
func Connected(account string, chainID int64) Session {
	account = strings.TrimSpace(account)
	if account == "" {
		return Session{Status: StatusDisconnected}
	}
	return Session{Status: StatusConnected, Account: account, ChainID: chainID}
}

// IsConnected mirrors the frontend rule: connected status and a non-empty account.
func (s Session) IsConnected() bool {
	return s.Status == StatusConnected && s.Account != ""
}

// Owns reports whether addr is the session account, ignoring case.
func (s Session) Owns(addr string) bool {
	return s.IsConnected() && strings.EqualFold(s.Account, strings.TrimSpace(addr))
}

type contextKey struct{}

const ginKey = "wallet_session"

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session in ctx, or a disconnected one.
func FromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(contextKey{}).(Session); ok {
		return s
	}
	return Session{Status: StatusDisconnected}
}

// Attach stores s on both the gin context and its request context.
func Attach(c *gin.Context, s Session) {
	c.Set(ginKey, s)
	c.Request = c.Request.WithContext(WithSession(c.Request.Context(), s))
}

// FromGin returns the session attached to c.
func FromGin(c *gin.Context) Session {
	if v, ok := c.Get(ginKey); ok {
		if s, ok := v.(Session); ok {
			return s
		}
	}
	return FromContext(c.Request.Context())
}
