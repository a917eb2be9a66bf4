package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims is the payload of a wallet session token.
type Claims struct {
	Address string `json:"address"`
	ChainID int64  `json:"chain_id"`
	Type    string `json:"type"` // always "access"
	jwt.RegisteredClaims
}

// Challenge is an outstanding sign-in nonce for an address.
type Challenge struct {
	Address   string    `json:"address"`
	Nonce     string    `json:"nonce"`
	ChainID   int64     `json:"chainId"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}
