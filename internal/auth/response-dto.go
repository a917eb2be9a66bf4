package auth

// TokenResponse is returned after a verified sign-in.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Address     string `json:"address"`
	ChainID     int64  `json:"chain_id"`
}
