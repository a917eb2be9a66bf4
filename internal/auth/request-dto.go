package auth

// ChainID is the chain the wallet is currently connected to. It is part of
// the signed message and ends up in the session token.
type NonceRequest struct {
	Address string `json:"address" binding:"required,eth_addr"`
	ChainID int64  `json:"chainId" binding:"omitempty,gt=0"`
}

type VerifyRequest struct {
	Address   string `json:"address" binding:"required,eth_addr"`
	Signature string `json:"signature" binding:"required"`
	ChainID   int64  `json:"chainId" binding:"required,gt=0"`
}
