package settlement

import "math/big"

// MintResponse is written as-is; the route does not use the API envelope.
type MintResponse struct {
	Hash    string   `json:"hash"`
	TokenID *big.Int `json:"tokenId"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
