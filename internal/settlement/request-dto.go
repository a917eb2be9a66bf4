package settlement

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"strings"

	"eventx/internal/chain"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidIdentifiers = errors.New("invalid eventId or seatNumber")
	ErrInvalidPrice       = errors.New("invalid priceWei")
)

// MintRequest is the settlement body. Each field may be a JSON number or
// a numeric string.
type MintRequest struct {
	EventID    json.RawMessage `json:"eventId"`
	SeatNumber json.RawMessage `json:"seatNumber"`
	PriceWei   json.RawMessage `json:"priceWei"`
}

// MintCommand is a validated MintRequest.
type MintCommand struct {
	EventID    uint64
	SeatNumber uint64
	PriceWei   *big.Int
}

// Parse validates the request without touching the chain.
func (r MintRequest) Parse() (MintCommand, error) {
	eventID, ok := parseUint(r.EventID)
	if !ok {
		return MintCommand{}, ErrInvalidIdentifiers
	}
	seat, ok := parseUint(r.SeatNumber)
	if !ok {
		return MintCommand{}, ErrInvalidIdentifiers
	}

	price := new(big.Int)
	if !isAbsent(r.PriceWei) {
		v, ok := parseInteger(r.PriceWei)
		if !ok {
			return MintCommand{}, ErrInvalidPrice
		}
		price = v
	}
	return MintCommand{EventID: eventID, SeatNumber: seat, PriceWei: price}, nil
}

func isAbsent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func parseUint(raw json.RawMessage) (uint64, bool) {
	if isAbsent(raw) {
		return 0, false
	}
	v, ok := parseInteger(raw)
	if !ok || !v.IsUint64() {
		return 0, false
	}
	return v.Uint64(), true
}

// parseInteger accepts a non-negative integral JSON number, or a string
// holding a decimal or 0x-hex integer.
func parseInteger(raw json.RawMessage) (*big.Int, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, false
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, false
		}
		if strings.TrimSpace(s) == "" {
			return nil, false
		}
		v, err := chain.ParseWei(s)
		return v, err == nil
	}

	d, err := decimal.NewFromString(string(raw))
	if err != nil || d.IsNegative() || !d.Equal(d.Truncate(0)) {
		return nil, false
	}
	return d.BigInt(), true
}
