package chain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatEther renders a wei amount in whole native units.
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -18).String()
}

// ParseWei parses a non-negative integer amount of wei, decimal or 0x-prefixed hex.
// A blank string is zero.
func ParseWei(raw string) (*big.Int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return new(big.Int), nil
	}

	base := 10
	digits := raw
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		base = 16
		digits = raw[2:]
	}

	v, ok := new(big.Int).SetString(digits, base)
	if !ok || digits == "" {
		return nil, fmt.Errorf("invalid wei amount %q", raw)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative wei amount %q", raw)
	}
	return v, nil
}

// ParseEther converts a decimal amount of native units to wei.
func ParseEther(raw string) (*big.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("negative amount %q", raw)
	}
	wei := d.Shift(18)
	if !wei.Equal(wei.Truncate(0)) {
		return nil, fmt.Errorf("amount %q has more than 18 decimals", raw)
	}
	return wei.BigInt(), nil
}
