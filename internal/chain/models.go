package chain

import (
	"errors"
	"math/big"
	"strings"
)

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrTransactionReverted = errors.New("transaction reverted")
	ErrMissingKey          = errors.New("private key is missing")
	ErrCountOutOfRange     = errors.New("count reported by the contract exceeds the enumeration limit")
)

// Event is an on-chain occasion as returned by getOccasion.
type Event struct {
	ID               uint64 `json:"id"`
	Title            string `json:"title"`
	PriceWei         string `json:"priceWei"`
	Price            string `json:"price"`
	TicketsRemaining uint64 `json:"ticketsRemaining"`
	MaxTickets       uint64 `json:"maxTickets"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	Location         string `json:"location"`
	Organizer        string `json:"organizer"`
	EventTimestamp   int64  `json:"eventTimestamp"`
	Canceled         bool   `json:"canceled"`
	Occurred         bool   `json:"occurred"`
	MaxResalePrice   string `json:"maxResalePrice"`
	ImageURL         string `json:"imageUrl,omitempty"`
}

// Ticket is a minted seat NFT.
type Ticket struct {
	TokenID    uint64 `json:"tokenId"`
	OccasionID uint64 `json:"occasionId"`
	SeatNumber uint64 `json:"seatNumber"`
}

// UnsignedTx is a contract call for a wallet to sign and send.
type UnsignedTx struct {
	To      string `json:"to"`
	Data    string `json:"data"`
	Value   string `json:"value"`
	ChainID int64  `json:"chainId"`
}

// ListParams are the arguments of the organizer's list call.
type ListParams struct {
	Title          string
	PriceWei       *big.Int
	MaxTickets     uint64
	Date           string
	Time           string
	Location       string
	EventTimestamp int64
	MaxResalePrice *big.Int
}

// IsRevert reports whether err came from a reverted contract execution
// rather than a transport failure.
func IsRevert(err error) bool {
	return err != nil && strings.Contains(err.Error(), "execution reverted")
}
