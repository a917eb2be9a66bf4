package organizer

import (
	"eventx/internal/chain"
	"eventx/internal/events"
)

// PreparedEvent is the unsigned list transaction for the organizer's wallet.
type PreparedEvent struct {
	Transaction    chain.UnsignedTx `json:"transaction"`
	EventTimestamp int64            `json:"eventTimestamp"`
	PriceWei       string           `json:"priceWei"`
	ImageURL       string           `json:"imageUrl,omitempty"`
}

type Dashboard struct {
	Organizer string `json:"organizer"`
	*events.EventList
}

type ConfirmedEvent struct {
	TxHash string            `json:"txHash"`
	Event  *events.EventView `json:"event"`
}
