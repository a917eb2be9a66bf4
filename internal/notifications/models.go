package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type MessageType string

const (
	MessageTypeTicketMinted MessageType = "TICKET_MINTED"
	MessageTypeEventCreated MessageType = "EVENT_CREATED"
)

// LifecycleMessage is the envelope published on the ticket lifecycle topic.
type LifecycleMessage struct {
	ID        uuid.UUID       `json:"id"`
	Type      MessageType     `json:"type"`
	ChainID   int64           `json:"chain_id"`
	Contract  string          `json:"contract"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// TicketMinted is published after a server-signed mint is confirmed.
type TicketMinted struct {
	TokenID    string `json:"token_id"`
	EventID    uint64 `json:"event_id"`
	SeatNumber uint64 `json:"seat_number"`
	PriceWei   string `json:"price_wei"`
	TxHash     string `json:"tx_hash"`
}

// EventCreated is published after an organizer's list transaction is confirmed.
type EventCreated struct {
	EventID   uint64 `json:"event_id"`
	Organizer string `json:"organizer"`
	Title     string `json:"title"`
	TxHash    string `json:"tx_hash"`
}

func (m *LifecycleMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
