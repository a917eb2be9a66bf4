package tickets

import (
	"eventx/internal/chain"
	"eventx/internal/refunds"
)

// TicketView is one entry of the My Tickets list.
type TicketView struct {
	TokenID         uint64            `json:"tokenId"`
	EventID         uint64            `json:"eventId"`
	SeatNumber      uint64            `json:"seatNumber"`
	Event           *chain.Event      `json:"event"`
	Error           string            `json:"error,omitempty"`
	Status          refunds.Status    `json:"status"`
	Refund          *refunds.Decision `json:"refund,omitempty"`
	RefundError     string            `json:"refundError,omitempty"`
	VerificationURL string            `json:"verificationUrl"`
	QRCodeURL       string            `json:"qrCodeUrl"`
}

// TicketList is the aggregated ticket set of one owner.
type TicketList struct {
	Owner    string       `json:"owner"`
	Count    int          `json:"count"`
	Failures int          `json:"failures"`
	Tickets  []TicketView `json:"tickets"`
}

// Verification is the on-chain check behind a ticket QR code.
type Verification struct {
	TokenID    uint64       `json:"tokenId"`
	EventID    uint64       `json:"eventId"`
	Owner      string       `json:"owner"`
	SeatNumber uint64       `json:"seatNumber"`
	Valid      bool         `json:"valid"`
	Reason     string       `json:"reason,omitempty"`
	Event      *chain.Event `json:"event,omitempty"`
}

// RefundTransaction is an unsigned refund for the holder's wallet.
type RefundTransaction struct {
	TokenID     uint64           `json:"tokenId"`
	Decision    refunds.Decision `json:"decision"`
	Transaction chain.UnsignedTx `json:"transaction"`
}
