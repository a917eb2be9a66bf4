package events

import "eventx/internal/chain"

type EventListQuery struct {
	Search    string `form:"search"`
	Organizer string `form:"organizer" binding:"omitempty,eth_addr"`
	Status    string `form:"status" binding:"omitempty,oneof=UPCOMING AWAITING_RESOLUTION ENDED CANCELED"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

// EventView is an on-chain event with its derived status.
type EventView struct {
	chain.Event
	Status Status `json:"status"`
}

// FetchFailure is an event id that could not be read.
type FetchFailure struct {
	EventID uint64 `json:"eventId"`
	Error   string `json:"error"`
}

type EventList struct {
	Total    uint64         `json:"total"`
	Count    int            `json:"count"`
	Events   []EventView    `json:"events"`
	Failures []FetchFailure `json:"failures"`
}
