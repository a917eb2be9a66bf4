package events

import (
	"time"

	"eventx/internal/chain"
)

type Status string

const (
	StatusUpcoming Status = "UPCOMING"
	// StatusAwaiting is a past event the contract has not marked occurred.
	StatusAwaiting Status = "AWAITING_RESOLUTION"
	StatusEnded    Status = "ENDED"
	StatusCanceled Status = "CANCELED"
)

func StatusOf(ev *chain.Event, now time.Time) Status {
	switch {
	case ev.Canceled:
		return StatusCanceled
	case ev.Occurred:
		return StatusEnded
	case now.Unix() >= ev.EventTimestamp:
		return StatusAwaiting
	default:
		return StatusUpcoming
	}
}
