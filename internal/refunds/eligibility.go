package refunds

import "time"

// RefundWindow is how long after the event start an unresolved event
// becomes refundable.
const RefundWindow = 48 * time.Hour

// EventState is the subset of an event that decides refund eligibility.
type EventState struct {
	EventTimestamp int64
	Canceled       bool
	Occurred       bool
}

type Status string

const (
	StatusUnknown         Status = "unknown"
	StatusCanceled        Status = "canceled"
	StatusEnded           Status = "ended"
	StatusRefundAvailable Status = "refund_available"
	StatusActive          Status = "active"
)

// Eligible reports whether a ticket for ev can be refunded at now.
// Cancellation wins over everything; an occurred event never refunds;
// otherwise the window must have strictly elapsed.
func Eligible(ev *EventState, now time.Time) bool {
	if ev == nil {
		return false
	}
	if ev.Canceled {
		return true
	}
	if ev.Occurred {
		return false
	}
	return now.Unix() > ev.EventTimestamp+int64(RefundWindow/time.Second)
}

// StatusOf returns the badge shown on a ticket card.
func StatusOf(ev *EventState, now time.Time) Status {
	switch {
	case ev == nil:
		return StatusUnknown
	case ev.Canceled:
		return StatusCanceled
	case ev.Occurred:
		return StatusEnded
	case Eligible(ev, now):
		return StatusRefundAvailable
	default:
		return StatusActive
	}
}
