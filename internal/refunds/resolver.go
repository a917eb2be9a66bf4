package refunds

import (
	"context"
	"fmt"
	"time"

	"eventx/pkg/logger"
)

type Source string

const (
	SourceContract             Source = "contract"
	SourceLocal                Source = "local"
	SourceContractWithFallback Source = "contract_with_fallback"
)

// ParseSource maps a configuration value to a Source, defaulting to
// contract_with_fallback.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceContract, SourceLocal, SourceContractWithFallback:
		return Source(s), nil
	case "":
		return SourceContractWithFallback, nil
	default:
		return "", fmt.Errorf("unknown refund eligibility source %q", s)
	}
}

// Oracle is the authoritative on-chain eligibility check.
type Oracle interface {
	IsRefundable(ctx context.Context, tokenID uint64) (bool, error)
}

// Decision is an eligibility answer and what produced it.
type Decision struct {
	Eligible bool   `json:"eligible"`
	Source   Source `json:"source"`
}

// Resolver decides eligibility from the contract, the local mirror, or both.
type Resolver struct {
	source Source
	oracle Oracle
	now    func() time.Time
	log    *logger.Logger
}

func NewResolver(source Source, oracle Oracle) *Resolver {
	return &Resolver{
		source: source,
		oracle: oracle,
		now:    time.Now,
		log:    logger.GetDefault(),
	}
}

// Resolve returns the eligibility of tokenID whose event is ev.
func (r *Resolver) Resolve(ctx context.Context, tokenID uint64, ev *EventState) (Decision, error) {
	local := Decision{Eligible: Eligible(ev, r.now()), Source: SourceLocal}

	if r.source == SourceLocal || r.oracle == nil {
		return local, nil
	}

	ok, err := r.oracle.IsRefundable(ctx, tokenID)
	if err == nil {
		return Decision{Eligible: ok, Source: SourceContract}, nil
	}
	if r.source == SourceContract {
		return Decision{}, fmt.Errorf("refund eligibility for token %d: %w", tokenID, err)
	}

	r.log.WarnContext(ctx, "isRefundable failed, using local rule",
		"token_id", tokenID, "error", err.Error())
	return local, nil
}

// Now exposes the resolver clock so callers compute badges consistently.
func (r *Resolver) Now() time.Time {
	return r.now()
}
