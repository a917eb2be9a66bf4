package tickets

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"eventx/internal/chain"
	"eventx/internal/refunds"
	"eventx/internal/session"
	"eventx/pkg/logger"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidAddress = errors.New("invalid wallet address")
	ErrTicketNotFound = errors.New("ticket not found")
	ErrNotTicketOwner = errors.New("ticket is not owned by the connected wallet")
	ErrNotEligible    = errors.New("ticket is not eligible for a refund")
	ErrWrongChain     = errors.New("wallet is not connected to the ticket chain")
	ErrNotConnected   = errors.New("wallet is not connected")
)

// ChainReader is the contract surface ticket aggregation needs.
type ChainReader interface {
	chain.OccasionReader
	BalanceOf(ctx context.Context, owner common.Address) (uint64, error)
	TokenOfOwnerByIndex(ctx context.Context, owner common.Address, index uint64) (uint64, error)
	TicketInfo(ctx context.Context, tokenID uint64) (chain.Ticket, error)
	OwnerOf(ctx context.Context, tokenID uint64) (common.Address, error)
	PackRefund(tokenID uint64) (chain.UnsignedTx, error)
}

// Eligibility resolves refund eligibility for one ticket.
type Eligibility interface {
	Resolve(ctx context.Context, tokenID uint64, ev *refunds.EventState) (refunds.Decision, error)
	Now() time.Time
}

type Service interface {
	ListByOwner(ctx context.Context, owner, origin string) (*TicketList, error)
	Verify(ctx context.Context, tokenID, eventID uint64) (*Verification, error)
	PrepareRefund(ctx context.Context, s session.Session, tokenID uint64) (*RefundTransaction, error)
	SetMaxItems(n uint64)
}

type service struct {
	chain       ChainReader
	eligibility Eligibility
	adapter     chain.Adapter
	concurrency int
	maxItems    uint64
	log         *logger.Logger
}

func NewService(reader ChainReader, eligibility Eligibility, adapter chain.Adapter, concurrency int) Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &service{
		chain:       reader,
		eligibility: eligibility,
		adapter:     adapter,
		concurrency: concurrency,
		maxItems:    chain.DefaultMaxEnumeration,
		log:         logger.GetDefault(),
	}
}

// SetMaxItems overrides the largest ticket balance ListByOwner will walk.
func (s *service) SetMaxItems(n uint64) {
	s.maxItems = n
}

// ListByOwner enumerates the owner's tokens, then joins each with its event.
// A failed enumeration fails the call; a failed event read only marks its entry.
func (s *service) ListByOwner(ctx context.Context, owner, origin string) (*TicketList, error) {
	if !common.IsHexAddress(owner) {
		return nil, ErrInvalidAddress
	}
	addr := common.HexToAddress(owner)

	owned, err := s.enumerate(ctx, addr)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(owned))
	for _, t := range owned {
		ids = append(ids, t.OccasionID)
	}
	batch := chain.FetchEvents(ctx, s.chain, ids, s.concurrency)

	views := make([]TicketView, len(owned))
	now := s.eligibility.Now()
	failures := 0
	for i, t := range owned {
		v := TicketView{
			TokenID:         t.TokenID,
			EventID:         t.OccasionID,
			SeatNumber:      t.SeatNumber,
			VerificationURL: VerificationURL(origin, t.TokenID, t.OccasionID),
		}
		v.QRCodeURL = QRCodeURL(v.VerificationURL)
		if ev, ok := batch.Events[t.OccasionID]; ok {
			v.Event = ev
		} else {
			failures++
			v.Error = errorText(batch.Failures[t.OccasionID])
		}
		v.Status = refunds.StatusOf(eventState(v.Event), now)
		views[i] = v
	}

	s.resolveRefunds(ctx, views)

	return &TicketList{
		Owner:    addr.Hex(),
		Count:    len(views),
		Failures: failures,
		Tickets:  views,
	}, nil
}

func (s *service) enumerate(ctx context.Context, owner common.Address) ([]chain.Ticket, error) {
	balance, err := s.chain.BalanceOf(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to read ticket balance: %w", err)
	}
	if err := chain.CheckCount("balanceOf", balance, s.maxItems); err != nil {
		return nil, err
	}

	owned := make([]chain.Ticket, balance)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := uint64(0); i < balance; i++ {
		g.Go(func() error {
			tokenID, err := s.chain.TokenOfOwnerByIndex(gctx, owner, i)
			if err != nil {
				return fmt.Errorf("failed to read token at index %d: %w", i, err)
			}
			info, err := s.chain.TicketInfo(gctx, tokenID)
			if err != nil {
				return fmt.Errorf("failed to read ticket %d: %w", tokenID, err)
			}
			owned[i] = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(owned, func(a, b int) bool { return owned[a].TokenID < owned[b].TokenID })
	return owned, nil
}

func (s *service) resolveRefunds(ctx context.Context, views []TicketView) {
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range views {
		g.Go(func() error {
			v := &views[i]
			d, err := s.eligibility.Resolve(ctx, v.TokenID, eventState(v.Event))
			if err != nil {
				v.RefundError = err.Error()
				return nil
			}
			v.Refund = &d
			return nil
		})
	}
	_ = g.Wait()
}

// Verify checks that tokenID exists and belongs to eventID.
func (s *service) Verify(ctx context.Context, tokenID, eventID uint64) (*Verification, error) {
	owner, err := s.chain.OwnerOf(ctx, tokenID)
	if err != nil {
		if chain.IsRevert(err) {
			return nil, fmt.Errorf("token %d: %w", tokenID, ErrTicketNotFound)
		}
		return nil, err
	}
	info, err := s.chain.TicketInfo(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	v := &Verification{
		TokenID:    tokenID,
		EventID:    eventID,
		Owner:      owner.Hex(),
		SeatNumber: info.SeatNumber,
		Valid:      info.OccasionID == eventID,
	}
	if !v.Valid {
		v.Reason = fmt.Sprintf("ticket belongs to event %d", info.OccasionID)
		return v, nil
	}

	ev, err := s.chain.GetOccasion(ctx, eventID)
	if err != nil {
		s.log.WarnContext(ctx, "verification event read failed", "event_id", eventID, "error", err.Error())
		return v, nil
	}
	v.Event = ev
	if ev.Canceled {
		v.Valid = false
		v.Reason = "event canceled"
	}
	return v, nil
}

// PrepareRefund returns the unsigned refund for a ticket the session holds.
func (s *service) PrepareRefund(ctx context.Context, sess session.Session, tokenID uint64) (*RefundTransaction, error) {
	if !sess.IsConnected() {
		return nil, ErrNotConnected
	}
	if s.adapter != nil && !s.adapter.CanTransact(chain.AdapterContext{Address: sess.Account, ChainID: sess.ChainID}) {
		return nil, ErrWrongChain
	}

	owner, err := s.chain.OwnerOf(ctx, tokenID)
	if err != nil {
		if chain.IsRevert(err) {
			return nil, fmt.Errorf("token %d: %w", tokenID, ErrTicketNotFound)
		}
		return nil, err
	}
	if !sess.Owns(owner.Hex()) {
		return nil, ErrNotTicketOwner
	}

	info, err := s.chain.TicketInfo(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	ev, err := s.chain.GetOccasion(ctx, info.OccasionID)
	if err != nil {
		return nil, err
	}

	decision, err := s.eligibility.Resolve(ctx, tokenID, eventState(ev))
	if err != nil {
		return nil, err
	}
	if !decision.Eligible {
		return nil, ErrNotEligible
	}

	tx, err := s.chain.PackRefund(tokenID)
	if err != nil {
		return nil, err
	}
	return &RefundTransaction{TokenID: tokenID, Decision: decision, Transaction: tx}, nil
}

func eventState(ev *chain.Event) *refunds.EventState {
	if ev == nil {
		return nil
	}
	return &refunds.EventState{
		EventTimestamp: ev.EventTimestamp,
		Canceled:       ev.Canceled,
		Occurred:       ev.Occurred,
	}
}

func errorText(err error) string {
	if err == nil {
		return "event unavailable"
	}
	return strings.TrimSpace(err.Error())
}
