package organizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventx/internal/chain"
	"eventx/internal/events"
	"eventx/internal/images"
	"eventx/internal/notifications"
	"eventx/internal/session"
	"eventx/pkg/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// confirmScanDepth bounds how far below totalOccasions Confirm looks for the
// organizer's new event when others list concurrently.
const confirmScanDepth = 16

var (
	ErrInvalidAddress  = errors.New("invalid wallet address")
	ErrNotConnected    = errors.New("wallet is not connected")
	ErrWrongChain      = errors.New("wallet is not connected to the ticket chain")
	ErrNotOrganizer    = errors.New("event is not organized by the connected wallet")
	ErrCreatedNotFound = errors.New("no event by the connected wallet found after the transaction")
	ErrStaleImage      = errors.New("a newer image is already stored for this event")
)

// ChainReader is the contract surface the organizer flows need.
type ChainReader interface {
	chain.OccasionReader
	TotalOccasions(ctx context.Context) (uint64, error)
	PackList(p chain.ListParams) (chain.UnsignedTx, error)
	WaitMinedHash(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

type ImageWriter interface {
	Put(ctx context.Context, eventID uint64, url, updatedBy string) (*images.EventImage, bool, error)
}

type Publisher interface {
	PublishEventCreated(ctx context.Context, msg notifications.EventCreated) error
}

type Service interface {
	SetPublisher(publisher Publisher)
	Dashboard(ctx context.Context, organizer string) (*Dashboard, error)
	PrepareEvent(ctx context.Context, s session.Session, req CreateEventRequest) (*PreparedEvent, error)
	ConfirmEvent(ctx context.Context, s session.Session, req ConfirmEventRequest) (*ConfirmedEvent, error)
	UpdateImage(ctx context.Context, s session.Session, eventID uint64, url string) (*images.EventImage, error)
}

type service struct {
	chain     ChainReader
	events    events.Service
	images    ImageWriter
	adapter   chain.Adapter
	publisher Publisher
	log       *logger.Logger
}

func NewService(reader ChainReader, browse events.Service, imageWriter ImageWriter, adapter chain.Adapter) Service {
	return &service{
		chain:   reader,
		events:  browse,
		images:  imageWriter,
		adapter: adapter,
		log:     logger.GetDefault(),
	}
}

func (s *service) SetPublisher(publisher Publisher) {
	s.publisher = publisher
}

func (s *service) Dashboard(ctx context.Context, organizer string) (*Dashboard, error) {
	if !common.IsHexAddress(organizer) {
		return nil, ErrInvalidAddress
	}
	list, err := s.events.GetAllEvents(ctx, events.EventListQuery{Organizer: organizer})
	if err != nil {
		return nil, err
	}
	return &Dashboard{Organizer: common.HexToAddress(organizer).Hex(), EventList: list}, nil
}

func (s *service) PrepareEvent(ctx context.Context, sess session.Session, req CreateEventRequest) (*PreparedEvent, error) {
	if err := s.gate(sess); err != nil {
		return nil, err
	}
	params, err := req.ListParams()
	if err != nil {
		return nil, err
	}
	tx, err := s.chain.PackList(params)
	if err != nil {
		return nil, err
	}
	return &PreparedEvent{
		Transaction:    tx,
		EventTimestamp: params.EventTimestamp,
		PriceWei:       params.PriceWei.String(),
		ImageURL:       strings.TrimSpace(req.ImageURL),
	}, nil
}

// ConfirmEvent waits for the organizer's list transaction, finds the event
// it created and stores the image URL for it.
func (s *service) ConfirmEvent(ctx context.Context, sess session.Session, req ConfirmEventRequest) (*ConfirmedEvent, error) {
	if err := s.gate(sess); err != nil {
		return nil, err
	}
	hash := common.HexToHash(req.TxHash)
	if _, err := s.chain.WaitMinedHash(ctx, hash); err != nil {
		return nil, err
	}

	ev, err := s.newestOwnedEvent(ctx, sess)
	if err != nil {
		return nil, err
	}

	if url := strings.TrimSpace(req.ImageURL); url != "" && s.images != nil {
		if _, _, err := s.images.Put(ctx, ev.ID, url, sess.Account); err != nil {
			s.log.WithError(err).Warn("failed to store event image", "event_id", ev.ID)
		}
	}
	s.log.LogEventCreated(ctx, ev.ID, ev.Organizer)

	if s.publisher != nil {
		msg := notifications.EventCreated{
			EventID:   ev.ID,
			Organizer: ev.Organizer,
			Title:     ev.Title,
			TxHash:    hash.Hex(),
		}
		if err := s.publisher.PublishEventCreated(ctx, msg); err != nil {
			s.log.WithError(err).Warn("failed to publish event created", "event_id", ev.ID)
		}
	}

	view, err := s.events.GetEventByID(ctx, ev.ID)
	if err != nil {
		return nil, err
	}
	return &ConfirmedEvent{TxHash: hash.Hex(), Event: view}, nil
}

func (s *service) newestOwnedEvent(ctx context.Context, sess session.Session) (*chain.Event, error) {
	total, err := s.chain.TotalOccasions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read event count: %w", err)
	}
	for id, scanned := total, 0; id >= 1 && scanned < confirmScanDepth; id, scanned = id-1, scanned+1 {
		ev, err := s.chain.GetOccasion(ctx, id)
		if err != nil {
			return nil, err
		}
		if sess.Owns(ev.Organizer) {
			return ev, nil
		}
	}
	return nil, ErrCreatedNotFound
}

func (s *service) UpdateImage(ctx context.Context, sess session.Session, eventID uint64, url string) (*images.EventImage, error) {
	if !sess.IsConnected() {
		return nil, ErrNotConnected
	}
	ev, err := s.chain.GetOccasion(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !sess.Owns(ev.Organizer) {
		return nil, ErrNotOrganizer
	}

	img, applied, err := s.images.Put(ctx, eventID, url, sess.Account)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrStaleImage
	}
	return img, nil
}

func (s *service) gate(sess session.Session) error {
	if !sess.IsConnected() {
		return ErrNotConnected
	}
	if s.adapter != nil && !s.adapter.CanTransact(chain.AdapterContext{Address: sess.Account, ChainID: sess.ChainID}) {
		return ErrWrongChain
	}
	return nil
}
