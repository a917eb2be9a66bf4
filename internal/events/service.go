package events

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"eventx/internal/chain"
)

// ChainReader is the contract surface event browsing needs.
type ChainReader interface {
	chain.OccasionReader
	TotalOccasions(ctx context.Context) (uint64, error)
}

// ImageStore overlays organizer-supplied images.
type ImageStore interface {
	Get(ctx context.Context, eventID uint64) (string, error)
	GetMany(ctx context.Context, eventIDs []uint64) map[uint64]string
}

type Service interface {
	GetAllEvents(ctx context.Context, query EventListQuery) (*EventList, error)
	GetUpcomingEvents(ctx context.Context, limit int) (*EventList, error)
	GetEventByID(ctx context.Context, id uint64) (*EventView, error)
	SetMaxItems(n uint64)
}

type service struct {
	chain       ChainReader
	images      ImageStore
	concurrency int
	maxItems    uint64
	now         func() time.Time
}

func NewService(reader ChainReader, images ImageStore, concurrency int) Service {
	return &service{
		chain:       reader,
		images:      images,
		concurrency: concurrency,
		maxItems:    chain.DefaultMaxEnumeration,
		now:         time.Now,
	}
}

// SetMaxItems overrides the largest event count a listing will walk.
func (s *service) SetMaxItems(n uint64) {
	s.maxItems = n
}

// GetAllEvents enumerates ids 1..totalOccasions. Ids that fail to load are
// listed in Failures; the rest are returned in id order.
func (s *service) GetAllEvents(ctx context.Context, query EventListQuery) (*EventList, error) {
	total, err := s.chain.TotalOccasions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read event count: %w", err)
	}
	if err := chain.CheckCount("totalOccasions", total, s.maxItems); err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, total)
	for id := uint64(1); id <= total; id++ {
		ids = append(ids, id)
	}
	batch := chain.FetchEvents(ctx, s.chain, ids, s.concurrency)

	var imageURLs map[uint64]string
	if s.images != nil {
		imageURLs = s.images.GetMany(ctx, ids)
	}

	now := s.now()
	list := &EventList{Total: total, Events: []EventView{}, Failures: []FetchFailure{}}
	for _, id := range ids {
		ev, ok := batch.Events[id]
		if !ok {
			if errors.Is(batch.Failures[id], chain.ErrEventNotFound) {
				continue
			}
			list.Failures = append(list.Failures, FetchFailure{EventID: id, Error: batch.Failures[id].Error()})
			continue
		}
		view := EventView{Event: *ev, Status: StatusOf(ev, now)}
		if url := imageURLs[id]; url != "" {
			view.ImageURL = url
		}
		if !matches(view, query) {
			continue
		}
		list.Events = append(list.Events, view)
	}

	sort.Slice(list.Failures, func(i, j int) bool { return list.Failures[i].EventID < list.Failures[j].EventID })
	if query.Limit > 0 && len(list.Events) > query.Limit {
		list.Events = list.Events[:query.Limit]
	}
	list.Count = len(list.Events)
	return list, nil
}

func (s *service) GetUpcomingEvents(ctx context.Context, limit int) (*EventList, error) {
	return s.GetAllEvents(ctx, EventListQuery{Status: string(StatusUpcoming), Limit: limit})
}

func (s *service) GetEventByID(ctx context.Context, id uint64) (*EventView, error) {
	ev, err := s.chain.GetOccasion(ctx, id)
	if err != nil {
		return nil, err
	}
	view := &EventView{Event: *ev, Status: StatusOf(ev, s.now())}
	if s.images != nil {
		if url, err := s.images.Get(ctx, id); err == nil {
			view.ImageURL = url
		}
	}
	return view, nil
}

func matches(v EventView, q EventListQuery) bool {
	if q.Organizer != "" && !strings.EqualFold(v.Organizer, q.Organizer) {
		return false
	}
	if q.Status != "" && string(v.Status) != q.Status {
		return false
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(v.Title), needle) &&
			!strings.Contains(strings.ToLower(v.Location), needle) {
			return false
		}
	}
	return true
}
