package images

import (
	"context"
	"errors"
	"strings"
	"time"

	"eventx/internal/shared/constants"
	"eventx/internal/shared/metrics"
	"eventx/pkg/cache"
	"eventx/pkg/logger"
)

var ErrImageNotFound = errors.New("event image not found")

type Service interface {
	SetCacheService(cacheService cache.Service)
	Get(ctx context.Context, eventID uint64) (string, error)
	GetMany(ctx context.Context, eventIDs []uint64) map[uint64]string
	Put(ctx context.Context, eventID uint64, url, updatedBy string) (*EventImage, bool, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	ttl          time.Duration
	now          func() time.Time
	log          *logger.Logger
}

// NewService builds the image store. Postgres is authoritative; the cache,
// when set, serves reads for at most ttl.
func NewService(repo Repository, ttl time.Duration) Service {
	if ttl <= 0 {
		ttl = constants.TTL_EVENT_IMAGE
	}
	return &service{
		repo: repo,
		ttl:  ttl,
		now:  time.Now,
		log:  logger.GetDefault(),
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) Get(ctx context.Context, eventID uint64) (string, error) {
	key := constants.BuildEventImageKey(eventID)

	if s.cacheService != nil {
		var cached EventImage
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			metrics.ObserveImageCache(true)
			return cached.URL, nil
		}
		metrics.ObserveImageCache(false)
	}

	img, err := s.repo.GetByEventID(ctx, eventID)
	if err != nil {
		return "", err
	}
	s.setCache(ctx, img)
	return img.URL, nil
}

// GetMany returns the known image URLs among eventIDs. Lookup failures
// only drop entries.
func (s *service) GetMany(ctx context.Context, eventIDs []uint64) map[uint64]string {
	out := make(map[uint64]string, len(eventIDs))
	missing := eventIDs

	if s.cacheService != nil && len(eventIDs) > 0 {
		keys := make([]string, len(eventIDs))
		cached := make([]EventImage, len(eventIDs))
		dests := make([]interface{}, len(eventIDs))
		for i, id := range eventIDs {
			keys[i] = constants.BuildEventImageKey(id)
			dests[i] = &cached[i]
		}

		hits, err := s.cacheService.GetMany(ctx, keys, dests)
		if err != nil {
			s.log.WarnContext(ctx, "image cache lookup failed", "error", err.Error())
		}
		missing = nil
		for i, id := range eventIDs {
			metrics.ObserveImageCache(hits != nil && hits[i])
			if hits != nil && hits[i] {
				out[id] = cached[i].URL
				continue
			}
			missing = append(missing, id)
		}
	}

	if len(missing) == 0 {
		return out
	}
	imgs, err := s.repo.GetByEventIDs(ctx, missing)
	if err != nil {
		s.log.WarnContext(ctx, "failed to load event images", "error", err.Error())
		return out
	}
	for i := range imgs {
		out[imgs[i].EventID] = imgs[i].URL
		s.setCache(ctx, &imgs[i])
	}
	return out
}

// Put stores url for eventID with the current time. The latest write wins;
// applied is false when a newer value was already stored.
func (s *service) Put(ctx context.Context, eventID uint64, url, updatedBy string) (*EventImage, bool, error) {
	img := &EventImage{
		EventID:   eventID,
		URL:       strings.TrimSpace(url),
		UpdatedBy: strings.ToLower(updatedBy),
		UpdatedAt: s.now().UTC(),
	}
	applied, err := s.repo.Upsert(ctx, img)
	if err != nil {
		return nil, false, err
	}
	if applied {
		s.setCache(ctx, img)
	} else if s.cacheService != nil {
		_ = s.cacheService.Delete(ctx, constants.BuildEventImageKey(eventID))
	}
	return img, applied, nil
}

func (s *service) setCache(ctx context.Context, img *EventImage) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Set(ctx, constants.BuildEventImageKey(img.EventID), img, s.ttl); err != nil {
		s.log.WarnContext(ctx, "failed to cache event image", "event_id", img.EventID, "error", err.Error())
	}
}
