package chain

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultMaxEnumeration bounds how many event ids or owned tokens a single
// request walks.
const DefaultMaxEnumeration = 5000

// CheckCount rejects a contract-reported count above max before anything is
// allocated for it. max 0 disables the check.
func CheckCount(what string, n, max uint64) error {
	if max > 0 && n > max {
		return fmt.Errorf("%w: %s %d > %d", ErrCountOutOfRange, what, n, max)
	}
	return nil
}

// OccasionReader reads a single event.
type OccasionReader interface {
	GetOccasion(ctx context.Context, id uint64) (*Event, error)
}

// EventBatch is the outcome of fetching many events. An id is in exactly
// one of the two maps.
type EventBatch struct {
	Events   map[uint64]*Event
	Failures map[uint64]error
}

// FetchEvents reads ids with at most limit calls in flight. A failed read
// is recorded in Failures and never aborts the others.
func FetchEvents(ctx context.Context, reader OccasionReader, ids []uint64, limit int) EventBatch {
	if limit < 1 {
		limit = 1
	}
	batch := EventBatch{
		Events:   make(map[uint64]*Event, len(ids)),
		Failures: make(map[uint64]error),
	}

	var (
		mu   sync.Mutex
		seen = make(map[uint64]struct{}, len(ids))
		g    errgroup.Group
	)
	g.SetLimit(limit)

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		g.Go(func() error {
			ev, err := reader.GetOccasion(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				batch.Failures[id] = err
				return nil
			}
			batch.Events[id] = ev
			return nil
		})
	}
	_ = g.Wait()
	return batch
}
