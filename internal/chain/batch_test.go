package chain

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type slowReader struct {
	mu       sync.Mutex
	calls    map[uint64]int
	inFlight int32
	peak     int32
	fail     map[uint64]bool
}

func (r *slowReader) GetOccasion(_ context.Context, id uint64) (*Event, error) {
	n := atomic.AddInt32(&r.inFlight, 1)
	defer atomic.AddInt32(&r.inFlight, -1)
	for {
		p := atomic.LoadInt32(&r.peak)
		if n <= p || atomic.CompareAndSwapInt32(&r.peak, p, n) {
			break
		}
	}

	r.mu.Lock()
	r.calls[id]++
	r.mu.Unlock()

	time.Sleep(5 * time.Millisecond)
	if r.fail[id] {
		return nil, errors.New("rpc timeout")
	}
	return &Event{ID: id}, nil
}

func TestFetchEvents_PartialAndBounded(t *testing.T) {
	reader := &slowReader{calls: map[uint64]int{}, fail: map[uint64]bool{3: true}}
	ids := []uint64{1, 2, 3, 4, 5, 6, 2, 1}

	batch := FetchEvents(context.Background(), reader, ids, 2)

	assert.Len(t, batch.Events, 5)
	assert.Len(t, batch.Failures, 1)
	assert.ErrorContains(t, batch.Failures[3], "rpc timeout")
	assert.Equal(t, uint64(6), batch.Events[6].ID)
	assert.LessOrEqual(t, atomic.LoadInt32(&reader.peak), int32(2))
	assert.Equal(t, 1, reader.calls[1])
	assert.Equal(t, 1, reader.calls[2])
}

func TestIsRevert(t *testing.T) {
	assert.True(t, IsRevert(errors.New("ownerOf: execution reverted: ERC721: invalid token ID")))
	assert.False(t, IsRevert(errors.New("dial tcp: connection refused")))
	assert.False(t, IsRevert(nil))
}
