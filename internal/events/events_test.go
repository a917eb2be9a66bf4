package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventx/internal/chain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Unix(1_700_000_000, 0)

const (
	alice = "0x00000000000000000000000000000000000000Aa"
	bob   = "0x00000000000000000000000000000000000000Bb"
)

type fakeChain struct {
	total    uint64
	totalErr error
	events   map[uint64]*chain.Event
	errs     map[uint64]error
}

func (f *fakeChain) TotalOccasions(context.Context) (uint64, error) {
	return f.total, f.totalErr
}

func (f *fakeChain) GetOccasion(_ context.Context, id uint64) (*chain.Event, error) {
	if err := f.errs[id]; err != nil {
		return nil, err
	}
	if ev, ok := f.events[id]; ok {
		return ev, nil
	}
	return nil, chain.ErrEventNotFound
}

type fakeImages map[uint64]string

func (f fakeImages) Get(_ context.Context, id uint64) (string, error) {
	if url, ok := f[id]; ok {
		return url, nil
	}
	return "", errors.New("image not found")
}

func (f fakeImages) GetMany(_ context.Context, ids []uint64) map[uint64]string {
	out := map[uint64]string{}
	for _, id := range ids {
		if url, ok := f[id]; ok {
			out[id] = url
		}
	}
	return out
}

func sampleChain() *fakeChain {
	return &fakeChain{
		total: 4,
		events: map[uint64]*chain.Event{
			1: {ID: 1, Title: "Rooftop Jazz", Location: "Lisbon", Organizer: alice, EventTimestamp: now.Unix() + 3600},
			2: {ID: 2, Title: "Block Party", Location: "Berlin", Organizer: bob, EventTimestamp: now.Unix() - 3600},
			4: {ID: 4, Title: "Jazz Brunch", Location: "Paris", Organizer: alice, EventTimestamp: now.Unix() + 7200, Canceled: true},
		},
		errs: map[uint64]error{3: errors.New("rpc timeout")},
	}
}

func newTestService(reader ChainReader, images ImageStore) *service {
	svc := NewService(reader, images, 2).(*service)
	svc.now = func() time.Time { return now }
	return svc
}

func TestStatusOf(t *testing.T) {
	future := now.Unix() + 1
	cases := []struct {
		name string
		ev   chain.Event
		want Status
	}{
		{"upcoming", chain.Event{EventTimestamp: future}, StatusUpcoming},
		{"started", chain.Event{EventTimestamp: now.Unix()}, StatusAwaiting},
		{"occurred", chain.Event{EventTimestamp: now.Unix() - 10, Occurred: true}, StatusEnded},
		{"canceled wins", chain.Event{EventTimestamp: future, Canceled: true, Occurred: true}, StatusCanceled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusOf(&tc.ev, now))
		})
	}
}

func TestGetAllEvents_PartialResults(t *testing.T) {
	svc := newTestService(sampleChain(), fakeImages{1: "https://img.example/1.png"})

	list, err := svc.GetAllEvents(context.Background(), EventListQuery{})
	require.NoError(t, err)

	assert.Equal(t, uint64(4), list.Total)
	require.Len(t, list.Events, 3)
	assert.Equal(t, []uint64{1, 2, 4}, []uint64{list.Events[0].ID, list.Events[1].ID, list.Events[2].ID})
	assert.Equal(t, "https://img.example/1.png", list.Events[0].ImageURL)
	assert.Equal(t, StatusAwaiting, list.Events[1].Status)
	require.Len(t, list.Failures, 1)
	assert.Equal(t, uint64(3), list.Failures[0].EventID)
	assert.Contains(t, list.Failures[0].Error, "rpc timeout")
}

func TestGetAllEvents_Filters(t *testing.T) {
	svc := newTestService(sampleChain(), nil)
	ctx := context.Background()

	byOrganizer, err := svc.GetAllEvents(ctx, EventListQuery{Organizer: "0x00000000000000000000000000000000000000AA"})
	require.NoError(t, err)
	assert.Equal(t, 2, byOrganizer.Count)

	bySearch, err := svc.GetAllEvents(ctx, EventListQuery{Search: "jazz"})
	require.NoError(t, err)
	assert.Equal(t, 2, bySearch.Count)

	limited, err := svc.GetAllEvents(ctx, EventListQuery{Search: "jazz", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, limited.Count)

	upcoming, err := svc.GetUpcomingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, upcoming.Events, 1)
	assert.Equal(t, uint64(1), upcoming.Events[0].ID)
}

func TestGetAllEvents_TotalFails(t *testing.T) {
	svc := newTestService(&fakeChain{totalErr: errors.New("dial tcp")}, nil)

	_, err := svc.GetAllEvents(context.Background(), EventListQuery{})

	assert.ErrorContains(t, err, "dial tcp")
}

func TestGetEventByID_DoesNotMutateSource(t *testing.T) {
	fc := sampleChain()
	svc := newTestService(fc, fakeImages{2: "https://img.example/2.png"})

	view, err := svc.GetEventByID(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, "https://img.example/2.png", view.ImageURL)
	assert.Empty(t, fc.events[2].ImageURL)
}

func serve(t *testing.T, svc Service, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	SetupEventRoutes(engine.Group("/api/v1"), NewController(svc))

	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return rr, body
}

func TestController(t *testing.T) {
	svc := newTestService(sampleChain(), nil)

	rr, body := serve(t, svc, "/api/v1/events/1")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Rooftop Jazz", body["data"].(map[string]interface{})["title"])
	assert.Equal(t, "UPCOMING", body["data"].(map[string]interface{})["status"])

	rr, _ = serve(t, svc, "/api/v1/events/9")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = serve(t, svc, "/api/v1/events/abc")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = serve(t, svc, "/api/v1/events?status=SOLD_OUT")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, body = serve(t, svc, "/api/v1/events/upcoming?limit=nope")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.EqualValues(t, 1, body["data"].(map[string]interface{})["count"])
}

func TestGetAllEvents_RejectsImplausibleTotal(t *testing.T) {
	huge := &fakeChain{total: ^uint64(0)}
	svc := newTestService(huge, nil)

	_, err := svc.GetAllEvents(context.Background(), EventListQuery{})
	assert.ErrorIs(t, err, chain.ErrCountOutOfRange)

	rr, body := serve(t, svc, "/api/v1/events")
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, body["message"], "enumeration limit")

	small := newTestService(sampleChain(), nil)
	small.SetMaxItems(3)
	_, err = small.GetAllEvents(context.Background(), EventListQuery{})
	assert.ErrorIs(t, err, chain.ErrCountOutOfRange)
	small.SetMaxItems(4)
	_, err = small.GetAllEvents(context.Background(), EventListQuery{})
	assert.NotErrorIs(t, err, chain.ErrCountOutOfRange)
}
