package refunds

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const ts int64 = 1_700_000_000

func TestEligible(t *testing.T) {
	cases := []struct {
		name string
		ev   *EventState
		now  int64
		want bool
	}{
		{"absent", nil, ts + 1_000_000, false},
		{"canceled before start", &EventState{EventTimestamp: ts, Canceled: true}, ts - 10, true},
		{"canceled and occurred", &EventState{EventTimestamp: ts, Canceled: true, Occurred: true}, ts, true},
		{"occurred long ago", &EventState{EventTimestamp: ts, Occurred: true}, ts + 10_000_000, false},
		{"one second before window", &EventState{EventTimestamp: ts}, ts + 172_799, false},
		{"exactly at window", &EventState{EventTimestamp: ts}, ts + 172_800, false},
		{"one second past window", &EventState{EventTimestamp: ts}, ts + 172_801, true},
		{"before start", &EventState{EventTimestamp: ts}, ts - 1, false},
		// a zero timestamp is not special: the window counts from the epoch
		{"zero timestamp inside window", &EventState{EventTimestamp: 0}, 172_800, false},
		{"zero timestamp past window", &EventState{EventTimestamp: 0}, 172_801, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Eligible(tc.ev, time.Unix(tc.now, 0)))
		})
	}
}

func TestStatusOf(t *testing.T) {
	now := time.Unix(ts+172_801, 0)
	assert.Equal(t, StatusUnknown, StatusOf(nil, now))
	assert.Equal(t, StatusCanceled, StatusOf(&EventState{Canceled: true, Occurred: true}, now))
	assert.Equal(t, StatusEnded, StatusOf(&EventState{EventTimestamp: ts, Occurred: true}, now))
	assert.Equal(t, StatusRefundAvailable, StatusOf(&EventState{EventTimestamp: ts}, now))
	assert.Equal(t, StatusActive, StatusOf(&EventState{EventTimestamp: ts + 1}, time.Unix(ts, 0)))
}

type mockOracle struct {
	mock.Mock
}

func (m *mockOracle) IsRefundable(ctx context.Context, tokenID uint64) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func fixedResolver(source Source, oracle Oracle) *Resolver {
	r := NewResolver(source, oracle)
	r.now = func() time.Time { return time.Unix(ts+172_801, 0) }
	return r
}

func TestResolver_ContractWins(t *testing.T) {
	oracle := new(mockOracle)
	oracle.On("IsRefundable", mock.Anything, uint64(5)).Return(false, nil)

	d, err := fixedResolver(SourceContractWithFallback, oracle).
		Resolve(context.Background(), 5, &EventState{EventTimestamp: ts})

	require.NoError(t, err)
	assert.Equal(t, Decision{Eligible: false, Source: SourceContract}, d)
	oracle.AssertExpectations(t)
}

func TestResolver_FallbackOnError(t *testing.T) {
	oracle := new(mockOracle)
	oracle.On("IsRefundable", mock.Anything, uint64(5)).Return(false, errors.New("rpc down"))

	d, err := fixedResolver(SourceContractWithFallback, oracle).
		Resolve(context.Background(), 5, &EventState{EventTimestamp: ts})

	require.NoError(t, err)
	assert.Equal(t, Decision{Eligible: true, Source: SourceLocal}, d)
}

func TestResolver_ContractOnlyPropagatesError(t *testing.T) {
	oracle := new(mockOracle)
	oracle.On("IsRefundable", mock.Anything, uint64(5)).Return(false, errors.New("rpc down"))

	_, err := fixedResolver(SourceContract, oracle).
		Resolve(context.Background(), 5, &EventState{EventTimestamp: ts})

	assert.ErrorContains(t, err, "rpc down")
}

func TestResolver_LocalNeverCallsContract(t *testing.T) {
	oracle := new(mockOracle)

	d, err := fixedResolver(SourceLocal, oracle).
		Resolve(context.Background(), 5, &EventState{EventTimestamp: ts, Occurred: true})

	require.NoError(t, err)
	assert.Equal(t, Decision{Eligible: false, Source: SourceLocal}, d)
	oracle.AssertNotCalled(t, "IsRefundable", mock.Anything, mock.Anything)
}

func TestParseSource(t *testing.T) {
	s, err := ParseSource("")
	require.NoError(t, err)
	assert.Equal(t, SourceContractWithFallback, s)

	s, err = ParseSource("local")
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, s)

	_, err = ParseSource("oracle")
	assert.Error(t, err)
}
