package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/domain"
)

func newTestRunner(store *fakeStore, workers int) *Runner {
	r := NewRunner(store, testLogger(), workers)
	r.now = func() time.Time {
		return time.Date(2024, 1, 11, 10, 30, 0, 0, time.UTC)
	}
	return r
}

func TestRunWalksBackwardsFromYesterday(t *testing.T) {
	store := newFakeStore()
	r := newTestRunner(store, 1)

	results, err := r.Run(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "2024-01-10", results[0].Date)
	assert.Equal(t, "2024-01-09", results[1].Date)
	assert.Equal(t, "2024-01-08", results[2].Date)
}

func TestRunDefaultsToOneDay(t *testing.T) {
	store := newFakeStore()
	r := newTestRunner(store, 1)

	results, err := r.Run(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "2024-01-10", results[0].Date)
}

func TestRunEnumerationFailureSkipsOnlyThatDay(t *testing.T) {
	store := newFakeStore()
	store.agents = []Agent{{ID: 1}, {ID: 2}}
	store.agentsErrOn[2] = errors.New("users query failed")
	r := newTestRunner(store, 2)

	results, err := r.Run(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 2, results[0].Users)
	assert.Equal(t, 2, results[0].Success)
	assert.Empty(t, results[0].Err)

	assert.Equal(t, 0, results[1].Users)
	assert.Equal(t, 0, results[1].Success)
	assert.Contains(t, results[1].Err, "users query failed")

	assert.Equal(t, 2, results[2].Users)
	assert.Equal(t, 2, results[2].Success)

	// The failed day wrote nothing; the others wrote every agent.
	assert.Len(t, store.upserts, 4)
	_, wroteFailedDay := store.upserts[unitKey(1, "2024-01-09")]
	assert.False(t, wroteFailedDay)
}

func TestRunNoAgentsStillReportsEveryDay(t *testing.T) {
	store := newFakeStore()
	r := newTestRunner(store, 4)

	results, err := r.Run(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, res := range results {
		assert.Equal(t, 0, res.Users)
		assert.Equal(t, 0, res.Success)
		assert.Empty(t, res.Err)
	}
	assert.Zero(t, store.upsertCalls)
}

func TestRunAgentFailureDoesNotAbortSiblings(t *testing.T) {
	store := newFakeStore()
	store.agents = []Agent{{ID: 1}, {ID: 2}, {ID: 3}}
	store.activitiesErr[2] = errors.New("activities unavailable")
	r := newTestRunner(store, 2)

	results, err := r.Run(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, 3, results[0].Users)
	assert.Equal(t, 2, results[0].Success)
	assert.Empty(t, results[0].Err)

	_, wrote := store.upserts[unitKey(2, "2024-01-10")]
	assert.False(t, wrote)
}

func TestRunUpsertFailureCountsAsUnitFailure(t *testing.T) {
	store := newFakeStore()
	store.agents = []Agent{{ID: 1}, {ID: 2}}
	store.upsertErr[1] = errors.New("write refused")
	r := newTestRunner(store, 2)

	results, err := r.Run(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, results[0].Users)
	assert.Equal(t, 1, results[0].Success)
}

func TestRunIsIdempotent(t *testing.T) {
	store := newFakeStore()
	store.agents = []Agent{{ID: 5}}
	store.activities[unitKey(5, "2024-01-10")] = []domain.Activity{
		{Category: domain.ActivityOutgoingCall},
	}
	r := newTestRunner(store, 1)

	_, err := r.Run(context.Background(), 1)
	require.NoError(t, err)
	first := store.upserts[unitKey(5, "2024-01-10")]

	_, err = r.Run(context.Background(), 1)
	require.NoError(t, err)

	assert.Len(t, store.upserts, 1)
	assert.Equal(t, first, store.upserts[unitKey(5, "2024-01-10")])
	assert.Equal(t, 2, store.upsertCalls)
}

func TestRunBoundedWorkersProcessAllAgents(t *testing.T) {
	store := newFakeStore()
	for i := int64(1); i <= 20; i++ {
		store.agents = append(store.agents, Agent{ID: i})
	}
	r := newTestRunner(store, 4)

	results, err := r.Run(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 20, results[0].Users)
	assert.Equal(t, 20, results[0].Success)
	assert.Len(t, store.upserts, 20)
}

func TestRunCrossingMidnightKeepsRequestedDays(t *testing.T) {
	store := newFakeStore()
	store.agents = []Agent{{ID: 1}}
	r := NewRunner(store, testLogger(), 1)

	// The clock rolls past midnight after the run starts.
	clock := time.Date(2024, 1, 11, 23, 59, 58, 0, time.UTC)
	r.now = func() time.Time {
		t := clock
		clock = clock.Add(5 * time.Second)
		return t
	}

	results, err := r.Run(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "2024-01-10", results[0].Date)
	assert.Equal(t, "2024-01-09", results[1].Date)
	assert.Equal(t, "2024-01-08", results[2].Date)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	store := newFakeStore()
	store.agents = []Agent{{ID: 1}}
	r := newTestRunner(store, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := r.Run(ctx, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}
