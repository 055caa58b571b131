package stats

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAggregateUserCountsActivityBuckets(t *testing.T) {
	store := newFakeStore()
	store.activities[unitKey(7, "2024-01-10")] = []domain.Activity{
		{ID: 1, AgentID: 7, Category: domain.ActivityIncomingCall},
		{ID: 2, AgentID: 7, Category: domain.ActivityIncomingCall},
		{ID: 3, AgentID: 7, Category: domain.ActivitySiteViewing},
	}

	agg := Aggregator{Store: store, Logger: testLogger()}
	stat, err := agg.AggregateUser(context.Background(), Agent{ID: 7}, "2024-01-10")
	require.NoError(t, err)
	require.NotNil(t, stat)

	assert.Equal(t, int64(7), stat.UserID)
	assert.Equal(t, "2024-01-10", stat.StatDate)
	assert.Equal(t, 3, stat.TotalActivities)
	assert.Equal(t, 2, stat.PhoneCalls)
	assert.Equal(t, 1, stat.Showings)
	assert.Equal(t, 0, stat.Appointments)
}

func TestAggregateUserUnknownCategoryStillCountsTotal(t *testing.T) {
	store := newFakeStore()
	store.activities[unitKey(7, "2024-01-10")] = []domain.Activity{
		{Category: domain.ActivityOutgoingCall},
		{Category: domain.ActivityOfficeMeeting},
		{Category: "follow_up"},
	}

	agg := Aggregator{Store: store, Logger: testLogger()}
	stat, err := agg.AggregateUser(context.Background(), Agent{ID: 7}, "2024-01-10")
	require.NoError(t, err)

	assert.Equal(t, 3, stat.TotalActivities)
	assert.Equal(t, 1, stat.PhoneCalls)
	assert.Equal(t, 1, stat.Appointments)
	assert.Equal(t, 0, stat.Showings)
}

func TestAggregateUserSplitsSalesAndRentals(t *testing.T) {
	store := newFakeStore()
	store.sales[unitKey(7, "2024-01-10")] = []domain.Sale{
		{Kind: domain.SaleKindSale, CommissionAmount: 5000, SalePrice: 100000},
		{Kind: domain.SaleKindRental, CommissionAmount: 800, SalePrice: 0},
	}

	agg := Aggregator{Store: store, Logger: testLogger()}
	stat, err := agg.AggregateUser(context.Background(), Agent{ID: 7}, "2024-01-10")
	require.NoError(t, err)

	assert.Equal(t, 1, stat.SalesClosed)
	assert.Equal(t, 1, stat.RentalsClosed)
	assert.Equal(t, int64(5800), stat.TotalCommission)
	assert.Equal(t, int64(100000), stat.TotalRevenue)
}

func TestAggregateUserDayWindowExcludesFinalSecond(t *testing.T) {
	store := newFakeStore()
	store.properties[7] = []time.Time{
		time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 10, 12, 30, 0, 0, time.UTC),
		time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC), // outside the window
		time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 9, 23, 59, 58, 0, time.UTC),
	}

	agg := Aggregator{Store: store, Logger: testLogger()}
	stat, err := agg.AggregateUser(context.Background(), Agent{ID: 7}, "2024-01-10")
	require.NoError(t, err)

	assert.Equal(t, 2, stat.NewProperties)
}

func TestAggregateUserPartialFetchFailureZeroesContribution(t *testing.T) {
	store := newFakeStore()
	store.activities[unitKey(7, "2024-01-10")] = []domain.Activity{
		{Category: domain.ActivityIncomingCall},
	}
	store.customers[7] = []time.Time{time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)}
	store.customersErr = errors.New("customers table unavailable")
	store.sales[unitKey(7, "2024-01-10")] = []domain.Sale{
		{Kind: domain.SaleKindSale, CommissionAmount: 100, SalePrice: 1000},
	}

	agg := Aggregator{Store: store, Logger: testLogger()}
	stat, err := agg.AggregateUser(context.Background(), Agent{ID: 7}, "2024-01-10")
	require.NoError(t, err)

	assert.Equal(t, 0, stat.NewCustomers)
	assert.Equal(t, 1, stat.TotalActivities)
	assert.Equal(t, 1, stat.SalesClosed)
	assert.Equal(t, int64(100), stat.TotalCommission)
}

func TestAggregateUserActivityFetchFailureReturnsError(t *testing.T) {
	store := newFakeStore()
	store.activitiesErr[7] = errors.New("activities query timed out")

	agg := Aggregator{Store: store, Logger: testLogger()}
	stat, err := agg.AggregateUser(context.Background(), Agent{ID: 7}, "2024-01-10")
	require.Error(t, err)
	assert.Nil(t, stat)
}

func TestAggregateUserInvalidDate(t *testing.T) {
	agg := Aggregator{Store: newFakeStore(), Logger: testLogger()}
	stat, err := agg.AggregateUser(context.Background(), Agent{ID: 7}, "10-01-2024")
	require.Error(t, err)
	assert.Nil(t, stat)
}

func TestAggregateUserCarriesOfficeID(t *testing.T) {
	office := int64(3)
	agg := Aggregator{Store: newFakeStore(), Logger: testLogger()}
	stat, err := agg.AggregateUser(context.Background(), Agent{ID: 7, OfficeID: &office}, "2024-01-10")
	require.NoError(t, err)

	require.NotNil(t, stat.OfficeID)
	assert.Equal(t, office, *stat.OfficeID)
	assert.Equal(t, 0, stat.TotalActivities)
	assert.Equal(t, 0, stat.DepositsTaken)
}

func TestDayWindow(t *testing.T) {
	from, to := dayWindow(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC), to)
}
