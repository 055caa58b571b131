package stats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/domain"
)

// fakeStore is an in-memory Store with per-query error injection. All
// methods are mutex-guarded so the runner's worker pool can hit it
// concurrently.
type fakeStore struct {
	mu sync.Mutex

	agents        []Agent
	agentsErrOn   map[int]error // 1-based ListAgents call number -> error
	agentsCalls   int
	activities    map[string][]domain.Activity
	activitiesErr map[int64]error
	customers     map[int64][]time.Time
	customersErr  error
	properties    map[int64][]time.Time
	propertiesErr error
	sales         map[string][]domain.Sale
	salesErr      error
	deposits      map[string]int
	depositsErr   error

	upserts     map[string]domain.DailyStat
	upsertCalls int
	upsertErr   map[int64]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		agentsErrOn:   map[int]error{},
		activities:    map[string][]domain.Activity{},
		activitiesErr: map[int64]error{},
		customers:     map[int64][]time.Time{},
		properties:    map[int64][]time.Time{},
		sales:         map[string][]domain.Sale{},
		deposits:      map[string]int{},
		upserts:       map[string]domain.DailyStat{},
		upsertErr:     map[int64]error{},
	}
}

func unitKey(agentID int64, date string) string {
	return fmt.Sprintf("%d|%s", agentID, date)
}

func (f *fakeStore) ListAgents(ctx context.Context) ([]Agent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.agentsCalls++
	if err := f.agentsErrOn[f.agentsCalls]; err != nil {
		return nil, err
	}
	return f.agents, nil
}

func (f *fakeStore) ListActivitiesOn(ctx context.Context, agentID int64, date string) ([]domain.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.activitiesErr[agentID]; err != nil {
		return nil, err
	}
	return f.activities[unitKey(agentID, date)], nil
}

func (f *fakeStore) CountCustomersCreatedBetween(ctx context.Context, agentID int64, from, to time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.customersErr != nil {
		return 0, f.customersErr
	}
	return countBetween(f.customers[agentID], from, to), nil
}

func (f *fakeStore) CountPropertiesCreatedBetween(ctx context.Context, agentID int64, from, to time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.propertiesErr != nil {
		return 0, f.propertiesErr
	}
	return countBetween(f.properties[agentID], from, to), nil
}

func (f *fakeStore) ListSalesOn(ctx context.Context, agentID int64, date string) ([]domain.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.salesErr != nil {
		return nil, f.salesErr
	}
	return f.sales[unitKey(agentID, date)], nil
}

func (f *fakeStore) CountDepositsTakenOn(ctx context.Context, agentID int64, date string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.depositsErr != nil {
		return 0, f.depositsErr
	}
	return f.deposits[unitKey(agentID, date)], nil
}

func (f *fakeStore) UpsertDailyStat(ctx context.Context, stat domain.DailyStat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upsertCalls++
	if err := f.upsertErr[stat.UserID]; err != nil {
		return err
	}
	f.upserts[unitKey(stat.UserID, stat.StatDate)] = stat
	return nil
}

// countBetween mirrors the half-open window of the production queries.
func countBetween(created []time.Time, from, to time.Time) int {
	n := 0
	for _, t := range created {
		if !t.Before(from) && t.Before(to) {
			n++
		}
	}
	return n
}
