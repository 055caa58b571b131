package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/domain"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/repository"
)

type fakeStatReader struct {
	stats map[string]domain.DailyStat // "userID|date"

	gotFrom, gotTo time.Time
}

func statKey(userID int64, date string) string {
	return fmt.Sprintf("%d|%s", userID, date)
}

func (f *fakeStatReader) Get(ctx context.Context, userID int64, date string) (*domain.DailyStat, error) {
	s, ok := f.stats[statKey(userID, date)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (f *fakeStatReader) ListRange(ctx context.Context, userID int64, from, to time.Time) ([]domain.DailyStat, error) {
	f.gotFrom, f.gotTo = from, to
	var items []domain.DailyStat
	for _, s := range f.stats {
		if s.UserID == userID {
			items = append(items, s)
		}
	}
	return items, nil
}

func newAgentRouter(reader *fakeStatReader) chi.Router {
	r := chi.NewRouter()
	AgentHandler{DailyStats: reader}.RegisterRoutes(r)
	return r
}

func seededStatReader() *fakeStatReader {
	return &fakeStatReader{stats: map[string]domain.DailyStat{
		statKey(7, "2024-01-10"): {
			UserID:          7,
			StatDate:        "2024-01-10",
			TotalActivities: 3,
			PhoneCalls:      2,
			Showings:        1,
			SalesClosed:     1,
			TotalCommission: 5000,
			TotalRevenue:    100000,
		},
	}}
}

func TestAgentDailyStatsRange(t *testing.T) {
	reader := seededStatReader()
	r := newAgentRouter(reader)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/agents/7/daily-stats?from=2024-01-01&to=2024-01-31", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), reader.gotFrom)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), reader.gotTo)

	var body struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "2024-01-10", body.Data[0]["date"])
	assert.EqualValues(t, 3, body.Data[0]["total_activities"])
}

func TestAgentDailyStatsRejectsBadDateFilter(t *testing.T) {
	r := newAgentRouter(seededStatReader())

	for _, target := range []string{
		"/agents/7/daily-stats?from=10.01.2024",
		"/agents/7/daily-stats?to=bogus",
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestAgentDailyStatSingleDay(t *testing.T) {
	r := newAgentRouter(seededStatReader())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/agents/7/daily-stats/2024-01-10", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2024-01-10", body.Data["date"])
	assert.EqualValues(t, 2, body.Data["phone_calls"])
}

func TestAgentDailyStatNotFound(t *testing.T) {
	r := newAgentRouter(seededStatReader())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/agents/7/daily-stats/2024-01-09", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/agents/7/daily-stats/not-a-date", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAgentDailyStatsExportCSV(t *testing.T) {
	r := newAgentRouter(seededStatReader())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/agents/7/daily-stats/export?from=2024-01-01&to=2024-01-31", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "daily_stats_7_20240101_20240131.csv")

	records, err := csv.NewReader(bytes.NewReader(rec.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Date", records[0][0])
	assert.Equal(t, "2024-01-10", records[1][0])
	assert.Equal(t, "3", records[1][1])
	assert.Equal(t, "5000", records[1][10])
}

func TestAgentDailyStatsExportXLSX(t *testing.T) {
	r := newAgentRouter(seededStatReader())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/agents/7/daily-stats/export?format=xlsx&from=2024-01-01&to=2024-01-31", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Daily Stats", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", got)

	got, err = f.GetCellValue("Daily Stats", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", got)

	got, err = f.GetCellValue("Daily Stats", "K2")
	require.NoError(t, err)
	assert.Equal(t, "5000", got)
}

func TestAgentDailyStatsExportRejectsUnknownFormat(t *testing.T) {
	r := newAgentRouter(seededStatReader())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/agents/7/daily-stats/export?format=pdf", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
