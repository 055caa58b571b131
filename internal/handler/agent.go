package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/domain"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/repository"
)

// DailyStatReader reads stored summary rows. Implemented by
// repository.DailyStatRepository; faked in tests.
type DailyStatReader interface {
	Get(ctx context.Context, userID int64, date string) (*domain.DailyStat, error)
	ListRange(ctx context.Context, userID int64, from, to time.Time) ([]domain.DailyStat, error)
}

// AgentHandler lists agents and their stored daily summaries for the
// manager screens.
type AgentHandler struct {
	Users      repository.UserRepository
	DailyStats DailyStatReader
}

func (h AgentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/agents", h.list)
	r.Get("/agents/{id}/daily-stats", h.dailyStats)
	r.Get("/agents/{id}/daily-stats/export", h.exportDailyStats)
	r.Get("/agents/{id}/daily-stats/{date}", h.dailyStat)
}

func (h AgentHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Users.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, u := range items {
		resp = append(resp, map[string]any{
			"id":        u.ID,
			"name":      u.Name,
			"email":     u.Email,
			"phone":     u.Phone,
			"office_id": u.OfficeID,
			"role":      u.Role,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h AgentHandler) dailyStats(w http.ResponseWriter, r *http.Request) {
	id, from, to, ok := h.statRangeParams(w, r)
	if !ok {
		return
	}
	items, err := h.DailyStats.ListRange(r.Context(), id, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, s := range items {
		resp = append(resp, statJSON(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h AgentHandler) dailyStat(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	date := chi.URLParam(r, "date")
	if _, err := time.Parse(dateLayout, date); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	stat, err := h.DailyStats.Get(r.Context(), id, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no stats for that day")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, statJSON(*stat))
}

func (h AgentHandler) exportDailyStats(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	id, from, to, ok := h.statRangeParams(w, r)
	if !ok {
		return
	}
	items, err := h.DailyStats.ListRange(r.Context(), id, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	filenameSuffix := fmt.Sprintf("%d_%s_%s", id, from.Format("20060102"), to.Format("20060102"))

	switch format {
	case "csv":
		data, err := exportDailyStatsCSV(items)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"daily_stats_%s.csv\"", filenameSuffix))
		_, _ = w.Write(data)
	case "xlsx", "excel":
		data, err := exportDailyStatsXLSX(items)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"daily_stats_%s.xlsx\"", filenameSuffix))
		_, _ = w.Write(data)
	default:
		writeError(w, http.StatusBadRequest, "invalid format (use csv or xlsx)")
	}
}

// statRangeParams reads {id} plus the optional from/to pair, defaulting
// to the trailing 30 days. Reports false after writing the error.
func (h AgentHandler) statRangeParams(w http.ResponseWriter, r *http.Request) (id int64, from, to time.Time, ok bool) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, from, to, false
	}
	fromQ, toQ, err := dateRangeQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date filter")
		return 0, from, to, false
	}
	to = time.Now().UTC()
	from = to.AddDate(0, 0, -30)
	if fromQ != nil {
		from = *fromQ
	}
	if toQ != nil {
		to = *toQ
	}
	return id, from, to, true
}

func statJSON(s domain.DailyStat) map[string]any {
	return map[string]any{
		"date":             s.StatDate,
		"total_activities": s.TotalActivities,
		"phone_calls":      s.PhoneCalls,
		"showings":         s.Showings,
		"appointments":     s.Appointments,
		"new_properties":   s.NewProperties,
		"new_customers":    s.NewCustomers,
		"sales_closed":     s.SalesClosed,
		"rentals_closed":   s.RentalsClosed,
		"deposits_taken":   s.DepositsTaken,
		"total_commission": s.TotalCommission,
		"total_revenue":    s.TotalRevenue,
	}
}

var dailyStatColumns = []string{
	"Date", "Total Activities", "Phone Calls", "Showings", "Appointments",
	"New Properties", "New Customers", "Sales Closed", "Rentals Closed",
	"Deposits Taken", "Total Commission", "Total Revenue",
}

func dailyStatCells(s domain.DailyStat) []any {
	return []any{
		s.StatDate,
		s.TotalActivities,
		s.PhoneCalls,
		s.Showings,
		s.Appointments,
		s.NewProperties,
		s.NewCustomers,
		s.SalesClosed,
		s.RentalsClosed,
		s.DepositsTaken,
		s.TotalCommission,
		s.TotalRevenue,
	}
}

func exportDailyStatsCSV(items []domain.DailyStat) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write(dailyStatColumns)
	for _, s := range items {
		record := make([]string, 0, len(dailyStatColumns))
		for _, v := range dailyStatCells(s) {
			switch v := v.(type) {
			case string:
				record = append(record, v)
			case int:
				record = append(record, strconv.Itoa(v))
			case int64:
				record = append(record, strconv.FormatInt(v, 10))
			}
		}
		_ = w.Write(record)
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func exportDailyStatsXLSX(items []domain.DailyStat) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Daily Stats"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for c, v := range dailyStatColumns {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, s := range items {
		row := r + 2
		for c, v := range dailyStatCells(s) {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "J", 16)
	_ = f.SetColWidth(sheet, "K", "L", 18)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "L1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
