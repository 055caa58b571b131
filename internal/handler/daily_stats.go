package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/ports"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/stats"
)

// DailyStatsHandler triggers the daily activity aggregation. The route
// accepts POST only; OPTIONS preflight is answered by the CORS
// middleware and any other method gets 405 from the router.
type DailyStatsHandler struct {
	Runner ports.StatsRunner
	Logger *slog.Logger
}

type dailyStatsResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Results []stats.DayResult `json:"results"`
}

func (h DailyStatsHandler) RegisterRoutes(r chi.Router) {
	r.Post("/stats/daily", h.run)
}

func (h DailyStatsHandler) run(w http.ResponseWriter, r *http.Request) {
	days := 1
	if raw := r.URL.Query().Get("backfill_days"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 1 {
			writeRawJSON(w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("backfill_days must be a positive integer, got %q", raw),
			})
			return
		}
		days = int(parsed)
	}

	results, err := h.Runner.Run(r.Context(), days)
	if err != nil {
		h.Logger.Error("daily stats run failed", "backfill_days", days, "err", err)
		writeRawJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeRawJSON(w, http.StatusOK, dailyStatsResponse{
		Success: true,
		Message: fmt.Sprintf("daily stats computed for %d day(s)", days),
		Results: results,
	})
}
