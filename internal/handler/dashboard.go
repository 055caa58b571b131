package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/repository"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/server/authctx"
)

type DashboardHandler struct {
	Repo repository.DashboardRepository
}

func (h DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/summary", h.summary)
	r.Get("/dashboard/top-agents", h.topAgents)
}

func (h DashboardHandler) summary(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	days := queryDays(r, 30)
	data, err := h.Repo.Summary(r.Context(), user.ID, days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_activities": data.TotalActivities,
		"phone_calls":      data.PhoneCalls,
		"showings":         data.Showings,
		"sales_closed":     data.SalesClosed,
		"rentals_closed":   data.RentalsClosed,
		"total_commission": data.TotalCommission,
		"total_revenue":    data.TotalRevenue,
	})
}

func (h DashboardHandler) topAgents(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if !user.IsManagerial() {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	days := queryDays(r, 30)
	items, err := h.Repo.TopAgents(r.Context(), user.OfficeID, days, 5)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, a := range items {
		resp = append(resp, map[string]any{
			"user_id":          a.UserID,
			"name":             a.Name,
			"closed":           a.SalesClosed,
			"total_commission": a.TotalCommission,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func queryDays(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
