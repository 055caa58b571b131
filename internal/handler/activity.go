package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/domain"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/repository"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/server/authctx"
)

type ActivityHandler struct {
	Repo repository.ActivityRepository
}

func (h ActivityHandler) RegisterRoutes(r chi.Router) {
	r.Get("/activities", h.list)
	r.Post("/activities", h.create)
	r.Delete("/activities/{id}", h.delete)
}

func (h ActivityHandler) list(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	from, to, err := dateRangeQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date filter")
		return
	}
	items, err := h.Repo.List(r.Context(), user.ID, from, to, 200)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, a := range items {
		resp = append(resp, map[string]any{
			"id":          a.ID,
			"category":    a.Category,
			"date":        a.ActivityDate.Format(dateLayout),
			"customer_id": a.CustomerID,
			"property_id": a.PropertyID,
			"note":        a.Note,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ActivityHandler) create(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		Category   string `json:"category"`
		Date       string `json:"date"`
		CustomerID *int64 `json:"customer_id"`
		PropertyID *int64 `json:"property_id"`
		Note       string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Category == "" {
		writeError(w, http.StatusBadRequest, "category is required")
		return
	}
	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		date = parsed
	}
	id, err := h.Repo.Create(r.Context(), user.ID, repository.CreateActivityInput{
		Category:   domain.ActivityCategory(req.Category),
		Date:       date,
		CustomerID: req.CustomerID,
		PropertyID: req.PropertyID,
		Note:       req.Note,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id})
}

func (h ActivityHandler) delete(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repo.Delete(r.Context(), user.ID, id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
