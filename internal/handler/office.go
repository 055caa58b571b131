package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/repository"
)

type OfficeHandler struct {
	Repo repository.OfficeRepository
}

func (h OfficeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/offices", h.list)
	r.Post("/offices", h.create)
}

func (h OfficeHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, o := range items {
		resp = append(resp, map[string]any{
			"id":   o.ID,
			"name": o.Name,
			"city": o.City,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h OfficeHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		City string `json:"city"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	office, err := h.Repo.Create(r.Context(), req.Name, req.City)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":   office.ID,
		"name": office.Name,
		"city": office.City,
	})
}
