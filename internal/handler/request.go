package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/domain"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/repository"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/server/authctx"
)

type RequestHandler struct {
	Repo repository.RequestRepository
}

func (h RequestHandler) RegisterRoutes(r chi.Router) {
	r.Get("/requests", h.list)
	r.Post("/requests", h.create)
	r.Put("/requests/{id}/status", h.updateStatus)
	r.Delete("/requests/{id}", h.delete)
}

func (h RequestHandler) list(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	items, err := h.Repo.List(r.Context(), user.ID, r.URL.Query().Get("status"), 200)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, req := range items {
		resp = append(resp, map[string]any{
			"id":          req.ID,
			"customer_id": req.CustomerID,
			"kind":        req.Kind,
			"min_price":   req.MinPrice,
			"max_price":   req.MaxPrice,
			"area":        req.Area,
			"status":      req.Status,
			"note":        req.Note,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h RequestHandler) create(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		CustomerID int64  `json:"customer_id"`
		Kind       string `json:"kind"`
		MinPrice   int64  `json:"min_price"`
		MaxPrice   int64  `json:"max_price"`
		Area       string `json:"area"`
		Note       string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.CustomerID == 0 {
		writeError(w, http.StatusBadRequest, "customer_id is required")
		return
	}
	kind := domain.RequestKind(req.Kind)
	if kind != domain.RequestBuy && kind != domain.RequestRent {
		writeError(w, http.StatusBadRequest, "kind must be buy or rent")
		return
	}
	saved, err := h.Repo.Create(r.Context(), user.ID, repository.CreateRequestInput{
		CustomerID: req.CustomerID,
		Kind:       kind,
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
		Area:       req.Area,
		Note:       req.Note,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":     saved.ID,
		"status": saved.Status,
	})
}

func (h RequestHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
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
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	status := domain.RequestStatus(req.Status)
	if status != domain.RequestOpen && status != domain.RequestMatched && status != domain.RequestClosed {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}
	if err := h.Repo.UpdateStatus(r.Context(), user.ID, id, status); err != nil {
		if err == repository.ErrNotFound {
			writeError(w, http.StatusNotFound, "request not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h RequestHandler) delete(w http.ResponseWriter, r *http.Request) {
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
