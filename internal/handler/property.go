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

type PropertyHandler struct {
	Repo repository.PropertyRepository
}

func (h PropertyHandler) RegisterRoutes(r chi.Router) {
	r.Get("/properties", h.list)
	r.Post("/properties", h.upsert)
	r.Get("/properties/{id}", h.get)
	r.Delete("/properties/{id}", h.delete)
}

func (h PropertyHandler) list(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	f := repository.PropertyFilter{
		Status: r.URL.Query().Get("status"),
		City:   r.URL.Query().Get("city"),
	}
	items, err := h.Repo.List(r.Context(), user.ID, f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, p := range items {
		resp = append(resp, propertyJSON(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h PropertyHandler) upsert(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		ID          *int64 `json:"id"`
		Title       string `json:"title"`
		Address     string `json:"address"`
		City        string `json:"city"`
		District    string `json:"district"`
		Price       int64  `json:"price"`
		Rooms       int    `json:"rooms"`
		Area        int    `json:"area"`
		Status      string `json:"status"`
		DepositDate string `json:"deposit_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Title == "" || req.City == "" {
		writeError(w, http.StatusBadRequest, "title and city are required")
		return
	}
	if req.Status == "" {
		req.Status = string(domain.ListingActive)
	}
	p := domain.Property{
		Title:    req.Title,
		Address:  req.Address,
		City:     req.City,
		District: req.District,
		Price:    req.Price,
		Rooms:    req.Rooms,
		Area:     req.Area,
		Status:   domain.ListingStatus(req.Status),
	}
	if req.ID != nil {
		p.ID = *req.ID
	}
	if req.DepositDate != "" {
		d, err := time.Parse(dateLayout, req.DepositDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid deposit_date")
			return
		}
		p.DepositDate = &d
	}
	saved, err := h.Repo.Upsert(r.Context(), user.ID, p)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, propertyJSON(*saved))
}

func (h PropertyHandler) get(w http.ResponseWriter, r *http.Request) {
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
	p, err := h.Repo.Get(r.Context(), user.ID, id)
	if err != nil {
		if err == repository.ErrNotFound {
			writeError(w, http.StatusNotFound, "property not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, propertyJSON(*p))
}

func (h PropertyHandler) delete(w http.ResponseWriter, r *http.Request) {
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

func propertyJSON(p domain.Property) map[string]any {
	out := map[string]any{
		"id":       p.ID,
		"title":    p.Title,
		"address":  p.Address,
		"city":     p.City,
		"district": p.District,
		"price":    p.Price,
		"rooms":    p.Rooms,
		"area":     p.Area,
		"status":   p.Status,
	}
	if p.DepositDate != nil {
		out["deposit_date"] = p.DepositDate.Format(dateLayout)
	}
	return out
}
