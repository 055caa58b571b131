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

type SaleHandler struct {
	Repo repository.SaleRepository
}

func (h SaleHandler) RegisterRoutes(r chi.Router) {
	r.Get("/sales", h.list)
	r.Post("/sales", h.create)
	r.Delete("/sales/{id}", h.delete)
}

func (h SaleHandler) list(w http.ResponseWriter, r *http.Request) {
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
	for _, s := range items {
		resp = append(resp, map[string]any{
			"id":                s.ID,
			"kind":              s.Kind,
			"date":              s.SaleDate.Format(dateLayout),
			"commission_amount": s.CommissionAmount,
			"sale_price":        s.SalePrice,
			"property_id":       s.PropertyID,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h SaleHandler) create(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		Kind             string `json:"kind"`
		Date             string `json:"date"`
		CommissionAmount int64  `json:"commission_amount"`
		SalePrice        int64  `json:"sale_price"`
		PropertyID       *int64 `json:"property_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	kind := domain.SaleKind(req.Kind)
	if kind != domain.SaleKindSale && kind != domain.SaleKindRental {
		writeError(w, http.StatusBadRequest, "kind must be sale or rental")
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
	saved, err := h.Repo.Create(r.Context(), user.ID, repository.CreateSaleInput{
		Kind:             kind,
		Date:             date,
		CommissionAmount: req.CommissionAmount,
		SalePrice:        req.SalePrice,
		PropertyID:       req.PropertyID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":   saved.ID,
		"kind": saved.Kind,
		"date": saved.SaleDate.Format(dateLayout),
	})
}

func (h SaleHandler) delete(w http.ResponseWriter, r *http.Request) {
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
