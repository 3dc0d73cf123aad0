package pricebook

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartdeal/backend-quote/internal/common"
	"github.com/smartdeal/backend-quote/internal/obs"
	"github.com/smartdeal/backend-quote/internal/quote"
)

// Handler exposes pricebook read and admin update endpoints.
type Handler struct {
	Service *Service
}

// GetConfig handles GET /api/v1/config.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Service.Config(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": cfg})
}

// GetCatalog handles GET /api/v1/{section} for the three catalog sections.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	items, err := h.Service.Catalog(r.Context(), section)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": items})
}

// PutCatalog handles PUT /api/v1/{section}. Admin only.
func (h *Handler) PutCatalog(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	var items []quote.Item
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload", nil)
		return
	}
	if err := h.Service.SetCatalog(r.Context(), section, items); err != nil {
		obs.CountPricebookUpdate(section, "error")
		common.WriteError(w, err)
		return
	}
	obs.CountPricebookUpdate(section, "ok")
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"success": true}})
}

// GetScales handles GET /api/v1/scales.
func (h *Handler) GetScales(w http.ResponseWriter, r *http.Request) {
	scales, err := h.Service.Scales(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": scales})
}

// PutScales handles PUT /api/v1/scales. Admin only.
func (h *Handler) PutScales(w http.ResponseWriter, r *http.Request) {
	var scales quote.Scales
	if err := json.NewDecoder(r.Body).Decode(&scales); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload", nil)
		return
	}
	if err := h.Service.SetScales(r.Context(), scales); err != nil {
		obs.CountPricebookUpdate(KeyScales, "error")
		common.WriteError(w, err)
		return
	}
	obs.CountPricebookUpdate(KeyScales, "ok")
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"success": true}})
}

// GetFactors handles GET /api/v1/factors.
func (h *Handler) GetFactors(w http.ResponseWriter, r *http.Request) {
	factors, err := h.Service.Factors(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": factors})
}

// PutFactors handles PUT /api/v1/factors. Admin only.
func (h *Handler) PutFactors(w http.ResponseWriter, r *http.Request) {
	var factors quote.FactorTable
	if err := json.NewDecoder(r.Body).Decode(&factors); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload", nil)
		return
	}
	if err := h.Service.SetFactors(r.Context(), factors); err != nil {
		obs.CountPricebookUpdate(KeyFactors, "error")
		common.WriteError(w, err)
		return
	}
	obs.CountPricebookUpdate(KeyFactors, "ok")
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"success": true}})
}
