package user

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartdeal/backend-quote/internal/common"
)

// Handler exposes the admin account management endpoints.
type Handler struct {
	Service *Service
}

type upsertRequest struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

// List handles GET /api/v1/users.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.Service.List(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if views == nil {
		views = []View{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": views})
}

// Create handles POST /api/v1/users.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload", nil)
		return
	}
	view, err := h.Service.Create(r.Context(), Input{Username: req.Username, Password: req.Password, Role: req.Role})
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": view})
}

// Update handles PUT /api/v1/users/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload", nil)
		return
	}
	view, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), Input{Username: req.Username, Role: req.Role})
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

// ChangePassword handles POST /api/v1/users/{id}/password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload", nil)
		return
	}
	if err := h.Service.ChangePassword(r.Context(), chi.URLParam(r, "id"), req.Password); err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]bool{"updated": true}})
}

// Delete handles DELETE /api/v1/users/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, _ := common.UserID(r.Context())
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id"), callerID); err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]bool{"deleted": true}})
}
