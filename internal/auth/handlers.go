package auth

import (
	"context"
	"encoding/json"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/smartdeal/backend-quote/internal/common"
	"github.com/smartdeal/backend-quote/internal/obs"
)

// SessionResolver loads the safe user view for the authenticated session.
type SessionResolver interface {
	SessionUserByID(ctx context.Context, id string) (SessionUser, error)
}

// Handler exposes the authentication endpoints.
type Handler struct {
	Service  *Service
	Sessions SessionResolver
	Validate *validator.Validate
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(&req); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "username and password are required", nil)
			return
		}
	}

	result, err := h.Service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		obs.CountLogin("failure")
		common.WriteError(w, err)
		return
	}

	obs.CountLogin("success")
	common.JSON(w, http.StatusOK, map[string]any{"data": result})
}

// Me handles GET /api/v1/auth/me for a verified session.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing session", nil)
		return
	}

	if h.Sessions != nil {
		user, err := h.Sessions.SessionUserByID(r.Context(), userID)
		if err == nil {
			common.JSON(w, http.StatusOK, map[string]any{"data": user})
			return
		}
	}

	role, _ := common.Role(r.Context())
	common.JSON(w, http.StatusOK, map[string]any{"data": SessionUser{ID: userID, Role: role}})
}
