package quote

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	validator "github.com/go-playground/validator/v10"

	"github.com/smartdeal/backend-quote/internal/common"
	"github.com/smartdeal/backend-quote/internal/obs"
)

// TableSource supplies the current pricing tables for a computation.
type TableSource interface {
	Scales(ctx context.Context) (Scales, error)
	Factors(ctx context.Context) (FactorTable, error)
}

// Handler exposes the compute endpoints.
type Handler struct {
	Tables   TableSource
	Validate *validator.Validate
	Now      func() time.Time
}

type computeRequest struct {
	Sections    []Section `json:"sections"`
	DealDetails struct {
		CustomerName          string  `json:"customerName"`
		DistanceToInstall     float64 `json:"distanceToInstall" validate:"gte=0"`
		Term                  int     `json:"term" validate:"oneof=36 48 60"`
		Escalation            int     `json:"escalation" validate:"oneof=0 5 10 15"`
		AdditionalGrossProfit float64 `json:"additionalGrossProfit" validate:"gte=0"`
		Settlement            float64 `json:"settlement" validate:"gte=0"`
	} `json:"dealDetails"`
}

type settlementRequest struct {
	StartDate      string  `json:"startDate" validate:"required"`
	RentalAmount   float64 `json:"rentalAmount" validate:"required"`
	RentalType     string  `json:"rentalType" validate:"omitempty,oneof=starting current"`
	EscalationRate float64 `json:"escalationRate" validate:"gte=0"`
	RentalTerm     int     `json:"rentalTerm" validate:"gt=0"`
}

// Compute handles POST /api/v1/quote. The submitted session is combined
// with the server-side pricing tables and returned as a cost summary.
func (h *Handler) Compute(w http.ResponseWriter, r *http.Request) {
	if h.Tables == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "pricing tables not configured", nil)
		return
	}
	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(&req); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid deal details", err.Error())
			return
		}
	}

	scales, err := h.Tables.Scales(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "load scales", nil)
		return
	}
	factors, err := h.Tables.Factors(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "load factors", nil)
		return
	}

	session := Session{
		Sections: req.Sections,
		DealDetails: DealDetails{
			CustomerName:          req.DealDetails.CustomerName,
			DistanceToInstall:     req.DealDetails.DistanceToInstall,
			Term:                  req.DealDetails.Term,
			Escalation:            req.DealDetails.Escalation,
			AdditionalGrossProfit: req.DealDetails.AdditionalGrossProfit,
			Settlement:            req.DealDetails.Settlement,
		},
	}

	obs.CountQuoteCompute("ok")
	common.JSON(w, http.StatusOK, map[string]any{"data": Compute(session, scales, factors)})
}

// Settlement handles POST /api/v1/quote/settlement. The resulting total is
// written into the deal's settlement field by the caller; the server only
// reports it.
func (h *Handler) Settlement(w http.ResponseWriter, r *http.Request) {
	var req settlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(&req); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid settlement input", err.Error())
			return
		}
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "startDate must be YYYY-MM-DD", nil)
		return
	}

	basis := req.RentalType
	if basis == "" {
		basis = RentalStarting
	}

	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}

	result, err := EstimateSettlement(now, SettlementInput{
		StartDate:  startDate,
		Rental:     req.RentalAmount,
		Basis:      basis,
		Escalation: req.EscalationRate,
		TermMonths: req.RentalTerm,
	})
	if err != nil {
		obs.CountSettlementEstimate("invalid_input")
		common.JSONError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error(), nil)
		return
	}

	obs.CountSettlementEstimate("ok")
	common.JSON(w, http.StatusOK, map[string]any{"data": result})
}
