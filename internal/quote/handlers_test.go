package quote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/smartdeal/backend-quote/internal/quote"
)

type stubTables struct {
	scales  quote.Scales
	factors quote.FactorTable
}

func (s stubTables) Scales(context.Context) (quote.Scales, error)       { return s.scales, nil }
func (s stubTables) Factors(context.Context) (quote.FactorTable, error) { return s.factors, nil }

func newHandler() *quote.Handler {
	return &quote.Handler{
		Tables:   stubTables{scales: quote.DefaultScales(), factors: quote.DefaultFactors()},
		Validate: validator.New(),
		Now:      func() time.Time { return time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func TestComputeHandler(t *testing.T) {
	body := `{
		"sections": [
			{"id":"hardware","items":[{"id":"h1","name":"Handset","cost":1000,"quantity":5,"isExtension":true}]},
			{"id":"connectivity","items":[]},
			{"id":"licensing","items":[]}
		],
		"dealDetails": {"customerName":"Acme","distanceToInstall":10,"term":60,"escalation":0,"additionalGrossProfit":0,"settlement":0}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quote", strings.NewReader(body))
	rr := httptest.NewRecorder()
	newHandler().Compute(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Data quote.CostSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, 5, resp.Data.ExtensionCount)
	require.Equal(t, resp.Data.FinanceAmount, resp.Data.TotalPayout)
	require.InDelta(t, resp.Data.TotalExVat*1.15, resp.Data.TotalIncVat, 1e-9)
}

func TestComputeHandlerRejectsBadTerm(t *testing.T) {
	body := `{"sections":[],"dealDetails":{"term":42,"escalation":0}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quote", strings.NewReader(body))
	rr := httptest.NewRecorder()
	newHandler().Compute(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSettlementHandler(t *testing.T) {
	body := `{"startDate":"2022-01-01","rentalAmount":1000,"rentalType":"starting","escalationRate":0,"rentalTerm":60}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quote/settlement", strings.NewReader(body))
	rr := httptest.NewRecorder()
	newHandler().Settlement(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Data quote.SettlementResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Years, 5)
	require.Greater(t, resp.Data.Total, 0.0)
}

func TestSettlementHandlerMissingStartDate(t *testing.T) {
	body := `{"rentalAmount":1000,"rentalTerm":60}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quote/settlement", strings.NewReader(body))
	rr := httptest.NewRecorder()
	newHandler().Settlement(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}
