package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartdeal/backend-quote/internal/common"
)

func newTestRouter(t *testing.T) (*chi.Mux, *Service) {
	t.Helper()
	svc := NewService(newMemStore())
	h := &Handler{Service: svc}

	r := chi.NewRouter()
	r.Get("/users", h.List)
	r.Post("/users", h.Create)
	r.Put("/users/{id}", h.Update)
	r.Post("/users/{id}/password", h.ChangePassword)
	r.Delete("/users/{id}", h.Delete)
	return r, svc
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestUserEndpointsRoundTrip(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/users", `{"username":"alice","password":"longenough","role":"admin"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data View `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "alice", created.Data.Username)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "hash")

	rec = doJSON(t, r, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Data []View `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Data, 1)

	rec = doJSON(t, r, http.MethodPut, "/users/"+created.Data.ID, `{"username":"alice2","role":"user"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice2")

	rec = doJSON(t, r, http.MethodPost, "/users/"+created.Data.ID+"/password", `{"password":"replacement1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateUserDuplicateReturnsBadRequest(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/users", `{"username":"alice","password":"longenough"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/users", `{"username":"alice","password":"otherlongpass"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "USER_EXISTS")
}

func TestDeleteUserRefusesSelf(t *testing.T) {
	svc := NewService(newMemStore())
	h := &Handler{Service: svc}
	view, err := svc.Create(context.Background(), Input{Username: "alice", Password: "longenough"})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Delete("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		h.Delete(w, req.WithContext(common.WithUserID(req.Context(), view.ID)))
	})

	rec := doJSON(t, r, http.MethodDelete, "/users/"+view.ID, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUserNotFound(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := doJSON(t, r, http.MethodPut, "/users/u-404", `{"username":"ghost","role":"user"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
