package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JMURv/club-auth/internal/ctrl"
	"github.com/JMURv/club-auth/internal/dto"
	md "github.com/JMURv/club-auth/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func withSessionID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestHandler_ListSessions(t *testing.T) {
	uid := uuid.New()

	t.Run("Success", func(t *testing.T) {
		h, c, _ := newTestHandler(t)

		c.EXPECT().
			ListSessions(gomock.Any(), uid).
			Return([]*md.Session{{ID: 1, UserID: uid}, {ID: 2, UserID: uid}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/auth/sessions", nil)
		w := httptest.NewRecorder()
		h.listSessions(w, withUID(req, uid))

		assert.Equal(t, http.StatusOK, w.Code)

		res := struct {
			Data dto.SessionsResponse `json:"data"`
		}{}
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&res))
		assert.Len(t, res.Data.Data, 2)
	})

	t.Run("StoreTimeout", func(t *testing.T) {
		h, c, _ := newTestHandler(t)

		c.EXPECT().ListSessions(gomock.Any(), uid).Return(nil, ctrl.ErrStoreTimeout)

		req := httptest.NewRequest(http.MethodGet, "/auth/sessions", nil)
		w := httptest.NewRecorder()
		h.listSessions(w, withUID(req, uid))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "STORE_TIMEOUT", decodeErr(t, w.Body).Code)
	})
}

func TestHandler_RevokeSession(t *testing.T) {
	uid := uuid.New()

	t.Run("Success", func(t *testing.T) {
		h, c, _ := newTestHandler(t)

		c.EXPECT().RevokeSession(gomock.Any(), uid, uint64(7)).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/auth/sessions/7", nil)
		w := httptest.NewRecorder()
		h.revokeSession(w, withSessionID(withUID(req, uid), "7"))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NonNumericID", func(t *testing.T) {
		h, _, _ := newTestHandler(t)

		req := httptest.NewRequest(http.MethodDelete, "/auth/sessions/abc", nil)
		w := httptest.NewRecorder()
		h.revokeSession(w, withSessionID(withUID(req, uid), "abc"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_SESSION_ID", decodeErr(t, w.Body).Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		h, c, _ := newTestHandler(t)

		c.EXPECT().RevokeSession(gomock.Any(), uid, uint64(7)).Return(ctrl.ErrNotFound)

		req := httptest.NewRequest(http.MethodDelete, "/auth/sessions/7", nil)
		w := httptest.NewRecorder()
		h.revokeSession(w, withSessionID(withUID(req, uid), "7"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "SESSION_NOT_FOUND", decodeErr(t, w.Body).Code)
	})
}

func TestHandler_Stats(t *testing.T) {
	h, c, _ := newTestHandler(t)
	uid := uuid.New()

	c.EXPECT().
		GetStats(gomock.Any(), uid).
		Return(&md.SessionStats{Total: 5, Active: 2, Revoked: 3}, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/stats", nil)
	w := httptest.NewRecorder()
	h.stats(w, withUID(req, uid))

	assert.Equal(t, http.StatusOK, w.Code)

	res := struct {
		Data md.SessionStats `json:"data"`
	}{}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Equal(t, int64(2), res.Data.Active)
}

func TestHandler_Health(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		h, c, _ := newTestHandler(t)

		c.EXPECT().
			Health(gomock.Any()).
			Return(&dto.HealthResponse{Status: "healthy", Sessions: 11}, nil)

		req := httptest.NewRequest(http.MethodGet, "/auth/health", nil)
		w := httptest.NewRecorder()
		h.health(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unhealthy", func(t *testing.T) {
		h, c, _ := newTestHandler(t)

		c.EXPECT().
			Health(gomock.Any()).
			Return(&dto.HealthResponse{Status: "unhealthy"}, errors.New("database error"))

		req := httptest.NewRequest(http.MethodGet, "/auth/health", nil)
		w := httptest.NewRecorder()
		h.health(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
