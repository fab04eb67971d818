package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/JMURv/club-auth/internal/auth"
	"github.com/JMURv/club-auth/internal/ctrl"
	"github.com/JMURv/club-auth/internal/dto"
	"github.com/JMURv/club-auth/internal/hdl"
	mid "github.com/JMURv/club-auth/internal/hdl/http/middleware"
	"github.com/JMURv/club-auth/internal/hdl/http/utils"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) RegisterSessionRoutes() {
	h.router.With(mid.Auth(h.au)).Get("/auth/sessions", h.listSessions)
	h.router.With(mid.Auth(h.au)).Delete("/auth/sessions/{id}", h.revokeSession)
	h.router.With(mid.Auth(h.au)).Get("/auth/stats", h.stats)
	h.router.Get("/auth/health", h.health)
}

// listSessions godoc
//
//	@Summary		List active sessions
//	@Description	Return the caller's active sessions, newest first
//	@Tags			Sessions
//	@Produce		json
//	@Param			Authorization	header		string	true	"Bearer access token"
//	@Success		200				{object}	dto.SessionsResponse
//	@Failure		401				{object}	utils.ErrorResponse
//	@Failure		500				{object}	utils.ErrorResponse
//	@Router			/auth/sessions [get]
func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	uid, ok := uidFromCtx(r)
	if !ok {
		utils.ErrResponse(w, http.StatusInternalServerError, codeInternal, hdl.ErrInternal)
		return
	}

	res, err := h.ctrl.ListSessions(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ctrl.ErrStoreTimeout) {
			utils.ErrResponse(w, http.StatusServiceUnavailable, codeStoreTimeout, err)
			return
		}

		utils.ErrResponse(w, http.StatusInternalServerError, codeInternal, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, dto.SessionsResponse{Data: res})
}

// revokeSession godoc
//
//	@Summary		Revoke one session
//	@Description	Revoke a single session by id, only for the owning user
//	@Tags			Sessions
//	@Produce		json
//	@Param			Authorization	header		string	true	"Bearer access token"
//	@Param			id				path		int		true	"Session id"
//	@Success		200				"Session revoked"
//	@Failure		400				{object}	utils.ErrorResponse	"non-numeric id"
//	@Failure		404				{object}	utils.ErrorResponse	"session not found"
//	@Failure		500				{object}	utils.ErrorResponse
//	@Router			/auth/sessions/{id} [delete]
func (h *Handler) revokeSession(w http.ResponseWriter, r *http.Request) {
	uid, ok := uidFromCtx(r)
	if !ok {
		utils.ErrResponse(w, http.StatusInternalServerError, codeInternal, hdl.ErrInternal)
		return
	}

	sessionID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, codeInvalidSessionID, ErrInvalidSessionID)
		return
	}

	if err = h.ctrl.RevokeSession(r.Context(), uid, sessionID); err != nil {
		switch {
		case errors.Is(err, ctrl.ErrNotFound), errors.Is(err, auth.ErrUnauthorizedSession):
			utils.ErrResponse(w, http.StatusNotFound, codeSessionNotFound, ErrSessionNotFound)
		case errors.Is(err, ctrl.ErrStoreTimeout):
			utils.ErrResponse(w, http.StatusServiceUnavailable, codeStoreTimeout, err)
		default:
			utils.ErrResponse(w, http.StatusInternalServerError, codeInternal, hdl.ErrInternal)
		}
		return
	}

	utils.StatusResponse(w, http.StatusOK)
}

// stats godoc
//
//	@Summary		Session stats
//	@Description	Aggregate total/active/revoked counts for the caller
//	@Tags			Sessions
//	@Produce		json
//	@Param			Authorization	header		string	true	"Bearer access token"
//	@Success		200				{object}	models.SessionStats
//	@Failure		401				{object}	utils.ErrorResponse
//	@Failure		500				{object}	utils.ErrorResponse
//	@Router			/auth/stats [get]
func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	uid, ok := uidFromCtx(r)
	if !ok {
		utils.ErrResponse(w, http.StatusInternalServerError, codeInternal, hdl.ErrInternal)
		return
	}

	res, err := h.ctrl.GetStats(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ctrl.ErrStoreTimeout) {
			utils.ErrResponse(w, http.StatusServiceUnavailable, codeStoreTimeout, err)
			return
		}

		utils.ErrResponse(w, http.StatusInternalServerError, codeInternal, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

// health godoc
//
//	@Summary		Health check
//	@Description	Report store reachability and total session count
//	@Tags			Sessions
//	@Produce		json
//	@Success		200	{object}	dto.HealthResponse
//	@Failure		503	{object}	dto.HealthResponse
//	@Router			/auth/health [get]
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	res, err := h.ctrl.Health(r.Context())
	if err != nil {
		utils.SuccessResponse(w, http.StatusServiceUnavailable, res)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}
