package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/JMURv/club-auth/internal/auth"
	"github.com/JMURv/club-auth/internal/auth/jwt"
	"github.com/JMURv/club-auth/internal/config"
	"github.com/JMURv/club-auth/internal/ctrl"
	"github.com/JMURv/club-auth/internal/dto"
	"github.com/JMURv/club-auth/internal/hdl"
	mid "github.com/JMURv/club-auth/internal/hdl/http/middleware"
	"github.com/JMURv/club-auth/internal/hdl/http/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handler) RegisterAuthRoutes() {
	h.router.With(mid.Device).Post("/auth/login", h.login)
	h.router.Post("/auth/refresh", h.refresh)
	h.router.With(mid.Auth(h.au)).Post("/auth/logout", h.logout)
	h.router.With(mid.Auth(h.au)).Get("/auth/validate", h.validate)
}

// login godoc
//
//	@Summary		Authenticate using email & password
//	@Description	Issue an access/refresh token pair and persist the session
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			User-Agent	header		string						true	"Client User-Agent"
//	@Param			body		body		dto.EmailAndPasswordRequest	true	"Login credentials"
//	@Success		200			{object}	dto.LoginResponse
//	@Failure		400			{object}	utils.ErrorResponse
//	@Failure		401			{object}	utils.ErrorResponse
//	@Failure		500			{object}	utils.ErrorResponse
//	@Router			/auth/login [post]
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	d, ok := utils.ParseDeviceByRequest(r.Context())
	if !ok {
		utils.ErrResponse(w, http.StatusBadRequest, codeInternal, ErrNoDeviceInfo)
		return
	}

	req := &dto.EmailAndPasswordRequest{}
	if ok = utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	// The device name is client-declared; address and agent come from the
	// request itself.
	d.Info = req.DeviceInfo

	res, err := h.ctrl.Authenticate(r.Context(), &d, req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			utils.ErrResponse(w, http.StatusUnauthorized, codeCredentialsInvalid, err)
			return
		}

		if errors.Is(err, ctrl.ErrStoreTimeout) {
			utils.ErrResponse(w, http.StatusServiceUnavailable, codeStoreTimeout, err)
			return
		}

		utils.ErrResponse(w, http.StatusInternalServerError, codeInternal, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

// refresh godoc
//
//	@Summary		Refresh the access token
//	@Description	Validate the refresh token against its stored session and issue a new access token
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	dto.RefreshResponse
//	@Failure		400		{object}	utils.ErrorResponse
//	@Failure		401		{object}	utils.ErrorResponse
//	@Failure		500		{object}	utils.ErrorResponse
//	@Router			/auth/refresh [post]
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	req := &dto.RefreshRequest{}
	if err := decodeLenient(r, req); err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, codeRefreshRequired, hdl.ErrDecodeRequest)
		return
	}

	if req.Refresh == "" {
		if cookie, err := r.Cookie(config.RefreshCookieName); err == nil {
			req.Refresh = cookie.Value
		}
	}

	if req.Refresh == "" {
		utils.ErrResponse(w, http.StatusBadRequest, codeRefreshRequired, ErrRefreshRequired)
		return
	}

	res, err := h.ctrl.Refresh(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired),
			errors.Is(err, jwt.ErrInvalidToken),
			errors.Is(err, auth.ErrTokenRevoked):
			utils.ErrActionResponse(
				w, http.StatusUnauthorized,
				codeInvalidRefresh, actionLoginRequired, err,
			)
		case errors.Is(err, ctrl.ErrStoreTimeout):
			utils.ErrResponse(w, http.StatusServiceUnavailable, codeStoreTimeout, err)
		default:
			utils.ErrResponse(w, http.StatusInternalServerError, codeInternal, hdl.ErrInternal)
		}
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

// logout godoc
//
//	@Summary		Logout
//	@Description	Revoke one session by its refresh token, or all of the caller's sessions
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header		string				true	"Bearer access token"
//	@Param			body			body		dto.LogoutRequest	true	"Logout target"
//	@Success		200				{object}	dto.LogoutResponse
//	@Failure		400				{object}	utils.ErrorResponse
//	@Failure		404				{object}	utils.ErrorResponse	"session not found"
//	@Failure		500				{object}	utils.ErrorResponse
//	@Router			/auth/logout [post]
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	uid, ok := uidFromCtx(r)
	if !ok {
		utils.ErrResponse(w, http.StatusInternalServerError, codeInternal, hdl.ErrInternal)
		return
	}

	req := &dto.LogoutRequest{}
	if err := decodeLenient(r, req); err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, codeLogoutTarget, hdl.ErrDecodeRequest)
		return
	}

	if req.LogoutAll == (req.Refresh != "") {
		utils.ErrResponse(w, http.StatusBadRequest, codeLogoutTarget, ErrLogoutTarget)
		return
	}

	count, err := h.ctrl.Logout(r.Context(), uid, req)
	if err != nil {
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

	utils.SuccessResponse(
		w, http.StatusOK, dto.LogoutResponse{
			Revoked:   count,
			Timestamp: time.Now(),
		},
	)
}

// validate godoc
//
//	@Summary		Validate the access token
//	@Description	Echo the decoded principal and token expiry
//	@Tags			Authentication
//	@Produce		json
//	@Param			Authorization	header		string	true	"Bearer access token"
//	@Success		200				{object}	dto.ValidateResponse
//	@Failure		401				{object}	utils.ErrorResponse
//	@Router			/auth/validate [get]
func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	uid, ok := uidFromCtx(r)
	if !ok {
		utils.ErrResponse(w, http.StatusInternalServerError, codeInternal, hdl.ErrInternal)
		return
	}

	role, _ := r.Context().Value(config.RoleKey).(string)
	email, _ := r.Context().Value(config.EmailKey).(string)
	exp, _ := r.Context().Value(config.ExpKey).(time.Time)

	utils.SuccessResponse(
		w, http.StatusOK, dto.ValidateResponse{
			UID:       uid,
			Role:      role,
			Email:     email,
			ExpiresAt: exp,
		},
	)
}

func uidFromCtx(r *http.Request) (uuid.UUID, bool) {
	uid, ok := r.Context().Value(config.UidKey).(uuid.UUID)
	if !ok || uid == uuid.Nil {
		zap.L().Error(
			hdl.ErrFailedToGetUUID.Error(),
			zap.Any("uid", r.Context().Value(config.UidKey)),
		)
		return uuid.Nil, false
	}

	return uid, true
}
