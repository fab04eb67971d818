package http

import "errors"

var ErrNoDeviceInfo = errors.New("missing device info")
var ErrRefreshRequired = errors.New("refresh token is required")
var ErrLogoutTarget = errors.New("provide either refreshToken or logoutAll")
var ErrSessionNotFound = errors.New("session not found")
var ErrInvalidSessionID = errors.New("invalid session id")

const (
	codeCredentialsInvalid = "CREDENTIALS_INVALID"
	codeRefreshRequired    = "REFRESH_TOKEN_REQUIRED"
	codeInvalidRefresh     = "INVALID_REFRESH_TOKEN"
	codeSessionNotFound    = "SESSION_NOT_FOUND"
	codeLogoutTarget       = "LOGOUT_TARGET_REQUIRED"
	codeInvalidSessionID   = "INVALID_SESSION_ID"
	codeStoreTimeout       = "STORE_TIMEOUT"
	codeInternal           = "INTERNAL_ERROR"

	actionLoginRequired = "login_required"
)
