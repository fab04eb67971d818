package utils

import (
	"context"
	"net/http"
	"strings"

	"github.com/JMURv/club-auth/internal/config"
	"github.com/JMURv/club-auth/internal/dto"
	"github.com/JMURv/club-auth/internal/hdl"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var validate = validator.New()

type Response struct {
	Data any `json:"data"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Action string `json:"action,omitempty"`
}

func SuccessResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(
		&Response{
			Data: data,
		},
	)
}

func StatusResponse(w http.ResponseWriter, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
}

func ErrResponse(w http.ResponseWriter, statusCode int, code string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(
		&ErrorResponse{
			Error: err.Error(),
			Code:  code,
		},
	)
}

// ErrActionResponse adds a machine-readable hint telling the client how
// to recover, e.g. silently refresh vs force a new login.
func ErrActionResponse(w http.ResponseWriter, statusCode int, code, action string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(
		&ErrorResponse{
			Error:  err.Error(),
			Code:   code,
			Action: action,
		},
	)
}

func ParseAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		ErrResponse(w, http.StatusBadRequest, "DECODE_REQUEST", hdl.ErrDecodeRequest)
		return false
	}

	if err := validate.Struct(dest); err != nil {
		ErrResponse(w, http.StatusBadRequest, "VALIDATION_FAILED", err)
		return false
	}

	return true
}

func ParseDeviceByRequest(ctx context.Context) (dto.DeviceRequest, bool) {
	ip, okIP := ctx.Value(config.IpKey).(string)
	ua, okUA := ctx.Value(config.UaKey).(string)
	if !okIP || !okUA || ip == "" {
		zap.L().Debug("failed to parse device info from request context")
		return dto.DeviceRequest{}, false
	}

	return dto.DeviceRequest{IP: ip, UA: ua}, true
}

// BearerToken pulls the access token from the Authorization header,
// falling back to the access cookie for browser clients.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer "), true
	}

	if cookie, err := r.Cookie(config.AccessCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	return "", false
}
