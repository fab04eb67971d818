package dto

import (
	"time"

	md "github.com/JMURv/club-auth/internal/models"
	"github.com/google/uuid"
)

type DeviceRequest struct {
	IP   string `json:"ip"`
	UA   string `json:"ua"`
	Info string `json:"deviceInfo"`
}

type EmailAndPasswordRequest struct {
	Email      string `json:"email"      validate:"required,email"`
	Password   string `json:"password"   validate:"required"`
	DeviceInfo string `json:"deviceInfo"`
}

type RefreshRequest struct {
	Refresh string `json:"refreshToken" validate:"required"`
}

type LogoutRequest struct {
	Refresh   string `json:"refreshToken"`
	LogoutAll bool   `json:"logoutAll"`
}

type LoginResponse struct {
	Access    string    `json:"accessToken"`
	Refresh   string    `json:"refreshToken"`
	ExpiresIn int64     `json:"expiresIn"`
	User      *UserInfo `json:"user"`
}

type UserInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

type RefreshResponse struct {
	Access    string    `json:"accessToken"`
	Refresh   string    `json:"refreshToken,omitempty"`
	ExpiresIn int64     `json:"expiresIn"`
	Timestamp time.Time `json:"timestamp"`
}

type LogoutResponse struct {
	Revoked   int64     `json:"revoked"`
	Timestamp time.Time `json:"timestamp"`
}

type SessionsResponse struct {
	Data []*md.Session `json:"data"`
}

type ValidateResponse struct {
	UID       uuid.UUID `json:"uid"`
	Role      string    `json:"role"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int64  `json:"sessions"`
}
