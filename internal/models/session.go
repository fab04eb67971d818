package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Session is a persisted refresh-token record. The raw token is never
// stored, only its sha256 fingerprint.
type Session struct {
	ID            uint64         `db:"id"             json:"id"`
	UserID        uuid.UUID      `db:"user_id"        json:"userId"`
	TokenHash     string         `db:"token_hash"     json:"-"`
	DeviceInfo    string         `db:"device_info"    json:"deviceInfo"`
	IP            string         `db:"ip_address"     json:"ipAddress"`
	UA            string         `db:"user_agent"     json:"userAgent"`
	IsRevoked     bool           `db:"is_revoked"     json:"isRevoked"`
	RevokedAt     sql.NullTime   `db:"revoked_at"     json:"-"`
	RevokedReason sql.NullString `db:"revoked_reason" json:"-"`
	ExpiresAt     time.Time      `db:"expires_at"     json:"expiresAt"`
	CreatedAt     time.Time      `db:"created_at"     json:"createdAt"`
}

type SessionStats struct {
	Total   int64 `db:"total"   json:"total"`
	Active  int64 `db:"active"  json:"active"`
	Revoked int64 `db:"revoked" json:"revoked"`
}
