package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `db:"id"            json:"id"`
	Name         string    `db:"name"          json:"name"`
	Email        string    `db:"email"         json:"email"`
	Password     string    `db:"password"      json:"-"`
	Role         string    `db:"role"          json:"role"`
	IsActive     bool      `db:"is_active"     json:"isActive"`
	TokenVersion uint64    `db:"token_version" json:"-"`
	CreatedAt    time.Time `db:"created_at"    json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at"    json:"updatedAt"`
}
