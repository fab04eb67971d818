package config

import "time"

type ctxKey string

const (
	UidKey   ctxKey = "uid"
	RoleKey  ctxKey = "role"
	EmailKey ctxKey = "email"
	ExpKey   ctxKey = "exp"
	IpKey    ctxKey = "ip"
	UaKey    ctxKey = "ua"
)

const (
	DefaultCacheTime = time.Hour
	MinCacheTime     = time.Minute * 5
)

const (
	AccessCookieName  = "access"
	RefreshCookieName = "refresh"
)
