package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/JMURv/club-auth/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

type Port interface {
	GetAccessTime() time.Time
	NewAccess(ctx context.Context, uid uuid.UUID, role, email string) (string, error)
	NewRefresh(ctx context.Context, uid uuid.UUID, version uint64) (string, time.Time, error)
	ParseAccess(ctx context.Context, tokenStr string) (AccessClaims, error)
	ParseRefresh(ctx context.Context, tokenStr string) (RefreshClaims, error)
}

type Core struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

type AccessClaims struct {
	UID   uuid.UUID `json:"uid"`
	Role  string    `json:"role"`
	Email string    `json:"email"`
	jwt.RegisteredClaims
}

// RefreshClaims carry a token-version counter for coarse invalidation
// and a random jti so two tokens for the same user never collide.
type RefreshClaims struct {
	UID     uuid.UUID `json:"uid"`
	Version uint64    `json:"version"`
	jwt.RegisteredClaims
}

func New(conf config.Config) *Core {
	return &Core{
		accessSecret:  []byte(conf.Auth.AccessSecret),
		refreshSecret: []byte(conf.Auth.RefreshSecret),
		issuer:        conf.Auth.Issuer,
		accessTTL:     conf.Auth.AccessDuration,
		refreshTTL:    conf.Auth.RefreshDuration,
	}
}

func (c *Core) GetAccessTime() time.Time {
	return time.Now().Add(c.accessTTL)
}

func (c *Core) NewAccess(ctx context.Context, uid uuid.UUID, role, email string) (string, error) {
	const op = "auth.NewAccess.jwt"
	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	signed, err := jwt.NewWithClaims(
		jwt.SigningMethodHS256, &AccessClaims{
			UID:   uid,
			Role:  role,
			Email: email,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(c.accessTTL)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				Issuer:    c.issuer,
			},
		},
	).SignedString(c.accessSecret)
	if err != nil {
		zap.L().Error(
			ErrWhileCreatingToken.Error(),
			zap.String("uid", uid.String()),
			zap.Error(err),
		)

		return "", ErrWhileCreatingToken
	}

	return signed, nil
}

// NewRefresh returns the signed token together with its expiry claim,
// the one value the session row must store.
func (c *Core) NewRefresh(ctx context.Context, uid uuid.UUID, version uint64) (string, time.Time, error) {
	const op = "auth.NewRefresh.jwt"
	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	expiresAt := time.Now().Add(c.refreshTTL)
	signed, err := jwt.NewWithClaims(
		jwt.SigningMethodHS256, &RefreshClaims{
			UID:     uid,
			Version: version,
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				ExpiresAt: jwt.NewNumericDate(expiresAt),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				Issuer:    c.issuer,
			},
		},
	).SignedString(c.refreshSecret)
	if err != nil {
		zap.L().Error(
			ErrWhileCreatingToken.Error(),
			zap.String("uid", uid.String()),
			zap.Error(err),
		)

		return "", time.Time{}, ErrWhileCreatingToken
	}

	return signed, expiresAt, nil
}

func (c *Core) ParseAccess(ctx context.Context, tokenStr string) (AccessClaims, error) {
	const op = "auth.ParseAccess.jwt"
	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	claims := AccessClaims{}
	token, err := jwt.ParseWithClaims(
		tokenStr, &claims, func(token *jwt.Token) (any, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, ErrUnexpectedSignMethod
			}

			return c.accessSecret, nil
		},
	)
	if err != nil {
		return claims, mapParseErr(op, err)
	}

	if !token.Valid {
		return claims, ErrInvalidToken
	}

	return claims, nil
}

func (c *Core) ParseRefresh(ctx context.Context, tokenStr string) (RefreshClaims, error) {
	const op = "auth.ParseRefresh.jwt"
	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	claims := RefreshClaims{}
	token, err := jwt.ParseWithClaims(
		tokenStr, &claims, func(token *jwt.Token) (any, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, ErrUnexpectedSignMethod
			}

			return c.refreshSecret, nil
		},
	)
	if err != nil {
		return claims, mapParseErr(op, err)
	}

	if !token.Valid {
		return claims, ErrInvalidToken
	}

	return claims, nil
}

// mapParseErr keeps expiry distinct from every other parse failure so
// callers can choose between silent refresh and forced re-login.
func mapParseErr(op string, err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrTokenExpired
	}

	zap.L().Debug(
		"failed to parse claims",
		zap.String("op", op),
		zap.Error(err),
	)

	return ErrInvalidToken
}
