package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/JMURv/club-auth/internal/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			Issuer:          "club-auth-test",
			AccessSecret:    "access-secret",
			RefreshSecret:   "refresh-secret",
			AccessDuration:  time.Minute * 15,
			RefreshDuration: time.Hour * 24,
		},
	}
}

func TestCore_AccessRoundTrip(t *testing.T) {
	ctx := context.Background()
	core := New(testConfig())

	uid := uuid.New()
	token, err := core.NewAccess(ctx, uid, "admin", "coach@club.example")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := core.ParseAccess(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uid, claims.UID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "coach@club.example", claims.Email)
	assert.Equal(t, "club-auth-test", claims.Issuer)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestCore_RefreshRoundTrip(t *testing.T) {
	ctx := context.Background()
	core := New(testConfig())

	uid := uuid.New()
	token, expiresAt, err := core.NewRefresh(ctx, uid, 3)
	require.NoError(t, err)

	claims, err := core.ParseRefresh(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uid, claims.UID)
	assert.Equal(t, uint64(3), claims.Version)
	assert.NotEmpty(t, claims.ID)

	// The returned expiry is the expiry claim, not a recomputation.
	assert.Equal(t, claims.ExpiresAt.Time.Unix(), expiresAt.Unix())
}

func TestCore_RefreshTokensAreUnique(t *testing.T) {
	ctx := context.Background()
	core := New(testConfig())

	uid := uuid.New()
	first, _, err := core.NewRefresh(ctx, uid, 0)
	require.NoError(t, err)

	second, _, err := core.NewRefresh(ctx, uid, 0)
	require.NoError(t, err)

	// Same user, same version, still two distinct fingerprints.
	assert.NotEqual(t, first, second)
}

func TestCore_SecretsAreIsolated(t *testing.T) {
	ctx := context.Background()
	core := New(testConfig())

	uid := uuid.New()
	refresh, _, err := core.NewRefresh(ctx, uid, 0)
	require.NoError(t, err)

	_, err = core.ParseAccess(ctx, refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	access, err := core.NewAccess(ctx, uid, "member", "player@club.example")
	require.NoError(t, err)

	_, err = core.ParseRefresh(ctx, access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCore_ExpiredToken(t *testing.T) {
	ctx := context.Background()

	conf := testConfig()
	conf.Auth.AccessDuration = -time.Minute
	core := New(conf)

	token, err := core.NewAccess(ctx, uuid.New(), "member", "player@club.example")
	require.NoError(t, err)

	_, err = core.ParseAccess(ctx, token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestCore_TamperedToken(t *testing.T) {
	ctx := context.Background()
	core := New(testConfig())

	token, err := core.NewAccess(ctx, uuid.New(), "member", "player@club.example")
	require.NoError(t, err)

	_, err = core.ParseAccess(ctx, token+"x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = core.ParseAccess(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
