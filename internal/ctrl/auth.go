package ctrl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JMURv/club-auth/internal/auth"
	"github.com/JMURv/club-auth/internal/dto"
	"github.com/JMURv/club-auth/internal/repo"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

const (
	reasonLogout    = "logout"
	reasonLogoutAll = "logout_all"
	reasonRevoked   = "user_revoked"
	reasonRotated   = "rotated"
)

func (c *Controller) Authenticate(
	ctx context.Context,
	d *dto.DeviceRequest,
	req *dto.EmailAndPasswordRequest,
) (*dto.LoginResponse, error) {
	const op = "auth.Authenticate.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	user, err := c.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// Indistinguishable from a wrong password to the caller.
			zap.L().Debug("login for unknown email", zap.String("op", op))
			return nil, auth.ErrInvalidCredentials
		}

		return nil, storeErr(err)
	}

	if !user.IsActive {
		zap.L().Info(
			"login attempt for inactive user",
			zap.String("op", op),
			zap.String("uid", user.ID.String()),
		)

		return nil, auth.ErrInvalidCredentials
	}

	if err = c.verifier.ComparePasswords([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	access, err := c.au.NewAccess(ctx, user.ID, user.Role, user.Email)
	if err != nil {
		return nil, err
	}

	refresh, refreshExp, err := c.au.NewRefresh(ctx, user.ID, user.TokenVersion)
	if err != nil {
		return nil, err
	}

	if _, err = c.repo.CreateSession(ctx, user.ID, refresh, refreshExp, d); err != nil {
		return nil, storeErr(err)
	}

	c.cache.InvalidateKeysByPattern(ctx, sessionKeyPattern(user.ID))

	if c.email != nil {
		go func() {
			if err := c.email.SendLoginNotification(user.Email, d); err != nil {
				zap.L().Debug("failed to send login notification", zap.Error(err))
			}
		}()
	}

	return &dto.LoginResponse{
		Access:    access,
		Refresh:   refresh,
		ExpiresIn: int64(time.Until(c.au.GetAccessTime()).Seconds()),
		User: &dto.UserInfo{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}

// Refresh checks the token signature before touching the store, then
// requires a matching active session row. By default only a new access
// token is issued; with rotation enabled the old session is revoked and
// replaced in the same call.
func (c *Controller) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.RefreshResponse, error) {
	const op = "auth.Refresh.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	claims, err := c.au.ParseRefresh(ctx, req.Refresh)
	if err != nil {
		return nil, err
	}

	session, err := c.repo.FindActiveSession(ctx, req.Refresh)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			zap.L().Info(
				"refresh with no active session",
				zap.String("op", op),
				zap.String("uid", claims.UID.String()),
			)

			return nil, auth.ErrTokenRevoked
		}

		return nil, storeErr(err)
	}

	user, err := c.repo.GetUserByID(ctx, claims.UID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, auth.ErrTokenRevoked
		}

		return nil, storeErr(err)
	}

	if user.TokenVersion != claims.Version {
		zap.L().Info(
			"refresh with stale token version",
			zap.String("op", op),
			zap.String("uid", user.ID.String()),
			zap.Uint64("got", claims.Version),
			zap.Uint64("want", user.TokenVersion),
		)

		return nil, auth.ErrTokenRevoked
	}

	access, err := c.au.NewAccess(ctx, user.ID, user.Role, user.Email)
	if err != nil {
		return nil, err
	}

	res := &dto.RefreshResponse{
		Access:    access,
		ExpiresIn: int64(time.Until(c.au.GetAccessTime()).Seconds()),
		Timestamp: time.Now(),
	}

	if c.rotate {
		rotated, rotatedExp, err := c.au.NewRefresh(ctx, user.ID, user.TokenVersion)
		if err != nil {
			return nil, err
		}

		// Revoke before create: a failure in between leaves the user with
		// no live session and a forced re-login, never with two.
		if err = c.repo.RevokeSession(ctx, session.ID, reasonRotated); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				// Lost the race against a concurrent revoke.
				return nil, auth.ErrTokenRevoked
			}

			return nil, storeErr(err)
		}

		d := &dto.DeviceRequest{Info: session.DeviceInfo, IP: session.IP, UA: session.UA}
		if _, err = c.repo.CreateSession(ctx, user.ID, rotated, rotatedExp, d); err != nil {
			return nil, storeErr(err)
		}

		c.cache.InvalidateKeysByPattern(ctx, sessionKeyPattern(user.ID))
		res.Refresh = rotated
	}

	return res, nil
}

func (c *Controller) Logout(ctx context.Context, uid uuid.UUID, req *dto.LogoutRequest) (int64, error) {
	const op = "auth.Logout.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if req.LogoutAll {
		count, err := c.repo.RevokeAllSessions(ctx, uid, reasonLogoutAll)
		if err != nil {
			return 0, storeErr(err)
		}

		if err = c.repo.BumpTokenVersion(ctx, uid); err != nil && !errors.Is(err, repo.ErrNotFound) {
			return 0, storeErr(err)
		}

		c.cache.InvalidateKeysByPattern(ctx, sessionKeyPattern(uid))
		return count, nil
	}

	session, err := c.repo.FindActiveSession(ctx, req.Refresh)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, ErrNotFound
		}

		return 0, storeErr(err)
	}

	if session.UserID != uid {
		zap.L().Warn(
			"logout for a session of another user",
			zap.String("op", op),
			zap.String("uid", uid.String()),
			zap.Uint64("session", session.ID),
		)

		return 0, auth.ErrUnauthorizedSession
	}

	if err = c.repo.RevokeSession(ctx, session.ID, reasonLogout); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, ErrNotFound
		}

		return 0, storeErr(err)
	}

	c.cache.InvalidateKeysByPattern(ctx, sessionKeyPattern(uid))
	return 1, nil
}

func sessionKeyPattern(uid uuid.UUID) string {
	return fmt.Sprintf("sessions:*:%s", uid)
}
