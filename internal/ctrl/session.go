package ctrl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JMURv/club-auth/internal/auth"
	"github.com/JMURv/club-auth/internal/config"
	"github.com/JMURv/club-auth/internal/dto"
	md "github.com/JMURv/club-auth/internal/models"
	"github.com/JMURv/club-auth/internal/repo"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

func (c *Controller) ListSessions(ctx context.Context, uid uuid.UUID) ([]*md.Session, error) {
	const op = "sessions.ListSessions.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	cached := make([]*md.Session, 0, 10)
	key := fmt.Sprintf("sessions:list:%s", uid)
	if err := c.cache.GetToStruct(ctx, key, &cached); err == nil {
		// Rows can expire while the list sits in the cache. Revocations
		// invalidate the key, passive expiry does not.
		return dropExpired(cached), nil
	}

	res, err := c.repo.ListActiveSessions(ctx, uid, nil)
	if err != nil {
		return nil, storeErr(err)
	}

	c.cache.Set(ctx, config.MinCacheTime, key, res)
	return res, nil
}

func dropExpired(sessions []*md.Session) []*md.Session {
	now := time.Now()
	res := sessions[:0]
	for _, s := range sessions {
		if s.ExpiresAt.After(now) {
			res = append(res, s)
		}
	}

	return res
}

// RevokeSession revokes one of the caller's own sessions. A session of
// another user is reported to the caller exactly like a missing one.
func (c *Controller) RevokeSession(ctx context.Context, uid uuid.UUID, sessionID uint64) error {
	const op = "sessions.RevokeSession.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	session, err := c.repo.GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}

		return storeErr(err)
	}

	if session.UserID != uid {
		zap.L().Warn(
			"revoke for a session of another user",
			zap.String("op", op),
			zap.String("uid", uid.String()),
			zap.Uint64("session", sessionID),
		)

		return auth.ErrUnauthorizedSession
	}

	if err = c.repo.RevokeSession(ctx, sessionID, reasonRevoked); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}

		return storeErr(err)
	}

	c.cache.InvalidateKeysByPattern(ctx, sessionKeyPattern(uid))
	return nil
}

func (c *Controller) GetStats(ctx context.Context, uid uuid.UUID) (*md.SessionStats, error) {
	const op = "sessions.GetStats.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	cached := &md.SessionStats{}
	key := fmt.Sprintf("sessions:stats:%s", uid)
	if err := c.cache.GetToStruct(ctx, key, cached); err == nil {
		return cached, nil
	}

	res, err := c.repo.SessionStats(ctx, uid)
	if err != nil {
		return nil, storeErr(err)
	}

	// Stats are advisory and every mutation invalidates the key, so the
	// longer TTL is safe.
	c.cache.Set(ctx, config.DefaultCacheTime, key, res)
	return res, nil
}

func (c *Controller) Health(ctx context.Context) (*dto.HealthResponse, error) {
	const op = "sessions.Health.ctrl"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	count, err := c.repo.CountSessions(ctx)
	if err != nil {
		return &dto.HealthResponse{Status: "unhealthy"}, storeErr(err)
	}

	return &dto.HealthResponse{Status: "healthy", Sessions: count}, nil
}
