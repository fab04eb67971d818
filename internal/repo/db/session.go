package db

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/JMURv/club-auth/internal/dto"
	md "github.com/JMURv/club-auth/internal/models"
	"github.com/JMURv/club-auth/internal/repo"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
)

// Fingerprint derives the stored lookup key from a raw refresh token.
// A raw token maps to exactly one fingerprint and at most one row.
func Fingerprint(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (r *Repository) CreateSession(
	ctx context.Context,
	userID uuid.UUID,
	rawToken string,
	expiresAt time.Time,
	d *dto.DeviceRequest,
) (uint64, error) {
	const op = "sessions.CreateSession.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var id uint64
	err := r.conn.QueryRowContext(
		ctx,
		sessionCreateQ,
		userID,
		Fingerprint(rawToken),
		d.Info,
		d.IP,
		d.UA,
		expiresAt,
	).Scan(&id)
	if err != nil {
		span.SetTag("error", true)
		return 0, err
	}

	return id, nil
}

func (r *Repository) FindActiveSession(ctx context.Context, rawToken string) (*md.Session, error) {
	const op = "sessions.FindActiveSession.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := &md.Session{}
	err := r.conn.GetContext(ctx, res, sessionFindActiveQ, Fingerprint(rawToken))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}

		span.SetTag("error", true)
		return nil, err
	}

	return res, nil
}

func (r *Repository) GetSessionByID(ctx context.Context, id uint64) (*md.Session, error) {
	const op = "sessions.GetSessionByID.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := &md.Session{}
	err := r.conn.GetContext(ctx, res, sessionGetByIDQ, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}

		span.SetTag("error", true)
		return nil, err
	}

	return res, nil
}

// RevokeSession is a single conditional update. Concurrent revokes on the
// same row are idempotent, the first one wins and later ones observe a
// no-op reported as repo.ErrNotFound.
func (r *Repository) RevokeSession(ctx context.Context, id uint64, reason string) error {
	const op = "sessions.RevokeSession.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.conn.ExecContext(ctx, sessionRevokeQ, id, reason)
	if err != nil {
		span.SetTag("error", true)
		return err
	}

	if aff, _ := res.RowsAffected(); aff == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *Repository) RevokeAllSessions(ctx context.Context, userID uuid.UUID, reason string) (int64, error) {
	const op = "sessions.RevokeAllSessions.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.conn.ExecContext(ctx, sessionRevokeAllQ, userID, reason)
	if err != nil {
		span.SetTag("error", true)
		return 0, err
	}

	aff, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	return aff, nil
}

func (r *Repository) ListActiveSessions(
	ctx context.Context,
	userID uuid.UUID,
	filters map[string]any,
) ([]*md.Session, error) {
	const op = "sessions.ListActiveSessions.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	q, args, err := buildSessionListQuery(ctx, userID, filters)
	if err != nil {
		span.SetTag("error", true)
		return nil, err
	}

	res := make([]*md.Session, 0, 10)
	if err = r.conn.SelectContext(ctx, &res, q, args...); err != nil {
		span.SetTag("error", true)
		return nil, err
	}

	return res, nil
}

func (r *Repository) SessionStats(ctx context.Context, userID uuid.UUID) (*md.SessionStats, error) {
	const op = "sessions.SessionStats.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := &md.SessionStats{}
	if err := r.conn.GetContext(ctx, res, sessionStatsQ, userID); err != nil {
		span.SetTag("error", true)
		return nil, err
	}

	return res, nil
}

// DeleteStaleSessions removes rows that are terminal and older than the
// retention window. Active rows are never touched.
func (r *Repository) DeleteStaleSessions(ctx context.Context, retention time.Duration) (int64, error) {
	const op = "sessions.DeleteStaleSessions.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.conn.ExecContext(
		ctx,
		sessionDeleteStaleQ,
		fmt.Sprintf("%d seconds", int64(retention.Seconds())),
	)
	if err != nil {
		span.SetTag("error", true)
		return 0, err
	}

	aff, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	return aff, nil
}

func (r *Repository) CountSessions(ctx context.Context) (int64, error) {
	const op = "sessions.CountSessions.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	if err := r.conn.GetContext(ctx, &count, sessionCountQ); err != nil {
		span.SetTag("error", true)
		return 0, err
	}

	return count, nil
}
