package db

import (
	"context"
	"database/sql"
	"errors"

	md "github.com/JMURv/club-auth/internal/models"
	"github.com/JMURv/club-auth/internal/repo"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
)

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*md.User, error) {
	const op = "users.GetUserByEmail.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := &md.User{}
	err := r.conn.GetContext(ctx, res, userGetByEmailQ, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}

		span.SetTag("error", true)
		return nil, err
	}

	return res, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (*md.User, error) {
	const op = "users.GetUserByID.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := &md.User{}
	err := r.conn.GetContext(ctx, res, userGetByIDQ, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}

		span.SetTag("error", true)
		return nil, err
	}

	return res, nil
}

// BumpTokenVersion invalidates every refresh token issued before the
// bump, independent of the session rows.
func (r *Repository) BumpTokenVersion(ctx context.Context, id uuid.UUID) error {
	const op = "users.BumpTokenVersion.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.conn.ExecContext(ctx, userBumpTokenVersionQ, id)
	if err != nil {
		span.SetTag("error", true)
		return err
	}

	if aff, _ := res.RowsAffected(); aff == 0 {
		return repo.ErrNotFound
	}

	return nil
}
