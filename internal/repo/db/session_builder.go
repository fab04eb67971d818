package db

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
)

func buildSessionListQuery(
	ctx context.Context,
	userID uuid.UUID,
	filters map[string]any,
) (string, []any, error) {
	const op = "sessions.buildSessionListQuery.repo"

	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	query := sq.Select(
		"id",
		"user_id",
		"token_hash",
		"device_info",
		"ip_address",
		"user_agent",
		"is_revoked",
		"revoked_at",
		"revoked_reason",
		"expires_at",
		"created_at",
	).
		From("sessions").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"is_revoked": false}).
		Where(sq.Expr("expires_at > NOW()")).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if device, ok := filters["device_info"].(string); ok && device != "" {
		query = query.Where(sq.Eq{"device_info": device})
	}

	if ip, ok := filters["ip_address"].(string); ok && ip != "" {
		query = query.Where(sq.Eq{"ip_address": ip})
	}

	q, args, err := query.ToSql()
	if err != nil {
		span.SetTag("error", true)
		return "", nil, err
	}

	return q, args, nil
}
