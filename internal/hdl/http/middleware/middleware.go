package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/JMURv/club-auth/internal/auth/jwt"
	"github.com/JMURv/club-auth/internal/config"
	"github.com/JMURv/club-auth/internal/hdl/http/utils"
	metrics "github.com/JMURv/club-auth/internal/observability/metrics/prometheus"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

var ErrNoAccessToken = errors.New("missing access token")

// Auth validates the bearer access token and attaches the principal to
// the request context. An expired token is answered distinctly from a
// malformed one so clients know whether a silent refresh can help.
func Auth(au jwt.Port) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				tokenStr, ok := utils.BearerToken(r)
				if !ok {
					utils.ErrActionResponse(
						w, http.StatusUnauthorized,
						"INVALID_TOKEN", "login_required", ErrNoAccessToken,
					)
					return
				}

				claims, err := au.ParseAccess(r.Context(), tokenStr)
				if err != nil {
					if errors.Is(err, jwt.ErrTokenExpired) {
						utils.ErrActionResponse(
							w, http.StatusUnauthorized,
							"TOKEN_EXPIRED", "refresh", err,
						)
						return
					}

					utils.ErrActionResponse(
						w, http.StatusUnauthorized,
						"INVALID_TOKEN", "login_required", err,
					)
					return
				}

				ctx := context.WithValue(r.Context(), config.UidKey, claims.UID)
				ctx = context.WithValue(ctx, config.RoleKey, claims.Role)
				ctx = context.WithValue(ctx, config.EmailKey, claims.Email)
				ctx = context.WithValue(ctx, config.ExpKey, claims.ExpiresAt.Time)
				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}

// Device captures client address and user agent for session records.
func Device(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), config.IpKey, r.RemoteAddr)
			ctx = context.WithValue(ctx, config.UaKey, r.UserAgent())
			next.ServeHTTP(w, r.WithContext(ctx))
		},
	)
}

type LoggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func NewLoggingResponseWriter(w http.ResponseWriter) *LoggingResponseWriter {
	return &LoggingResponseWriter{w, http.StatusOK}
}

func (lrw *LoggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			s := time.Now()
			op := fmt.Sprintf("%s %s", r.Method, r.URL.Path)

			lrw := NewLoggingResponseWriter(w)
			next.ServeHTTP(lrw, r)
			metrics.ObserveRequest(time.Since(s), lrw.statusCode, op)
		},
	)
}

func Logger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()
				lrw := NewLoggingResponseWriter(w)
				logger.Debug(
					"-->",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote", r.RemoteAddr),
				)

				next.ServeHTTP(lrw, r)

				logger.Info(
					"<--",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", lrw.statusCode),
					zap.Duration("duration", time.Since(start)),
					zap.String("remote", r.RemoteAddr),
				)
			},
		)
	}
}

func OT(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			span, ctx := opentracing.StartSpanFromContext(r.Context(), fmt.Sprintf("%s %s", r.Method, r.URL.Path))
			defer span.Finish()

			next.ServeHTTP(w, r.WithContext(ctx))
		},
	)
}
