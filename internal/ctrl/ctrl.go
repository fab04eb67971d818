package ctrl

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/JMURv/club-auth/internal/auth"
	"github.com/JMURv/club-auth/internal/auth/jwt"
	"github.com/JMURv/club-auth/internal/dto"
	md "github.com/JMURv/club-auth/internal/models"
	"github.com/google/uuid"
)

type AppCtrl interface {
	Authenticate(
		ctx context.Context,
		d *dto.DeviceRequest,
		req *dto.EmailAndPasswordRequest,
	) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.RefreshResponse, error)
	Logout(ctx context.Context, uid uuid.UUID, req *dto.LogoutRequest) (int64, error)
	ListSessions(ctx context.Context, uid uuid.UUID) ([]*md.Session, error)
	RevokeSession(ctx context.Context, uid uuid.UUID, sessionID uint64) error
	GetStats(ctx context.Context, uid uuid.UUID) (*md.SessionStats, error)
	Health(ctx context.Context) (*dto.HealthResponse, error)
}

type AppRepo interface {
	CreateSession(
		ctx context.Context,
		userID uuid.UUID,
		rawToken string,
		expiresAt time.Time,
		d *dto.DeviceRequest,
	) (uint64, error)
	FindActiveSession(ctx context.Context, rawToken string) (*md.Session, error)
	GetSessionByID(ctx context.Context, id uint64) (*md.Session, error)
	RevokeSession(ctx context.Context, id uint64, reason string) error
	RevokeAllSessions(ctx context.Context, userID uuid.UUID, reason string) (int64, error)
	ListActiveSessions(ctx context.Context, userID uuid.UUID, filters map[string]any) ([]*md.Session, error)
	SessionStats(ctx context.Context, userID uuid.UUID) (*md.SessionStats, error)
	DeleteStaleSessions(ctx context.Context, retention time.Duration) (int64, error)
	CountSessions(ctx context.Context) (int64, error)

	GetUserByEmail(ctx context.Context, email string) (*md.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*md.User, error)
	BumpTokenVersion(ctx context.Context, id uuid.UUID) error
}

type CacheService interface {
	io.Closer
	GetToStruct(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, t time.Duration, key string, val any)
	Delete(ctx context.Context, key string)
	InvalidateKeysByPattern(ctx context.Context, pattern string)
}

type EmailService interface {
	SendLoginNotification(toEmail string, d *dto.DeviceRequest) error
}

type Controller struct {
	au       jwt.Port
	verifier auth.Verifier
	repo     AppRepo
	cache    CacheService
	email    EmailService
	rotate   bool
}

func New(
	au jwt.Port,
	verifier auth.Verifier,
	repo AppRepo,
	cache CacheService,
	email EmailService,
	rotate bool,
) *Controller {
	return &Controller{
		au:       au,
		verifier: verifier,
		repo:     repo,
		cache:    cache,
		email:    email,
		rotate:   rotate,
	}
}

// storeErr keeps a stuck store call distinguishable from every other
// failure so the HTTP layer can answer with a transient 5xx.
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrStoreTimeout
	}
	return err
}
