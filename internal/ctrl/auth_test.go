package ctrl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JMURv/club-auth/internal/auth"
	"github.com/JMURv/club-auth/internal/auth/jwt"
	"github.com/JMURv/club-auth/internal/dto"
	md "github.com/JMURv/club-auth/internal/models"
	"github.com/JMURv/club-auth/internal/repo"
	"github.com/JMURv/club-auth/tests/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestCtrl(t *testing.T, rotate bool) (
	*Controller,
	*mocks.MockPort,
	*mocks.MockVerifier,
	*mocks.MockAppRepo,
	*mocks.MockCacheService,
) {
	mock := gomock.NewController(t)
	t.Cleanup(mock.Finish)

	au := mocks.NewMockPort(mock)
	verifier := mocks.NewMockVerifier(mock)
	repository := mocks.NewMockAppRepo(mock)
	cache := mocks.NewMockCacheService(mock)

	return New(au, verifier, repository, cache, nil, rotate), au, verifier, repository, cache
}

func activeUser(uid uuid.UUID) *md.User {
	return &md.User{
		ID:           uid,
		Name:         "John Doe",
		Email:        "user@example.com",
		Password:     "hashed-password",
		Role:         "member",
		IsActive:     true,
		TokenVersion: 1,
	}
}

func TestController_Authenticate(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	device := &dto.DeviceRequest{Info: "Chrome on macOS", IP: "10.0.0.1", UA: "Mozilla/5.0"}
	req := &dto.EmailAndPasswordRequest{Email: "user@example.com", Password: "secret"}

	t.Run("Success", func(t *testing.T) {
		c, au, verifier, repository, cache := newTestCtrl(t, false)
		user := activeUser(uid)

		refreshExp := time.Now().Add(168 * time.Hour)
		repository.EXPECT().GetUserByEmail(gomock.Any(), req.Email).Return(user, nil)
		verifier.EXPECT().ComparePasswords([]byte(user.Password), []byte(req.Password)).Return(nil)
		au.EXPECT().NewAccess(gomock.Any(), uid, user.Role, user.Email).Return("access-token", nil)
		au.EXPECT().NewRefresh(gomock.Any(), uid, user.TokenVersion).Return("refresh-token", refreshExp, nil)
		repository.EXPECT().
			CreateSession(gomock.Any(), uid, "refresh-token", refreshExp, device).
			Return(uint64(1), nil)
		cache.EXPECT().InvalidateKeysByPattern(gomock.Any(), sessionKeyPattern(uid))
		au.EXPECT().GetAccessTime().Return(time.Now().Add(15 * time.Minute))

		res, err := c.Authenticate(ctx, device, req)
		assert.NoError(t, err)
		assert.Equal(t, "access-token", res.Access)
		assert.Equal(t, "refresh-token", res.Refresh)
		assert.Equal(t, uid, res.User.ID)
		assert.Greater(t, res.ExpiresIn, int64(0))
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		c, _, _, repository, _ := newTestCtrl(t, false)

		repository.EXPECT().GetUserByEmail(gomock.Any(), req.Email).Return(nil, repo.ErrNotFound)

		res, err := c.Authenticate(ctx, device, req)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		c, _, verifier, repository, _ := newTestCtrl(t, false)
		user := activeUser(uid)

		repository.EXPECT().GetUserByEmail(gomock.Any(), req.Email).Return(user, nil)
		verifier.EXPECT().
			ComparePasswords([]byte(user.Password), []byte(req.Password)).
			Return(errors.New("mismatch"))

		res, err := c.Authenticate(ctx, device, req)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("InactiveUser", func(t *testing.T) {
		c, _, _, repository, _ := newTestCtrl(t, false)
		user := activeUser(uid)
		user.IsActive = false

		repository.EXPECT().GetUserByEmail(gomock.Any(), req.Email).Return(user, nil)

		res, err := c.Authenticate(ctx, device, req)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("StoreTimeout", func(t *testing.T) {
		c, _, _, repository, _ := newTestCtrl(t, false)

		repository.EXPECT().
			GetUserByEmail(gomock.Any(), req.Email).
			Return(nil, context.DeadlineExceeded)

		res, err := c.Authenticate(ctx, device, req)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, ErrStoreTimeout)
	})
}

func TestController_Refresh(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	req := &dto.RefreshRequest{Refresh: "refresh-token"}
	claims := jwt.RefreshClaims{UID: uid, Version: 1}

	session := &md.Session{
		ID:         7,
		UserID:     uid,
		DeviceInfo: "Chrome on macOS",
		IP:         "10.0.0.1",
		UA:         "Mozilla/5.0",
	}

	t.Run("Success", func(t *testing.T) {
		c, au, _, repository, _ := newTestCtrl(t, false)
		user := activeUser(uid)

		au.EXPECT().ParseRefresh(gomock.Any(), req.Refresh).Return(claims, nil)
		repository.EXPECT().FindActiveSession(gomock.Any(), req.Refresh).Return(session, nil)
		repository.EXPECT().GetUserByID(gomock.Any(), uid).Return(user, nil)
		au.EXPECT().NewAccess(gomock.Any(), uid, user.Role, user.Email).Return("new-access", nil)
		au.EXPECT().GetAccessTime().Return(time.Now().Add(15 * time.Minute))

		res, err := c.Refresh(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, "new-access", res.Access)
		assert.Empty(t, res.Refresh)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		c, au, _, _, _ := newTestCtrl(t, false)

		au.EXPECT().
			ParseRefresh(gomock.Any(), req.Refresh).
			Return(jwt.RefreshClaims{}, jwt.ErrInvalidToken)

		res, err := c.Refresh(ctx, req)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("NoActiveSession", func(t *testing.T) {
		c, au, _, repository, _ := newTestCtrl(t, false)

		au.EXPECT().ParseRefresh(gomock.Any(), req.Refresh).Return(claims, nil)
		repository.EXPECT().FindActiveSession(gomock.Any(), req.Refresh).Return(nil, repo.ErrNotFound)

		res, err := c.Refresh(ctx, req)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, auth.ErrTokenRevoked)
	})

	t.Run("StaleTokenVersion", func(t *testing.T) {
		c, au, _, repository, _ := newTestCtrl(t, false)
		user := activeUser(uid)
		user.TokenVersion = 2

		au.EXPECT().ParseRefresh(gomock.Any(), req.Refresh).Return(claims, nil)
		repository.EXPECT().FindActiveSession(gomock.Any(), req.Refresh).Return(session, nil)
		repository.EXPECT().GetUserByID(gomock.Any(), uid).Return(user, nil)

		res, err := c.Refresh(ctx, req)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, auth.ErrTokenRevoked)
	})

	t.Run("UserGone", func(t *testing.T) {
		c, au, _, repository, _ := newTestCtrl(t, false)

		au.EXPECT().ParseRefresh(gomock.Any(), req.Refresh).Return(claims, nil)
		repository.EXPECT().FindActiveSession(gomock.Any(), req.Refresh).Return(session, nil)
		repository.EXPECT().GetUserByID(gomock.Any(), uid).Return(nil, repo.ErrNotFound)

		res, err := c.Refresh(ctx, req)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, auth.ErrTokenRevoked)
	})

	t.Run("RotationEnabled", func(t *testing.T) {
		c, au, _, repository, cache := newTestCtrl(t, true)
		user := activeUser(uid)

		au.EXPECT().ParseRefresh(gomock.Any(), req.Refresh).Return(claims, nil)
		repository.EXPECT().FindActiveSession(gomock.Any(), req.Refresh).Return(session, nil)
		repository.EXPECT().GetUserByID(gomock.Any(), uid).Return(user, nil)
		rotatedExp := time.Now().Add(168 * time.Hour)
		au.EXPECT().NewAccess(gomock.Any(), uid, user.Role, user.Email).Return("new-access", nil)
		au.EXPECT().GetAccessTime().Return(time.Now().Add(15 * time.Minute))
		au.EXPECT().NewRefresh(gomock.Any(), uid, user.TokenVersion).Return("rotated-refresh", rotatedExp, nil)
		repository.EXPECT().RevokeSession(gomock.Any(), session.ID, reasonRotated).Return(nil)
		repository.EXPECT().
			CreateSession(
				gomock.Any(), uid, "rotated-refresh", rotatedExp,
				&dto.DeviceRequest{Info: session.DeviceInfo, IP: session.IP, UA: session.UA},
			).
			Return(uint64(8), nil)
		cache.EXPECT().InvalidateKeysByPattern(gomock.Any(), sessionKeyPattern(uid))

		res, err := c.Refresh(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, "new-access", res.Access)
		assert.Equal(t, "rotated-refresh", res.Refresh)
	})

	t.Run("RotationLostRace", func(t *testing.T) {
		c, au, _, repository, _ := newTestCtrl(t, true)
		user := activeUser(uid)

		au.EXPECT().ParseRefresh(gomock.Any(), req.Refresh).Return(claims, nil)
		repository.EXPECT().FindActiveSession(gomock.Any(), req.Refresh).Return(session, nil)
		repository.EXPECT().GetUserByID(gomock.Any(), uid).Return(user, nil)
		au.EXPECT().NewAccess(gomock.Any(), uid, user.Role, user.Email).Return("new-access", nil)
		au.EXPECT().GetAccessTime().Return(time.Now().Add(15 * time.Minute))
		au.EXPECT().
			NewRefresh(gomock.Any(), uid, user.TokenVersion).
			Return("rotated-refresh", time.Now().Add(168*time.Hour), nil)
		repository.EXPECT().RevokeSession(gomock.Any(), session.ID, reasonRotated).Return(repo.ErrNotFound)

		res, err := c.Refresh(ctx, req)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, auth.ErrTokenRevoked)
	})
}

func TestController_Logout(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()

	t.Run("LogoutAll", func(t *testing.T) {
		c, _, _, repository, cache := newTestCtrl(t, false)

		repository.EXPECT().RevokeAllSessions(gomock.Any(), uid, reasonLogoutAll).Return(int64(3), nil)
		repository.EXPECT().BumpTokenVersion(gomock.Any(), uid).Return(nil)
		cache.EXPECT().InvalidateKeysByPattern(gomock.Any(), sessionKeyPattern(uid))

		count, err := c.Logout(ctx, uid, &dto.LogoutRequest{LogoutAll: true})
		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("SingleSession", func(t *testing.T) {
		c, _, _, repository, cache := newTestCtrl(t, false)
		session := &md.Session{ID: 7, UserID: uid}

		repository.EXPECT().FindActiveSession(gomock.Any(), "refresh-token").Return(session, nil)
		repository.EXPECT().RevokeSession(gomock.Any(), session.ID, reasonLogout).Return(nil)
		cache.EXPECT().InvalidateKeysByPattern(gomock.Any(), sessionKeyPattern(uid))

		count, err := c.Logout(ctx, uid, &dto.LogoutRequest{Refresh: "refresh-token"})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("SessionNotFound", func(t *testing.T) {
		c, _, _, repository, _ := newTestCtrl(t, false)

		repository.EXPECT().FindActiveSession(gomock.Any(), "refresh-token").Return(nil, repo.ErrNotFound)

		count, err := c.Logout(ctx, uid, &dto.LogoutRequest{Refresh: "refresh-token"})
		assert.Equal(t, int64(0), count)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ForeignSession", func(t *testing.T) {
		c, _, _, repository, _ := newTestCtrl(t, false)
		session := &md.Session{ID: 7, UserID: uuid.New()}

		repository.EXPECT().FindActiveSession(gomock.Any(), "refresh-token").Return(session, nil)

		count, err := c.Logout(ctx, uid, &dto.LogoutRequest{Refresh: "refresh-token"})
		assert.Equal(t, int64(0), count)
		assert.ErrorIs(t, err, auth.ErrUnauthorizedSession)
	})

	t.Run("RevokeLostRace", func(t *testing.T) {
		c, _, _, repository, _ := newTestCtrl(t, false)
		session := &md.Session{ID: 7, UserID: uid}

		repository.EXPECT().FindActiveSession(gomock.Any(), "refresh-token").Return(session, nil)
		repository.EXPECT().RevokeSession(gomock.Any(), session.ID, reasonLogout).Return(repo.ErrNotFound)

		count, err := c.Logout(ctx, uid, &dto.LogoutRequest{Refresh: "refresh-token"})
		assert.Equal(t, int64(0), count)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
