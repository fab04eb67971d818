package db

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/JMURv/club-auth/internal/repo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var userColumns = []string{
	"id",
	"name",
	"email",
	"password",
	"role",
	"is_active",
	"token_version",
	"created_at",
	"updated_at",
}

func TestRepository_GetUserByEmail(t *testing.T) {
	repository, mock, cleanup := newTestRepo(t)
	defer cleanup()

	userID := uuid.New()
	email := "user@example.com"
	now := time.Now()

	tests := []struct {
		name        string
		mock        func()
		expectedErr error
	}{
		{
			name: "Success",
			mock: func() {
				rows := sqlmock.NewRows(userColumns).AddRow(
					userID, "John Doe", email, "hashed-password",
					"member", true, 1, now, now,
				)
				mock.ExpectQuery(regexp.QuoteMeta(userGetByEmailQ)).
					WithArgs(email).
					WillReturnRows(rows)
			},
			expectedErr: nil,
		},
		{
			name: "NotFound",
			mock: func() {
				mock.ExpectQuery(regexp.QuoteMeta(userGetByEmailQ)).
					WithArgs(email).
					WillReturnError(sql.ErrNoRows)
			},
			expectedErr: repo.ErrNotFound,
		},
		{
			name: "DatabaseError",
			mock: func() {
				mock.ExpectQuery(regexp.QuoteMeta(userGetByEmailQ)).
					WithArgs(email).
					WillReturnError(errors.New("database error"))
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mock()

			user, err := repository.GetUserByEmail(context.Background(), email)

			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.EqualError(t, err, tt.expectedErr.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, userID, user.ID)
				assert.Equal(t, email, user.Email)
			}
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetUserByID(t *testing.T) {
	repository, mock, cleanup := newTestRepo(t)
	defer cleanup()

	userID := uuid.New()
	now := time.Now()

	tests := []struct {
		name        string
		mock        func()
		expectedErr error
	}{
		{
			name: "Success",
			mock: func() {
				rows := sqlmock.NewRows(userColumns).AddRow(
					userID, "John Doe", "user@example.com", "hashed-password",
					"member", true, 3, now, now,
				)
				mock.ExpectQuery(regexp.QuoteMeta(userGetByIDQ)).
					WithArgs(userID).
					WillReturnRows(rows)
			},
			expectedErr: nil,
		},
		{
			name: "NotFound",
			mock: func() {
				mock.ExpectQuery(regexp.QuoteMeta(userGetByIDQ)).
					WithArgs(userID).
					WillReturnError(sql.ErrNoRows)
			},
			expectedErr: repo.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mock()

			user, err := repository.GetUserByID(context.Background(), userID)

			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.EqualError(t, err, tt.expectedErr.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, uint64(3), user.TokenVersion)
			}
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_BumpTokenVersion(t *testing.T) {
	repository, mock, cleanup := newTestRepo(t)
	defer cleanup()

	userID := uuid.New()

	tests := []struct {
		name        string
		mock        func()
		expectedErr error
	}{
		{
			name: "Success",
			mock: func() {
				mock.ExpectExec(regexp.QuoteMeta(userBumpTokenVersionQ)).
					WithArgs(userID).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedErr: nil,
		},
		{
			name: "NotFound",
			mock: func() {
				mock.ExpectExec(regexp.QuoteMeta(userBumpTokenVersionQ)).
					WithArgs(userID).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedErr: repo.ErrNotFound,
		},
		{
			name: "DatabaseError",
			mock: func() {
				mock.ExpectExec(regexp.QuoteMeta(userBumpTokenVersionQ)).
					WithArgs(userID).
					WillReturnError(errors.New("database error"))
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mock()

			err := repository.BumpTokenVersion(context.Background(), userID)

			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.EqualError(t, err, tt.expectedErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}
