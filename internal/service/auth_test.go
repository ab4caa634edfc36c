package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rfpapi/internal/auth"
	"rfpapi/internal/model"
	"rfpapi/internal/repository"
	repoMocks "rfpapi/internal/repository/mocks"
)

const testSecret = "test-secret"

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(mUsers *repoMocks.MockUserRepository)
		wantErr    error
	}{
		{
			name:     "happy path",
			email:    "new@example.com",
			password: "s3cret",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
					if u.Email != "new@example.com" {
						return false
					}
					ok, err := auth.VerifyPassword("s3cret", u.PasswordHash)
					return err == nil && ok
				})).Return(&model.User{
					ID:                  1,
					Email:               "new@example.com",
					DefaultCompanyName:  model.DefaultCompanyName,
					DefaultDocumentType: model.DefaultDocumentType,
					IsActive:            true,
				}, nil)
			},
		},
		{
			name:       "invalid email - no at sign",
			email:      "not-an-email",
			password:   "s3cret",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {},
			wantErr:    ErrInvalidEmail,
		},
		{
			name:       "invalid email - display name form",
			email:      "Bob <bob@example.com>",
			password:   "s3cret",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {},
			wantErr:    ErrInvalidEmail,
		},
		{
			name:       "empty password",
			email:      "new@example.com",
			password:   "",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {},
			wantErr:    ErrInvalidPassword,
		},
		{
			name:     "duplicate email",
			email:    "taken@example.com",
			password: "s3cret",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicateEmail)
			},
			wantErr: ErrEmailTaken,
		},
		{
			name:     "repository error",
			email:    "new@example.com",
			password: "s3cret",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mUsers := new(repoMocks.MockUserRepository)
			svc := NewAuthService(mUsers, testSecret)

			tt.setupMocks(mUsers)

			user, err := svc.Register(ctx, tt.email, tt.password)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrInvalidEmail) || errors.Is(tt.wantErr, ErrInvalidPassword) || errors.Is(tt.wantErr, ErrEmailTaken) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Error(t, err)
				}
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
			}
			mUsers.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := auth.HashPassword("right-password")
	require.NoError(t, err)
	storedUser := &model.User{ID: 7, Email: "user@example.com", PasswordHash: hash}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(mUsers *repoMocks.MockUserRepository)
		wantErr    error
	}{
		{
			name:     "happy path",
			email:    "user@example.com",
			password: "right-password",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "user@example.com").Return(storedUser, nil)
			},
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "whatever",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "nobody@example.com").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "user@example.com",
			password: "wrong-password",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "user@example.com").Return(storedUser, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "repository error",
			email:    "user@example.com",
			password: "right-password",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "user@example.com").Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mUsers := new(repoMocks.MockUserRepository)
			svc := NewAuthService(mUsers, testSecret)

			tt.setupMocks(mUsers)

			token, err := svc.Login(ctx, tt.email, tt.password)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrInvalidCredentials) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Error(t, err)
				}
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				// The issued token carries the account email as its subject.
				subject, parseErr := auth.ParseToken(token, testSecret)
				assert.NoError(t, parseErr)
				assert.Equal(t, tt.email, subject)
			}
			mUsers.AssertExpectations(t)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	storedUser := &model.User{ID: 7, Email: "user@example.com"}

	validToken := func(t *testing.T) string {
		t.Helper()
		tok, err := auth.GenerateToken("user@example.com", testSecret, time.Hour)
		require.NoError(t, err)
		return tok
	}

	t.Run("happy path", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("FindByEmail", ctx, "user@example.com").Return(storedUser, nil)
		svc := NewAuthService(mUsers, testSecret)

		user, err := svc.Authenticate(ctx, validToken(t))

		assert.NoError(t, err)
		assert.Equal(t, storedUser, user)
		mUsers.AssertExpectations(t)
	})

	t.Run("garbage token", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mUsers, testSecret)

		user, err := svc.Authenticate(ctx, "not.a.jwt")

		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.Nil(t, user)
		mUsers.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("expired token", func(t *testing.T) {
		tok, err := auth.GenerateToken("user@example.com", testSecret, -1*time.Second)
		require.NoError(t, err)

		mUsers := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mUsers, testSecret)

		user, err := svc.Authenticate(ctx, tok)

		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.Nil(t, user)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		tok, err := auth.GenerateToken("user@example.com", "other-secret", time.Hour)
		require.NoError(t, err)

		mUsers := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mUsers, testSecret)

		user, err := svc.Authenticate(ctx, tok)

		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.Nil(t, user)
	})

	t.Run("empty subject", func(t *testing.T) {
		tok, err := auth.GenerateToken("", testSecret, time.Hour)
		require.NoError(t, err)

		mUsers := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mUsers, testSecret)

		user, err := svc.Authenticate(ctx, tok)

		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.Nil(t, user)
		mUsers.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("account no longer exists", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("FindByEmail", ctx, "user@example.com").Return(nil, sql.ErrNoRows)
		svc := NewAuthService(mUsers, testSecret)

		user, err := svc.Authenticate(ctx, validToken(t))

		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.Nil(t, user)
		mUsers.AssertExpectations(t)
	})
}
