// Copyright (c) 2026 Mangabay. All rights reserved.

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranquochuy/mangabay/internal/platform/apperr"
	"github.com/tranquochuy/mangabay/internal/platform/sec"
)

// # In-Memory Fakes

type fakeUserRepository struct {
	users  map[int64]*User
	nextID int64
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[int64]*User{}, nextID: 1}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id int64) (*User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) Create(_ context.Context, user *User) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

type fakeSessionRepository struct {
	sessions map[string]*SessionPayload
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: map[string]*SessionPayload{}}
}

func (f *fakeSessionRepository) Set(_ context.Context, sessionID string, payload *SessionPayload, _ time.Duration) error {
	clone := *payload
	f.sessions[sessionID] = &clone
	return nil
}

func (f *fakeSessionRepository) Get(_ context.Context, sessionID string) (*SessionPayload, error) {
	if payload, ok := f.sessions[sessionID]; ok {
		clone := *payload
		return &clone, nil
	}
	return nil, apperr.Unauthorized("Session is invalid or expired")
}

func (f *fakeSessionRepository) Delete(_ context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(int64, string, sec.UserRole, time.Duration) (string, error) {
	return "signed-token", nil
}

func newTestService() (*Service, *fakeUserRepository, *fakeSessionRepository) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	service := NewService(users, sessions, fakeTokenProvider{})
	return service, users, sessions
}

func register(t *testing.T, service *Service, username string) *User {
	t.Helper()
	user, err := service.Register(context.Background(), RegisterInput{
		Username:        username,
		Email:           username + "@example.com",
		Password:        "correct horse",
		ConfirmPassword: "correct horse",
	})
	require.NoError(t, err)
	return user
}

// # Registration

func TestService_Register(t *testing.T) {
	service, _, _ := newTestService()

	user := register(t, service, "reader")

	assert.NotZero(t, user.ID)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.NotEqual(t, "correct horse", user.PasswordHash)
}

func TestService_Register_PasswordMismatch(t *testing.T) {
	service, users, _ := newTestService()

	_, err := service.Register(context.Background(), RegisterInput{
		Username:        "reader",
		Email:           "reader@example.com",
		Password:        "one password",
		ConfirmPassword: "another password",
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Empty(t, users.users)
}

func TestService_Register_DuplicateIdentity(t *testing.T) {
	service, _, _ := newTestService()
	register(t, service, "reader")

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{
			name: "duplicate username",
			input: RegisterInput{
				Username: "reader", Email: "other@example.com",
				Password: "correct horse", ConfirmPassword: "correct horse",
			},
		},
		{
			name: "duplicate email",
			input: RegisterInput{
				Username: "other", Email: "reader@example.com",
				Password: "correct horse", ConfirmPassword: "correct horse",
			},
		},
		{
			name: "duplicate username with surrounding whitespace",
			input: RegisterInput{
				Username: "  reader  ", Email: "padded@example.com",
				Password: "correct horse", ConfirmPassword: "correct horse",
			},
		},
		{
			name: "duplicate email with surrounding whitespace",
			input: RegisterInput{
				Username: "padded", Email: " reader@example.com ",
				Password: "correct horse", ConfirmPassword: "correct horse",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(context.Background(), tt.input)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "CONFLICT", appErr.Code)
		})
	}
}

// # Login & Logout

func TestService_Login(t *testing.T) {
	service, _, sessions := newTestService()
	user := register(t, service, "reader")

	session, err := service.Login(context.Background(), LoginInput{
		Username: "reader",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, "signed-token", session.AccessToken)
	assert.Equal(t, user.ID, session.User.ID)

	stored, err := sessions.Get(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.UserID)
	assert.Equal(t, "reader", stored.Username)
	assert.False(t, stored.DarkMode)
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	service, _, _ := newTestService()
	register(t, service, "reader")

	tests := []struct {
		name  string
		input LoginInput
	}{
		{name: "unknown user", input: LoginInput{Username: "ghost", Password: "correct horse"}},
		{name: "wrong password", input: LoginInput{Username: "reader", Password: "wrong"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), tt.input)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)

			// The same generic message for both cases prevents enumeration.
			assert.Equal(t, "UNAUTHORIZED", appErr.Code)
			assert.Equal(t, "Invalid username or password", appErr.Message)
		})
	}
}

func TestService_Logout_Idempotent(t *testing.T) {
	service, _, sessions := newTestService()
	register(t, service, "reader")

	session, err := service.Login(context.Background(), LoginInput{Username: "reader", Password: "correct horse"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), session.SessionID))
	assert.Empty(t, sessions.sessions)

	// A second logout of the same (now gone) session still succeeds.
	require.NoError(t, service.Logout(context.Background(), session.SessionID))
	require.NoError(t, service.Logout(context.Background(), ""))
}

// # Session State

func TestService_Resolve(t *testing.T) {
	service, _, _ := newTestService()
	user := register(t, service, "reader")

	session, err := service.Login(context.Background(), LoginInput{Username: "reader", Password: "correct horse"})
	require.NoError(t, err)

	claims, err := service.Resolve(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, session.SessionID, claims.SessionID)

	_, err = service.Resolve(context.Background(), "no-such-session")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func TestService_ToggleDarkMode(t *testing.T) {
	service, _, _ := newTestService()
	register(t, service, "reader")

	session, err := service.Login(context.Background(), LoginInput{Username: "reader", Password: "correct horse"})
	require.NoError(t, err)

	on, err := service.ToggleDarkMode(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.True(t, on)

	// Toggling twice returns to the original state.
	off, err := service.ToggleDarkMode(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.False(t, off)

	_, err = service.ToggleDarkMode(context.Background(), "")
	require.Error(t, err)
}
