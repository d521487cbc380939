package auth_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parceldesk/parceldesk-api/internal/config"
	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/mocks"
	"github.com/parceldesk/parceldesk-api/internal/service/auth"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

type serviceFixture struct {
	users   *mocks.MockUserStore
	jwt     auth.JWTService
	revoker *auth.MemoryRevoker
	svc     *auth.Service
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   strings.Repeat("a", 32),
		JWTRefreshSecret:            strings.Repeat("b", 32),
		TokenLifetimeMinutes:        15,
		RefreshTokenLifetimeMinutes: 10080,
		BcryptCost:                  4,
	})
	require.NoError(t, err)

	users := mocks.NewMockUserStore()
	hasher := &mocks.MockPasswordHasher{}
	revoker := auth.NewMemoryRevoker()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &serviceFixture{
		users:   users,
		jwt:     jwtService,
		revoker: revoker,
		svc:     auth.NewService(users, jwtService, hasher, hasher, revoker, logger),
	}
}

func (f *serviceFixture) seedUser(t *testing.T, username, email, password string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, email, "Seed User", password)
	require.NoError(t, err)
	user.HashedPassword = "hashed:" + password
	user.Password = ""
	f.users.Users[user.ID] = user
	return user
}

func TestLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("succeeds with email or username", func(t *testing.T) {
		t.Parallel()
		f := newServiceFixture(t)
		seeded := f.seedUser(t, "dispatcher", "dispatcher@example.com", "password123")

		for _, identifier := range []string{"dispatcher", "dispatcher@example.com"} {
			user, pair, err := f.svc.Login(ctx, identifier, "password123")
			require.NoError(t, err, "identifier %q", identifier)
			assert.Equal(t, seeded.ID, user.ID)
			assert.Equal(t, "", user.HashedPassword, "login must return a sanitized user")
			assert.NotEmpty(t, pair.AccessToken)
			assert.NotEmpty(t, pair.RefreshToken)
		}
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		t.Parallel()
		f := newServiceFixture(t)
		f.seedUser(t, "dispatcher", "dispatcher@example.com", "password123")

		_, _, err := f.svc.Login(ctx, "dispatcher", "wrong-password")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("rejects unknown identifier", func(t *testing.T) {
		t.Parallel()
		f := newServiceFixture(t)
		_, _, err := f.svc.Login(ctx, "nobody", "password123")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("rejects inactive user", func(t *testing.T) {
		t.Parallel()
		f := newServiceFixture(t)
		user := f.seedUser(t, "dispatcher", "dispatcher@example.com", "password123")
		user.Status = domain.UserStatusSuspended

		_, _, err := f.svc.Login(ctx, "dispatcher", "password123")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates user with hashed password and issues tokens", func(t *testing.T) {
		t.Parallel()
		f := newServiceFixture(t)

		user, pair, err := f.svc.Register(ctx, auth.RegisterInput{
			Username: "newhire",
			Email:    "newhire@example.com",
			Name:     "New Hire",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.NotEmpty(t, pair.AccessToken)

		stored := f.users.Users[user.ID]
		require.NotNil(t, stored)
		assert.Equal(t, "hashed:password123", stored.HashedPassword)
		assert.Equal(t, "", stored.Password, "plaintext must be cleared before persistence")
	})

	t.Run("surfaces duplicate email", func(t *testing.T) {
		t.Parallel()
		f := newServiceFixture(t)
		f.seedUser(t, "dispatcher", "taken@example.com", "password123")

		_, _, err := f.svc.Register(ctx, auth.RegisterInput{
			Username: "someone",
			Email:    "taken@example.com",
			Name:     "Someone",
			Password: "password123",
		})
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("rejects short password before touching the store", func(t *testing.T) {
		t.Parallel()
		f := newServiceFixture(t)
		_, _, err := f.svc.Register(ctx, auth.RegisterInput{
			Username: "someone",
			Email:    "someone@example.com",
			Name:     "Someone",
			Password: "short",
		})
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		assert.Empty(t, f.users.Users)
	})
}

func TestRefresh(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("issues a fresh pair for a valid token", func(t *testing.T) {
		t.Parallel()
		f := newServiceFixture(t)
		user := f.seedUser(t, "dispatcher", "dispatcher@example.com", "password123")

		refresh, err := f.jwt.GenerateRefreshToken(ctx, user.ID, user.Role)
		require.NoError(t, err)

		pair, err := f.svc.Refresh(ctx, refresh)
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("rejects garbage tokens", func(t *testing.T) {
		t.Parallel()
		f := newServiceFixture(t)
		_, err := f.svc.Refresh(ctx, "not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})

	t.Run("rejects an access token", func(t *testing.T) {
		t.Parallel()
		f := newServiceFixture(t)
		user := f.seedUser(t, "dispatcher", "dispatcher@example.com", "password123")

		access, err := f.jwt.GenerateToken(ctx, user.ID, user.Role)
		require.NoError(t, err)

		_, err = f.svc.Refresh(ctx, access)
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})

	t.Run("rejects a revoked token", func(t *testing.T) {
		t.Parallel()
		f := newServiceFixture(t)
		user := f.seedUser(t, "dispatcher", "dispatcher@example.com", "password123")

		refresh, err := f.jwt.GenerateRefreshToken(ctx, user.ID, user.Role)
		require.NoError(t, err)
		require.NoError(t, f.svc.Logout(ctx, refresh))

		_, err = f.svc.Refresh(ctx, refresh)
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})

	t.Run("rejects a token for a deleted user", func(t *testing.T) {
		t.Parallel()
		f := newServiceFixture(t)
		user := f.seedUser(t, "dispatcher", "dispatcher@example.com", "password123")

		refresh, err := f.jwt.GenerateRefreshToken(ctx, user.ID, user.Role)
		require.NoError(t, err)
		delete(f.users.Users, user.ID)

		_, err = f.svc.Refresh(ctx, refresh)
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})

	t.Run("rejects a token for a suspended user", func(t *testing.T) {
		t.Parallel()
		f := newServiceFixture(t)
		user := f.seedUser(t, "dispatcher", "dispatcher@example.com", "password123")

		refresh, err := f.jwt.GenerateRefreshToken(ctx, user.ID, user.Role)
		require.NoError(t, err)
		user.Status = domain.UserStatusSuspended

		_, err = f.svc.Refresh(ctx, refresh)
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("revokes the refresh token", func(t *testing.T) {
		t.Parallel()
		f := newServiceFixture(t)
		user := f.seedUser(t, "dispatcher", "dispatcher@example.com", "password123")

		refresh, err := f.jwt.GenerateRefreshToken(ctx, user.ID, user.Role)
		require.NoError(t, err)
		require.NoError(t, f.svc.Logout(ctx, refresh))

		claims, err := f.jwt.ValidateRefreshToken(ctx, refresh)
		require.NoError(t, err)
		revoked, err := f.revoker.IsRevoked(ctx, claims.ID)
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("treats an invalid token as already logged out", func(t *testing.T) {
		t.Parallel()
		f := newServiceFixture(t)
		assert.NoError(t, f.svc.Logout(ctx, "not-a-token"))
	})
}
