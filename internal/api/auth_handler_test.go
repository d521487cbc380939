package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parceldesk/parceldesk-api/internal/api"
	"github.com/parceldesk/parceldesk-api/internal/config"
	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/mocks"
	"github.com/parceldesk/parceldesk-api/internal/service/auth"
)

type authHandlerFixture struct {
	users   *mocks.MockUserStore
	jwt     auth.JWTService
	handler *api.AuthHandler
}

func newAuthHandlerFixture(t *testing.T) *authHandlerFixture {
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
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := auth.NewService(users, jwtService, hasher, hasher, auth.NewMemoryRevoker(), logger)

	return &authHandlerFixture{
		users:   users,
		jwt:     jwtService,
		handler: api.NewAuthHandler(svc),
	}
}

func (f *authHandlerFixture) seedUser(t *testing.T, username, password string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, username+"@example.com", "Seed "+username, password)
	require.NoError(t, err)
	user.HashedPassword = "hashed:" + password
	user.Password = ""
	f.users.Users[user.ID] = user
	return user
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAuthHandlerLogin(t *testing.T) {
	t.Parallel()

	t.Run("returns user and token pair", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)
		seeded := f.seedUser(t, "dispatcher", "password123")

		rec := postJSON(t, f.handler.Login, "/api/auth/login", map[string]string{
			"identifier": "dispatcher",
			"password":   "password123",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, seeded.ID, resp.User.ID)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.NotContains(t, rec.Body.String(), "hashed:", "password hash must never serialize")
	})

	t.Run("wrong password yields 401", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)
		f.seedUser(t, "dispatcher", "password123")

		rec := postJSON(t, f.handler.Login, "/api/auth/login", map[string]string{
			"identifier": "dispatcher",
			"password":   "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials")
	})

	t.Run("missing fields yield 400", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)
		rec := postJSON(t, f.handler.Login, "/api/auth/login", map[string]string{
			"identifier": "dispatcher",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body yields 400", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		f.handler.Login(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandlerRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates the account", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)

		rec := postJSON(t, f.handler.Register, "/api/auth/register", map[string]string{
			"username": "newhire",
			"email":    "newhire@example.com",
			"name":     "New Hire",
			"password": "password123",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp api.AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, domain.RoleUser, resp.User.Role)
		assert.Len(t, f.users.Users, 1)
	})

	t.Run("duplicate email yields 409", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)
		f.seedUser(t, "dispatcher", "password123")

		rec := postJSON(t, f.handler.Register, "/api/auth/register", map[string]string{
			"username": "other",
			"email":    "dispatcher@example.com",
			"name":     "Other",
			"password": "password123",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("short password yields 400", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)
		rec := postJSON(t, f.handler.Register, "/api/auth/register", map[string]string{
			"username": "newhire",
			"email":    "newhire@example.com",
			"name":     "New Hire",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandlerRefresh(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("rotates the pair", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)
		user := f.seedUser(t, "dispatcher", "password123")

		refresh, err := f.jwt.GenerateRefreshToken(ctx, user.ID, user.Role)
		require.NoError(t, err)

		rec := postJSON(t, f.handler.Refresh, "/api/auth/refresh", map[string]string{
			"refresh_token": refresh,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.RefreshTokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
	})

	t.Run("invalid token yields 401", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)
		rec := postJSON(t, f.handler.Refresh, "/api/auth/refresh", map[string]string{
			"refresh_token": "garbage",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthHandlerLogout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("revokes and returns 204", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)
		user := f.seedUser(t, "dispatcher", "password123")

		refresh, err := f.jwt.GenerateRefreshToken(ctx, user.ID, user.Role)
		require.NoError(t, err)

		rec := postJSON(t, f.handler.Logout, "/api/auth/logout", map[string]string{
			"refresh_token": refresh,
		})
		assert.Equal(t, http.StatusNoContent, rec.Code)

		// The revoked token can no longer be exchanged.
		rec = postJSON(t, f.handler.Refresh, "/api/auth/refresh", map[string]string{
			"refresh_token": refresh,
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("already-invalid token still logs out", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)
		rec := postJSON(t, f.handler.Logout, "/api/auth/logout", map[string]string{
			"refresh_token": "garbage",
		})
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
