package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parceldesk/parceldesk-api/internal/api/middleware"
	"github.com/parceldesk/parceldesk-api/internal/api/shared"
	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/mocks"
	"github.com/parceldesk/parceldesk-api/internal/service/auth"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	jwtService := &mocks.MockJWTService{
		ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
			switch token {
			case "valid-token":
				return &auth.Claims{UserID: userID, Role: domain.RoleAdmin}, nil
			case "expired-token":
				return nil, auth.ErrExpiredToken
			default:
				return nil, auth.ErrInvalidToken
			}
		},
	}
	mw := middleware.NewAuthMiddleware(jwtService)

	t.Run("valid token puts the user on the context", func(t *testing.T) {
		t.Parallel()
		var gotID uuid.UUID
		var gotRole domain.Role
		handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := shared.GetUserID(r.Context())
			require.True(t, ok)
			gotID = id
			role, ok := shared.GetUserRole(r.Context())
			require.True(t, ok)
			gotRole = role
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, gotID)
		assert.Equal(t, domain.RoleAdmin, gotRole)
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "valid-token", http.StatusUnauthorized},
		{"wrong scheme", "Basic valid-token", http.StatusUnauthorized},
		{"expired token", "Bearer expired-token", http.StatusUnauthorized},
		{"garbage token", "Bearer nonsense", http.StatusUnauthorized},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			called := false
			handler := mw.Authenticate(okHandler(&called))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.False(t, called, "handler must not run")
		})
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	mw := middleware.NewAuthMiddleware(&mocks.MockJWTService{})
	adminOnly := mw.RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin)

	t.Run("allows a listed role", func(t *testing.T) {
		t.Parallel()
		called := false
		handler := adminOnly(okHandler(&called))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(shared.WithUser(req.Context(), uuid.New(), domain.RoleSuperAdmin))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
	})

	t.Run("forbids an unlisted role", func(t *testing.T) {
		t.Parallel()
		called := false
		handler := adminOnly(okHandler(&called))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(shared.WithUser(req.Context(), uuid.New(), domain.RoleUser))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, called)
	})

	t.Run("rejects an unauthenticated request", func(t *testing.T) {
		t.Parallel()
		called := false
		handler := adminOnly(okHandler(&called))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})
}
