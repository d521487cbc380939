package api_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parceldesk/parceldesk-api/internal/api"
	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/mocks"
	"github.com/parceldesk/parceldesk-api/internal/service"
)

type userHandlerFixture struct {
	users   *mocks.MockUserStore
	handler *api.UserHandler
}

func newUserHandlerFixture(t *testing.T) *userHandlerFixture {
	t.Helper()

	users := mocks.NewMockUserStore()
	hasher := &mocks.MockPasswordHasher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewUserService(users, hasher, &mocks.MockTxRunner{}, logger)

	return &userHandlerFixture{users: users, handler: api.NewUserHandler(svc)}
}

func TestUserHandlerCreateRoles(t *testing.T) {
	t.Parallel()

	accepted := []domain.Role{
		domain.RoleSuperAdmin,
		domain.RoleAdmin,
		domain.RoleUser,
		domain.RoleMerchant,
		domain.RoleDriver,
	}

	for _, role := range accepted {
		role := role
		t.Run("accepts role "+string(role), func(t *testing.T) {
			t.Parallel()
			f := newUserHandlerFixture(t)

			rec := postJSON(t, f.handler.Create, "/api/users", map[string]string{
				"username": "account",
				"email":    "account@example.com",
				"name":     "Account",
				"password": "password123",
				"role":     string(role),
			})
			require.Equal(t, http.StatusCreated, rec.Code)

			var user domain.User
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
			assert.Equal(t, role, user.Role)
		})
	}

	t.Run("rejects an unknown role", func(t *testing.T) {
		t.Parallel()
		f := newUserHandlerFixture(t)

		rec := postJSON(t, f.handler.Create, "/api/users", map[string]string{
			"username": "account",
			"email":    "account@example.com",
			"name":     "Account",
			"password": "password123",
			"role":     "BOSS",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, f.users.Users)
	})
}
