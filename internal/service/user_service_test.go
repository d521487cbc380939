package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/mocks"
	"github.com/parceldesk/parceldesk-api/internal/service"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newUserService(users *mocks.MockUserStore) *service.UserService {
	return service.NewUserService(users, &mocks.MockPasswordHasher{}, &mocks.MockTxRunner{}, testLogger())
}

func seedUser(t *testing.T, users *mocks.MockUserStore, username string, role domain.Role) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, username+"@example.com", "Seed "+username, "password123")
	require.NoError(t, err)
	user.Role = role
	user.HashedPassword = "hashed:password123"
	user.Password = ""
	users.Users[user.ID] = user
	return user
}

func TestUserServiceCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("hashes the password and applies defaults", func(t *testing.T) {
		t.Parallel()
		users := mocks.NewMockUserStore()
		svc := newUserService(users)

		created, err := svc.Create(ctx, service.CreateUserInput{
			Username: "dispatcher",
			Email:    "dispatcher@example.com",
			Name:     "Dispatcher",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, created.Role)
		assert.Equal(t, domain.UserStatusActive, created.Status)
		assert.Equal(t, "", created.HashedPassword, "response must be sanitized")

		stored := users.Users[created.ID]
		require.NotNil(t, stored)
		assert.Equal(t, "hashed:password123", stored.HashedPassword)
	})

	t.Run("honors explicit role and status", func(t *testing.T) {
		t.Parallel()
		users := mocks.NewMockUserStore()
		svc := newUserService(users)

		created, err := svc.Create(ctx, service.CreateUserInput{
			Username: "ops-admin",
			Email:    "ops@example.com",
			Name:     "Ops Admin",
			Password: "password123",
			Role:     domain.RoleAdmin,
			Status:   domain.UserStatusInactive,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, created.Role)
		assert.Equal(t, domain.UserStatusInactive, created.Status)
	})

	t.Run("surfaces duplicate username", func(t *testing.T) {
		t.Parallel()
		users := mocks.NewMockUserStore()
		seedUser(t, users, "dispatcher", domain.RoleUser)
		svc := newUserService(users)

		_, err := svc.Create(ctx, service.CreateUserInput{
			Username: "dispatcher",
			Email:    "other@example.com",
			Name:     "Other",
			Password: "password123",
		})
		assert.ErrorIs(t, err, store.ErrUsernameExists)
	})
}

func TestUserServiceUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("applies only the provided fields", func(t *testing.T) {
		t.Parallel()
		users := mocks.NewMockUserStore()
		user := seedUser(t, users, "dispatcher", domain.RoleUser)
		svc := newUserService(users)

		newName := "Renamed"
		newRole := domain.RoleAdmin
		updated, err := svc.Update(ctx, user.ID, service.UpdateUserInput{
			Name: &newName,
			Role: &newRole,
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Name)
		assert.Equal(t, domain.RoleAdmin, updated.Role)
		assert.Equal(t, "dispatcher", updated.Username, "untouched fields survive")
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		svc := newUserService(mocks.NewMockUserStore())
		_, err := svc.Update(ctx, uuid.New(), service.UpdateUserInput{})
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestUserServiceDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("deletes a regular user", func(t *testing.T) {
		t.Parallel()
		users := mocks.NewMockUserStore()
		user := seedUser(t, users, "dispatcher", domain.RoleUser)
		svc := newUserService(users)

		require.NoError(t, svc.Delete(ctx, user.ID))
		assert.NotContains(t, users.Users, user.ID)
	})

	t.Run("refuses to delete the last super admin", func(t *testing.T) {
		t.Parallel()
		users := mocks.NewMockUserStore()
		admin := seedUser(t, users, "root", domain.RoleSuperAdmin)
		svc := newUserService(users)

		err := svc.Delete(ctx, admin.ID)
		assert.ErrorIs(t, err, domain.ErrLastSuperAdmin)
		assert.Contains(t, users.Users, admin.ID, "guard must leave the row in place")
	})

	t.Run("deletes a super admin when another remains", func(t *testing.T) {
		t.Parallel()
		users := mocks.NewMockUserStore()
		first := seedUser(t, users, "root", domain.RoleSuperAdmin)
		seedUser(t, users, "root2", domain.RoleSuperAdmin)
		svc := newUserService(users)

		require.NoError(t, svc.Delete(ctx, first.ID))
	})
}

func TestUserServiceChangePassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("rehashes and persists", func(t *testing.T) {
		t.Parallel()
		users := mocks.NewMockUserStore()
		user := seedUser(t, users, "dispatcher", domain.RoleUser)
		svc := newUserService(users)

		require.NoError(t, svc.ChangePassword(ctx, user.ID, "new-password"))
		assert.Equal(t, "hashed:new-password", users.Users[user.ID].HashedPassword)
	})

	t.Run("enforces length bounds without a store round trip", func(t *testing.T) {
		t.Parallel()
		svc := newUserService(mocks.NewMockUserStore())

		assert.ErrorIs(t, svc.ChangePassword(ctx, uuid.New(), "short"), domain.ErrPasswordTooShort)

		long := make([]byte, 73)
		for i := range long {
			long[i] = 'x'
		}
		assert.ErrorIs(t, svc.ChangePassword(ctx, uuid.New(), string(long)), domain.ErrPasswordTooLong)
	})
}

func TestUserServiceList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := mocks.NewMockUserStore()
	seedUser(t, users, "alpha", domain.RoleUser)
	seedUser(t, users, "beta", domain.RoleUser)
	svc := newUserService(users)

	page, err := svc.List(ctx, store.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, store.DefaultPage, page.Pagination.Page)
	assert.Equal(t, store.DefaultLimit, page.Pagination.Limit)
	for _, user := range page.Items {
		assert.Equal(t, "", user.HashedPassword, "listed users must be sanitized")
	}
}
