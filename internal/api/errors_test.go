package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parceldesk/parceldesk-api/internal/api"
	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/service/auth"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid refresh token", auth.ErrInvalidRefreshToken, http.StatusUnauthorized},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"package not found", store.ErrPackageNotFound, http.StatusNotFound},
		{"setting not found", store.ErrSettingNotFound, http.StatusNotFound},
		{"duplicate email", store.ErrEmailExists, http.StatusConflict},
		{"duplicate setting key", store.ErrSettingKeyExists, http.StatusConflict},
		{"referenced by packages", store.ErrHasPackages, http.StatusConflict},
		{"illegal status transition", domain.ErrInvalidStatusTransition, http.StatusConflict},
		{"last super admin", domain.ErrLastSuperAdmin, http.StatusConflict},
		{"package in transit", domain.ErrPackageNotDeletable, http.StatusConflict},
		{"driver unavailable", domain.ErrDriverUnavailable, http.StatusConflict},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest},
		{"short password", domain.ErrPasswordTooShort, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, api.MapErrorToStatusCode(tc.err))
		})
	}

	t.Run("wrapped errors keep their status", func(t *testing.T) {
		t.Parallel()
		wrapped := fmt.Errorf("deleting driver: %w", store.ErrHasPackages)
		assert.Equal(t, http.StatusConflict, api.MapErrorToStatusCode(wrapped))
	})
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"invalid credentials", auth.ErrInvalidCredentials, "Invalid credentials"},
		{"driver not found", store.ErrDriverNotFound, "Driver not found"},
		{"duplicate bank account", store.ErrBankAccountExists, "Bank account number already exists"},
		{"last super admin", domain.ErrLastSuperAdmin, "Cannot delete the last super admin"},
		{"password bounds", domain.ErrPasswordTooLong, "Password must be between 8 and 72 characters"},
		{"internal detail never leaks", errors.New("pq: connection refused"), "An unexpected error occurred"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, api.GetSafeErrorMessage(tc.err))
		})
	}
}
