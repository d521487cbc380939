package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/service/auth"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes so
// handlers never leak internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case store.IsDuplicateError(err),
		errors.Is(err, store.ErrHasPackages),
		errors.Is(err, domain.ErrInvalidStatusTransition),
		errors.Is(err, domain.ErrLastSuperAdmin),
		errors.Is(err, domain.ErrPackageNotDeletable),
		errors.Is(err, domain.ErrDriverUnavailable):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for an
// internal error.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrDriverNotFound):
		return "Driver not found"
	case errors.Is(err, store.ErrMerchantNotFound):
		return "Merchant not found"
	case errors.Is(err, store.ErrPackageNotFound):
		return "Package not found"
	case errors.Is(err, store.ErrSettingNotFound):
		return "Setting not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, store.ErrUsernameExists):
		return "Username already exists"
	case errors.Is(err, store.ErrBankAccountExists):
		return "Bank account number already exists"
	case errors.Is(err, store.ErrPackageNumberExists):
		return "Package number already exists"
	case errors.Is(err, store.ErrSettingKeyExists):
		return "Setting key already exists"

	case errors.Is(err, store.ErrHasPackages):
		return "Cannot delete: packages still reference this record"
	case errors.Is(err, domain.ErrLastSuperAdmin):
		return "Cannot delete the last super admin"
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		return "Invalid package status transition"
	case errors.Is(err, domain.ErrPackageNotDeletable):
		return "Package cannot be deleted while in transit"
	case errors.Is(err, domain.ErrDriverUnavailable):
		return "Driver is not available for assignment"

	case errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong):
		return "Password must be between 8 and 72 characters"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError collapses a validator error chain into a
// user-friendly message naming the first failing field.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, validationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "uuid":
		return "invalid ID format"
	default:
		return "validation failed"
	}
}
