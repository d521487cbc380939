package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or empty.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrLastSuperAdmin is returned when deleting a user would leave the
	// system without any SUPER_ADMIN account.
	ErrLastSuperAdmin = errors.New("cannot delete the last super admin")

	// ErrInvalidStatusTransition is returned when a package status change
	// is not permitted by the lifecycle transition table.
	ErrInvalidStatusTransition = errors.New("invalid package status transition")

	// ErrDriverUnavailable is returned when a package is assigned to a
	// driver whose status does not allow deliveries.
	ErrDriverUnavailable = errors.New("driver is not available for assignment")

	// ErrPackageNotDeletable is returned when deleting a package that is
	// still moving through the delivery lifecycle.
	ErrPackageNotDeletable = errors.New("package cannot be deleted while in transit")
)
