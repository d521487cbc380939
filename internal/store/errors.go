package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store. Entity-specific variants wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a unique
	// constraint. Entity-specific variants wrap it.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation or a
	// database constraint before being stored.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a transaction fails to begin
	// or commit.
	ErrTransactionFailed = errors.New("transaction failed")
)

// Entity-specific "not found" errors.
var (
	ErrUserNotFound     = fmt.Errorf("%w: user", ErrNotFound)
	ErrDriverNotFound   = fmt.Errorf("%w: driver", ErrNotFound)
	ErrMerchantNotFound = fmt.Errorf("%w: merchant", ErrNotFound)
	ErrPackageNotFound  = fmt.Errorf("%w: package", ErrNotFound)
	ErrSettingNotFound  = fmt.Errorf("%w: setting", ErrNotFound)
)

// Entity-specific "duplicate" errors, each tied to a unique constraint
// in the schema.
var (
	ErrEmailExists         = fmt.Errorf("%w: email", ErrDuplicate)
	ErrUsernameExists      = fmt.Errorf("%w: username", ErrDuplicate)
	ErrBankAccountExists   = fmt.Errorf("%w: bank account number", ErrDuplicate)
	ErrPackageNumberExists = fmt.Errorf("%w: package number", ErrDuplicate)
	ErrSettingKeyExists    = fmt.Errorf("%w: setting key", ErrDuplicate)
)

// ErrHasPackages is returned when deleting a driver or merchant that
// still has packages referencing it.
var ErrHasPackages = errors.New("entity still has associated packages")

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
