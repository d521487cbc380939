package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/parceldesk/parceldesk-api/internal/domain"
)

// DriverStore defines the interface for driver data persistence.
//
// Uniqueness of email and bank account number is enforced by database
// constraints and surfaced as ErrEmailExists or ErrBankAccountExists.
type DriverStore interface {
	// Create saves a new driver.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	// Returns ErrDriverNotFound if the driver does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Driver, error)

	// Update modifies an existing driver.
	// Returns ErrDriverNotFound if the driver does not exist.
	Update(ctx context.Context, driver *domain.Driver) error

	// Delete removes a driver by ID. It does not check for dependent
	// packages; callers guard with CountPackages inside a transaction,
	// and the schema's ON DELETE RESTRICT backs that up.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a page of drivers matching the filter, newest first,
	// with the total match count. Search covers name, email, phone, and
	// bank account number.
	List(ctx context.Context, filter ListFilter) ([]*domain.Driver, int, error)

	// CountPackages returns the number of packages referencing the driver.
	CountPackages(ctx context.Context, id uuid.UUID) (int, error)

	// Count returns the total number of drivers.
	Count(ctx context.Context) (int, error)

	// WithTx returns a DriverStore bound to the given transaction.
	WithTx(tx *sql.Tx) DriverStore
}
