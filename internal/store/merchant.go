package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/parceldesk/parceldesk-api/internal/domain"
)

// MerchantStore defines the interface for merchant data persistence.
//
// Uniqueness of bank account number (and email, when present) is
// enforced by database constraints and surfaced as ErrBankAccountExists
// or ErrEmailExists.
type MerchantStore interface {
	// Create saves a new merchant.
	Create(ctx context.Context, merchant *domain.Merchant) error

	// GetByID retrieves a merchant by ID.
	// Returns ErrMerchantNotFound if the merchant does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error)

	// Update modifies an existing merchant.
	// Returns ErrMerchantNotFound if the merchant does not exist.
	Update(ctx context.Context, merchant *domain.Merchant) error

	// Delete removes a merchant by ID. Callers guard with CountPackages
	// inside a transaction; the schema's ON DELETE RESTRICT backs that up.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a page of merchants matching the filter, newest
	// first, with the total match count. Search covers name, email,
	// phone, address, and bank account number.
	List(ctx context.Context, filter ListFilter) ([]*domain.Merchant, int, error)

	// CountPackages returns the number of packages owned by the merchant.
	CountPackages(ctx context.Context, id uuid.UUID) (int, error)

	// Count returns the total number of merchants.
	Count(ctx context.Context) (int, error)

	// WithTx returns a MerchantStore bound to the given transaction.
	WithTx(tx *sql.Tx) MerchantStore
}
