package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/parceldesk/parceldesk-api/internal/domain"
)

// PackageStore defines the interface for package data persistence.
type PackageStore interface {
	// Create saves a new package. Returns ErrPackageNumberExists if the
	// generated number collides, and ErrInvalidEntity if the merchant or
	// driver reference violates a foreign key.
	Create(ctx context.Context, pkg *domain.Package) error

	// CreateBatch saves multiple packages. Callers run it inside a
	// transaction via WithTx so the batch is all-or-nothing.
	CreateBatch(ctx context.Context, pkgs []*domain.Package) error

	// GetByID retrieves a package by ID.
	// Returns ErrPackageNotFound if the package does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Package, error)

	// GetByNumber retrieves a package by its package number.
	// Returns ErrPackageNotFound if no package matches.
	GetByNumber(ctx context.Context, number string) (*domain.Package, error)

	// Update modifies an existing package.
	// Returns ErrPackageNotFound if the package does not exist.
	Update(ctx context.Context, pkg *domain.Package) error

	// Delete removes a package by ID.
	// Returns ErrPackageNotFound if the package does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a page of packages matching the filter, newest first,
	// with the total match count. Search covers package number and the
	// customer's name, phone, and address.
	List(ctx context.Context, filter PackageFilter) ([]*domain.Package, int, error)

	// CountByStatus returns the number of packages in each status.
	CountByStatus(ctx context.Context) (map[domain.PackageStatus]int, error)

	// DeliveredCODSince sums the COD amounts of packages delivered at or
	// after the given time.
	DeliveredCODSince(ctx context.Context, since time.Time) (float64, error)

	// CODSummary aggregates package counts, COD totals, and fee totals
	// over the filter's time range, grouped by driver or merchant.
	CODSummary(ctx context.Context, filter CODReportFilter) ([]CODSummaryRow, error)

	// WithTx returns a PackageStore bound to the given transaction.
	WithTx(tx *sql.Tx) PackageStore
}
