package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

// CreatePackageInput carries the fields for package creation. A zero
// DeliveryFee means "use the merchant's configured fee".
type CreatePackageInput struct {
	MerchantID      uuid.UUID
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	CODAmount       float64
	DeliveryFee     float64
}

// UpdatePackageInput carries a partial package update. Status changes
// go through UpdateStatus, not here.
type UpdatePackageInput struct {
	CustomerName    *string
	CustomerPhone   *string
	CustomerAddress *string
	CODAmount       *float64
	DeliveryFee     *float64
}

// PackageService provides package lifecycle operations.
type PackageService struct {
	packages  store.PackageStore
	merchants store.MerchantStore
	drivers   store.DriverStore
	db        store.TxRunner
	logger    *slog.Logger
}

// NewPackageService creates a PackageService.
func NewPackageService(packages store.PackageStore, merchants store.MerchantStore, drivers store.DriverStore, db store.TxRunner, logger *slog.Logger) *PackageService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PackageService{
		packages:  packages,
		merchants: merchants,
		drivers:   drivers,
		db:        db,
		logger:    logger.With(slog.String("component", "package_service")),
	}
}

// buildPackage resolves the merchant and constructs a domain package
// from one input row.
func (s *PackageService) buildPackage(ctx context.Context, merchants store.MerchantStore, input CreatePackageInput) (*domain.Package, error) {
	merchant, err := merchants.GetByID(ctx, input.MerchantID)
	if err != nil {
		return nil, err
	}

	fee := input.DeliveryFee
	if fee == 0 {
		fee = merchant.DeliverFee
	}

	return domain.NewPackage(merchant.ID, input.CustomerName, input.CustomerPhone,
		input.CustomerAddress, input.CODAmount, fee)
}

// Create registers a single package in status RECEIVED.
func (s *PackageService) Create(ctx context.Context, input CreatePackageInput) (*domain.Package, error) {
	pkg, err := s.buildPackage(ctx, s.merchants, input)
	if err != nil {
		return nil, err
	}

	if err := s.packages.Create(ctx, pkg); err != nil {
		return nil, err
	}

	s.logger.Info("package created",
		"package_id", pkg.ID,
		"package_number", pkg.PackageNumber,
		"merchant_id", pkg.MerchantID)
	return pkg, nil
}

// BulkCreate registers multiple packages atomically: either every row
// is created or none is.
func (s *PackageService) BulkCreate(ctx context.Context, inputs []CreatePackageInput) ([]*domain.Package, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: empty package batch", domain.ErrValidation)
	}

	var pkgs []*domain.Package
	err := s.db.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txPackages := s.packages.WithTx(tx)
		txMerchants := s.merchants.WithTx(tx)

		pkgs = make([]*domain.Package, 0, len(inputs))
		for _, input := range inputs {
			pkg, err := s.buildPackage(ctx, txMerchants, input)
			if err != nil {
				return err
			}
			pkgs = append(pkgs, pkg)
		}
		return txPackages.CreateBatch(ctx, pkgs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("package batch created", "count", len(pkgs))
	return pkgs, nil
}

// List returns a page of packages matching the filter.
func (s *PackageService) List(ctx context.Context, filter store.PackageFilter) (*Page[*domain.Package], error) {
	filter.ListFilter = filter.Normalize()
	pkgs, total, err := s.packages.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return &Page[*domain.Package]{Items: pkgs, Pagination: NewPagination(filter.ListFilter, total)}, nil
}

// Get retrieves a package by ID.
func (s *PackageService) Get(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	return s.packages.GetByID(ctx, id)
}

// GetByNumber retrieves a package by its package number.
func (s *PackageService) GetByNumber(ctx context.Context, number string) (*domain.Package, error) {
	return s.packages.GetByNumber(ctx, number)
}

// Update applies a partial update to customer and amount fields.
func (s *PackageService) Update(ctx context.Context, id uuid.UUID, input UpdatePackageInput) (*domain.Package, error) {
	var updated *domain.Package
	err := s.db.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.packages.WithTx(tx)

		pkg, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if input.CustomerName != nil {
			pkg.CustomerName = *input.CustomerName
		}
		if input.CustomerPhone != nil {
			pkg.CustomerPhone = *input.CustomerPhone
		}
		if input.CustomerAddress != nil {
			pkg.CustomerAddress = *input.CustomerAddress
		}
		if input.CODAmount != nil {
			pkg.CODAmount = *input.CODAmount
		}
		if input.DeliveryFee != nil {
			pkg.DeliveryFee = *input.DeliveryFee
		}

		if err := txStore.Update(ctx, pkg); err != nil {
			return err
		}
		updated = pkg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateStatus moves a package through its lifecycle, enforcing the
// transition table. Reaching DELIVERED stamps the delivery time.
func (s *PackageService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PackageStatus) (*domain.Package, error) {
	var updated *domain.Package
	err := s.db.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.packages.WithTx(tx)

		pkg, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := pkg.TransitionTo(status); err != nil {
			return err
		}

		if err := txStore.Update(ctx, pkg); err != nil {
			return err
		}
		updated = pkg
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("package status updated",
		"package_id", id,
		"status", status)
	return updated, nil
}

// AssignDriver sets the package's driver reference. Suspended drivers
// and inactive accounts are rejected with domain.ErrDriverUnavailable.
func (s *PackageService) AssignDriver(ctx context.Context, id, driverID uuid.UUID) (*domain.Package, error) {
	var updated *domain.Package
	err := s.db.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txPackages := s.packages.WithTx(tx)
		txDrivers := s.drivers.WithTx(tx)

		pkg, err := txPackages.GetByID(ctx, id)
		if err != nil {
			return err
		}

		driver, err := txDrivers.GetByID(ctx, driverID)
		if err != nil {
			return err
		}
		if !driver.Assignable() {
			return fmt.Errorf("%w: driver %s", domain.ErrDriverUnavailable, driver.ID)
		}

		pkg.DriverID = &driver.ID
		if err := txPackages.Update(ctx, pkg); err != nil {
			return err
		}
		updated = pkg
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("driver assigned", "package_id", id, "driver_id", driverID)
	return updated, nil
}

// UnassignDriver clears the package's driver reference.
func (s *PackageService) UnassignDriver(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	var updated *domain.Package
	err := s.db.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.packages.WithTx(tx)

		pkg, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		pkg.DriverID = nil
		if err := txStore.Update(ctx, pkg); err != nil {
			return err
		}
		updated = pkg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// FlagIssue marks a package as problematic, optionally recording an
// extra delivery fee incurred by the issue. An empty note clears the
// flag.
func (s *PackageService) FlagIssue(ctx context.Context, id uuid.UUID, note string, extraFee float64) (*domain.Package, error) {
	if extraFee < 0 {
		return nil, domain.ErrNegativeDeliveryFee
	}

	var updated *domain.Package
	err := s.db.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.packages.WithTx(tx)

		pkg, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		pkg.HasIssue = note != ""
		pkg.IssueNote = note
		pkg.ExtraDeliveryFee = extraFee

		if err := txStore.Update(ctx, pkg); err != nil {
			return err
		}
		updated = pkg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a package. Only packages that never left the warehouse
// (RECEIVED) or finished their lifecycle may be deleted.
func (s *PackageService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.packages.WithTx(tx)

		pkg, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if pkg.Status != domain.PackageStatusReceived && !pkg.Status.Terminal() {
			return fmt.Errorf("%w: status %s", domain.ErrPackageNotDeletable, pkg.Status)
		}

		return txStore.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("package deleted", "package_id", id)
	return nil
}
