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

// CreateDriverInput carries the fields for driver creation.
type CreateDriverInput struct {
	Email             string
	Name              string
	Phone             string
	DeliverFee        float64
	DriverStatus      domain.DriverStatus
	Bank              string
	BankAccountName   string
	BankAccountNumber string
	Latitude          float64
	Longitude         float64
}

// UpdateDriverInput carries a partial driver update. Nil fields are
// left unchanged.
type UpdateDriverInput struct {
	Email             *string
	Name              *string
	Phone             *string
	DeliverFee        *float64
	DriverStatus      *domain.DriverStatus
	Bank              *string
	BankAccountName   *string
	BankAccountNumber *string
	Latitude          *float64
	Longitude         *float64
	Status            *domain.UserStatus
}

// DriverDetail is a driver together with the packages currently
// referencing it.
type DriverDetail struct {
	*domain.Driver
	Packages []*domain.Package `json:"packages"`
}

// DriverService provides driver management operations.
type DriverService struct {
	drivers  store.DriverStore
	packages store.PackageStore
	db       store.TxRunner
	logger   *slog.Logger
}

// NewDriverService creates a DriverService.
func NewDriverService(drivers store.DriverStore, packages store.PackageStore, db store.TxRunner, logger *slog.Logger) *DriverService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DriverService{
		drivers:  drivers,
		packages: packages,
		db:       db,
		logger:   logger.With(slog.String("component", "driver_service")),
	}
}

// Create creates a driver profile. Duplicate email or bank account
// number surfaces as the store's conflict error.
func (s *DriverService) Create(ctx context.Context, input CreateDriverInput) (*domain.Driver, error) {
	driver, err := domain.NewDriver(input.Email, input.Name, input.Phone, input.BankAccountNumber, input.DeliverFee)
	if err != nil {
		return nil, err
	}
	driver.Bank = input.Bank
	driver.BankAccountName = input.BankAccountName
	driver.Latitude = input.Latitude
	driver.Longitude = input.Longitude
	if input.DriverStatus != "" {
		driver.DriverStatus = input.DriverStatus
	}
	if err := driver.Validate(); err != nil {
		return nil, err
	}

	if err := s.drivers.Create(ctx, driver); err != nil {
		return nil, err
	}

	s.logger.Info("driver created", "driver_id", driver.ID)
	return driver, nil
}

// List returns a page of drivers.
func (s *DriverService) List(ctx context.Context, filter store.ListFilter) (*Page[*domain.Driver], error) {
	filter = filter.Normalize()
	drivers, total, err := s.drivers.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	return &Page[*domain.Driver]{Items: drivers, Pagination: NewPagination(filter, total)}, nil
}

// Get retrieves a driver together with its packages.
func (s *DriverService) Get(ctx context.Context, id uuid.UUID) (*DriverDetail, error) {
	driver, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pkgs, _, err := s.packages.List(ctx, store.PackageFilter{
		ListFilter: store.ListFilter{Page: 1, Limit: store.MaxLimit},
		DriverID:   &id,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load driver packages: %w", err)
	}

	return &DriverDetail{Driver: driver, Packages: pkgs}, nil
}

// Update applies a partial update.
func (s *DriverService) Update(ctx context.Context, id uuid.UUID, input UpdateDriverInput) (*domain.Driver, error) {
	var updated *domain.Driver
	err := s.db.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.drivers.WithTx(tx)

		driver, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if input.Email != nil {
			driver.Email = *input.Email
		}
		if input.Name != nil {
			driver.Name = *input.Name
		}
		if input.Phone != nil {
			driver.Phone = *input.Phone
		}
		if input.DeliverFee != nil {
			driver.DeliverFee = *input.DeliverFee
		}
		if input.DriverStatus != nil {
			driver.DriverStatus = *input.DriverStatus
		}
		if input.Bank != nil {
			driver.Bank = *input.Bank
		}
		if input.BankAccountName != nil {
			driver.BankAccountName = *input.BankAccountName
		}
		if input.BankAccountNumber != nil {
			driver.BankAccountNumber = *input.BankAccountNumber
		}
		if input.Latitude != nil {
			driver.Latitude = *input.Latitude
		}
		if input.Longitude != nil {
			driver.Longitude = *input.Longitude
		}
		if input.Status != nil {
			driver.Status = *input.Status
		}

		if err := txStore.Update(ctx, driver); err != nil {
			return err
		}
		updated = driver
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("driver updated", "driver_id", id)
	return updated, nil
}

// Delete removes a driver. Deletion is rejected with
// store.ErrHasPackages while any package references the driver; the
// count check and delete share a transaction, and the schema's
// RESTRICT foreign key is the backstop.
func (s *DriverService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.drivers.WithTx(tx)

		if _, err := txStore.GetByID(ctx, id); err != nil {
			return err
		}

		count, err := txStore.CountPackages(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to count driver packages: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: driver has %d package(s)", store.ErrHasPackages, count)
		}

		return txStore.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("driver deleted", "driver_id", id)
	return nil
}
