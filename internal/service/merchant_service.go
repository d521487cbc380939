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

// CreateMerchantInput carries the fields for merchant creation.
type CreateMerchantInput struct {
	Email             string
	Name              string
	Phone             string
	DeliverFee        float64
	Bank              string
	BankAccountName   string
	BankAccountNumber string
	Address           string
	MapURL            string
}

// UpdateMerchantInput carries a partial merchant update. Nil fields
// are left unchanged.
type UpdateMerchantInput struct {
	Email             *string
	Name              *string
	Phone             *string
	DeliverFee        *float64
	Bank              *string
	BankAccountName   *string
	BankAccountNumber *string
	Address           *string
	MapURL            *string
	Status            *domain.UserStatus
}

// MerchantDetail is a merchant together with the packages it owns.
type MerchantDetail struct {
	*domain.Merchant
	Packages []*domain.Package `json:"packages"`
}

// MerchantService provides merchant management operations.
type MerchantService struct {
	merchants store.MerchantStore
	packages  store.PackageStore
	db        store.TxRunner
	logger    *slog.Logger
}

// NewMerchantService creates a MerchantService.
func NewMerchantService(merchants store.MerchantStore, packages store.PackageStore, db store.TxRunner, logger *slog.Logger) *MerchantService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MerchantService{
		merchants: merchants,
		packages:  packages,
		db:        db,
		logger:    logger.With(slog.String("component", "merchant_service")),
	}
}

// Create creates a merchant profile. Duplicate bank account number or
// email surfaces as the store's conflict error.
func (s *MerchantService) Create(ctx context.Context, input CreateMerchantInput) (*domain.Merchant, error) {
	merchant, err := domain.NewMerchant(input.Name, input.Phone, input.Address, input.BankAccountNumber, input.DeliverFee)
	if err != nil {
		return nil, err
	}
	merchant.Email = input.Email
	merchant.Bank = input.Bank
	merchant.BankAccountName = input.BankAccountName
	merchant.MapURL = input.MapURL
	if err := merchant.Validate(); err != nil {
		return nil, err
	}

	if err := s.merchants.Create(ctx, merchant); err != nil {
		return nil, err
	}

	s.logger.Info("merchant created", "merchant_id", merchant.ID)
	return merchant, nil
}

// List returns a page of merchants.
func (s *MerchantService) List(ctx context.Context, filter store.ListFilter) (*Page[*domain.Merchant], error) {
	filter = filter.Normalize()
	merchants, total, err := s.merchants.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list merchants: %w", err)
	}
	return &Page[*domain.Merchant]{Items: merchants, Pagination: NewPagination(filter, total)}, nil
}

// Get retrieves a merchant together with its packages.
func (s *MerchantService) Get(ctx context.Context, id uuid.UUID) (*MerchantDetail, error) {
	merchant, err := s.merchants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pkgs, _, err := s.packages.List(ctx, store.PackageFilter{
		ListFilter: store.ListFilter{Page: 1, Limit: store.MaxLimit},
		MerchantID: &id,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load merchant packages: %w", err)
	}

	return &MerchantDetail{Merchant: merchant, Packages: pkgs}, nil
}

// Update applies a partial update.
func (s *MerchantService) Update(ctx context.Context, id uuid.UUID, input UpdateMerchantInput) (*domain.Merchant, error) {
	var updated *domain.Merchant
	err := s.db.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.merchants.WithTx(tx)

		merchant, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if input.Email != nil {
			merchant.Email = *input.Email
		}
		if input.Name != nil {
			merchant.Name = *input.Name
		}
		if input.Phone != nil {
			merchant.Phone = *input.Phone
		}
		if input.DeliverFee != nil {
			merchant.DeliverFee = *input.DeliverFee
		}
		if input.Bank != nil {
			merchant.Bank = *input.Bank
		}
		if input.BankAccountName != nil {
			merchant.BankAccountName = *input.BankAccountName
		}
		if input.BankAccountNumber != nil {
			merchant.BankAccountNumber = *input.BankAccountNumber
		}
		if input.Address != nil {
			merchant.Address = *input.Address
		}
		if input.MapURL != nil {
			merchant.MapURL = *input.MapURL
		}
		if input.Status != nil {
			merchant.Status = *input.Status
		}

		if err := txStore.Update(ctx, merchant); err != nil {
			return err
		}
		updated = merchant
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("merchant updated", "merchant_id", id)
	return updated, nil
}

// Delete removes a merchant. Deletion is rejected with
// store.ErrHasPackages while any package references the merchant.
func (s *MerchantService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.merchants.WithTx(tx)

		if _, err := txStore.GetByID(ctx, id); err != nil {
			return err
		}

		count, err := txStore.CountPackages(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to count merchant packages: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: merchant has %d package(s)", store.ErrHasPackages, count)
		}

		return txStore.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("merchant deleted", "merchant_id", id)
	return nil
}
