package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

// MockMerchantStore implements store.MerchantStore for testing.
type MockMerchantStore struct {
	CreateFn        func(ctx context.Context, merchant *domain.Merchant) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.Merchant, error)
	UpdateFn        func(ctx context.Context, merchant *domain.Merchant) error
	DeleteFn        func(ctx context.Context, id uuid.UUID) error
	ListFn          func(ctx context.Context, filter store.ListFilter) ([]*domain.Merchant, int, error)
	CountPackagesFn func(ctx context.Context, id uuid.UUID) (int, error)
	CountFn         func(ctx context.Context) (int, error)

	// Merchants backs the default implementations, keyed by ID.
	Merchants map[uuid.UUID]*domain.Merchant

	// PackageCounts backs the default CountPackages.
	PackageCounts map[uuid.UUID]int
}

var _ store.MerchantStore = (*MockMerchantStore)(nil)

// NewMockMerchantStore creates a mock with an empty in-memory set.
func NewMockMerchantStore() *MockMerchantStore {
	return &MockMerchantStore{
		Merchants:     make(map[uuid.UUID]*domain.Merchant),
		PackageCounts: make(map[uuid.UUID]int),
	}
}

func (m *MockMerchantStore) Create(ctx context.Context, merchant *domain.Merchant) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, merchant)
	}
	for _, existing := range m.Merchants {
		if existing.BankAccountNumber == merchant.BankAccountNumber {
			return store.ErrBankAccountExists
		}
	}
	m.Merchants[merchant.ID] = merchant
	return nil
}

func (m *MockMerchantStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	merchant, ok := m.Merchants[id]
	if !ok {
		return nil, store.ErrMerchantNotFound
	}
	copied := *merchant
	return &copied, nil
}

func (m *MockMerchantStore) Update(ctx context.Context, merchant *domain.Merchant) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, merchant)
	}
	if _, ok := m.Merchants[merchant.ID]; !ok {
		return store.ErrMerchantNotFound
	}
	m.Merchants[merchant.ID] = merchant
	return nil
}

func (m *MockMerchantStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, ok := m.Merchants[id]; !ok {
		return store.ErrMerchantNotFound
	}
	delete(m.Merchants, id)
	return nil
}

func (m *MockMerchantStore) List(ctx context.Context, filter store.ListFilter) ([]*domain.Merchant, int, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	merchants := make([]*domain.Merchant, 0, len(m.Merchants))
	for _, merchant := range m.Merchants {
		copied := *merchant
		merchants = append(merchants, &copied)
	}
	return merchants, len(merchants), nil
}

func (m *MockMerchantStore) CountPackages(ctx context.Context, id uuid.UUID) (int, error) {
	if m.CountPackagesFn != nil {
		return m.CountPackagesFn(ctx, id)
	}
	return m.PackageCounts[id], nil
}

func (m *MockMerchantStore) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return len(m.Merchants), nil
}

// WithTx returns the mock itself; transactions are a no-op in tests.
func (m *MockMerchantStore) WithTx(tx *sql.Tx) store.MerchantStore {
	return m
}
