package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

// MockDriverStore implements store.DriverStore for testing.
type MockDriverStore struct {
	CreateFn        func(ctx context.Context, driver *domain.Driver) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.Driver, error)
	UpdateFn        func(ctx context.Context, driver *domain.Driver) error
	DeleteFn        func(ctx context.Context, id uuid.UUID) error
	ListFn          func(ctx context.Context, filter store.ListFilter) ([]*domain.Driver, int, error)
	CountPackagesFn func(ctx context.Context, id uuid.UUID) (int, error)
	CountFn         func(ctx context.Context) (int, error)

	// Drivers backs the default implementations, keyed by ID.
	Drivers map[uuid.UUID]*domain.Driver

	// PackageCounts backs the default CountPackages.
	PackageCounts map[uuid.UUID]int
}

var _ store.DriverStore = (*MockDriverStore)(nil)

// NewMockDriverStore creates a mock with an empty in-memory driver set.
func NewMockDriverStore() *MockDriverStore {
	return &MockDriverStore{
		Drivers:       make(map[uuid.UUID]*domain.Driver),
		PackageCounts: make(map[uuid.UUID]int),
	}
}

func (m *MockDriverStore) Create(ctx context.Context, driver *domain.Driver) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, driver)
	}
	for _, existing := range m.Drivers {
		if existing.BankAccountNumber == driver.BankAccountNumber {
			return store.ErrBankAccountExists
		}
	}
	m.Drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Driver, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	driver, ok := m.Drivers[id]
	if !ok {
		return nil, store.ErrDriverNotFound
	}
	copied := *driver
	return &copied, nil
}

func (m *MockDriverStore) Update(ctx context.Context, driver *domain.Driver) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, driver)
	}
	if _, ok := m.Drivers[driver.ID]; !ok {
		return store.ErrDriverNotFound
	}
	m.Drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, ok := m.Drivers[id]; !ok {
		return store.ErrDriverNotFound
	}
	delete(m.Drivers, id)
	return nil
}

func (m *MockDriverStore) List(ctx context.Context, filter store.ListFilter) ([]*domain.Driver, int, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	drivers := make([]*domain.Driver, 0, len(m.Drivers))
	for _, driver := range m.Drivers {
		copied := *driver
		drivers = append(drivers, &copied)
	}
	return drivers, len(drivers), nil
}

func (m *MockDriverStore) CountPackages(ctx context.Context, id uuid.UUID) (int, error) {
	if m.CountPackagesFn != nil {
		return m.CountPackagesFn(ctx, id)
	}
	return m.PackageCounts[id], nil
}

func (m *MockDriverStore) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return len(m.Drivers), nil
}

// WithTx returns the mock itself; transactions are a no-op in tests.
func (m *MockDriverStore) WithTx(tx *sql.Tx) store.DriverStore {
	return m
}
