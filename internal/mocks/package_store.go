package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

// MockPackageStore implements store.PackageStore for testing.
type MockPackageStore struct {
	CreateFn            func(ctx context.Context, pkg *domain.Package) error
	CreateBatchFn       func(ctx context.Context, pkgs []*domain.Package) error
	GetByIDFn           func(ctx context.Context, id uuid.UUID) (*domain.Package, error)
	GetByNumberFn       func(ctx context.Context, number string) (*domain.Package, error)
	UpdateFn            func(ctx context.Context, pkg *domain.Package) error
	DeleteFn            func(ctx context.Context, id uuid.UUID) error
	ListFn              func(ctx context.Context, filter store.PackageFilter) ([]*domain.Package, int, error)
	CountByStatusFn     func(ctx context.Context) (map[domain.PackageStatus]int, error)
	DeliveredCODSinceFn func(ctx context.Context, since time.Time) (float64, error)
	CODSummaryFn        func(ctx context.Context, filter store.CODReportFilter) ([]store.CODSummaryRow, error)

	// Packages backs the default implementations, keyed by ID.
	Packages map[uuid.UUID]*domain.Package
}

var _ store.PackageStore = (*MockPackageStore)(nil)

// NewMockPackageStore creates a mock with an empty in-memory set.
func NewMockPackageStore() *MockPackageStore {
	return &MockPackageStore{Packages: make(map[uuid.UUID]*domain.Package)}
}

func (m *MockPackageStore) Create(ctx context.Context, pkg *domain.Package) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, pkg)
	}
	for _, existing := range m.Packages {
		if existing.PackageNumber == pkg.PackageNumber {
			return store.ErrPackageNumberExists
		}
	}
	m.Packages[pkg.ID] = pkg
	return nil
}

func (m *MockPackageStore) CreateBatch(ctx context.Context, pkgs []*domain.Package) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, pkgs)
	}
	for _, pkg := range pkgs {
		if err := m.Create(ctx, pkg); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockPackageStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	pkg, ok := m.Packages[id]
	if !ok {
		return nil, store.ErrPackageNotFound
	}
	copied := *pkg
	return &copied, nil
}

func (m *MockPackageStore) GetByNumber(ctx context.Context, number string) (*domain.Package, error) {
	if m.GetByNumberFn != nil {
		return m.GetByNumberFn(ctx, number)
	}
	for _, pkg := range m.Packages {
		if pkg.PackageNumber == number {
			copied := *pkg
			return &copied, nil
		}
	}
	return nil, store.ErrPackageNotFound
}

func (m *MockPackageStore) Update(ctx context.Context, pkg *domain.Package) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, pkg)
	}
	if _, ok := m.Packages[pkg.ID]; !ok {
		return store.ErrPackageNotFound
	}
	m.Packages[pkg.ID] = pkg
	return nil
}

func (m *MockPackageStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, ok := m.Packages[id]; !ok {
		return store.ErrPackageNotFound
	}
	delete(m.Packages, id)
	return nil
}

func (m *MockPackageStore) List(ctx context.Context, filter store.PackageFilter) ([]*domain.Package, int, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	pkgs := make([]*domain.Package, 0, len(m.Packages))
	for _, pkg := range m.Packages {
		if filter.Status != nil && pkg.Status != *filter.Status {
			continue
		}
		if filter.MerchantID != nil && pkg.MerchantID != *filter.MerchantID {
			continue
		}
		if filter.DriverID != nil && (pkg.DriverID == nil || *pkg.DriverID != *filter.DriverID) {
			continue
		}
		if filter.HasIssue != nil && pkg.HasIssue != *filter.HasIssue {
			continue
		}
		copied := *pkg
		pkgs = append(pkgs, &copied)
	}
	return pkgs, len(pkgs), nil
}

func (m *MockPackageStore) CountByStatus(ctx context.Context) (map[domain.PackageStatus]int, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx)
	}
	counts := make(map[domain.PackageStatus]int, len(domain.PackageStatuses))
	for _, status := range domain.PackageStatuses {
		counts[status] = 0
	}
	for _, pkg := range m.Packages {
		counts[pkg.Status]++
	}
	return counts, nil
}

func (m *MockPackageStore) DeliveredCODSince(ctx context.Context, since time.Time) (float64, error) {
	if m.DeliveredCODSinceFn != nil {
		return m.DeliveredCODSinceFn(ctx, since)
	}
	total := 0.0
	for _, pkg := range m.Packages {
		if pkg.Status == domain.PackageStatusDelivered && pkg.DeliveredAt != nil && !pkg.DeliveredAt.Before(since) {
			total += pkg.CODAmount
		}
	}
	return total, nil
}

func (m *MockPackageStore) CODSummary(ctx context.Context, filter store.CODReportFilter) ([]store.CODSummaryRow, error) {
	if m.CODSummaryFn != nil {
		return m.CODSummaryFn(ctx, filter)
	}
	return nil, nil
}

// WithTx returns the mock itself; transactions are a no-op in tests.
func (m *MockPackageStore) WithTx(tx *sql.Tx) store.PackageStore {
	return m
}
