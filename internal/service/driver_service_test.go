package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/mocks"
	"github.com/parceldesk/parceldesk-api/internal/service"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

func newDriverService(drivers *mocks.MockDriverStore, packages *mocks.MockPackageStore) *service.DriverService {
	return service.NewDriverService(drivers, packages, &mocks.MockTxRunner{}, testLogger())
}

func seedDriver(t *testing.T, drivers *mocks.MockDriverStore, name, account string) *domain.Driver {
	t.Helper()
	driver, err := domain.NewDriver(name+"@example.com", name, "0911111111", account, 20)
	require.NoError(t, err)
	drivers.Drivers[driver.ID] = driver
	return driver
}

func TestDriverServiceCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()
		drivers := mocks.NewMockDriverStore()
		svc := newDriverService(drivers, mocks.NewMockPackageStore())

		driver, err := svc.Create(ctx, service.CreateDriverInput{
			Email:             "rider@example.com",
			Name:              "Rider",
			Phone:             "0911111111",
			DeliverFee:        25,
			BankAccountNumber: "111-222-333",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.DriverStatusActive, driver.DriverStatus)
		assert.Equal(t, domain.UserStatusActive, driver.Status)
		assert.Contains(t, drivers.Drivers, driver.ID)
	})

	t.Run("surfaces duplicate bank account", func(t *testing.T) {
		t.Parallel()
		drivers := mocks.NewMockDriverStore()
		seedDriver(t, drivers, "rider", "111-222-333")
		svc := newDriverService(drivers, mocks.NewMockPackageStore())

		_, err := svc.Create(ctx, service.CreateDriverInput{
			Email:             "other@example.com",
			Name:              "Other",
			DeliverFee:        25,
			BankAccountNumber: "111-222-333",
		})
		assert.ErrorIs(t, err, store.ErrBankAccountExists)
	})

	t.Run("rejects negative fee", func(t *testing.T) {
		t.Parallel()
		svc := newDriverService(mocks.NewMockDriverStore(), mocks.NewMockPackageStore())
		_, err := svc.Create(ctx, service.CreateDriverInput{
			Email:             "rider@example.com",
			Name:              "Rider",
			DeliverFee:        -5,
			BankAccountNumber: "111-222-333",
		})
		assert.ErrorIs(t, err, domain.ErrNegativeDeliverFee)
	})
}

func TestDriverServiceGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	drivers := mocks.NewMockDriverStore()
	packages := mocks.NewMockPackageStore()
	driver := seedDriver(t, drivers, "rider", "111-222-333")
	other := seedDriver(t, drivers, "other", "444-555-666")

	assigned, err := domain.NewPackage(uuid.New(), "Customer", "0912", "12 Main St", 100, 20)
	require.NoError(t, err)
	assigned.DriverID = &driver.ID
	packages.Packages[assigned.ID] = assigned

	unassigned, err := domain.NewPackage(uuid.New(), "Customer 2", "0913", "14 Main St", 50, 20)
	require.NoError(t, err)
	packages.Packages[unassigned.ID] = unassigned

	svc := newDriverService(drivers, packages)

	detail, err := svc.Get(ctx, driver.ID)
	require.NoError(t, err)
	require.Len(t, detail.Packages, 1)
	assert.Equal(t, assigned.ID, detail.Packages[0].ID)

	detail, err = svc.Get(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Packages)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrDriverNotFound)
}

func TestDriverServiceUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	drivers := mocks.NewMockDriverStore()
	driver := seedDriver(t, drivers, "rider", "111-222-333")
	svc := newDriverService(drivers, mocks.NewMockPackageStore())

	onDuty := domain.DriverStatusOnDuty
	fee := 42.5
	updated, err := svc.Update(ctx, driver.ID, service.UpdateDriverInput{
		DriverStatus: &onDuty,
		DeliverFee:   &fee,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DriverStatusOnDuty, updated.DriverStatus)
	assert.Equal(t, 42.5, updated.DeliverFee)
	assert.Equal(t, driver.Email, updated.Email)
}

func TestDriverServiceDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("deletes a driver with no packages", func(t *testing.T) {
		t.Parallel()
		drivers := mocks.NewMockDriverStore()
		driver := seedDriver(t, drivers, "rider", "111-222-333")
		svc := newDriverService(drivers, mocks.NewMockPackageStore())

		require.NoError(t, svc.Delete(ctx, driver.ID))
		assert.NotContains(t, drivers.Drivers, driver.ID)
	})

	t.Run("refuses while packages reference the driver", func(t *testing.T) {
		t.Parallel()
		drivers := mocks.NewMockDriverStore()
		driver := seedDriver(t, drivers, "rider", "111-222-333")
		drivers.PackageCounts[driver.ID] = 3
		svc := newDriverService(drivers, mocks.NewMockPackageStore())

		err := svc.Delete(ctx, driver.ID)
		assert.ErrorIs(t, err, store.ErrHasPackages)
		assert.Contains(t, drivers.Drivers, driver.ID)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Parallel()
		svc := newDriverService(mocks.NewMockDriverStore(), mocks.NewMockPackageStore())
		assert.ErrorIs(t, svc.Delete(ctx, uuid.New()), store.ErrDriverNotFound)
	})
}
