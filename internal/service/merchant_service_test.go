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

func newMerchantService(merchants *mocks.MockMerchantStore, packages *mocks.MockPackageStore) *service.MerchantService {
	return service.NewMerchantService(merchants, packages, &mocks.MockTxRunner{}, testLogger())
}

func seedMerchant(t *testing.T, merchants *mocks.MockMerchantStore, name, account string) *domain.Merchant {
	t.Helper()
	merchant, err := domain.NewMerchant(name, "0922222222", "5 Market Rd", account, 30)
	require.NoError(t, err)
	merchants.Merchants[merchant.ID] = merchant
	return merchant
}

func TestMerchantServiceCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates with optional email absent", func(t *testing.T) {
		t.Parallel()
		merchants := mocks.NewMockMerchantStore()
		svc := newMerchantService(merchants, mocks.NewMockPackageStore())

		merchant, err := svc.Create(ctx, service.CreateMerchantInput{
			Name:              "Corner Shop",
			Phone:             "0922222222",
			Address:           "5 Market Rd",
			DeliverFee:        30,
			BankAccountNumber: "777-888-999",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.UserStatusActive, merchant.Status)
		assert.Equal(t, "", merchant.Email)
		assert.Contains(t, merchants.Merchants, merchant.ID)
	})

	t.Run("rejects missing address", func(t *testing.T) {
		t.Parallel()
		svc := newMerchantService(mocks.NewMockMerchantStore(), mocks.NewMockPackageStore())
		_, err := svc.Create(ctx, service.CreateMerchantInput{
			Name:              "Corner Shop",
			DeliverFee:        30,
			BankAccountNumber: "777-888-999",
		})
		assert.ErrorIs(t, err, domain.ErrEmptyAddress)
	})

	t.Run("rejects malformed optional email", func(t *testing.T) {
		t.Parallel()
		svc := newMerchantService(mocks.NewMockMerchantStore(), mocks.NewMockPackageStore())
		_, err := svc.Create(ctx, service.CreateMerchantInput{
			Name:              "Corner Shop",
			Email:             "not-an-email",
			Address:           "5 Market Rd",
			DeliverFee:        30,
			BankAccountNumber: "777-888-999",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})
}

func TestMerchantServiceGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	merchants := mocks.NewMockMerchantStore()
	packages := mocks.NewMockPackageStore()
	merchant := seedMerchant(t, merchants, "Corner Shop", "777-888-999")

	owned, err := domain.NewPackage(merchant.ID, "Customer", "0912", "12 Main St", 100, 20)
	require.NoError(t, err)
	packages.Packages[owned.ID] = owned

	foreign, err := domain.NewPackage(uuid.New(), "Customer 2", "0913", "14 Main St", 50, 20)
	require.NoError(t, err)
	packages.Packages[foreign.ID] = foreign

	svc := newMerchantService(merchants, packages)

	detail, err := svc.Get(ctx, merchant.ID)
	require.NoError(t, err)
	require.Len(t, detail.Packages, 1)
	assert.Equal(t, owned.ID, detail.Packages[0].ID)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrMerchantNotFound)
}

func TestMerchantServiceUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	merchants := mocks.NewMockMerchantStore()
	merchant := seedMerchant(t, merchants, "Corner Shop", "777-888-999")
	svc := newMerchantService(merchants, mocks.NewMockPackageStore())

	suspended := domain.UserStatusSuspended
	newFee := 35.0
	updated, err := svc.Update(ctx, merchant.ID, service.UpdateMerchantInput{
		DeliverFee: &newFee,
		Status:     &suspended,
	})
	require.NoError(t, err)
	assert.Equal(t, 35.0, updated.DeliverFee)
	assert.Equal(t, domain.UserStatusSuspended, updated.Status)
	assert.Equal(t, merchant.Name, updated.Name)
}

func TestMerchantServiceDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("deletes a merchant with no packages", func(t *testing.T) {
		t.Parallel()
		merchants := mocks.NewMockMerchantStore()
		merchant := seedMerchant(t, merchants, "Corner Shop", "777-888-999")
		svc := newMerchantService(merchants, mocks.NewMockPackageStore())

		require.NoError(t, svc.Delete(ctx, merchant.ID))
		assert.NotContains(t, merchants.Merchants, merchant.ID)
	})

	t.Run("refuses while packages reference the merchant", func(t *testing.T) {
		t.Parallel()
		merchants := mocks.NewMockMerchantStore()
		merchant := seedMerchant(t, merchants, "Corner Shop", "777-888-999")
		merchants.PackageCounts[merchant.ID] = 2
		svc := newMerchantService(merchants, mocks.NewMockPackageStore())

		err := svc.Delete(ctx, merchant.ID)
		assert.ErrorIs(t, err, store.ErrHasPackages)
		assert.Contains(t, merchants.Merchants, merchant.ID)
	})
}
