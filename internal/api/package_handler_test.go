package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parceldesk/parceldesk-api/internal/api"
	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/mocks"
	"github.com/parceldesk/parceldesk-api/internal/service"
)

type packageHandlerFixture struct {
	packages  *mocks.MockPackageStore
	merchants *mocks.MockMerchantStore
	drivers   *mocks.MockDriverStore
	router    chi.Router
}

func newPackageHandlerFixture(t *testing.T) *packageHandlerFixture {
	t.Helper()

	f := &packageHandlerFixture{
		packages:  mocks.NewMockPackageStore(),
		merchants: mocks.NewMockMerchantStore(),
		drivers:   mocks.NewMockDriverStore(),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewPackageService(f.packages, f.merchants, f.drivers, &mocks.MockTxRunner{}, logger)
	handler := api.NewPackageHandler(svc)

	r := chi.NewRouter()
	r.Post("/api/packages", handler.Create)
	r.Post("/api/packages/bulk", handler.BulkCreate)
	r.Get("/api/packages", handler.List)
	r.Get("/api/packages/number/{number}", handler.GetByNumber)
	r.Get("/api/packages/{id}", handler.Get)
	r.Patch("/api/packages/{id}", handler.Update)
	r.Put("/api/packages/{id}/status", handler.UpdateStatus)
	r.Put("/api/packages/{id}/driver", handler.AssignDriver)
	r.Delete("/api/packages/{id}/driver", handler.UnassignDriver)
	r.Put("/api/packages/{id}/issue", handler.FlagIssue)
	r.Delete("/api/packages/{id}", handler.Delete)
	f.router = r
	return f
}

func (f *packageHandlerFixture) seedMerchant(t *testing.T) *domain.Merchant {
	t.Helper()
	merchant, err := domain.NewMerchant("Corner Shop", "0922222222", "5 Market Rd", uuid.NewString(), 30)
	require.NoError(t, err)
	f.merchants.Merchants[merchant.ID] = merchant
	return merchant
}

func (f *packageHandlerFixture) seedPackage(t *testing.T, status domain.PackageStatus) *domain.Package {
	t.Helper()
	pkg, err := domain.NewPackage(uuid.New(), "Customer", "0912345678", "12 Main St", 100, 20)
	require.NoError(t, err)
	pkg.Status = status
	f.packages.Packages[pkg.ID] = pkg
	return pkg
}

func (f *packageHandlerFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestPackageHandlerCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates a package", func(t *testing.T) {
		t.Parallel()
		f := newPackageHandlerFixture(t)
		merchant := f.seedMerchant(t)

		rec := f.do(t, http.MethodPost, "/api/packages", map[string]any{
			"merchant_id":      merchant.ID.String(),
			"customer_name":    "Customer",
			"customer_address": "12 Main St",
			"cod_amount":       150,
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var pkg domain.Package
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pkg))
		assert.Equal(t, domain.PackageStatusReceived, pkg.Status)
		assert.Equal(t, 30.0, pkg.DeliveryFee, "merchant fee fallback")
	})

	t.Run("rejects a malformed merchant id", func(t *testing.T) {
		t.Parallel()
		f := newPackageHandlerFixture(t)
		rec := f.do(t, http.MethodPost, "/api/packages", map[string]any{
			"merchant_id":      "not-a-uuid",
			"customer_name":    "Customer",
			"customer_address": "12 Main St",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown merchant yields 404", func(t *testing.T) {
		t.Parallel()
		f := newPackageHandlerFixture(t)
		rec := f.do(t, http.MethodPost, "/api/packages", map[string]any{
			"merchant_id":      uuid.NewString(),
			"customer_name":    "Customer",
			"customer_address": "12 Main St",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPackageHandlerBulkCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates the batch", func(t *testing.T) {
		t.Parallel()
		f := newPackageHandlerFixture(t)
		merchant := f.seedMerchant(t)

		rec := f.do(t, http.MethodPost, "/api/packages/bulk", map[string]any{
			"packages": []map[string]any{
				{"merchant_id": merchant.ID.String(), "customer_name": "A", "customer_address": "1 First St"},
				{"merchant_id": merchant.ID.String(), "customer_name": "B", "customer_address": "2 Second St"},
			},
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Len(t, f.packages.Packages, 2)
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		t.Parallel()
		f := newPackageHandlerFixture(t)
		rec := f.do(t, http.MethodPost, "/api/packages/bulk", map[string]any{
			"packages": []map[string]any{},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPackageHandlerGetByNumber(t *testing.T) {
	t.Parallel()

	t.Run("finds the package by its number", func(t *testing.T) {
		t.Parallel()
		f := newPackageHandlerFixture(t)
		pkg := f.seedPackage(t, domain.PackageStatusReceived)

		rec := f.do(t, http.MethodGet, "/api/packages/number/"+pkg.PackageNumber, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got domain.Package
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, pkg.ID, got.ID)
	})

	t.Run("unknown number yields 404", func(t *testing.T) {
		t.Parallel()
		f := newPackageHandlerFixture(t)

		rec := f.do(t, http.MethodGet, "/api/packages/number/PD-20260101-ABCDEF", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPackageHandlerUpdateStatus(t *testing.T) {
	t.Parallel()

	t.Run("applies a legal transition", func(t *testing.T) {
		t.Parallel()
		f := newPackageHandlerFixture(t)
		pkg := f.seedPackage(t, domain.PackageStatusReceived)

		rec := f.do(t, http.MethodPut, "/api/packages/"+pkg.ID.String()+"/status", map[string]string{
			"status": "PREPARING",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, domain.PackageStatusPreparing, f.packages.Packages[pkg.ID].Status)
	})

	t.Run("illegal transition yields 409", func(t *testing.T) {
		t.Parallel()
		f := newPackageHandlerFixture(t)
		pkg := f.seedPackage(t, domain.PackageStatusReceived)

		rec := f.do(t, http.MethodPut, "/api/packages/"+pkg.ID.String()+"/status", map[string]string{
			"status": "DELIVERED",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown status vocabulary yields 400", func(t *testing.T) {
		t.Parallel()
		f := newPackageHandlerFixture(t)
		pkg := f.seedPackage(t, domain.PackageStatusReceived)

		rec := f.do(t, http.MethodPut, "/api/packages/"+pkg.ID.String()+"/status", map[string]string{
			"status": "ON_DELIVERY",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPackageHandlerAssignDriver(t *testing.T) {
	t.Parallel()

	t.Run("assigns and unassigns", func(t *testing.T) {
		t.Parallel()
		f := newPackageHandlerFixture(t)
		pkg := f.seedPackage(t, domain.PackageStatusReady)
		driver, err := domain.NewDriver("rider@example.com", "Rider", "0911111111", "111-222-333", 20)
		require.NoError(t, err)
		f.drivers.Drivers[driver.ID] = driver

		rec := f.do(t, http.MethodPut, "/api/packages/"+pkg.ID.String()+"/driver", map[string]string{
			"driver_id": driver.ID.String(),
		})
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, f.packages.Packages[pkg.ID].DriverID)

		rec = f.do(t, http.MethodDelete, "/api/packages/"+pkg.ID.String()+"/driver", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, f.packages.Packages[pkg.ID].DriverID)
	})

	t.Run("suspended driver yields 409", func(t *testing.T) {
		t.Parallel()
		f := newPackageHandlerFixture(t)
		pkg := f.seedPackage(t, domain.PackageStatusReady)
		driver, err := domain.NewDriver("rider@example.com", "Rider", "0911111111", "111-222-333", 20)
		require.NoError(t, err)
		driver.DriverStatus = domain.DriverStatusSuspended
		f.drivers.Drivers[driver.ID] = driver

		rec := f.do(t, http.MethodPut, "/api/packages/"+pkg.ID.String()+"/driver", map[string]string{
			"driver_id": driver.ID.String(),
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestPackageHandlerDelete(t *testing.T) {
	t.Parallel()

	t.Run("deletes a received package", func(t *testing.T) {
		t.Parallel()
		f := newPackageHandlerFixture(t)
		pkg := f.seedPackage(t, domain.PackageStatusReceived)

		rec := f.do(t, http.MethodDelete, "/api/packages/"+pkg.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("in-transit package yields 409", func(t *testing.T) {
		t.Parallel()
		f := newPackageHandlerFixture(t)
		pkg := f.seedPackage(t, domain.PackageStatusDelivering)

		rec := f.do(t, http.MethodDelete, "/api/packages/"+pkg.ID.String(), nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed id yields 400", func(t *testing.T) {
		t.Parallel()
		f := newPackageHandlerFixture(t)
		rec := f.do(t, http.MethodDelete, "/api/packages/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown id yields 404", func(t *testing.T) {
		t.Parallel()
		f := newPackageHandlerFixture(t)
		rec := f.do(t, http.MethodDelete, "/api/packages/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPackageHandlerList(t *testing.T) {
	t.Parallel()

	t.Run("filters by status", func(t *testing.T) {
		t.Parallel()
		f := newPackageHandlerFixture(t)
		f.seedPackage(t, domain.PackageStatusReceived)
		f.seedPackage(t, domain.PackageStatusDelivering)

		rec := f.do(t, http.MethodGet, "/api/packages?status=RECEIVED", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var page service.Page[*domain.Package]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		require.Len(t, page.Items, 1)
		assert.Equal(t, domain.PackageStatusReceived, page.Items[0].Status)
	})

	t.Run("rejects a legacy status alias", func(t *testing.T) {
		t.Parallel()
		f := newPackageHandlerFixture(t)
		rec := f.do(t, http.MethodGet, "/api/packages?status=PENDING", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a malformed has_issue", func(t *testing.T) {
		t.Parallel()
		f := newPackageHandlerFixture(t)
		rec := f.do(t, http.MethodGet, "/api/packages?has_issue=maybe", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
