package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/service"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

// Cache entity keys. Each typed call files its cached responses under
// one of these; mutations invalidate by the same keys.
const (
	entityUsers     = "users"
	entityDrivers   = "drivers"
	entityMerchants = "merchants"
	entityPackages  = "packages"
	entitySettings  = "settings"
	entityReports   = "reports"
)

// listQuery encodes pagination and search parameters.
func listQuery(filter store.ListFilter) string {
	q := url.Values{}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// Login authenticates and installs the returned token pair.
func (c *Client) Login(ctx context.Context, identifier, password string) (*domain.User, error) {
	var resp struct {
		User         *domain.User `json:"user"`
		AccessToken  string       `json:"access_token"`
		RefreshToken string       `json:"refresh_token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"identifier": identifier,
		"password":   password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.SetTokens(resp.AccessToken, resp.RefreshToken)
	return resp.User, nil
}

// Logout revokes the refresh token and clears local credentials.
func (c *Client) Logout(ctx context.Context) error {
	_, refreshToken := c.Tokens()
	if refreshToken != "" {
		if err := c.do(ctx, http.MethodPost, "/api/auth/logout", map[string]string{
			"refresh_token": refreshToken,
		}, nil); err != nil {
			return err
		}
	}
	c.SetTokens("", "")
	return nil
}

// ListUsers returns a page of users.
func (c *Client) ListUsers(ctx context.Context, filter store.ListFilter) (*service.Page[*domain.User], error) {
	var page service.Page[*domain.User]
	if err := c.getCached(ctx, entityUsers, "/api/users"+listQuery(filter), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetUser returns a single user.
func (c *Client) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	if err := c.getCached(ctx, entityUsers, "/api/users/"+id.String(), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a user account.
func (c *Client) CreateUser(ctx context.Context, req interface{}) (*domain.User, error) {
	var user domain.User
	if err := c.mutate(ctx, http.MethodPost, "/api/users", req, &user, entityUsers); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial user update.
func (c *Client) UpdateUser(ctx context.Context, id uuid.UUID, req interface{}) (*domain.User, error) {
	var user domain.User
	if err := c.mutate(ctx, http.MethodPatch, "/api/users/"+id.String(), req, &user, entityUsers); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodDelete, "/api/users/"+id.String(), nil, nil, entityUsers)
}

// ListDrivers returns a page of drivers.
func (c *Client) ListDrivers(ctx context.Context, filter store.ListFilter) (*service.Page[*domain.Driver], error) {
	var page service.Page[*domain.Driver]
	if err := c.getCached(ctx, entityDrivers, "/api/drivers"+listQuery(filter), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetDriver returns a driver with its packages.
func (c *Client) GetDriver(ctx context.Context, id uuid.UUID) (*service.DriverDetail, error) {
	var detail service.DriverDetail
	if err := c.getCached(ctx, entityDrivers, "/api/drivers/"+id.String(), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// CreateDriver creates a driver profile.
func (c *Client) CreateDriver(ctx context.Context, req interface{}) (*domain.Driver, error) {
	var driver domain.Driver
	if err := c.mutate(ctx, http.MethodPost, "/api/drivers", req, &driver, entityDrivers); err != nil {
		return nil, err
	}
	return &driver, nil
}

// UpdateDriver applies a partial driver update.
func (c *Client) UpdateDriver(ctx context.Context, id uuid.UUID, req interface{}) (*domain.Driver, error) {
	var driver domain.Driver
	if err := c.mutate(ctx, http.MethodPatch, "/api/drivers/"+id.String(), req, &driver, entityDrivers); err != nil {
		return nil, err
	}
	return &driver, nil
}

// DeleteDriver removes a driver.
func (c *Client) DeleteDriver(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodDelete, "/api/drivers/"+id.String(), nil, nil, entityDrivers)
}

// ListMerchants returns a page of merchants.
func (c *Client) ListMerchants(ctx context.Context, filter store.ListFilter) (*service.Page[*domain.Merchant], error) {
	var page service.Page[*domain.Merchant]
	if err := c.getCached(ctx, entityMerchants, "/api/merchants"+listQuery(filter), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetMerchant returns a merchant with its packages.
func (c *Client) GetMerchant(ctx context.Context, id uuid.UUID) (*service.MerchantDetail, error) {
	var detail service.MerchantDetail
	if err := c.getCached(ctx, entityMerchants, "/api/merchants/"+id.String(), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// CreateMerchant creates a merchant profile.
func (c *Client) CreateMerchant(ctx context.Context, req interface{}) (*domain.Merchant, error) {
	var merchant domain.Merchant
	if err := c.mutate(ctx, http.MethodPost, "/api/merchants", req, &merchant, entityMerchants); err != nil {
		return nil, err
	}
	return &merchant, nil
}

// UpdateMerchant applies a partial merchant update.
func (c *Client) UpdateMerchant(ctx context.Context, id uuid.UUID, req interface{}) (*domain.Merchant, error) {
	var merchant domain.Merchant
	if err := c.mutate(ctx, http.MethodPatch, "/api/merchants/"+id.String(), req, &merchant, entityMerchants); err != nil {
		return nil, err
	}
	return &merchant, nil
}

// DeleteMerchant removes a merchant.
func (c *Client) DeleteMerchant(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodDelete, "/api/merchants/"+id.String(), nil, nil, entityMerchants)
}

// packageQuery encodes the package list's filter parameters.
func packageQuery(filter store.PackageFilter) string {
	q := url.Values{}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.Status != nil {
		q.Set("status", string(*filter.Status))
	}
	if filter.MerchantID != nil {
		q.Set("merchant_id", filter.MerchantID.String())
	}
	if filter.DriverID != nil {
		q.Set("driver_id", filter.DriverID.String())
	}
	if filter.HasIssue != nil {
		q.Set("has_issue", strconv.FormatBool(*filter.HasIssue))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListPackages returns a page of packages matching the filter.
func (c *Client) ListPackages(ctx context.Context, filter store.PackageFilter) (*service.Page[*domain.Package], error) {
	var page service.Page[*domain.Package]
	if err := c.getCached(ctx, entityPackages, "/api/packages"+packageQuery(filter), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPackage returns a single package.
func (c *Client) GetPackage(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	var pkg domain.Package
	if err := c.getCached(ctx, entityPackages, "/api/packages/"+id.String(), &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// CreatePackage registers one package.
func (c *Client) CreatePackage(ctx context.Context, req interface{}) (*domain.Package, error) {
	var pkg domain.Package
	if err := c.mutate(ctx, http.MethodPost, "/api/packages", req, &pkg,
		entityPackages, entityMerchants, entityReports); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// BulkCreatePackages registers a batch of packages atomically.
func (c *Client) BulkCreatePackages(ctx context.Context, req interface{}) ([]*domain.Package, error) {
	var pkgs []*domain.Package
	if err := c.mutate(ctx, http.MethodPost, "/api/packages/bulk", req, &pkgs,
		entityPackages, entityMerchants, entityReports); err != nil {
		return nil, err
	}
	return pkgs, nil
}

// UpdatePackageStatus moves a package through its lifecycle.
func (c *Client) UpdatePackageStatus(ctx context.Context, id uuid.UUID, status domain.PackageStatus) (*domain.Package, error) {
	var pkg domain.Package
	err := c.mutate(ctx, http.MethodPut, fmt.Sprintf("/api/packages/%s/status", id),
		map[string]string{"status": string(status)}, &pkg,
		entityPackages, entityReports)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// AssignDriver assigns a driver to a package.
func (c *Client) AssignDriver(ctx context.Context, packageID, driverID uuid.UUID) (*domain.Package, error) {
	var pkg domain.Package
	err := c.mutate(ctx, http.MethodPut, fmt.Sprintf("/api/packages/%s/driver", packageID),
		map[string]string{"driver_id": driverID.String()}, &pkg,
		entityPackages, entityDrivers)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// UnassignDriver clears a package's driver.
func (c *Client) UnassignDriver(ctx context.Context, packageID uuid.UUID) (*domain.Package, error) {
	var pkg domain.Package
	err := c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/api/packages/%s/driver", packageID),
		nil, &pkg, entityPackages, entityDrivers)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// DeletePackage removes a package.
func (c *Client) DeletePackage(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodDelete, "/api/packages/"+id.String(), nil, nil,
		entityPackages, entityMerchants, entityDrivers, entityReports)
}

// Settings returns the flattened key-value settings map.
func (c *Client) Settings(ctx context.Context) (map[string]string, error) {
	var obj map[string]string
	if err := c.getCached(ctx, entitySettings, "/api/settings?format=object", &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// PublicSettings returns the unauthenticated public settings map.
func (c *Client) PublicSettings(ctx context.Context) (map[string]string, error) {
	var obj map[string]string
	if err := c.getCached(ctx, entitySettings, "/api/settings/public", &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// UpsertSetting creates or overwrites one setting.
func (c *Client) UpsertSetting(ctx context.Context, req interface{}) (*domain.Setting, error) {
	var setting domain.Setting
	if err := c.mutate(ctx, http.MethodPut, "/api/settings", req, &setting, entitySettings); err != nil {
		return nil, err
	}
	return &setting, nil
}

// Dashboard returns the back-office dashboard snapshot.
func (c *Client) Dashboard(ctx context.Context) (*service.Dashboard, error) {
	var dashboard service.Dashboard
	if err := c.getCached(ctx, entityReports, "/api/reports/dashboard", &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// CODReport returns the aggregated COD report.
func (c *Client) CODReport(ctx context.Context, filter store.CODReportFilter) (*service.CODReport, error) {
	q := url.Values{}
	q.Set("group_by", string(filter.GroupBy))
	if !filter.From.IsZero() {
		q.Set("from", filter.From.Format(time.RFC3339))
	}
	if !filter.To.IsZero() {
		q.Set("to", filter.To.Format(time.RFC3339))
	}

	var rpt service.CODReport
	if err := c.getCached(ctx, entityReports, "/api/reports/cod?"+q.Encode(), &rpt); err != nil {
		return nil, err
	}
	return &rpt, nil
}
