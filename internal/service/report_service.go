package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

// Dashboard is the aggregate snapshot served to the back-office
// landing page.
type Dashboard struct {
	PackagesByStatus map[domain.PackageStatus]int `json:"packages_by_status"`
	TotalPackages    int                          `json:"total_packages"`
	TotalUsers       int                          `json:"total_users"`
	TotalDrivers     int                          `json:"total_drivers"`
	TotalMerchants   int                          `json:"total_merchants"`
	CODToday         float64                      `json:"cod_today"`
}

// CODReport is an aggregated cash-on-delivery report over a time range.
type CODReport struct {
	GroupBy store.CODReportGroup `json:"group_by"`
	From    time.Time            `json:"from"`
	To      time.Time            `json:"to"`
	Rows    []store.CODSummaryRow `json:"rows"`
}

// ReportService produces aggregate reports over packages and entities.
type ReportService struct {
	packages  store.PackageStore
	users     store.UserStore
	drivers   store.DriverStore
	merchants store.MerchantStore
	logger    *slog.Logger

	// timeFunc is injectable for deterministic "today" boundaries in
	// tests.
	timeFunc func() time.Time
}

// NewReportService creates a ReportService.
func NewReportService(packages store.PackageStore, users store.UserStore, drivers store.DriverStore, merchants store.MerchantStore, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		packages:  packages,
		users:     users,
		drivers:   drivers,
		merchants: merchants,
		logger:    logger.With(slog.String("component", "report_service")),
		timeFunc:  time.Now,
	}
}

// Dashboard assembles the status breakdown, entity counts, and the COD
// collected since the start of the current UTC day.
func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	byStatus, err := s.packages.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count packages by status: %w", err)
	}

	total := 0
	for _, n := range byStatus {
		total += n
	}

	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	drivers, err := s.drivers.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count drivers: %w", err)
	}
	merchants, err := s.merchants.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count merchants: %w", err)
	}

	now := s.timeFunc().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	codToday, err := s.packages.DeliveredCODSince(ctx, startOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to sum delivered COD: %w", err)
	}

	return &Dashboard{
		PackagesByStatus: byStatus,
		TotalPackages:    total,
		TotalUsers:       users,
		TotalDrivers:     drivers,
		TotalMerchants:   merchants,
		CODToday:         codToday,
	}, nil
}

// CODReport aggregates COD totals grouped by driver or merchant. A zero
// To defaults to now; a zero From means no lower bound.
func (s *ReportService) CODReport(ctx context.Context, filter store.CODReportFilter) (*CODReport, error) {
	switch filter.GroupBy {
	case store.CODGroupByDriver, store.CODGroupByMerchant:
	default:
		return nil, fmt.Errorf("%w: group_by must be %q or %q",
			domain.ErrValidation, store.CODGroupByDriver, store.CODGroupByMerchant)
	}

	if filter.To.IsZero() {
		filter.To = s.timeFunc().UTC()
	}
	if !filter.From.IsZero() && filter.To.Before(filter.From) {
		return nil, fmt.Errorf("%w: report range ends before it starts", domain.ErrValidation)
	}

	rows, err := s.packages.CODSummary(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate COD summary: %w", err)
	}

	return &CODReport{
		GroupBy: filter.GroupBy,
		From:    filter.From,
		To:      filter.To,
		Rows:    rows,
	}, nil
}
