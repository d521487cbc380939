package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/parceldesk/parceldesk-api/internal/domain"
)

// Pagination defaults applied by ListFilter.Normalize.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListFilter carries pagination and free-text search parameters for list
// queries. Search performs a case-insensitive substring match across the
// entity's text fields, OR'd together.
type ListFilter struct {
	Page   int
	Limit  int
	Search string
}

// Normalize returns a copy with defaults applied and the limit clamped.
func (f ListFilter) Normalize() ListFilter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	return f
}

// Offset computes the row offset implied by page and limit.
func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// PackageFilter extends ListFilter with package-specific predicates.
// Nil pointer fields mean "no filter".
type PackageFilter struct {
	ListFilter
	Status     *domain.PackageStatus
	MerchantID *uuid.UUID
	DriverID   *uuid.UUID
	HasIssue   *bool
}

// CODReportGroup selects the grouping dimension of a COD report.
type CODReportGroup string

const (
	CODGroupByDriver   CODReportGroup = "driver"
	CODGroupByMerchant CODReportGroup = "merchant"
)

// CODReportFilter bounds a COD report query. The time range is
// inclusive of From and exclusive of To.
type CODReportFilter struct {
	GroupBy CODReportGroup
	From    time.Time
	To      time.Time
}

// CODSummaryRow is one aggregated row of a COD report: all packages
// created in the range for one driver or merchant.
type CODSummaryRow struct {
	GroupID        uuid.UUID `json:"group_id"`
	GroupName      string    `json:"group_name"`
	PackageCount   int       `json:"package_count"`
	DeliveredCount int       `json:"delivered_count"`
	TotalCOD       float64   `json:"total_cod"`
	TotalFees      float64   `json:"total_fees"`
}
