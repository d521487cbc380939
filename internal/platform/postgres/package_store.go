package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

// PackageStore implements store.PackageStore on PostgreSQL.
type PackageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPackageStore creates a PostgreSQL-backed PackageStore.
func NewPackageStore(db store.DBTX, logger *slog.Logger) *PackageStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PackageStore{
		db:     db,
		logger: logger.With(slog.String("component", "package_store")),
	}
}

var _ store.PackageStore = (*PackageStore)(nil)

const packageColumns = `id, package_number, customer_name, customer_phone, customer_address, cod_amount, delivery_fee, status, has_issue, issue_note, extra_delivery_fee, merchant_id, driver_id, delivered_at, created_at, updated_at`

func scanPackage(row interface{ Scan(dest ...any) error }) (*domain.Package, error) {
	var (
		p           domain.Package
		issueNote   sql.NullString
		driverID    uuid.NullUUID
		deliveredAt sql.NullTime
	)
	err := row.Scan(&p.ID, &p.PackageNumber, &p.CustomerName, &p.CustomerPhone,
		&p.CustomerAddress, &p.CODAmount, &p.DeliveryFee, &p.Status,
		&p.HasIssue, &issueNote, &p.ExtraDeliveryFee,
		&p.MerchantID, &driverID, &deliveredAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.IssueNote = issueNote.String
	if driverID.Valid {
		id := driverID.UUID
		p.DriverID = &id
	}
	if deliveredAt.Valid {
		t := deliveredAt.Time
		p.DeliveredAt = &t
	}
	return &p, nil
}

const insertPackageSQL = `
	INSERT INTO packages (id, package_number, customer_name, customer_phone, customer_address, cod_amount, delivery_fee, status, has_issue, issue_note, extra_delivery_fee, merchant_id, driver_id, delivered_at, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, $12, $13, $14, $15, $16)`

func packageArgs(p *domain.Package) []any {
	var driverID any
	if p.DriverID != nil {
		driverID = *p.DriverID
	}
	var deliveredAt any
	if p.DeliveredAt != nil {
		deliveredAt = *p.DeliveredAt
	}
	return []any{
		p.ID, p.PackageNumber, p.CustomerName, p.CustomerPhone, p.CustomerAddress,
		p.CODAmount, p.DeliveryFee, p.Status, p.HasIssue, p.IssueNote,
		p.ExtraDeliveryFee, p.MerchantID, driverID, deliveredAt, p.CreatedAt, p.UpdatedAt,
	}
}

// Create implements store.PackageStore.Create.
func (s *PackageStore) Create(ctx context.Context, pkg *domain.Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, insertPackageSQL, packageArgs(pkg)...); err != nil {
		return mapError(err, store.ErrPackageNotFound)
	}
	return nil
}

// CreateBatch implements store.PackageStore.CreateBatch. Atomicity is
// the caller's responsibility: run it on a transaction via WithTx.
func (s *PackageStore) CreateBatch(ctx context.Context, pkgs []*domain.Package) error {
	stmt, err := s.db.PrepareContext(ctx, insertPackageSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			s.logger.Error("failed to close statement", "error", err)
		}
	}()

	for _, pkg := range pkgs {
		if err := pkg.Validate(); err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, packageArgs(pkg)...); err != nil {
			return mapError(err, store.ErrPackageNotFound)
		}
	}
	return nil
}

// GetByID implements store.PackageStore.GetByID.
func (s *PackageStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+packageColumns+` FROM packages WHERE id = $1`, id)
	pkg, err := scanPackage(row)
	if err != nil {
		return nil, mapError(err, store.ErrPackageNotFound)
	}
	return pkg, nil
}

// GetByNumber implements store.PackageStore.GetByNumber.
func (s *PackageStore) GetByNumber(ctx context.Context, number string) (*domain.Package, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+packageColumns+` FROM packages WHERE package_number = $1`, number)
	pkg, err := scanPackage(row)
	if err != nil {
		return nil, mapError(err, store.ErrPackageNotFound)
	}
	return pkg, nil
}

// Update implements store.PackageStore.Update.
func (s *PackageStore) Update(ctx context.Context, pkg *domain.Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}

	var driverID any
	if pkg.DriverID != nil {
		driverID = *pkg.DriverID
	}
	var deliveredAt any
	if pkg.DeliveredAt != nil {
		deliveredAt = *pkg.DeliveredAt
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE packages
		SET customer_name = $2, customer_phone = $3, customer_address = $4,
		    cod_amount = $5, delivery_fee = $6, status = $7,
		    has_issue = $8, issue_note = NULLIF($9, ''), extra_delivery_fee = $10,
		    driver_id = $11, delivered_at = $12, updated_at = now()
		WHERE id = $1`,
		pkg.ID, pkg.CustomerName, pkg.CustomerPhone, pkg.CustomerAddress,
		pkg.CODAmount, pkg.DeliveryFee, pkg.Status,
		pkg.HasIssue, pkg.IssueNote, pkg.ExtraDeliveryFee,
		driverID, deliveredAt)
	if err != nil {
		return mapError(err, store.ErrPackageNotFound)
	}
	return checkRowsAffected(result, store.ErrPackageNotFound)
}

// Delete implements store.PackageStore.Delete.
func (s *PackageStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return mapError(err, store.ErrPackageNotFound)
	}
	return checkRowsAffected(result, store.ErrPackageNotFound)
}

// List implements store.PackageStore.List. The WHERE clause is built
// dynamically from the filter's set predicates.
func (s *PackageStore) List(ctx context.Context, filter store.PackageFilter) ([]*domain.Package, int, error) {
	filter.ListFilter = filter.Normalize()

	conds := make([]string, 0, 5)
	args := make([]any, 0, 7)

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(package_number ILIKE $%d OR customer_name ILIKE $%d OR customer_phone ILIKE $%d OR customer_address ILIKE $%d)",
			n, n, n, n))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.MerchantID != nil {
		args = append(args, *filter.MerchantID)
		conds = append(conds, fmt.Sprintf("merchant_id = $%d", len(args)))
	}
	if filter.DriverID != nil {
		args = append(args, *filter.DriverID)
		conds = append(conds, fmt.Sprintf("driver_id = $%d", len(args)))
	}
	if filter.HasIssue != nil {
		args = append(args, *filter.HasIssue)
		conds = append(conds, fmt.Sprintf("has_issue = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM packages`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset())
	query := fmt.Sprintf(`SELECT %s FROM packages%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		packageColumns, where, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Error("failed to close rows", "error", err)
		}
	}()

	pkgs := make([]*domain.Package, 0, filter.Limit)
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, 0, err
		}
		pkgs = append(pkgs, pkg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return pkgs, total, nil
}

// CountByStatus implements store.PackageStore.CountByStatus. Statuses
// with no packages are present in the result with a zero count.
func (s *PackageStore) CountByStatus(ctx context.Context) (map[domain.PackageStatus]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, count(*) FROM packages GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Error("failed to close rows", "error", err)
		}
	}()

	counts := make(map[domain.PackageStatus]int, len(domain.PackageStatuses))
	for _, status := range domain.PackageStatuses {
		counts[status] = 0
	}
	for rows.Next() {
		var (
			status domain.PackageStatus
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// DeliveredCODSince implements store.PackageStore.DeliveredCODSince.
func (s *PackageStore) DeliveredCODSince(ctx context.Context, since time.Time) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx, `
		SELECT coalesce(sum(cod_amount), 0) FROM packages
		WHERE status = $1 AND delivered_at >= $2`,
		domain.PackageStatusDelivered, since).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// CODSummary implements store.PackageStore.CODSummary. Packages without
// a driver are excluded from driver-grouped reports; every package has
// a merchant, so merchant-grouped reports cover all rows in range.
func (s *PackageStore) CODSummary(ctx context.Context, filter store.CODReportFilter) ([]store.CODSummaryRow, error) {
	var query string
	switch filter.GroupBy {
	case store.CODGroupByDriver:
		query = `
			SELECT d.id, d.name,
			       count(p.id),
			       count(p.id) FILTER (WHERE p.status = 'DELIVERED'),
			       coalesce(sum(p.cod_amount), 0),
			       coalesce(sum(p.delivery_fee + p.extra_delivery_fee), 0)
			FROM packages p
			JOIN drivers d ON d.id = p.driver_id
			WHERE p.created_at >= $1 AND p.created_at < $2
			GROUP BY d.id, d.name
			ORDER BY d.name`
	case store.CODGroupByMerchant:
		query = `
			SELECT m.id, m.name,
			       count(p.id),
			       count(p.id) FILTER (WHERE p.status = 'DELIVERED'),
			       coalesce(sum(p.cod_amount), 0),
			       coalesce(sum(p.delivery_fee + p.extra_delivery_fee), 0)
			FROM packages p
			JOIN merchants m ON m.id = p.merchant_id
			WHERE p.created_at >= $1 AND p.created_at < $2
			GROUP BY m.id, m.name
			ORDER BY m.name`
	default:
		return nil, fmt.Errorf("unsupported report grouping: %q", filter.GroupBy)
	}

	rows, err := s.db.QueryContext(ctx, query, filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Error("failed to close rows", "error", err)
		}
	}()

	var summary []store.CODSummaryRow
	for rows.Next() {
		var row store.CODSummaryRow
		if err := rows.Scan(&row.GroupID, &row.GroupName, &row.PackageCount,
			&row.DeliveredCount, &row.TotalCOD, &row.TotalFees); err != nil {
			return nil, err
		}
		summary = append(summary, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summary, nil
}

// WithTx implements store.PackageStore.WithTx.
func (s *PackageStore) WithTx(tx *sql.Tx) store.PackageStore {
	return &PackageStore{db: tx, logger: s.logger}
}
