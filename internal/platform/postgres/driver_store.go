package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

// DriverStore implements store.DriverStore on PostgreSQL.
type DriverStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewDriverStore creates a PostgreSQL-backed DriverStore.
func NewDriverStore(db store.DBTX, logger *slog.Logger) *DriverStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DriverStore{
		db:     db,
		logger: logger.With(slog.String("component", "driver_store")),
	}
}

var _ store.DriverStore = (*DriverStore)(nil)

const driverColumns = `id, email, name, phone, deliver_fee, driver_status, bank, bank_account_name, bank_account_number, latitude, longitude, status, created_at, updated_at`

func scanDriver(row interface{ Scan(dest ...any) error }) (*domain.Driver, error) {
	var (
		d               domain.Driver
		bank, bankName  sql.NullString
	)
	err := row.Scan(&d.ID, &d.Email, &d.Name, &d.Phone, &d.DeliverFee, &d.DriverStatus,
		&bank, &bankName, &d.BankAccountNumber, &d.Latitude, &d.Longitude,
		&d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.Bank = bank.String
	d.BankAccountName = bankName.String
	return &d, nil
}

// Create implements store.DriverStore.Create.
func (s *DriverStore) Create(ctx context.Context, driver *domain.Driver) error {
	if err := driver.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO drivers (id, email, name, phone, deliver_fee, driver_status, bank, bank_account_name, bank_account_number, latitude, longitude, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11, $12, $13, $14)`,
		driver.ID, driver.Email, driver.Name, driver.Phone, driver.DeliverFee,
		driver.DriverStatus, driver.Bank, driver.BankAccountName, driver.BankAccountNumber,
		driver.Latitude, driver.Longitude, driver.Status, driver.CreatedAt, driver.UpdatedAt)
	if err != nil {
		return mapError(err, store.ErrDriverNotFound)
	}
	return nil
}

// GetByID implements store.DriverStore.GetByID.
func (s *DriverStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Driver, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+driverColumns+` FROM drivers WHERE id = $1`, id)
	driver, err := scanDriver(row)
	if err != nil {
		return nil, mapError(err, store.ErrDriverNotFound)
	}
	return driver, nil
}

// Update implements store.DriverStore.Update.
func (s *DriverStore) Update(ctx context.Context, driver *domain.Driver) error {
	if err := driver.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE drivers
		SET email = $2, name = $3, phone = $4, deliver_fee = $5, driver_status = $6,
		    bank = NULLIF($7, ''), bank_account_name = NULLIF($8, ''),
		    bank_account_number = $9, latitude = $10, longitude = $11,
		    status = $12, updated_at = now()
		WHERE id = $1`,
		driver.ID, driver.Email, driver.Name, driver.Phone, driver.DeliverFee,
		driver.DriverStatus, driver.Bank, driver.BankAccountName,
		driver.BankAccountNumber, driver.Latitude, driver.Longitude, driver.Status)
	if err != nil {
		return mapError(err, store.ErrDriverNotFound)
	}
	return checkRowsAffected(result, store.ErrDriverNotFound)
}

// Delete implements store.DriverStore.Delete. A foreign key violation
// here means packages still reference the driver; the schema-level
// RESTRICT is the backstop behind the service's explicit count guard.
func (s *DriverStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return store.ErrHasPackages
		}
		return mapError(err, store.ErrDriverNotFound)
	}
	return checkRowsAffected(result, store.ErrDriverNotFound)
}

// List implements store.DriverStore.List.
func (s *DriverStore) List(ctx context.Context, filter store.ListFilter) ([]*domain.Driver, int, error) {
	filter = filter.Normalize()
	pattern := "%" + filter.Search + "%"

	var total int
	err := s.db.QueryRowContext(ctx, `
		SELECT count(*) FROM drivers
		WHERE $1 = '' OR name ILIKE $2 OR email ILIKE $2 OR phone ILIKE $2 OR bank_account_number ILIKE $2`,
		filter.Search, pattern).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+driverColumns+` FROM drivers
		WHERE $1 = '' OR name ILIKE $2 OR email ILIKE $2 OR phone ILIKE $2 OR bank_account_number ILIKE $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		filter.Search, pattern, filter.Limit, filter.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Error("failed to close rows", "error", err)
		}
	}()

	drivers := make([]*domain.Driver, 0, filter.Limit)
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, 0, err
		}
		drivers = append(drivers, driver)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return drivers, total, nil
}

// CountPackages implements store.DriverStore.CountPackages.
func (s *DriverStore) CountPackages(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM packages WHERE driver_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Count implements store.DriverStore.Count.
func (s *DriverStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM drivers`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// WithTx implements store.DriverStore.WithTx.
func (s *DriverStore) WithTx(tx *sql.Tx) store.DriverStore {
	return &DriverStore{db: tx, logger: s.logger}
}
