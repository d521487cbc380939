package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

// MerchantStore implements store.MerchantStore on PostgreSQL.
type MerchantStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewMerchantStore creates a PostgreSQL-backed MerchantStore.
func NewMerchantStore(db store.DBTX, logger *slog.Logger) *MerchantStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MerchantStore{
		db:     db,
		logger: logger.With(slog.String("component", "merchant_store")),
	}
}

var _ store.MerchantStore = (*MerchantStore)(nil)

const merchantColumns = `id, email, name, phone, deliver_fee, bank, bank_account_name, bank_account_number, address, map_url, status, created_at, updated_at`

func scanMerchant(row interface{ Scan(dest ...any) error }) (*domain.Merchant, error) {
	var (
		m                              domain.Merchant
		email, bank, bankName, mapURL  sql.NullString
	)
	err := row.Scan(&m.ID, &email, &m.Name, &m.Phone, &m.DeliverFee,
		&bank, &bankName, &m.BankAccountNumber, &m.Address, &mapURL,
		&m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.Email = email.String
	m.Bank = bank.String
	m.BankAccountName = bankName.String
	m.MapURL = mapURL.String
	return &m, nil
}

// Create implements store.MerchantStore.Create.
func (s *MerchantStore) Create(ctx context.Context, merchant *domain.Merchant) error {
	if err := merchant.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO merchants (id, email, name, phone, deliver_fee, bank, bank_account_name, bank_account_number, address, map_url, status, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, NULLIF($10, ''), $11, $12, $13)`,
		merchant.ID, merchant.Email, merchant.Name, merchant.Phone, merchant.DeliverFee,
		merchant.Bank, merchant.BankAccountName, merchant.BankAccountNumber,
		merchant.Address, merchant.MapURL, merchant.Status, merchant.CreatedAt, merchant.UpdatedAt)
	if err != nil {
		return mapError(err, store.ErrMerchantNotFound)
	}
	return nil
}

// GetByID implements store.MerchantStore.GetByID.
func (s *MerchantStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+merchantColumns+` FROM merchants WHERE id = $1`, id)
	merchant, err := scanMerchant(row)
	if err != nil {
		return nil, mapError(err, store.ErrMerchantNotFound)
	}
	return merchant, nil
}

// Update implements store.MerchantStore.Update.
func (s *MerchantStore) Update(ctx context.Context, merchant *domain.Merchant) error {
	if err := merchant.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE merchants
		SET email = NULLIF($2, ''), name = $3, phone = $4, deliver_fee = $5,
		    bank = NULLIF($6, ''), bank_account_name = NULLIF($7, ''),
		    bank_account_number = $8, address = $9, map_url = NULLIF($10, ''),
		    status = $11, updated_at = now()
		WHERE id = $1`,
		merchant.ID, merchant.Email, merchant.Name, merchant.Phone, merchant.DeliverFee,
		merchant.Bank, merchant.BankAccountName, merchant.BankAccountNumber,
		merchant.Address, merchant.MapURL, merchant.Status)
	if err != nil {
		return mapError(err, store.ErrMerchantNotFound)
	}
	return checkRowsAffected(result, store.ErrMerchantNotFound)
}

// Delete implements store.MerchantStore.Delete.
func (s *MerchantStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM merchants WHERE id = $1`, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return store.ErrHasPackages
		}
		return mapError(err, store.ErrMerchantNotFound)
	}
	return checkRowsAffected(result, store.ErrMerchantNotFound)
}

// List implements store.MerchantStore.List.
func (s *MerchantStore) List(ctx context.Context, filter store.ListFilter) ([]*domain.Merchant, int, error) {
	filter = filter.Normalize()
	pattern := "%" + filter.Search + "%"

	var total int
	err := s.db.QueryRowContext(ctx, `
		SELECT count(*) FROM merchants
		WHERE $1 = '' OR name ILIKE $2 OR email ILIKE $2 OR phone ILIKE $2 OR address ILIKE $2 OR bank_account_number ILIKE $2`,
		filter.Search, pattern).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+merchantColumns+` FROM merchants
		WHERE $1 = '' OR name ILIKE $2 OR email ILIKE $2 OR phone ILIKE $2 OR address ILIKE $2 OR bank_account_number ILIKE $2
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

	merchants := make([]*domain.Merchant, 0, filter.Limit)
	for rows.Next() {
		merchant, err := scanMerchant(rows)
		if err != nil {
			return nil, 0, err
		}
		merchants = append(merchants, merchant)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return merchants, total, nil
}

// CountPackages implements store.MerchantStore.CountPackages.
func (s *MerchantStore) CountPackages(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM packages WHERE merchant_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Count implements store.MerchantStore.Count.
func (s *MerchantStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM merchants`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// WithTx implements store.MerchantStore.WithTx.
func (s *MerchantStore) WithTx(tx *sql.Tx) store.MerchantStore {
	return &MerchantStore{db: tx, logger: s.logger}
}
