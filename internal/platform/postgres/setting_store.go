package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

// SettingStore implements store.SettingStore on PostgreSQL.
type SettingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSettingStore creates a PostgreSQL-backed SettingStore.
func NewSettingStore(db store.DBTX, logger *slog.Logger) *SettingStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingStore{
		db:     db,
		logger: logger.With(slog.String("component", "setting_store")),
	}
}

var _ store.SettingStore = (*SettingStore)(nil)

const settingColumns = `id, key, value, category, description, is_public, created_at, updated_at`

func scanSetting(row interface{ Scan(dest ...any) error }) (*domain.Setting, error) {
	var (
		s                     domain.Setting
		category, description sql.NullString
	)
	err := row.Scan(&s.ID, &s.Key, &s.Value, &category, &description,
		&s.IsPublic, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Category = category.String
	s.Description = description.String
	return &s, nil
}

// Create implements store.SettingStore.Create.
func (s *SettingStore) Create(ctx context.Context, setting *domain.Setting) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (id, key, value, category, description, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8)`,
		setting.ID, setting.Key, setting.Value, setting.Category,
		setting.Description, setting.IsPublic, setting.CreatedAt, setting.UpdatedAt)
	if err != nil {
		return mapError(err, store.ErrSettingNotFound)
	}
	return nil
}

// GetByKey implements store.SettingStore.GetByKey.
func (s *SettingStore) GetByKey(ctx context.Context, key string) (*domain.Setting, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+settingColumns+` FROM settings WHERE key = $1`, key)
	setting, err := scanSetting(row)
	if err != nil {
		return nil, mapError(err, store.ErrSettingNotFound)
	}
	return setting, nil
}

func (s *SettingStore) queryAll(ctx context.Context, query string, args ...any) ([]*domain.Setting, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Error("failed to close rows", "error", err)
		}
	}()

	var settings []*domain.Setting
	for rows.Next() {
		setting, err := scanSetting(rows)
		if err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return settings, nil
}

// List implements store.SettingStore.List.
func (s *SettingStore) List(ctx context.Context) ([]*domain.Setting, error) {
	return s.queryAll(ctx,
		`SELECT `+settingColumns+` FROM settings ORDER BY category NULLS LAST, key`)
}

// ListByCategory implements store.SettingStore.ListByCategory.
func (s *SettingStore) ListByCategory(ctx context.Context, category string) ([]*domain.Setting, error) {
	return s.queryAll(ctx,
		`SELECT `+settingColumns+` FROM settings WHERE category = $1 ORDER BY key`, category)
}

// ListPublic implements store.SettingStore.ListPublic.
func (s *SettingStore) ListPublic(ctx context.Context) ([]*domain.Setting, error) {
	return s.queryAll(ctx,
		`SELECT `+settingColumns+` FROM settings WHERE is_public ORDER BY category NULLS LAST, key`)
}

// Update implements store.SettingStore.Update.
func (s *SettingStore) Update(ctx context.Context, setting *domain.Setting) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE settings
		SET value = $2, category = NULLIF($3, ''), description = NULLIF($4, ''),
		    is_public = $5, updated_at = now()
		WHERE key = $1`,
		setting.Key, setting.Value, setting.Category, setting.Description, setting.IsPublic)
	if err != nil {
		return mapError(err, store.ErrSettingNotFound)
	}
	return checkRowsAffected(result, store.ErrSettingNotFound)
}

// Delete implements store.SettingStore.Delete.
func (s *SettingStore) Delete(ctx context.Context, key string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = $1`, key)
	if err != nil {
		return mapError(err, store.ErrSettingNotFound)
	}
	return checkRowsAffected(result, store.ErrSettingNotFound)
}

// Upsert implements store.SettingStore.Upsert using ON CONFLICT so the
// create-or-update is a single atomic statement.
func (s *SettingStore) Upsert(ctx context.Context, setting *domain.Setting) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (id, key, value, category, description, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8)
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value,
		    category = coalesce(excluded.category, settings.category),
		    description = coalesce(excluded.description, settings.description),
		    is_public = excluded.is_public,
		    updated_at = now()`,
		setting.ID, setting.Key, setting.Value, setting.Category,
		setting.Description, setting.IsPublic, setting.CreatedAt, setting.UpdatedAt)
	if err != nil {
		return mapError(err, store.ErrSettingNotFound)
	}
	return nil
}

// WithTx implements store.SettingStore.WithTx.
func (s *SettingStore) WithTx(tx *sql.Tx) store.SettingStore {
	return &SettingStore{db: tx, logger: s.logger}
}
