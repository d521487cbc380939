package store

import (
	"context"
	"database/sql"

	"github.com/parceldesk/parceldesk-api/internal/domain"
)

// SettingStore defines the interface for settings persistence. Settings
// are addressed by key, not ID; key uniqueness is a database constraint
// surfaced as ErrSettingKeyExists.
type SettingStore interface {
	// Create saves a new setting.
	Create(ctx context.Context, setting *domain.Setting) error

	// GetByKey retrieves a setting by its key.
	// Returns ErrSettingNotFound if no setting matches.
	GetByKey(ctx context.Context, key string) (*domain.Setting, error)

	// List returns all settings ordered by category, then key.
	List(ctx context.Context) ([]*domain.Setting, error)

	// ListByCategory returns all settings in the given category.
	ListByCategory(ctx context.Context, category string) ([]*domain.Setting, error)

	// ListPublic returns only settings flagged as public.
	ListPublic(ctx context.Context) ([]*domain.Setting, error)

	// Update modifies the setting with the given key.
	// Returns ErrSettingNotFound if no setting matches.
	Update(ctx context.Context, setting *domain.Setting) error

	// Delete removes the setting with the given key.
	// Returns ErrSettingNotFound if no setting matches.
	Delete(ctx context.Context, key string) error

	// Upsert creates the setting or, if the key exists, updates its
	// value, category, and description in a single statement.
	Upsert(ctx context.Context, setting *domain.Setting) error

	// WithTx returns a SettingStore bound to the given transaction.
	WithTx(tx *sql.Tx) SettingStore
}
