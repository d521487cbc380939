package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

// MockSettingStore implements store.SettingStore for testing.
type MockSettingStore struct {
	CreateFn         func(ctx context.Context, setting *domain.Setting) error
	GetByKeyFn       func(ctx context.Context, key string) (*domain.Setting, error)
	ListFn           func(ctx context.Context) ([]*domain.Setting, error)
	ListByCategoryFn func(ctx context.Context, category string) ([]*domain.Setting, error)
	ListPublicFn     func(ctx context.Context) ([]*domain.Setting, error)
	UpdateFn         func(ctx context.Context, setting *domain.Setting) error
	DeleteFn         func(ctx context.Context, key string) error
	UpsertFn         func(ctx context.Context, setting *domain.Setting) error

	// Settings backs the default implementations, keyed by setting key.
	Settings map[string]*domain.Setting
}

var _ store.SettingStore = (*MockSettingStore)(nil)

// NewMockSettingStore creates a mock with an empty in-memory set.
func NewMockSettingStore() *MockSettingStore {
	return &MockSettingStore{Settings: make(map[string]*domain.Setting)}
}

func (m *MockSettingStore) Create(ctx context.Context, setting *domain.Setting) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, setting)
	}
	if _, ok := m.Settings[setting.Key]; ok {
		return store.ErrSettingKeyExists
	}
	m.Settings[setting.Key] = setting
	return nil
}

func (m *MockSettingStore) GetByKey(ctx context.Context, key string) (*domain.Setting, error) {
	if m.GetByKeyFn != nil {
		return m.GetByKeyFn(ctx, key)
	}
	setting, ok := m.Settings[key]
	if !ok {
		return nil, store.ErrSettingNotFound
	}
	copied := *setting
	return &copied, nil
}

// sorted returns the stored settings ordered by key for deterministic
// test output.
func (m *MockSettingStore) sorted() []*domain.Setting {
	keys := make([]string, 0, len(m.Settings))
	for key := range m.Settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	settings := make([]*domain.Setting, 0, len(keys))
	for _, key := range keys {
		copied := *m.Settings[key]
		settings = append(settings, &copied)
	}
	return settings
}

func (m *MockSettingStore) List(ctx context.Context) ([]*domain.Setting, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.sorted(), nil
}

func (m *MockSettingStore) ListByCategory(ctx context.Context, category string) ([]*domain.Setting, error) {
	if m.ListByCategoryFn != nil {
		return m.ListByCategoryFn(ctx, category)
	}
	var settings []*domain.Setting
	for _, setting := range m.sorted() {
		if setting.Category == category {
			settings = append(settings, setting)
		}
	}
	return settings, nil
}

func (m *MockSettingStore) ListPublic(ctx context.Context) ([]*domain.Setting, error) {
	if m.ListPublicFn != nil {
		return m.ListPublicFn(ctx)
	}
	var settings []*domain.Setting
	for _, setting := range m.sorted() {
		if setting.IsPublic {
			settings = append(settings, setting)
		}
	}
	return settings, nil
}

func (m *MockSettingStore) Update(ctx context.Context, setting *domain.Setting) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, setting)
	}
	if _, ok := m.Settings[setting.Key]; !ok {
		return store.ErrSettingNotFound
	}
	m.Settings[setting.Key] = setting
	return nil
}

func (m *MockSettingStore) Delete(ctx context.Context, key string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, key)
	}
	if _, ok := m.Settings[key]; !ok {
		return store.ErrSettingNotFound
	}
	delete(m.Settings, key)
	return nil
}

func (m *MockSettingStore) Upsert(ctx context.Context, setting *domain.Setting) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, setting)
	}
	m.Settings[setting.Key] = setting
	return nil
}

// WithTx returns the mock itself; transactions are a no-op in tests.
func (m *MockSettingStore) WithTx(tx *sql.Tx) store.SettingStore {
	return m
}
