package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

// CreateSettingInput carries the fields for setting creation.
type CreateSettingInput struct {
	Key         string
	Value       string
	Category    string
	Description string
	IsPublic    bool
}

// UpdateSettingInput carries a partial setting update. The key itself
// is immutable; addressing happens by key.
type UpdateSettingInput struct {
	Value       *string
	Category    *string
	Description *string
	IsPublic    *bool
}

// SettingsService provides key-value application settings.
type SettingsService struct {
	settings store.SettingStore
	logger   *slog.Logger
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(settings store.SettingStore, logger *slog.Logger) *SettingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsService{
		settings: settings,
		logger:   logger.With(slog.String("component", "settings_service")),
	}
}

// Create stores a new setting. A duplicate key surfaces as
// store.ErrSettingKeyExists.
func (s *SettingsService) Create(ctx context.Context, input CreateSettingInput) (*domain.Setting, error) {
	setting, err := domain.NewSetting(input.Key, input.Value, input.Category)
	if err != nil {
		return nil, err
	}
	setting.Description = input.Description
	setting.IsPublic = input.IsPublic

	if err := s.settings.Create(ctx, setting); err != nil {
		return nil, err
	}

	s.logger.Info("setting created", "key", setting.Key)
	return setting, nil
}

// GetAll returns every setting ordered by category, then key.
func (s *SettingsService) GetAll(ctx context.Context) ([]*domain.Setting, error) {
	return s.settings.List(ctx)
}

// GetByCategory returns all settings within one category.
func (s *SettingsService) GetByCategory(ctx context.Context, category string) ([]*domain.Setting, error) {
	return s.settings.ListByCategory(ctx, category)
}

// GetByKey returns a single setting.
func (s *SettingsService) GetByKey(ctx context.Context, key string) (*domain.Setting, error) {
	return s.settings.GetByKey(ctx, key)
}

// GetAllAsObject flattens every setting into a key->value map, the
// shape configuration-hungry clients consume in one request.
func (s *SettingsService) GetAllAsObject(ctx context.Context) (map[string]string, error) {
	settings, err := s.settings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	obj := make(map[string]string, len(settings))
	for _, setting := range settings {
		obj[setting.Key] = setting.Value
	}
	return obj, nil
}

// GetPublicAsObject flattens only public settings into a key->value
// map. This is the one settings surface served without authentication.
func (s *SettingsService) GetPublicAsObject(ctx context.Context) (map[string]string, error) {
	settings, err := s.settings.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load public settings: %w", err)
	}

	obj := make(map[string]string, len(settings))
	for _, setting := range settings {
		obj[setting.Key] = setting.Value
	}
	return obj, nil
}

// Update modifies an existing setting addressed by key.
func (s *SettingsService) Update(ctx context.Context, key string, input UpdateSettingInput) (*domain.Setting, error) {
	setting, err := s.settings.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	if input.Value != nil {
		setting.Value = *input.Value
	}
	if input.Category != nil {
		setting.Category = *input.Category
	}
	if input.Description != nil {
		setting.Description = *input.Description
	}
	if input.IsPublic != nil {
		setting.IsPublic = *input.IsPublic
	}

	if err := s.settings.Update(ctx, setting); err != nil {
		return nil, err
	}

	s.logger.Info("setting updated", "key", key)
	return setting, nil
}

// Upsert creates the setting or overwrites the existing value under
// the same key.
func (s *SettingsService) Upsert(ctx context.Context, input CreateSettingInput) (*domain.Setting, error) {
	setting, err := domain.NewSetting(input.Key, input.Value, input.Category)
	if err != nil {
		return nil, err
	}
	setting.Description = input.Description
	setting.IsPublic = input.IsPublic

	if err := s.settings.Upsert(ctx, setting); err != nil {
		return nil, err
	}

	s.logger.Info("setting upserted", "key", setting.Key)
	return setting, nil
}

// Delete removes a setting by key.
func (s *SettingsService) Delete(ctx context.Context, key string) error {
	if err := s.settings.Delete(ctx, key); err != nil {
		return err
	}
	s.logger.Info("setting deleted", "key", key)
	return nil
}
