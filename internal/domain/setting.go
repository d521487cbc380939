package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmptySettingKey is returned when a setting is created without a key.
var ErrEmptySettingKey = errors.New("setting key cannot be empty")

// Setting is a single key-value configuration row. Settings carry no
// referential relationships; key uniqueness is the only invariant.
type Setting struct {
	ID          uuid.UUID `json:"id"`
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSetting creates a Setting with a fresh ID.
func NewSetting(key, value, category string) (*Setting, error) {
	now := time.Now().UTC()
	setting := &Setting{
		ID:        uuid.New(),
		Key:       strings.TrimSpace(key),
		Value:     value,
		Category:  strings.TrimSpace(category),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if setting.Key == "" {
		return nil, ErrEmptySettingKey
	}
	return setting, nil
}
