package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyAddress is returned when a merchant is created without a
// pickup address.
var ErrEmptyAddress = errors.New("address cannot be empty")

// Merchant is the business profile of a shipper. A merchant owns its
// packages; deleting a merchant is blocked while any package still
// references it.
type Merchant struct {
	ID                uuid.UUID  `json:"id"`
	Email             string     `json:"email,omitempty"`
	Name              string     `json:"name"`
	Phone             string     `json:"phone"`
	DeliverFee        float64    `json:"deliver_fee"`
	Bank              string     `json:"bank"`
	BankAccountName   string     `json:"bank_account_name"`
	BankAccountNumber string     `json:"bank_account_number"`
	Address           string     `json:"address"`
	MapURL            string     `json:"map_url,omitempty"`
	Status            UserStatus `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// NewMerchant creates a Merchant with a fresh ID and status ACTIVE.
// Email is optional for merchants; when present it must be unique.
func NewMerchant(name, phone, address, bankAccountNumber string, deliverFee float64) (*Merchant, error) {
	now := time.Now().UTC()
	merchant := &Merchant{
		ID:                uuid.New(),
		Name:              strings.TrimSpace(name),
		Phone:             strings.TrimSpace(phone),
		DeliverFee:        deliverFee,
		BankAccountNumber: strings.TrimSpace(bankAccountNumber),
		Address:           strings.TrimSpace(address),
		Status:            UserStatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := merchant.Validate(); err != nil {
		return nil, err
	}
	return merchant, nil
}

// Validate checks the merchant's invariants.
func (m *Merchant) Validate() error {
	if m.ID == uuid.Nil {
		return ErrInvalidID
	}
	if m.Name == "" {
		return ErrEmptyName
	}
	if m.Address == "" {
		return ErrEmptyAddress
	}
	if m.BankAccountNumber == "" {
		return ErrEmptyBankAccount
	}
	if m.DeliverFee < 0 {
		return ErrNegativeDeliverFee
	}
	if m.Email != "" && !validEmailFormat(m.Email) {
		return ErrInvalidEmail
	}
	if !m.Status.Valid() {
		return ErrInvalidUserStatus
	}
	return nil
}
