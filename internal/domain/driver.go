package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DriverStatus tracks a driver's duty state, independent of whether the
// underlying account is active.
type DriverStatus string

const (
	DriverStatusActive    DriverStatus = "ACTIVE"
	DriverStatusOnDuty    DriverStatus = "ON_DUTY"
	DriverStatusOffDuty   DriverStatus = "OFF_DUTY"
	DriverStatusSuspended DriverStatus = "SUSPENDED"
)

// Valid reports whether the status is one of the supported values.
func (s DriverStatus) Valid() bool {
	switch s {
	case DriverStatusActive, DriverStatusOnDuty, DriverStatusOffDuty, DriverStatusSuspended:
		return true
	}
	return false
}

// Driver-specific validation errors.
var (
	ErrEmptyBankAccount    = errors.New("bank account number cannot be empty")
	ErrNegativeDeliverFee  = errors.New("deliver fee cannot be negative")
	ErrInvalidDriverStatus = errors.New("invalid driver status")
	ErrInvalidCoordinates  = errors.New("coordinates out of range")
)

// Driver is the business profile of a delivery driver. Deleting a driver
// is blocked while any package still references it.
type Driver struct {
	ID                uuid.UUID    `json:"id"`
	Email             string       `json:"email"`
	Name              string       `json:"name"`
	Phone             string       `json:"phone"`
	DeliverFee        float64      `json:"deliver_fee"`
	DriverStatus      DriverStatus `json:"driver_status"`
	Bank              string       `json:"bank"`
	BankAccountName   string       `json:"bank_account_name"`
	BankAccountNumber string       `json:"bank_account_number"`
	Latitude          float64      `json:"latitude"`
	Longitude         float64      `json:"longitude"`
	Status            UserStatus   `json:"status"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// NewDriver creates a Driver with a fresh ID, status ACTIVE, and duty
// state ACTIVE.
func NewDriver(email, name, phone, bankAccountNumber string, deliverFee float64) (*Driver, error) {
	now := time.Now().UTC()
	driver := &Driver{
		ID:                uuid.New(),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Name:              strings.TrimSpace(name),
		Phone:             strings.TrimSpace(phone),
		DeliverFee:        deliverFee,
		DriverStatus:      DriverStatusActive,
		BankAccountNumber: strings.TrimSpace(bankAccountNumber),
		Status:            UserStatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := driver.Validate(); err != nil {
		return nil, err
	}
	return driver, nil
}

// Validate checks the driver's invariants.
func (d *Driver) Validate() error {
	if d.ID == uuid.Nil {
		return ErrInvalidID
	}
	if d.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmailFormat(d.Email) {
		return ErrInvalidEmail
	}
	if d.Name == "" {
		return ErrEmptyName
	}
	if d.BankAccountNumber == "" {
		return ErrEmptyBankAccount
	}
	if d.DeliverFee < 0 {
		return ErrNegativeDeliverFee
	}
	if !d.DriverStatus.Valid() {
		return ErrInvalidDriverStatus
	}
	if !d.Status.Valid() {
		return ErrInvalidUserStatus
	}
	if d.Latitude < -90 || d.Latitude > 90 || d.Longitude < -180 || d.Longitude > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}

// Assignable reports whether packages may be assigned to this driver.
// Suspended drivers and inactive accounts never receive assignments.
func (d *Driver) Assignable() bool {
	return d.Status == UserStatusActive && d.DriverStatus != DriverStatusSuspended
}
