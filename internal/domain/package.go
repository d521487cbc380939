package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PackageStatus is the persisted delivery lifecycle state of a package.
//
// This vocabulary is authoritative. The dashboard-facing aliases that
// existed in older clients (PENDING, ON_DELIVERY, FAILED) are not
// persisted and are not accepted by the API.
type PackageStatus string

const (
	PackageStatusReceived   PackageStatus = "RECEIVED"
	PackageStatusPreparing  PackageStatus = "PREPARING"
	PackageStatusReady      PackageStatus = "READY"
	PackageStatusDelivering PackageStatus = "DELIVERING"
	PackageStatusDelivered  PackageStatus = "DELIVERED"
	PackageStatusCancelled  PackageStatus = "CANCELLED"
	PackageStatusReturned   PackageStatus = "RETURNED"
)

// PackageStatuses lists every valid status, in lifecycle order.
var PackageStatuses = []PackageStatus{
	PackageStatusReceived,
	PackageStatusPreparing,
	PackageStatusReady,
	PackageStatusDelivering,
	PackageStatusDelivered,
	PackageStatusCancelled,
	PackageStatusReturned,
}

// Valid reports whether the status is one of the supported values.
func (s PackageStatus) Valid() bool {
	switch s {
	case PackageStatusReceived, PackageStatusPreparing, PackageStatusReady,
		PackageStatusDelivering, PackageStatusDelivered,
		PackageStatusCancelled, PackageStatusReturned:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s PackageStatus) Terminal() bool {
	switch s {
	case PackageStatusDelivered, PackageStatusCancelled, PackageStatusReturned:
		return true
	}
	return false
}

// statusTransitions is the allowed-transition table. Cancellation is
// permitted from any non-terminal state; a delivery attempt may come
// back RETURNED only once the package is out with a driver.
var statusTransitions = map[PackageStatus][]PackageStatus{
	PackageStatusReceived:   {PackageStatusPreparing, PackageStatusCancelled},
	PackageStatusPreparing:  {PackageStatusReady, PackageStatusCancelled},
	PackageStatusReady:      {PackageStatusDelivering, PackageStatusCancelled},
	PackageStatusDelivering: {PackageStatusDelivered, PackageStatusReturned, PackageStatusCancelled},
}

// CanTransition reports whether a package may move from one status to
// another in a single step.
func CanTransition(from, to PackageStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Package-specific validation errors.
var (
	ErrEmptyCustomerName    = errors.New("customer name cannot be empty")
	ErrEmptyCustomerAddress = errors.New("customer address cannot be empty")
	ErrNegativeCOD          = errors.New("COD amount cannot be negative")
	ErrNegativeDeliveryFee  = errors.New("delivery fee cannot be negative")
	ErrInvalidPackageStatus = errors.New("invalid package status")
	ErrMissingMerchant      = errors.New("package must reference a merchant")
)

// Package is a single shipment. It is exclusively owned by its merchant
// and may be assigned to at most one driver at a time; the driver
// reference is reassignable and does not imply ownership.
type Package struct {
	ID              uuid.UUID     `json:"id"`
	PackageNumber   string        `json:"package_number"`
	CustomerName    string        `json:"customer_name"`
	CustomerPhone   string        `json:"customer_phone"`
	CustomerAddress string        `json:"customer_address"`
	CODAmount       float64       `json:"cod_amount"`
	DeliveryFee     float64       `json:"delivery_fee"`
	Status          PackageStatus `json:"status"`

	HasIssue         bool    `json:"has_issue"`
	IssueNote        string  `json:"issue_note,omitempty"`
	ExtraDeliveryFee float64 `json:"extra_delivery_fee,omitempty"`

	MerchantID uuid.UUID  `json:"merchant_id"`
	DriverID   *uuid.UUID `json:"driver_id,omitempty"`

	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewPackage creates a Package in status RECEIVED with a generated
// package number.
func NewPackage(merchantID uuid.UUID, customerName, customerPhone, customerAddress string, codAmount, deliveryFee float64) (*Package, error) {
	now := time.Now().UTC()
	pkg := &Package{
		ID:              uuid.New(),
		PackageNumber:   GeneratePackageNumber(now),
		CustomerName:    strings.TrimSpace(customerName),
		CustomerPhone:   strings.TrimSpace(customerPhone),
		CustomerAddress: strings.TrimSpace(customerAddress),
		CODAmount:       codAmount,
		DeliveryFee:     deliveryFee,
		Status:          PackageStatusReceived,
		MerchantID:      merchantID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := pkg.Validate(); err != nil {
		return nil, err
	}
	return pkg, nil
}

// Validate checks the package's invariants.
func (p *Package) Validate() error {
	if p.ID == uuid.Nil {
		return ErrInvalidID
	}
	if p.PackageNumber == "" {
		return fmt.Errorf("%w: package number cannot be empty", ErrValidation)
	}
	if p.CustomerName == "" {
		return ErrEmptyCustomerName
	}
	if p.CustomerAddress == "" {
		return ErrEmptyCustomerAddress
	}
	if p.CODAmount < 0 {
		return ErrNegativeCOD
	}
	if p.DeliveryFee < 0 || p.ExtraDeliveryFee < 0 {
		return ErrNegativeDeliveryFee
	}
	if !p.Status.Valid() {
		return ErrInvalidPackageStatus
	}
	if p.MerchantID == uuid.Nil {
		return ErrMissingMerchant
	}
	return nil
}

// TransitionTo moves the package to the given status, enforcing the
// lifecycle table. Reaching DELIVERED stamps DeliveredAt.
func (p *Package) TransitionTo(status PackageStatus) error {
	if !status.Valid() {
		return ErrInvalidPackageStatus
	}
	if !CanTransition(p.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, p.Status, status)
	}

	p.Status = status
	now := time.Now().UTC()
	if status == PackageStatusDelivered {
		p.DeliveredAt = &now
	}
	p.UpdatedAt = now
	return nil
}

// GeneratePackageNumber builds a human-readable unique shipment number,
// e.g. "PD-20260831-4F21A9". Uniqueness is ultimately guaranteed by the
// database constraint; the random suffix keeps collisions improbable.
func GeneratePackageNumber(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("PD-%s-%s", t.UTC().Format("20060102"), suffix)
}
