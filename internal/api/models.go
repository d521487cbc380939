package api

import (
	"github.com/parceldesk/parceldesk-api/internal/domain"
)

// Request/response payloads shared across handlers. Validation happens
// through struct tags via shared.ValidateRequest.

// RegisterRequest is the payload for account self-registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required,min=1,max=128"`
	Phone    string `json:"phone"    validate:"omitempty,max=32"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the payload for login. Identifier accepts an email
// address or a username.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,min=1"`
	Password   string `json:"password"   validate:"required,min=1"`
}

// AuthResponse is the success payload for login and registration.
type AuthResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// RefreshTokenRequest is the payload for the token refresh and logout
// endpoints.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse is the success payload for token refresh.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CreateUserRequest is the payload for admin-side user creation.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required,min=1,max=128"`
	Phone    string `json:"phone"    validate:"omitempty,max=32"`
	Gender   string `json:"gender"   validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Role     string `json:"role"     validate:"omitempty,oneof=SUPER_ADMIN ADMIN USER MERCHANT DRIVER"`
	Status   string `json:"status"   validate:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UpdateUserRequest is the payload for partial user updates.
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=64"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Name     *string `json:"name"     validate:"omitempty,min=1,max=128"`
	Phone    *string `json:"phone"    validate:"omitempty,max=32"`
	Gender   *string `json:"gender"   validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Role     *string `json:"role"     validate:"omitempty,oneof=SUPER_ADMIN ADMIN USER MERCHANT DRIVER"`
	Status   *string `json:"status"   validate:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED"`
}

// ChangePasswordRequest is the payload for the admin password reset.
type ChangePasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// CreateDriverRequest is the payload for driver creation.
type CreateDriverRequest struct {
	Email             string  `json:"email"               validate:"required,email"`
	Name              string  `json:"name"                validate:"required,min=1,max=128"`
	Phone             string  `json:"phone"               validate:"omitempty,max=32"`
	DeliverFee        float64 `json:"deliver_fee"         validate:"gte=0"`
	DriverStatus      string  `json:"driver_status"       validate:"omitempty,oneof=ACTIVE ON_DUTY OFF_DUTY SUSPENDED"`
	Bank              string  `json:"bank"                validate:"omitempty,max=64"`
	BankAccountName   string  `json:"bank_account_name"   validate:"omitempty,max=128"`
	BankAccountNumber string  `json:"bank_account_number" validate:"required,min=1,max=64"`
	Latitude          float64 `json:"latitude"            validate:"gte=-90,lte=90"`
	Longitude         float64 `json:"longitude"           validate:"gte=-180,lte=180"`
}

// UpdateDriverRequest is the payload for partial driver updates.
type UpdateDriverRequest struct {
	Email             *string  `json:"email"               validate:"omitempty,email"`
	Name              *string  `json:"name"                validate:"omitempty,min=1,max=128"`
	Phone             *string  `json:"phone"               validate:"omitempty,max=32"`
	DeliverFee        *float64 `json:"deliver_fee"         validate:"omitempty,gte=0"`
	DriverStatus      *string  `json:"driver_status"       validate:"omitempty,oneof=ACTIVE ON_DUTY OFF_DUTY SUSPENDED"`
	Bank              *string  `json:"bank"                validate:"omitempty,max=64"`
	BankAccountName   *string  `json:"bank_account_name"   validate:"omitempty,max=128"`
	BankAccountNumber *string  `json:"bank_account_number" validate:"omitempty,min=1,max=64"`
	Latitude          *float64 `json:"latitude"            validate:"omitempty,gte=-90,lte=90"`
	Longitude         *float64 `json:"longitude"           validate:"omitempty,gte=-180,lte=180"`
	Status            *string  `json:"status"              validate:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED"`
}

// CreateMerchantRequest is the payload for merchant creation.
type CreateMerchantRequest struct {
	Email             string  `json:"email"               validate:"omitempty,email"`
	Name              string  `json:"name"                validate:"required,min=1,max=128"`
	Phone             string  `json:"phone"               validate:"omitempty,max=32"`
	DeliverFee        float64 `json:"deliver_fee"         validate:"gte=0"`
	Bank              string  `json:"bank"                validate:"omitempty,max=64"`
	BankAccountName   string  `json:"bank_account_name"   validate:"omitempty,max=128"`
	BankAccountNumber string  `json:"bank_account_number" validate:"required,min=1,max=64"`
	Address           string  `json:"address"             validate:"required,min=1"`
	MapURL            string  `json:"map_url"             validate:"omitempty,url"`
}

// UpdateMerchantRequest is the payload for partial merchant updates.
type UpdateMerchantRequest struct {
	Email             *string  `json:"email"               validate:"omitempty,email"`
	Name              *string  `json:"name"                validate:"omitempty,min=1,max=128"`
	Phone             *string  `json:"phone"               validate:"omitempty,max=32"`
	DeliverFee        *float64 `json:"deliver_fee"         validate:"omitempty,gte=0"`
	Bank              *string  `json:"bank"                validate:"omitempty,max=64"`
	BankAccountName   *string  `json:"bank_account_name"   validate:"omitempty,max=128"`
	BankAccountNumber *string  `json:"bank_account_number" validate:"omitempty,min=1,max=64"`
	Address           *string  `json:"address"             validate:"omitempty,min=1"`
	MapURL            *string  `json:"map_url"             validate:"omitempty,url"`
	Status            *string  `json:"status"              validate:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED"`
}

// CreatePackageRequest is the payload for registering a package. A zero
// delivery fee falls back to the merchant's configured fee.
type CreatePackageRequest struct {
	MerchantID      string  `json:"merchant_id"      validate:"required,uuid"`
	CustomerName    string  `json:"customer_name"    validate:"required,min=1,max=128"`
	CustomerPhone   string  `json:"customer_phone"   validate:"omitempty,max=32"`
	CustomerAddress string  `json:"customer_address" validate:"required,min=1"`
	CODAmount       float64 `json:"cod_amount"       validate:"gte=0"`
	DeliveryFee     float64 `json:"delivery_fee"     validate:"gte=0"`
}

// BulkCreatePackagesRequest is the payload for atomic batch creation.
type BulkCreatePackagesRequest struct {
	Packages []CreatePackageRequest `json:"packages" validate:"required,min=1,max=500,dive"`
}

// UpdatePackageRequest is the payload for partial package updates.
type UpdatePackageRequest struct {
	CustomerName    *string  `json:"customer_name"    validate:"omitempty,min=1,max=128"`
	CustomerPhone   *string  `json:"customer_phone"   validate:"omitempty,max=32"`
	CustomerAddress *string  `json:"customer_address" validate:"omitempty,min=1"`
	CODAmount       *float64 `json:"cod_amount"       validate:"omitempty,gte=0"`
	DeliveryFee     *float64 `json:"delivery_fee"     validate:"omitempty,gte=0"`
}

// UpdatePackageStatusRequest is the payload for lifecycle transitions.
type UpdatePackageStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=RECEIVED PREPARING READY DELIVERING DELIVERED CANCELLED RETURNED"`
}

// AssignDriverRequest is the payload for driver assignment.
type AssignDriverRequest struct {
	DriverID string `json:"driver_id" validate:"required,uuid"`
}

// FlagIssueRequest is the payload for flagging or clearing a package
// issue. An empty note clears the flag.
type FlagIssueRequest struct {
	Note     string  `json:"note"      validate:"max=1000"`
	ExtraFee float64 `json:"extra_fee" validate:"gte=0"`
}

// CreateSettingRequest is the payload for setting creation and upsert.
type CreateSettingRequest struct {
	Key         string `json:"key"         validate:"required,min=1,max=128"`
	Value       string `json:"value"`
	Category    string `json:"category"    validate:"omitempty,max=64"`
	Description string `json:"description" validate:"omitempty,max=512"`
	IsPublic    bool   `json:"is_public"`
}

// UpdateSettingRequest is the payload for partial setting updates.
type UpdateSettingRequest struct {
	Value       *string `json:"value"`
	Category    *string `json:"category"    validate:"omitempty,max=64"`
	Description *string `json:"description" validate:"omitempty,max=512"`
	IsPublic    *bool   `json:"is_public"`
}
