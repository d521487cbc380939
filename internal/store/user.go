package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/parceldesk/parceldesk-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
//
// Uniqueness of username and email is enforced by database constraints;
// Create and Update surface violations as ErrUsernameExists or
// ErrEmailExists rather than pre-checking.
type UserStore interface {
	// Create saves a new user. The caller must have hashed the password
	// already; plaintext passwords are never persisted.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByIdentifier retrieves a user by email or username. The match
	// on email is case-insensitive.
	// Returns ErrUserNotFound if no user matches.
	GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error)

	// Update modifies an existing user. The caller must provide a
	// complete user object including HashedPassword.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a page of users matching the filter, newest first,
	// along with the total number of matches. Search covers username,
	// email, name, and phone.
	List(ctx context.Context, filter ListFilter) ([]*domain.User, int, error)

	// CountByRole returns the number of users holding the given role.
	// Used for the last-super-admin delete guard.
	CountByRole(ctx context.Context, role domain.Role) (int, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int, error)

	// WithTx returns a UserStore bound to the given transaction.
	WithTx(tx *sql.Tx) UserStore
}
