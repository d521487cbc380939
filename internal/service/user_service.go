package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/service/auth"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

// CreateUserInput carries the fields for admin-side user creation.
// Role and Status default to USER and ACTIVE when left empty.
type CreateUserInput struct {
	Username string
	Email    string
	Name     string
	Phone    string
	Gender   domain.Gender
	Role     domain.Role
	Status   domain.UserStatus
	Password string
}

// UpdateUserInput carries a partial user update. Nil fields are left
// unchanged.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Name     *string
	Phone    *string
	Gender   *domain.Gender
	Role     *domain.Role
	Status   *domain.UserStatus
}

// UserService provides user management operations.
type UserService struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	db     store.TxRunner
	logger *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(users store.UserStore, hasher auth.PasswordHasher, db store.TxRunner, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		users:  users,
		hasher: hasher,
		db:     db,
		logger: logger.With(slog.String("component", "user_service")),
	}
}

// Create creates a user account, hashing the password before persisting.
// Duplicate username or email surfaces as the store's conflict error.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	user, err := domain.NewUser(input.Username, input.Email, input.Name, input.Password)
	if err != nil {
		return nil, err
	}
	user.Phone = input.Phone
	user.Gender = input.Gender
	if input.Role != "" {
		user.Role = input.Role
	}
	if input.Status != "" {
		user.Status = input.Status
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", "user_id", user.ID, "role", user.Role)
	return user.Sanitized(), nil
}

// List returns a page of users, passwords stripped.
func (s *UserService) List(ctx context.Context, filter store.ListFilter) (*Page[*domain.User], error) {
	filter = filter.Normalize()
	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	items := make([]*domain.User, len(users))
	for i, user := range users {
		items[i] = user.Sanitized()
	}
	return &Page[*domain.User]{Items: items, Pagination: NewPagination(filter, total)}, nil
}

// Get retrieves a user by ID, password stripped.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// Update applies a partial update. Changing username or email to a
// value held by another user surfaces as the store's conflict error
// from the database constraint.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	var updated *domain.User
	err := s.db.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.users.WithTx(tx)

		user, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if input.Username != nil {
			user.Username = *input.Username
		}
		if input.Email != nil {
			user.Email = *input.Email
		}
		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.Phone != nil {
			user.Phone = *input.Phone
		}
		if input.Gender != nil {
			user.Gender = *input.Gender
		}
		if input.Role != nil {
			user.Role = *input.Role
		}
		if input.Status != nil {
			user.Status = *input.Status
		}

		if err := txStore.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user updated", "user_id", id)
	return updated.Sanitized(), nil
}

// Delete removes a user. Deleting the last SUPER_ADMIN is rejected with
// domain.ErrLastSuperAdmin; the count check and the delete run in one
// transaction so concurrent deletes cannot race past the guard.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.users.WithTx(tx)

		user, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if user.Role == domain.RoleSuperAdmin {
			count, err := txStore.CountByRole(ctx, domain.RoleSuperAdmin)
			if err != nil {
				return fmt.Errorf("failed to count super admins: %w", err)
			}
			if count <= 1 {
				return domain.ErrLastSuperAdmin
			}
		}

		return txStore.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// ChangePassword hashes and persists a new password for the user. This
// is an admin-reset flow: no current-password verification happens
// here, so routes exposing it are restricted to admin roles.
func (s *UserService) ChangePassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	if len(newPassword) < 8 {
		return domain.ErrPasswordTooShort
	}
	if len(newPassword) > 72 {
		return domain.ErrPasswordTooLong
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("user password changed", "user_id", id)
	return nil
}
