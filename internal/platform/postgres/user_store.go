package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

// UserStore implements store.UserStore on PostgreSQL.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUserStore creates a PostgreSQL-backed UserStore. The caller owns
// the connection's lifecycle.
func NewUserStore(db store.DBTX, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

var _ store.UserStore = (*UserStore)(nil)

const userColumns = `id, username, email, name, phone, gender, role, status, hashed_password, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var (
		u      domain.User
		phone  sql.NullString
		gender sql.NullString
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Name, &phone, &gender,
		&u.Role, &u.Status, &u.HashedPassword, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Phone = phone.String
	u.Gender = domain.Gender(gender.String)
	return &u, nil
}

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, name, phone, gender, role, status, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10, $11)`,
		user.ID, user.Username, user.Email, user.Name, user.Phone, string(user.Gender),
		user.Role, user.Status, user.HashedPassword, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return mapError(err, store.ErrUserNotFound)
	}
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, mapError(err, store.ErrUserNotFound)
	}
	return user, nil
}

// GetByIdentifier implements store.UserStore.GetByIdentifier. The email
// match is case-insensitive; usernames match exactly.
func (s *UserStore) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1) OR username = $1`,
		identifier)
	user, err := scanUser(row)
	if err != nil {
		return nil, mapError(err, store.ErrUserNotFound)
	}
	return user, nil
}

// Update implements store.UserStore.Update.
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET username = $2, email = $3, name = $4, phone = NULLIF($5, ''),
		    gender = NULLIF($6, ''), role = $7, status = $8,
		    hashed_password = $9, updated_at = now()
		WHERE id = $1`,
		user.ID, user.Username, user.Email, user.Name, user.Phone,
		string(user.Gender), user.Role, user.Status, user.HashedPassword)
	if err != nil {
		return mapError(err, store.ErrUserNotFound)
	}
	return checkRowsAffected(result, store.ErrUserNotFound)
}

// Delete implements store.UserStore.Delete.
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError(err, store.ErrUserNotFound)
	}
	return checkRowsAffected(result, store.ErrUserNotFound)
}

// List implements store.UserStore.List.
func (s *UserStore) List(ctx context.Context, filter store.ListFilter) ([]*domain.User, int, error) {
	filter = filter.Normalize()
	pattern := "%" + filter.Search + "%"

	var total int
	err := s.db.QueryRowContext(ctx, `
		SELECT count(*) FROM users
		WHERE $1 = '' OR username ILIKE $2 OR email ILIKE $2 OR name ILIKE $2 OR phone ILIKE $2`,
		filter.Search, pattern).Scan(&total)
	if err != nil {
		return nil, 0, mapError(err, store.ErrUserNotFound)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE $1 = '' OR username ILIKE $2 OR email ILIKE $2 OR name ILIKE $2 OR phone ILIKE $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		filter.Search, pattern, filter.Limit, filter.Offset())
	if err != nil {
		return nil, 0, mapError(err, store.ErrUserNotFound)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Error("failed to close rows", "error", err)
		}
	}()

	users := make([]*domain.User, 0, filter.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// CountByRole implements store.UserStore.CountByRole.
func (s *UserStore) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM users WHERE role = $1`, role).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Count implements store.UserStore.Count.
func (s *UserStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// WithTx implements store.UserStore.WithTx.
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{db: tx, logger: s.logger}
}
