package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/parceldesk/parceldesk-api/internal/store"
)

// PostgreSQL error codes.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// uniqueConstraintErrors maps schema constraint names to the sentinel
// duplicate errors the service layer matches on. Constraint names come
// from the goose migrations; postgres derives <table>_<column>_key for
// UNIQUE columns.
var uniqueConstraintErrors = map[string]error{
	"users_username_key":               store.ErrUsernameExists,
	"users_email_key":                  store.ErrEmailExists,
	"drivers_email_key":                store.ErrEmailExists,
	"drivers_bank_account_number_key":  store.ErrBankAccountExists,
	"merchants_email_key":              store.ErrEmailExists,
	"merchants_bank_account_number_key": store.ErrBankAccountExists,
	"packages_package_number_key":      store.ErrPackageNumberExists,
	"settings_key_key":                 store.ErrSettingKeyExists,
}

// mapError translates a database error into a store sentinel error,
// wrapping the original for debugging context.
func mapError(err error, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", notFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			if sentinel, ok := uniqueConstraintErrors[pgErr.ConstraintName]; ok {
				return fmt.Errorf("%w: %v", sentinel, err)
			}
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case foreignKeyViolationCode:
			return fmt.Errorf("%w: foreign key violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ConstraintName, err)
		case checkViolationCode, notNullViolationCode:
			return fmt.Errorf("%w: constraint violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ConstraintName, err)
		}
	}

	return err
}

// IsForeignKeyViolation reports whether err is a referential-integrity
// violation, e.g. deleting a driver that still has packages when only
// the schema-level RESTRICT catches it.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// checkRowsAffected returns notFound when an UPDATE or DELETE touched
// no rows, which indicates the target record does not exist.
func checkRowsAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
