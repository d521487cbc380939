// Package postgres implements the store interfaces on PostgreSQL via
// database/sql with the pgx stdlib driver.
//
// Uniqueness and referential integrity are enforced by the schema, not
// by application-level pre-checks; constraint violations reported by
// the driver are mapped to the store package's sentinel errors by
// constraint name.
package postgres
