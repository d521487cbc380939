// Package migrations embeds the goose SQL migrations that define the
// database schema, including the unique and referential constraints the
// store layer relies on for conflict detection.
package migrations

import "embed"

// FS holds the embedded migration files.
//
//go:embed *.sql
var FS embed.FS
