package migrations

import "embed"

// FS contains embedded SQLite migrations for genome storage.
//
//go:embed *.sql
var FS embed.FS
