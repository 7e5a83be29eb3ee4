package migrations

import "embed"

// FS contains the embedded SQLite migrations for chat storage.
//
//go:embed *.sql
var FS embed.FS
