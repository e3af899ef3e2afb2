// Package migrations embeds the SQL schema migrations for the
// metadata, index and harvest tables.
package migrations

import "embed"

// FS holds the numbered .up.sql and .down.sql files embedded at
// compile time.
//
//go:embed *.sql
var FS embed.FS
