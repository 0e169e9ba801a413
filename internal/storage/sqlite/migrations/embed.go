// Package migrations embeds the SQLite schema for project storage.
package migrations

import "embed"

// FS contains embedded SQLite migrations for project storage.
//
//go:embed *.sql
var FS embed.FS
