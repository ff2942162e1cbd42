// Package migrations embeds the SQL migrations for the messagely schema.
package migrations

import "embed"

// FS holds the golang-migrate formatted up/down files.
//
//go:embed *.sql
var FS embed.FS
