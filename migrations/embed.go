// Package migrations bundles the SQL schema of the media catalog.
package migrations

import "embed"

// FS holds the golang-migrate files.
//
//go:embed *.sql
var FS embed.FS
