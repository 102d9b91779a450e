// Package migrations embeds the SQL schema migrations so that the server,
// the migrate command and the tests all apply the same files.
package migrations

import "embed"

// FS holds the *.up.sql and *.down.sql files of this directory
//
//go:embed *.sql
var FS embed.FS
