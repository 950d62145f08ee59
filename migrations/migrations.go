// Package migrations embeds the SQL schema files so binaries and tests can
// apply them without depending on the working directory.
package migrations

import "embed"

// FS holds every *.up.sql and *.down.sql file in this directory.
//
//go:embed *.sql
var FS embed.FS
