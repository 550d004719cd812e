// Package migrations embeds the versioned schema files for each supported
// database. Files are named NNN_name.sql and applied in version order.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
