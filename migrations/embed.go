package migrations

import "embed"

// Files holds the numbered schema migrations applied by db.OpenSQLite.
// Names sort in apply order: NNNN_description.sql.
//
//go:embed *.sql
var Files embed.FS
