// Package migrations holds the linkswap schema as golang-migrate up/down
// SQL pairs embedded in the binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Version is the schema version this binary runs against. Bump it with every
// new NNNNNN_name.up.sql pair.
const Version uint = 1
