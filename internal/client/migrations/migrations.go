// Package migrations embeds the client cache's goose migration files.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
