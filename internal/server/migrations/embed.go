// Package migrations embeds the goose SQL migrations applied on server start.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
