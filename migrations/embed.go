// Package migrations — SQL-миграции goose, встроенные в бинарь.
package migrations

import "embed"

// FS — файлы миграций.
//
//go:embed *.sql
var FS embed.FS
