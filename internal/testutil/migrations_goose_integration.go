//go:build integration

package testutil

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // драйвер database/sql "pgx"
	"github.com/pressly/goose/v3"

	"github.com/manish-env/shopify-order-tracking/migrations"
)

// ApplyMigrationsGoose — накатывает встроенные миграции через глобальный API goose.
// Сервис использует goose.Provider (postgres.Migrate), тесты проверяют, что оба пути сходятся.
func ApplyMigrationsGoose(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
