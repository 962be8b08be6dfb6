package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // register pgx5 driver
	_ "github.com/golang-migrate/migrate/v4/source/file"     // register file source driver
)

// RunMigrations applies pending migrations from dir (a plain path or a
// file:// URL) to the database at url. No pending migrations is not an error.
func RunMigrations(url, dir string) error {
	m, err := migrate.New(sourceURL(dir), databaseURL(url))
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations up: %w", err)
	}

	return nil
}

func sourceURL(dir string) string {
	if strings.Contains(dir, "://") {
		return dir
	}
	return "file://" + dir
}

// databaseURL rewrites postgres:// URLs to the pgx5 scheme the migrate driver registers.
func databaseURL(url string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(url, prefix) {
			return "pgx5://" + strings.TrimPrefix(url, prefix)
		}
	}
	return url
}
