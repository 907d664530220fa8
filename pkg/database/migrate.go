package database

import (
	"database/sql"
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// MigrationDirection selects which way RunMigrations moves the schema.
type MigrationDirection string

const (
	MigrateUp   MigrationDirection = "up"
	MigrateDown MigrationDirection = "down"
)

// RunMigrations applies (or rolls back) every migration found at migrationsPath,
// e.g. "file://migrations". It reports whether anything changed.
func RunMigrations(databaseURL, migrationsPath string, direction MigrationDirection) (bool, error) {
	// A standard sql.DB over the pgx stdlib driver, separate from the application pool.
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return false, fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer migrationDB.Close()

	if err := migrationDB.Ping(); err != nil {
		return false, fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return false, fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return false, fmt.Errorf("could not create migrate instance: %w", err)
	}

	switch direction {
	case MigrateUp:
		err = m.Up()
	case MigrateDown:
		err = m.Down()
	default:
		return false, fmt.Errorf("unknown migration direction %q", direction)
	}
	changed := !errors.Is(err, migrate.ErrNoChange)
	if err != nil && changed {
		return false, fmt.Errorf("failed to apply migrations: %w", err)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return changed, fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return changed, fmt.Errorf("migration database error: %w", dbErr)
	}
	return changed, nil
}
