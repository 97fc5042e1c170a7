package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"cym-store/internal/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	MigrateUp   = "up"
	MigrateDown = "down"
)

var ErrUnknownMigrateMode = errors.New("unknown migration mode")

// RunMigrations applies ("up") or rolls back one step of ("down") the
// embedded schema migrations.
func RunMigrations(db *sql.DB, mode string) error {
	if mode != MigrateUp && mode != MigrateDown {
		return fmt.Errorf("%w: %s (use 'up' or 'down')", ErrUnknownMigrateMode, mode)
	}

	log := logger.L().With(
		zap.String("layer", "db"),
		zap.String("method", "RunMigrations"),
		zap.String("mode", mode),
	)

	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if mode == MigrateUp {
		err = m.Up()
	} else {
		err = m.Steps(-1)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	log.Info("migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))

	return nil
}
