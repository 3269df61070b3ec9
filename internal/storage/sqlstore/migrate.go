package sqlstore

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"opportunity-finder/internal/config"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrator applies the embedded schema migrations for one dialect.
type Migrator struct {
	m       *migrate.Migrate
	dialect Dialect
}

// NewMigrator opens a dedicated connection for migrations. Close releases it.
func NewMigrator(cfg config.DatabaseConfig) (*Migrator, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	dsn, err := DSN(cfg, true)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("opening migration connection: %w", err)
	}

	var driver database.Driver
	switch dialect.Name() {
	case config.DriverPostgres:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	case config.DriverMySQL:
		driver, err = migratemysql.WithInstance(db, &migratemysql.Config{})
	case config.DriverSQLite:
		driver, err = sqlite.WithInstance(db, &sqlite.Config{})
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating %s migration driver: %w", dialect.Name(), err)
	}

	src, err := iofs.New(migrationsFS, "migrations/"+dialect.Name())
	if err != nil {
		driver.Close()
		return nil, fmt.Errorf("loading embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, dialect.Name(), driver)
	if err != nil {
		driver.Close()
		return nil, fmt.Errorf("creating migration instance: %w", err)
	}
	return &Migrator{m: m, dialect: dialect}, nil
}

// Up applies all pending migrations. Being up to date is not an error.
func (mg *Migrator) Up() error {
	if err := mg.checkDirty(); err != nil {
		return err
	}
	err := mg.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Println("INFO: [Migrator] schema is up to date, nothing to migrate.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	version, _, _ := mg.Version()
	log.Printf("INFO: [Migrator] migrations applied, schema now at version %d.", version)
	return nil
}

// Down rolls back every migration.
func (mg *Migrator) Down() error {
	err := mg.m.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Println("INFO: [Migrator] nothing to roll back.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("rolling back migrations: %w", err)
	}
	log.Println("INFO: [Migrator] all migrations rolled back.")
	return nil
}

// Version returns the current schema version; 0 means no migration applied.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading schema version: %w", err)
	}
	return version, dirty, nil
}

func (mg *Migrator) checkDirty() error {
	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("database is dirty at version %d, fix it manually before migrating", version)
	}
	return nil
}

// Close releases the migration source and connection.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}
