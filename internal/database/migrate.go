// Package database owns the schema. Migrations are embedded and applied with
// golang-migrate on API startup.
package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationStatus describes where the database stands against the embedded
// migrations.
type MigrationStatus struct {
	CurrentVersion uint
	LatestVersion  uint
	Dirty          bool
	Pending        bool
}

func newSource() (source.Driver, error) {
	return iofs.New(migrationsFS, "migrations")
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		return nil, err
	}
	src, err := newSource()
	if err != nil {
		return nil, err
	}
	return migrate.NewWithInstance("iofs", src, "pgx5", driver)
}

// Migrate applies every pending up migration. A dirty database is reported,
// not forced.
func Migrate(db *sql.DB, logger ...*zap.Logger) error {
	log := zap.L().Named("database.migrate")
	if len(logger) > 0 && logger[0] != nil {
		log = logger[0]
	}

	m, err := newMigrator(db)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("schema up to date")
			return nil
		}
		var dirty migrate.ErrDirty
		if errors.As(err, &dirty) {
			return fmt.Errorf("schema is dirty at version %d, fix it manually: %w", dirty.Version, err)
		}
		return err
	}

	version, _, err := m.Version()
	if err != nil {
		return err
	}
	log.Info("schema migrated", zap.Uint("version", version))
	return nil
}

func Status(db *sql.DB) (MigrationStatus, error) {
	m, err := newMigrator(db)
	if err != nil {
		return MigrationStatus{}, err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return MigrationStatus{}, err
	}

	latest, err := LatestVersion()
	if err != nil {
		return MigrationStatus{}, err
	}

	return MigrationStatus{
		CurrentVersion: version,
		LatestVersion:  latest,
		Dirty:          dirty,
		Pending:        version < latest,
	}, nil
}

// LatestVersion walks the embedded source to its last migration.
func LatestVersion() (uint, error) {
	src, err := newSource()
	if err != nil {
		return 0, err
	}
	defer src.Close()

	latest, err := src.First()
	if err != nil {
		return 0, err
	}
	for {
		next, err := src.Next(latest)
		if err != nil {
			break
		}
		latest = next
	}
	return latest, nil
}
