package store

import (
	"embed"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// registers the pgx5:// scheme
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies every pending up migration to the database at dsn.
func Migrate(dsn string, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("migration: open source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, pgx5DSN(dsn))
	if err != nil {
		return fmt.Errorf("migration: initialize: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Printf("migration: close source: %v", srcErr)
		}
		if dbErr != nil {
			logger.Printf("migration: close database: %v", dbErr)
		}
	}()
	m.Log = migrateLogger{logger: logger}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: read version: %w", err)
	}
	if dirty {
		return fmt.Errorf("migration: database is dirty at version %d", version)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Println("migration: schema up to date")
			return nil
		}
		return fmt.Errorf("migration: up: %w", err)
	}

	next, _, _ := m.Version()
	logger.Printf("migration: schema migrated from %d to %d", version, next)
	return nil
}

// pgx5DSN rewrites postgres URLs to the scheme the migrate driver expects.
func pgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}

type migrateLogger struct {
	logger *log.Logger
}

func (l migrateLogger) Printf(format string, args ...interface{}) {
	l.logger.Printf("migration: "+format, args...)
}

func (l migrateLogger) Verbose() bool { return false }
