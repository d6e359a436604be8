// Package schema owns the database layout. Migrations are embedded in the
// binary and applied with goose before the server accepts traffic.
package schema

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/hrmslite/hrms-backend/pkg/logger"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// goose keeps its settings in package globals.
var gooseMu sync.Mutex

// Ensure applies every pending migration. Running it against an up-to-date
// database is a no-op.
func Ensure(ctx context.Context, db *sql.DB, log *logger.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log: log})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	log.Info().Int64("version", version).Msg("database schema ready")
	return nil
}

// Migrate is Ensure with a silent logger, shaped for test suites.
func Migrate(ctx context.Context, db *sql.DB) error {
	return Ensure(ctx, db, logger.Nop())
}

type gooseLogger struct {
	log *logger.Logger
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Error().Msgf(format, v...)
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Debug().Msgf(format, v...)
}
