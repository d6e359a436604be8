package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"

	"github.com/hrmslite/hrms-backend/pkg/database"
	"github.com/hrmslite/hrms-backend/pkg/logger"
	"github.com/jmoiron/sqlx"
)

var (
	// Global test container (shared across all integration tests)
	globalContainer *PostgresContainer
	globalDB        *sqlx.DB
	containerOnce   sync.Once
	containerErr    error
)

// MigrateFunc brings an empty database up to the current schema.
type MigrateFunc func(ctx context.Context, db *sql.DB) error

// IntegrationSuite provides a base for integration tests with real PostgreSQL
type IntegrationSuite struct {
	Container *PostgresContainer
	DB        *database.DB
	Fixtures  *FixtureFactory
	Logger    *logger.Logger
}

// NewIntegrationSuite starts (or reuses) the shared container and applies
// migrate to it. Call this in TestMain.
//
// Usage:
//
//	var suite *testutil.IntegrationSuite
//
//	func TestMain(m *testing.M) {
//	    ctx := context.Background()
//	    s, err := testutil.NewIntegrationSuite(ctx, migrate)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    suite = s
//	    code := m.Run()
//	    testutil.TerminateContainer(ctx)
//	    os.Exit(code)
//	}
func NewIntegrationSuite(ctx context.Context, migrate MigrateFunc) (*IntegrationSuite, error) {
	container, db, err := getOrCreateContainer(ctx)
	if err != nil {
		return nil, err
	}

	if migrate != nil {
		if err := migrate(ctx, db.DB); err != nil {
			return nil, fmt.Errorf("failed to migrate test database: %w", err)
		}
	}

	log := logger.Nop()
	return &IntegrationSuite{
		Container: container,
		DB:        database.Wrap(db, log),
		Fixtures:  NewFixtureFactory(),
		Logger:    log,
	}, nil
}

// getOrCreateContainer returns the shared test container
func getOrCreateContainer(ctx context.Context) (*PostgresContainer, *sqlx.DB, error) {
	containerOnce.Do(func() {
		globalContainer, containerErr = NewPostgresContainer(ctx, DefaultPostgresConfig())
		if containerErr != nil {
			return
		}
		globalDB, containerErr = globalContainer.Connect(ctx)
	})

	return globalContainer, globalDB, containerErr
}

// Reset empties the tables between tests. Attendance rows go with their
// employees through the cascade.
func (s *IntegrationSuite) Reset(t *testing.T, ctx context.Context) {
	t.Helper()
	if _, err := s.DB.ExecContext(ctx, `TRUNCATE employees RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("failed to reset tables: %v", err)
	}
}

// TerminateContainer terminates the shared container.
// Only call this in TestMain after all tests have completed.
func TerminateContainer(ctx context.Context) {
	if globalContainer != nil {
		_ = globalContainer.Terminate(ctx)
	}
}
