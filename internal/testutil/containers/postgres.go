//go:build integration

package containers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vdab/fietsen/internal/app/migrations"
	"github.com/vdab/fietsen/internal/db"
)

// PostgresContainer wraps a migrated testcontainers PostgreSQL instance.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *db.PostgresDB
}

var (
	shared     *PostgresContainer
	sharedErr  error
	sharedOnce sync.Once
)

// GetPostgres returns the container shared by every test of the package, starting
// and migrating it on first use. Ryuk removes it when the test binary exits.
func GetPostgres(t *testing.T) *PostgresContainer {
	t.Helper()
	sharedOnce.Do(func() {
		shared, sharedErr = startPostgres(context.Background())
	})
	if sharedErr != nil {
		t.Fatalf("failed to start postgres container: %v", sharedErr)
	}
	return shared
}

func startPostgres(ctx context.Context) (*PostgresContainer, error) {
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("fietsen"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("connection string: %w", err)
	}

	database, err := db.Connect(ctx, dsn, nil)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err := migrations.NewMigrator(database.Pool).Migrate(ctx, migrations.Files()); err != nil {
		database.Close()
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &PostgresContainer{Container: container, DSN: dsn, DB: database}, nil
}

// TruncateTables empties the given tables and restarts their id sequences.
// Use between tests to ensure isolation.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	_, err := p.DB.Pool.Exec(ctx, "TRUNCATE TABLE "+strings.Join(tables, ", ")+" RESTART IDENTITY CASCADE")
	return err
}
