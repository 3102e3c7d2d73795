package helper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/AntonStoeckl/utctimestamp-go/testutil/config"
)

const postgresImage = "postgres:16-alpine"

// PostgresDSN returns the DSN of the integration test database.
// It uses config.EnvPostgresDSN when set, otherwise it starts a container that lives until the test ends.
func PostgresDSN(t *testing.T) string {
	t.Helper()

	if dsn, ok := config.PostgresDSNFromEnv(); ok {
		return dsn
	}

	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		postgresImage,
		tcpostgres.WithDatabase("utctime"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err, "error starting the postgres container")

	t.Cleanup(func() {
		_ = pgContainer.Terminate(context.Background())
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "error reading the postgres connection string")

	return config.WithUTCSession(dsn)
}
