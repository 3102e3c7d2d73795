package helper

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/utctimestamp-go/utctime/sqlconverter"
)

func GivenUniqueID(t testing.TB) uuid.UUID {
	id, err := uuid.NewV7()
	assert.NoError(t, err, "error in arranging test data")

	return id
}

// GivenUniqueTableName returns a table name that no other test uses.
func GivenUniqueTableName(t testing.TB, prefix string) string {
	return prefix + "_" + strings.ReplaceAll(GivenUniqueID(t).String(), "-", "")
}

// GivenSessionsTable creates a sessions table with a NOT NULL and a nullable timestamptz column
// and drops it when the test ends.
func GivenSessionsTable(t testing.TB, ctx context.Context, executor *sqlconverter.Executor) string {
	tableName := GivenUniqueTableName(t, "sessions")

	_, err := executor.Exec(ctx, sqlconverter.RawSQL(fmt.Sprintf(
		`CREATE TABLE %s (
			id TEXT PRIMARY KEY,
			issued_at TIMESTAMPTZ NOT NULL,
			expires_at TIMESTAMPTZ NULL
		)`,
		tableName)))
	require.NoError(t, err, "error in arranging test data")

	t.Cleanup(func() {
		_, _ = executor.Exec(context.Background(), sqlconverter.RawSQL("DROP TABLE IF EXISTS "+tableName))
	})

	return tableName
}
