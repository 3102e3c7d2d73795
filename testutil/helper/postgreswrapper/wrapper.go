package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/utctimestamp-go/testutil/config"
	"github.com/AntonStoeckl/utctimestamp-go/utctime/sqlconverter"
)

// Adapter type constants
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"
)

// Wrapper interface to abstract over different adapter types
type Wrapper interface {
	GetExecutor() *sqlconverter.Executor
	AdapterType() string
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing
type PGXPoolWrapper struct {
	pool     *pgxpool.Pool
	executor *sqlconverter.Executor
}

func (w *PGXPoolWrapper) GetExecutor() *sqlconverter.Executor { return w.executor }
func (w *PGXPoolWrapper) AdapterType() string                 { return typePGXPool }
func (w *PGXPoolWrapper) Close()                              { w.pool.Close() }

// SQLDBWrapper wraps sql.DB-based testing
type SQLDBWrapper struct {
	db       *sql.DB
	executor *sqlconverter.Executor
}

func (w *SQLDBWrapper) GetExecutor() *sqlconverter.Executor { return w.executor }
func (w *SQLDBWrapper) AdapterType() string                 { return typeSQLDB }
func (w *SQLDBWrapper) Close()                              { _ = w.db.Close() }

// SQLXWrapper wraps sqlx.DB-based testing
type SQLXWrapper struct {
	db       *sqlx.DB
	executor *sqlconverter.Executor
}

func (w *SQLXWrapper) GetExecutor() *sqlconverter.Executor { return w.executor }
func (w *SQLXWrapper) AdapterType() string                 { return typeSQLXDB }
func (w *SQLXWrapper) Close()                              { _ = w.db.Close() }

// DB returns the sqlx connection, e.g. for struct scanning next to the Executor.
func (w *SQLXWrapper) DB() *sqlx.DB { return w.db }

// CreateWrapper creates the wrapper selected by ADAPTER_TYPE for dsn and closes it when the test ends.
func CreateWrapper(t testing.TB, dsn string, options ...sqlconverter.Option) Wrapper {
	wrapper := createWrapper(t, dsn, options...)
	t.Cleanup(wrapper.Close)

	return wrapper
}

func createWrapper(t testing.TB, dsn string, options ...sqlconverter.Option) Wrapper {
	adapterTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	switch adapterTypeFromEnv {
	case typePGXPool, "":
		connPool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolConfig(dsn))
		require.NoError(t, err, "error connecting to DB pool in test setup")

		executor, err := sqlconverter.NewExecutorFromPGXPool(connPool, options...)
		require.NoError(t, err, "error creating executor")

		return &PGXPoolWrapper{pool: connPool, executor: executor}

	case typeSQLDB:
		db := config.PostgresSQLDBConfig(dsn)

		executor, err := sqlconverter.NewExecutorFromSQLDB(db, options...)
		require.NoError(t, err, "error creating executor")

		return &SQLDBWrapper{db: db, executor: executor}

	case typeSQLXDB:
		db := config.PostgresSQLXConfig(dsn)

		executor, err := sqlconverter.NewExecutorFromSQLX(db, options...)
		require.NoError(t, err, "error creating executor")

		return &SQLXWrapper{db: db, executor: executor}

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", adapterTypeFromEnv))
	}
}
