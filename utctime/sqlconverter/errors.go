package sqlconverter

import (
	"errors"
)

// ErrTranslationNotRegistered is returned by Model.Translate for an operation without a registered translation.
var ErrTranslationNotRegistered = errors.New("no translation registered for operation, call UseUTCTimestamp first")

// ErrUnsupportedDialect is returned by WithDialect for a dialect without interval templates.
var ErrUnsupportedDialect = errors.New("unsupported SQL dialect")

// ErrUnknownOperation is returned for an operation name that does not map to a timestamp method.
var ErrUnknownOperation = errors.New("unknown timestamp operation")

// ErrNilDatabaseConnection is returned by the Executor constructors for a nil connection.
var ErrNilDatabaseConnection = errors.New("database connection must not be nil")

// ErrBuildingQueryFailed wraps errors from rendering a dataset or statement to SQL.
var ErrBuildingQueryFailed = errors.New("building query failed")

// ErrQueryingFailed wraps errors the database reports while running or iterating a query.
var ErrQueryingFailed = errors.New("querying timestamps failed")

// ErrScanningRowFailed wraps errors from scanning a column into a Timestamp, e.g. utctime.ErrNullValue.
var ErrScanningRowFailed = errors.New("scanning db row failed")

// ErrExecFailed wraps errors the database reports while executing a statement.
var ErrExecFailed = errors.New("executing statement failed")

// ErrNoRows is returned by Executor.QueryTimestamp when the query selects no row.
var ErrNoRows = errors.New("query returned no rows")

// ErrTooManyRows is returned by Executor.QueryTimestamp when the query selects more than one row.
var ErrTooManyRows = errors.New("query returned more than one row")
