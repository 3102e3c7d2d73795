package sqlconverter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/utctimestamp-go/utctime"
	"github.com/AntonStoeckl/utctimestamp-go/utctime/sqlconverter/internal/adapters"
)

const (
	logMsgBuildQueryFailed      = "failed to build query"
	logMsgDBQueryFailed         = "database query execution failed"
	logMsgCloseRowsFailed       = "failed to close database rows"
	logMsgScanRowFailed         = "failed to scan database row"
	logMsgIterateRowsFailed     = "failed to iterate database rows"
	logMsgDBExecFailed          = "database execution failed"
	logMsgRowsAffectedFailed    = "failed to get rows affected count"
	logMsgQueryCompleted        = "timestamps queried"
	logMsgStatementExecuted     = "statement executed"
	logMsgTranslationRegistered = "timestamp translation registered"
	logMsgSQLExecuted           = "executed sql for: "
	logMsgOperation             = "sqlconverter operation: "
	logAttrError                = "error"
	logAttrQuery                = "query"
	logAttrRowCount             = "row_count"
	logAttrRowsAffected         = "rows_affected"
	logAttrDurationMS           = "duration_ms"
	logAttrOperation            = "operation"
	logAttrDialect              = "dialect"
	logAttrTemplate             = "template"
	logActionQuery              = "query"
	logActionExec               = "exec"

	metricQueryDuration     = "utctime_query_duration_seconds"
	metricExecDuration      = "utctime_exec_duration_seconds"
	metricTimestampsQueried = "utctime_timestamps_queried_total"
	metricRowsAffected      = "utctime_rows_affected_total"
	metricDatabaseErrors    = "utctime_database_errors_total"

	spanNameQuery        = "utctime.query"
	spanNameExec         = "utctime.exec"
	spanAttrOperation    = "operation"
	spanAttrErrorType    = "error_type"
	spanAttrRowCount     = "row_count"
	spanAttrRowsAffected = "rows_affected"
	spanAttrDurationMS   = "duration_ms"
	labelStatus          = "status"

	operationQuery = "query"
	operationExec  = "exec"
	statusSuccess  = "success"
	statusError    = "error"

	errorTypeBuildQuery    = "build_query"
	errorTypeDatabaseQuery = "database_query"
	errorTypeRowScan       = "row_scan"
	errorTypeRowIteration  = "row_iteration"
	errorTypeDatabaseExec  = "database_exec"
	errorTypeRowsAffected  = "rows_affected"
)

// Statement is anything that renders to SQL with positional arguments,
// e.g. goqu insert, update and delete datasets.
type Statement interface {
	ToSQL() (string, []any, error)
}

// Prepare switches goqu select, insert, update and delete datasets to prepared mode,
// so every value, including translated amounts, is bound as a parameter instead of being inlined.
// Other statements are returned unchanged.
func Prepare(stmt Statement) Statement {
	switch ds := stmt.(type) {
	case *goqu.SelectDataset:
		return ds.Prepared(true)
	case *goqu.InsertDataset:
		return ds.Prepared(true)
	case *goqu.UpdateDataset:
		return ds.Prepared(true)
	case *goqu.DeleteDataset:
		return ds.Prepared(true)
	default:
		return stmt
	}
}

// RawSQL is a statement without arguments, e.g. DDL that goqu does not build.
type RawSQL string

// ToSQL returns the statement text and no arguments.
func (s RawSQL) ToSQL() (string, []any, error) {
	return string(s), nil, nil
}

// Executor runs goqu datasets and materializes Timestamp columns.
// It is safe for concurrent use.
type Executor struct {
	db               adapters.DBAdapter
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

// NewExecutorFromPGXPool creates an Executor on a pgx pool.
// Configure the pool with ConfigurePool so parameters map to timestamptz.
func NewExecutorFromPGXPool(db *pgxpool.Pool, options ...Option) (*Executor, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newExecutor(adapters.NewPGXAdapter(db), options...)
}

// NewExecutorFromSQLDB creates an Executor on a database/sql connection.
func NewExecutorFromSQLDB(db *sql.DB, options ...Option) (*Executor, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newExecutor(adapters.NewSQLAdapter(db), options...)
}

// NewExecutorFromSQLX creates an Executor on a sqlx connection.
func NewExecutorFromSQLX(db *sqlx.DB, options ...Option) (*Executor, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newExecutor(adapters.NewSQLXAdapter(db), options...)
}

func newExecutor(db adapters.DBAdapter, options ...Option) (*Executor, error) {
	e := &Executor{db: db}

	for _, option := range options {
		if err := option(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// QueryTimestamps runs ds as a prepared statement and scans the single selected column
// of every row into a Timestamp. A NULL value fails with utctime.ErrNullValue.
func (e *Executor) QueryTimestamps(ctx context.Context, ds *goqu.SelectDataset) ([]utctime.Timestamp, error) {
	observer, ctx := e.startObserving(ctx, operationQuery, spanNameQuery, metricQueryDuration)

	sqlQuery, args, buildErr := ds.Prepared(true).ToSQL()
	if buildErr != nil {
		e.logError(ctx, logMsgBuildQueryFailed, buildErr)
		observer.finishError(errorTypeBuildQuery, 0)

		return nil, errors.Join(ErrBuildingQueryFailed, buildErr)
	}

	start := time.Now()
	rows, queryErr := e.db.Query(ctx, sqlQuery, args...)
	duration := time.Since(start)
	e.logQueryWithDuration(ctx, sqlQuery, logActionQuery, duration)

	if queryErr != nil {
		e.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		observer.finishError(errorTypeDatabaseQuery, duration)

		return nil, errors.Join(ErrQueryingFailed, queryErr)
	}
	defer e.closeRows(ctx, rows)

	timestamps := make([]utctime.Timestamp, 0)

	for rows.Next() {
		var ts utctime.Timestamp
		if scanErr := rows.Scan(&ts); scanErr != nil {
			e.logError(ctx, logMsgScanRowFailed, scanErr)
			observer.finishError(errorTypeRowScan, time.Since(start))

			return nil, errors.Join(ErrScanningRowFailed, scanErr)
		}

		timestamps = append(timestamps, ts)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		e.logError(ctx, logMsgIterateRowsFailed, rowsErr)
		observer.finishError(errorTypeRowIteration, time.Since(start))

		return nil, errors.Join(ErrQueryingFailed, rowsErr)
	}

	e.logOperation(
		ctx,
		logMsgQueryCompleted,
		logAttrRowCount, len(timestamps),
		logAttrDurationMS, toMilliseconds(duration))

	observer.finishSuccess(metricTimestampsQueried, spanAttrRowCount, int64(len(timestamps)), duration)

	return timestamps, nil
}

// QueryTimestamp is QueryTimestamps for a query that selects exactly one row.
// It fails with ErrNoRows for an empty result and with ErrTooManyRows for more than one row,
// so a missing WHERE or LIMIT clause does not go unnoticed.
func (e *Executor) QueryTimestamp(ctx context.Context, ds *goqu.SelectDataset) (utctime.Timestamp, error) {
	timestamps, err := e.QueryTimestamps(ctx, ds)
	if err != nil {
		return utctime.Timestamp{}, err
	}

	switch len(timestamps) {
	case 0:
		return utctime.Timestamp{}, ErrNoRows
	case 1:
		return timestamps[0], nil
	default:
		return utctime.Timestamp{}, fmt.Errorf("%w: got %d", ErrTooManyRows, len(timestamps))
	}
}

// Exec runs stmt and returns the number of affected rows.
// goqu datasets are run in prepared mode, see Prepare.
func (e *Executor) Exec(ctx context.Context, stmt Statement) (int64, error) {
	observer, ctx := e.startObserving(ctx, operationExec, spanNameExec, metricExecDuration)

	sqlQuery, args, buildErr := Prepare(stmt).ToSQL()
	if buildErr != nil {
		e.logError(ctx, logMsgBuildQueryFailed, buildErr)
		observer.finishError(errorTypeBuildQuery, 0)

		return 0, errors.Join(ErrBuildingQueryFailed, buildErr)
	}

	start := time.Now()
	result, execErr := e.db.Exec(ctx, sqlQuery, args...)
	duration := time.Since(start)
	e.logQueryWithDuration(ctx, sqlQuery, logActionExec, duration)

	if execErr != nil {
		e.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		observer.finishError(errorTypeDatabaseExec, duration)

		return 0, errors.Join(ErrExecFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		e.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		observer.finishError(errorTypeRowsAffected, duration)

		return 0, errors.Join(ErrExecFailed, rowsAffectedErr)
	}

	e.logOperation(
		ctx,
		logMsgStatementExecuted,
		logAttrRowsAffected, rowsAffected,
		logAttrDurationMS, toMilliseconds(duration))

	observer.finishSuccess(metricRowsAffected, spanAttrRowsAffected, rowsAffected, duration)

	return rowsAffected, nil
}

// closeRows closes database rows and logs any errors.
func (e *Executor) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		e.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}
