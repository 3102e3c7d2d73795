// Package postgreswrapper selects the database client of the integration tests.
//
// The ADAPTER_TYPE environment variable picks pgx.pool (default), sql.db or sqlx.db,
// so the same tests run against every Executor adapter.
package postgreswrapper
