// Package adapters let the timestamp executor run queries on pgxpool.Pool, sql.DB and sqlx.DB.
//
// Each adapter forwards SQL text with positional arguments to its library and wraps the
// result in the DBRows and DBResult interfaces, so the executor does not depend on which
// connection type the caller chose.
package adapters
