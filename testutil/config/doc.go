// Package config provides PostgreSQL database configuration for integration testing.
//
// This package contains factory functions for creating database connections
// with each supported client (pgx.Pool, sql.DB, sqlx.DB, gorm.DB). All of them
// run their sessions in the UTC time zone, so server-side interval arithmetic
// matches the in-memory calendar arithmetic of utctime.Timestamp.
package config
