// Package helper provides testing utilities for the utctime packages.
//
// It contains log handlers and loggers that capture output for assertions,
// rapid generators for Timestamp values, and the bootstrap of the PostgreSQL
// database used by the integration tests.
package helper
