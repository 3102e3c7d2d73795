// Package sqlconverter connects utctime.Timestamp to relational persistence.
//
// It covers three concerns:
//
//   - Default type mapping: RegisterTypes and AfterConnect register Timestamp and
//     NullTimestamp as timestamptz values on a pgx type map, once per connection.
//   - Expression translation: a Model owns the translations of calendar arithmetic
//     (AddSeconds ... AddYears) into SQL interval arithmetic, rendered as goqu expressions
//     or gorm clause expressions, so such computations run server-side.
//   - Materialization: an Executor runs goqu datasets on pgx, database/sql or sqlx and
//     scans the single selected column of each row into a Timestamp.
//
// Registration is a startup step:
//
//	poolConfig, err := pgxpool.ParseConfig(dsn)
//	if err != nil {
//		// handle error
//	}
//	pool, err := pgxpool.NewWithConfig(ctx, sqlconverter.ConfigurePool(poolConfig))
//
//	model, err := sqlconverter.NewModel(sqlconverter.WithModelLogger(slog.Default()))
//	if err != nil {
//		// handle error
//	}
//	model.UseUTCTimestamp()
//
//	expiry, err := model.Translate(sqlconverter.OpAddDays, goqu.C("issued_at"), 30)
//	ds := goqu.Dialect("postgres").From("sessions").Select(expiry)
//
//	executor, err := sqlconverter.NewExecutorFromPGXPool(pool)
//	expiries, err := executor.QueryTimestamps(ctx, ds)
//
// The Executor runs every goqu dataset in prepared mode, see Prepare. WithMetrics and WithTracing
// report durations, row counts and errors of each query and exec.
package sqlconverter
