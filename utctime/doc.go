// Package utctime provides Timestamp, an immutable instant that is guaranteed to be in UTC.
//
// A Timestamp can only be obtained through constructors that reject values tagged with
// another time zone, so a non-UTC instant never leaks into a domain model that stores
// Timestamp fields. The zero value is MinValue and is ready to use.
//
// Supported range is [MinValue, MaxValue] with a resolution of 100 nanoseconds ("ticks"):
//
//	MinValue = 0001-01-01T00:00:00Z
//	MaxValue = 9999-12-31T23:59:59.9999999Z
//
// Inputs whose wall clock equals one of these boundaries are mapped to the canonical
// sentinel whatever zone they are tagged with.
//
// Key entry points:
//   - Now, FromFields, FromTicks: construct from the clock, calendar fields, or ticks
//   - ConvertFrom, ConvertFromZone: accept a time.Time that is UTC, or normalize one using a zone
//   - Parse, ParseInLocale, TryParse: textual input with "assume UTC, adjust to UTC" semantics
//   - FromBinary, ToBinary: the 64-bit binary form with a UTC kind flag
//
// Common usage pattern:
//
//	issuedAt := utctime.Now()
//
//	expiresAt, err := issuedAt.AddDays(30)
//	if err != nil {
//		// handle error
//	}
//
//	parsed, err := utctime.Parse("2024-03-15T10:30:00Z")
//	if errors.Is(err, utctime.ErrFormat) {
//		// handle malformed input
//	}
//
// Timestamp implements driver.Valuer and sql.Scanner, the pgx v5 timestamp(tz) scanner and
// valuer interfaces, encoding.TextMarshaler and encoding.BinaryMarshaler. JSON support
// lives in the jsonconverter sub-package, relational registration and query helpers in
// the sqlconverter sub-package.
package utctime
