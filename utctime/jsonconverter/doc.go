// Package jsonconverter teaches a json-iterator API to read and write utctime.Timestamp.
//
// Register the Extension on an API you own; the package keeps no global state:
//
//	api := jsonconverter.UseUTCTimestamp(jsoniter.Config{EscapeHTML: true}.Froze())
//
//	data, err := api.Marshal(session)
//
// Timestamps are written as RFC 3339 strings in UTC, NullTimestamp{Valid: false} as null.
// When reading, null leaves the target absent, an RFC 3339 string must carry the "Z"
// designator, any other string is read with utctime.Parse and every other JSON kind fails
// with utctime.ErrSerialization.
package jsonconverter
