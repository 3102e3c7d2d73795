package utctime

import (
	"errors"
)

// ErrNotUTC is returned when a time.Time or binary value is not tagged as UTC.
var ErrNotUTC = errors.New("timestamp is not in UTC")

// ErrInvalidField is returned by FromComponents for a calendar or clock field outside its range.
var ErrInvalidField = errors.New("calendar field out of range")

// ErrInvalidZone is returned by ConvertFromZone when a local time cannot be mapped to UTC.
var ErrInvalidZone = errors.New("time zone conversion cannot be resolved")

// ErrFormat is returned by the parse functions for text that is not a date/time.
var ErrFormat = errors.New("text is not a valid date/time")

// ErrZoneMismatch is returned by the parse functions for text whose zone cannot be resolved to UTC.
var ErrZoneMismatch = errors.New("parsed date/time did not resolve to UTC")

// ErrSerialization is returned when a JSON or text token is not a timestamp string.
var ErrSerialization = errors.New("unexpected token while reading a timestamp")

// ErrOutOfRange is returned when a result would fall outside [MinValue, MaxValue].
var ErrOutOfRange = errors.New("timestamp out of supported range")

// ErrInvalidAmount is returned for a fractional month or year amount and for unknown units.
var ErrInvalidAmount = errors.New("calendar amount must be a whole number")

// ErrNullValue is returned by Timestamp.Scan for a NULL column.
var ErrNullValue = errors.New("cannot scan NULL into a timestamp, use NullTimestamp")

// ErrUnsupportedScanType is returned by Scan for a driver value of an unexpected type.
var ErrUnsupportedScanType = errors.New("unsupported scan source type")

// ErrInvalidBinaryLength is returned by UnmarshalBinary for input that is not 8 bytes long.
var ErrInvalidBinaryLength = errors.New("binary timestamp must be exactly 8 bytes")
