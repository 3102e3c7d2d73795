package utctime

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const (
	infinity         = "infinity"
	negativeInfinity = "-infinity"
)

// PostgreSQL stores microseconds, so MaxValue comes back as maxStoredTime.
var maxStoredTime = maxTime.Truncate(time.Microsecond)

// Value implements driver.Valuer, the stored value is a UTC time.Time.
// It is truncated to microseconds, the resolution of SQL timestamp columns, so drivers
// that send text do not round MaxValue into year 10000.
func (ts Timestamp) Value() (driver.Value, error) {
	return ts.t.Truncate(time.Microsecond), nil
}

// Scan implements sql.Scanner.
//
// A time.Time coming from the database driver describes a stored instant, so its zone
// tag is replaced by UTC before the value is checked. Text is read with Parse, the
// PostgreSQL literals "infinity" and "-infinity" map to MaxValue and MinValue.
func (ts *Timestamp) Scan(src any) error {
	var (
		scanned Timestamp
		err     error
	)

	switch value := src.(type) {
	case nil:
		return ErrNullValue
	case time.Time:
		scanned, err = fromStored(value)
	case string:
		scanned, err = fromStoredText(value)
	case []byte:
		scanned, err = fromStoredText(string(value))
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedScanType, src)
	}

	if err != nil {
		return err
	}

	*ts = scanned

	return nil
}

// GormDataType tells gorm's migrator which column type to use.
func (Timestamp) GormDataType() string {
	return "timestamptz"
}

// TimestamptzValue implements pgtype.TimestamptzValuer.
func (ts Timestamp) TimestamptzValue() (pgtype.Timestamptz, error) {
	return pgtype.Timestamptz{Time: ts.t, Valid: true}, nil
}

// ScanTimestamptz implements pgtype.TimestamptzScanner.
func (ts *Timestamp) ScanTimestamptz(v pgtype.Timestamptz) error {
	if !v.Valid {
		return ErrNullValue
	}

	scanned, err := fromInfinityModifier(v.InfinityModifier, v.Time)
	if err != nil {
		return err
	}

	*ts = scanned

	return nil
}

// TimestampValue implements pgtype.TimestampValuer for timestamp without time zone columns.
func (ts Timestamp) TimestampValue() (pgtype.Timestamp, error) {
	return pgtype.Timestamp{Time: ts.t, Valid: true}, nil
}

// ScanTimestamp implements pgtype.TimestampScanner.
func (ts *Timestamp) ScanTimestamp(v pgtype.Timestamp) error {
	if !v.Valid {
		return ErrNullValue
	}

	scanned, err := fromInfinityModifier(v.InfinityModifier, v.Time)
	if err != nil {
		return err
	}

	*ts = scanned

	return nil
}

func fromInfinityModifier(modifier pgtype.InfinityModifier, t time.Time) (Timestamp, error) {
	switch modifier {
	case pgtype.Infinity:
		return MaxValue, nil
	case pgtype.NegativeInfinity:
		return MinValue, nil
	default:
		return fromStored(t)
	}
}

func fromStored(t time.Time) (Timestamp, error) {
	utc := t.UTC()
	if utc.Equal(maxStoredTime) {
		return MaxValue, nil
	}

	return ConvertFrom(utc)
}

func fromStoredText(text string) (Timestamp, error) {
	switch text {
	case infinity:
		return MaxValue, nil
	case negativeInfinity:
		return MinValue, nil
	default:
		return Parse(text)
	}
}
