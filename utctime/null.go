package utctime

import (
	"database/sql/driver"

	"github.com/jackc/pgx/v5/pgtype"
)

// NullTimestamp is a Timestamp that may be NULL, in the manner of sql.NullTime.
type NullTimestamp struct {
	Timestamp Timestamp
	Valid     bool
}

// NewNullTimestamp returns a valid NullTimestamp holding ts.
func NewNullTimestamp(ts Timestamp) NullTimestamp {
	return NullTimestamp{Timestamp: ts, Valid: true}
}

// Ptr returns nil for NULL, otherwise a pointer to a copy of the Timestamp.
func (n NullTimestamp) Ptr() *Timestamp {
	if !n.Valid {
		return nil
	}

	ts := n.Timestamp

	return &ts
}

// Value implements driver.Valuer.
func (n NullTimestamp) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}

	return n.Timestamp.Value()
}

// Scan implements sql.Scanner.
func (n *NullTimestamp) Scan(src any) error {
	if src == nil {
		*n = NullTimestamp{}
		return nil
	}

	var ts Timestamp
	if err := ts.Scan(src); err != nil {
		return err
	}

	*n = NewNullTimestamp(ts)

	return nil
}

func (NullTimestamp) GormDataType() string {
	return "timestamptz"
}

func (n NullTimestamp) TimestamptzValue() (pgtype.Timestamptz, error) {
	if !n.Valid {
		return pgtype.Timestamptz{}, nil
	}

	return n.Timestamp.TimestamptzValue()
}

func (n *NullTimestamp) ScanTimestamptz(v pgtype.Timestamptz) error {
	if !v.Valid {
		*n = NullTimestamp{}
		return nil
	}

	var ts Timestamp
	if err := ts.ScanTimestamptz(v); err != nil {
		return err
	}

	*n = NewNullTimestamp(ts)

	return nil
}

func (n NullTimestamp) TimestampValue() (pgtype.Timestamp, error) {
	if !n.Valid {
		return pgtype.Timestamp{}, nil
	}

	return n.Timestamp.TimestampValue()
}

func (n *NullTimestamp) ScanTimestamp(v pgtype.Timestamp) error {
	if !v.Valid {
		*n = NullTimestamp{}
		return nil
	}

	var ts Timestamp
	if err := ts.ScanTimestamp(v); err != nil {
		return err
	}

	*n = NewNullTimestamp(ts)

	return nil
}
